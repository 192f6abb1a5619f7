package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/deannos/solutions-company-website/internal/auth"
	"github.com/deannos/solutions-company-website/internal/middleware"
	"github.com/deannos/solutions-company-website/internal/models"
	"github.com/deannos/solutions-company-website/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes login/register/logout and the current-user probe.
type AuthHandler struct {
	Auth         *auth.Authenticator
	CookieName   string
	CookieSecure bool
}

func NewAuthHandler(authn *auth.Authenticator, cookieName string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		Auth:         authn,
		CookieName:   cookieName,
		CookieSecure: cookieSecure,
	}
}

type credentialsReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"created_at": user.CreatedAt,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetCookie(h.CookieName, token, int(ttl/time.Second), "/", "", h.CookieSecure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.CookieName, "", -1, "/", "", h.CookieSecure, true)
}

// Login verifies credentials and issues a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username and password are required")
		return
	}

	user, rec, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid username or password")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "an error occurred while processing your request")
		return
	}

	h.setSessionCookie(c, rec.Token, h.Auth.TTL())
	util.Success(c, util.Response{
		"token": rec.Token,
		"user":  userPayload(user),
	})
}

// Register creates an administrator account and logs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username and password are required")
		return
	}
	if err := util.ValidateUsername(req.Username); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	user, rec, err := h.Auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username already exists")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "an error occurred while processing your request")
		return
	}

	h.setSessionCookie(c, rec.Token, h.Auth.TTL())
	util.SuccessStatus(c, http.StatusCreated, util.Response{
		"token": rec.Token,
		"user":  userPayload(user),
	})
}

// Logout destroys the presented session, if any.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.SessionToken(c, h.CookieName)

	if err := h.Auth.Logout(c.Request.Context(), token); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to logout")
		return
	}

	h.clearSessionCookie(c)
	util.Success(c, util.Response{"message": "logged out successfully"})
}

// Me reports the user behind the presented session. Always 200: the body
// carries null when there is no live session.
func (h *AuthHandler) Me(c *gin.Context) {
	token := middleware.SessionToken(c, h.CookieName)

	user, err := h.Auth.CurrentUser(c.Request.Context(), token)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "an error occurred while processing your request")
		return
	}
	if user == nil {
		util.Success(c, util.Response{"user": nil})
		return
	}
	util.Success(c, util.Response{"user": userPayload(user)})
}
