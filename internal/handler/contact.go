package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/deannos/solutions-company-website/internal/store"
	"github.com/deannos/solutions-company-website/internal/util"

	"github.com/gin-gonic/gin"
)

// ContactHandler exposes the public submission endpoint and the
// admin-only message listing and chart data.
type ContactHandler struct {
	Store *store.ContactStore
}

func NewContactHandler(s *store.ContactStore) *ContactHandler {
	return &ContactHandler{Store: s}
}

type submitContactReq struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

// Submit accepts a public contact-form submission.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req submitContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name, email and message are required")
		return
	}

	msg, err := h.Store.Submit(c.Request.Context(), store.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, verr.Error())
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "an error occurred, please try again")
		return
	}

	util.SuccessStatus(c, http.StatusCreated, util.Response{
		"message": "contact message submitted successfully",
		"data":    msg,
	})
}

// List returns every message, newest first. Admin only.
func (h *ContactHandler) List(c *gin.Context) {
	msgs, err := h.Store.ListAll(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to retrieve contact messages")
		return
	}
	util.Success(c, util.Response{"messages": msgs})
}

// Stats returns per-day submission counts for dashboard charts. Admin only.
// Window defaults to 30 days, overridable with ?days=N (1..365).
func (h *ContactHandler) Stats(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 365 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "days must be between 1 and 365")
			return
		}
		days = n
	}

	stats, err := h.Store.DailyStats(c.Request.Context(), days)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute stats")
		return
	}
	util.Success(c, util.Response{"stats": stats})
}
