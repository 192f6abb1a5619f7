package handler

import (
	"net/http"

	"github.com/deannos/solutions-company-website/internal/models"
	"github.com/deannos/solutions-company-website/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditHandler lists the most recent admin actions.
type AuditHandler struct {
	DB *gorm.DB
}

func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{DB: db}
}

func (h *AuditHandler) List(c *gin.Context) {
	var entries []models.AuditLog
	if err := h.DB.WithContext(c.Request.Context()).
		Order("id DESC").
		Limit(100).
		Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to retrieve audit log")
		return
	}
	util.Success(c, util.Response{"entries": entries})
}
