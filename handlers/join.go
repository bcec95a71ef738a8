package handlers

import (
	"fmt"
	"net/http"

	"drivebook/services/partner"
	"drivebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PartnerHandler serves partner registration and calendar connection.
type PartnerHandler struct {
	Svc    partner.PartnerService
	Logger *zap.Logger
}

// NewPartnerHandler creates a PartnerHandler.
func NewPartnerHandler(svc partner.PartnerService, logger *zap.Logger) *PartnerHandler {
	return &PartnerHandler{Svc: svc, Logger: logger}
}

// JoinHandler answers POST /join with the created partner and the calendar
// connect step they must complete.
func (h *PartnerHandler) JoinHandler(c *gin.Context) {
	var req partner.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Svc.Join(c.Request.Context(), req)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "registration failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("Welcome %s! You're live in %d zip codes with %s sync.", resp.Partner.Name, len(resp.Partner.ServiceAreas), resp.Partner.CalendarProvider),
		"partner":     resp.Partner,
		"connectAuth": resp.ConnectAuth,
	})
}

// ConnectCallbackHandler completes the Google OAuth consent redirect.
func (h *PartnerHandler) ConnectCallbackHandler(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid callback", "state and code are required")
		return
	}

	if err := h.Svc.CompleteGoogleConnect(c.Request.Context(), state, code); err != nil {
		h.Logger.Warn("calendar connect failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "calendar connect failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "connected"})
}
