package handlers

import (
	"net/http"

	"slotwise/services/scheduling"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler drives the session-based booking flow: check, hold the
// result in a session, then confirm with the atomic reserve.
type BookingHandler struct {
	Sessions scheduling.BookingSessionService
	Logger   *zap.Logger
}

func NewBookingHandler(sessions scheduling.BookingSessionService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Sessions: sessions, Logger: logger}
}

// InitiateSession creates a new booking session.
func (h *BookingHandler) InitiateSession(c *gin.Context) {
	var input struct {
		scheduling.CheckRequest
		UserID string `json:"userId,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Sessions.InitiateSession(c.Request.Context(), input.CheckRequest, input.UserID)
	if err != nil {
		h.Logger.Error("failed to initiate booking session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to initiate booking session", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID": session.SessionID,
		"result":    session.Result,
	})
}

// ConfirmBooking finalizes the booking held in a session.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var input struct {
		SessionID string `json:"sessionID" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, result, err := h.Sessions.ConfirmSession(c.Request.Context(), input.SessionID)
	if err != nil {
		h.Logger.Error("booking confirmation failed", zap.String("sessionID", input.SessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "booking confirmation failed", err.Error())
		return
	}
	if appt == nil {
		// The slot was lost or rejected; the result carries the reason and
		// fresh suggestions.
		c.JSON(http.StatusConflict, result)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// CancelSession abandons a pending booking session.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Sessions.CancelSession(c.Request.Context(), sessionID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
