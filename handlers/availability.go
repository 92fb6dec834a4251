package handlers

import (
	"net/http"

	"slotwise/models"
	"slotwise/services/scheduling"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the scheduling engine over HTTP.
type AvailabilityHandler struct {
	Engine   scheduling.SchedulingEngine
	Resolver scheduling.RuleResolver
	Logger   *zap.Logger
}

func NewAvailabilityHandler(engine scheduling.SchedulingEngine, resolver scheduling.RuleResolver, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine, Resolver: resolver, Logger: logger}
}

// CheckHandler answers whether a service/date/time can be booked. Business
// rejections are 200 responses with isAvailable=false; only malformed input
// is a 400 and only infrastructure failure a 500.
func (h *AvailabilityHandler) CheckHandler(c *gin.Context) {
	var req scheduling.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Engine.Check(c.Request.Context(), req)
	if err != nil {
		h.Logger.Error("availability check failed", zap.String("service", req.Service), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "availability check failed", err.Error())
		return
	}
	if result.Reason == models.ReasonInvalidInput {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SearchHandler returns up to maxSuggestions open slots from startDate onward.
func (h *AvailabilityHandler) SearchHandler(c *gin.Context) {
	var req scheduling.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	slots, err := h.Engine.Search(c.Request.Context(), req)
	if err != nil {
		if scheduling.IsValidationError(err) {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		h.Logger.Error("slot search failed", zap.String("service", req.Service), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "slot search failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestedSlots": slots})
}

// EffectiveRulesHandler returns the merged rule set for one service and date,
// for inspection and debugging. Rule administration itself lives elsewhere.
func (h *AvailabilityHandler) EffectiveRulesHandler(c *gin.Context) {
	service := c.Query("service")
	date := c.Query("date")
	branch := c.Query("branch")
	if service == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "service and date query parameters are required")
		return
	}
	if _, err := utils.ParseDate(date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	rules, err := h.Resolver.Resolve(c.Request.Context(), service, branch, date)
	if err != nil {
		h.Logger.Error("rule resolution failed", zap.String("service", service), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "rule resolution failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, rules)
}
