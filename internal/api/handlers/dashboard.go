package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"timeout/internal/core"
)

// DashboardHandler handles dashboard, schedule, lock and timer endpoints
type DashboardHandler struct {
	manager *core.DashboardManager
	logger  *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(manager *core.DashboardManager, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		manager: manager,
		logger:  logger,
	}
}

// GetDashboard returns the full dashboard state
// GET /v1/dashboards/:userId
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	state, err := h.manager.GetState(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.logger.Error("Failed to load dashboard", "error", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ToggleDay flips one day in the schedule's day selection
// POST /v1/dashboards/:userId/schedule/days/:day/toggle
func (h *DashboardHandler) ToggleDay(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Day must be a number between 1 and 7",
			"code":  "INVALID_DAY",
		})
		return
	}

	state, err := h.manager.ToggleDay(c.Request.Context(), c.Param("userId"), day)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// UpdateScheduleRequest represents a schedule settings update
type UpdateScheduleRequest struct {
	WeeklyRepeat *bool `json:"weekly_repeat"`
}

// UpdateSchedule updates schedule-level settings
// PATCH /v1/dashboards/:userId/schedule
func (h *DashboardHandler) UpdateSchedule(c *gin.Context) {
	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	if req.WeeklyRepeat == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "weekly_repeat is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	state, err := h.manager.SetWeeklyRepeat(c.Request.Context(), c.Param("userId"), *req.WeeklyRepeat)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// AddSlot appends a new time slot
// POST /v1/dashboards/:userId/schedule/slots
func (h *DashboardHandler) AddSlot(c *gin.Context) {
	state, err := h.manager.AddSlot(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// RemoveSlot deletes a time slot
// DELETE /v1/dashboards/:userId/schedule/slots/:slotId
func (h *DashboardHandler) RemoveSlot(c *gin.Context) {
	state, err := h.manager.RemoveSlot(c.Request.Context(), c.Param("userId"), c.Param("slotId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// UpdateSlotRequest represents a slot bounds update
type UpdateSlotRequest struct {
	Start core.TimeOfDay `json:"start"`
	End   core.TimeOfDay `json:"end"`
}

// UpdateSlot updates one slot's start and end times
// PATCH /v1/dashboards/:userId/schedule/slots/:slotId
func (h *DashboardHandler) UpdateSlot(c *gin.Context) {
	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	state, err := h.manager.SetSlotBounds(c.Request.Context(), c.Param("userId"), c.Param("slotId"), req.Start, req.End)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// EnableSelfLock turns the self-lock on
// POST /v1/dashboards/:userId/locks/self/enable
func (h *DashboardHandler) EnableSelfLock(c *gin.Context) {
	state, err := h.manager.EnableSelfLock(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// DisableSelfLock turns the self-lock off or starts the authorization
// flow when the partner lock protects the change
// POST /v1/dashboards/:userId/locks/self/disable
func (h *DashboardHandler) DisableSelfLock(c *gin.Context) {
	state, authRequired, err := h.manager.DisableSelfLock(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authorization_required": authRequired,
		"dashboard":              state,
	})
}

// EnablePartnerLock turns the partner lock on
// POST /v1/dashboards/:userId/locks/partner/enable
func (h *DashboardHandler) EnablePartnerLock(c *gin.Context) {
	state, err := h.manager.EnablePartnerLock(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// DisablePartnerLock turns the partner lock off or starts the
// authorization flow while the self-lock remains active
// POST /v1/dashboards/:userId/locks/partner/disable
func (h *DashboardHandler) DisablePartnerLock(c *gin.Context) {
	state, authRequired, err := h.manager.DisablePartnerLock(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authorization_required": authRequired,
		"dashboard":              state,
	})
}

// AuthorizationRequest represents a partner code submission
type AuthorizationRequest struct {
	Code string `json:"code" binding:"required"`
}

// SubmitAuthorization verifies a partner code for the pending change
// POST /v1/dashboards/:userId/authorization
func (h *DashboardHandler) SubmitAuthorization(c *gin.Context) {
	var req AuthorizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "code is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	state, err := h.manager.SubmitAuthorizationCode(c.Request.Context(), c.Param("userId"), req.Code)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// CancelAuthorization dismisses the pending authorization prompt
// DELETE /v1/dashboards/:userId/authorization
func (h *DashboardHandler) CancelAuthorization(c *gin.Context) {
	state, err := h.manager.CancelAuthorization(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// StartTimer starts the quick-lock countdown
// POST /v1/dashboards/:userId/timer/start
func (h *DashboardHandler) StartTimer(c *gin.Context) {
	state, err := h.manager.StartTimer(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// PauseTimer pauses the countdown
// POST /v1/dashboards/:userId/timer/pause
func (h *DashboardHandler) PauseTimer(c *gin.Context) {
	state, err := h.manager.PauseTimer(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ResumeTimer resumes a paused countdown
// POST /v1/dashboards/:userId/timer/resume
func (h *DashboardHandler) ResumeTimer(c *gin.Context) {
	state, err := h.manager.ResumeTimer(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ResetTimer returns the countdown to idle
// POST /v1/dashboards/:userId/timer/reset
func (h *DashboardHandler) ResetTimer(c *gin.Context) {
	state, err := h.manager.ResetTimer(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// AddTimeRequest represents a timer extension
type AddTimeRequest struct {
	Seconds int `json:"seconds" binding:"required"`
}

// AddTimerTime extends the countdown
// POST /v1/dashboards/:userId/timer/add
func (h *DashboardHandler) AddTimerTime(c *gin.Context) {
	var req AddTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "seconds is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	state, err := h.manager.AddTimerTime(c.Request.Context(), c.Param("userId"), req.Seconds)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// UpdateTierRequest represents a tier change
type UpdateTierRequest struct {
	Tier core.Tier `json:"tier" binding:"required"`
}

// UpdateTier records the tier resolved by the entitlement system
// PATCH /v1/dashboards/:userId/tier
func (h *DashboardHandler) UpdateTier(c *gin.Context) {
	var req UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "tier is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}
	if !req.Tier.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "tier must be free or premium",
			"code":  "INVALID_TIER",
		})
		return
	}

	state, err := h.manager.SetTier(c.Request.Context(), c.Param("userId"), req.Tier)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
