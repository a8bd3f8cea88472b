package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"timeout/internal/blocking"
)

// BlocksHandler handles blocklist endpoints
type BlocksHandler struct {
	coordinator *blocking.Coordinator
	logger      *slog.Logger
}

// NewBlocksHandler creates a new blocklist handler
func NewBlocksHandler(coordinator *blocking.Coordinator, logger *slog.Logger) *BlocksHandler {
	return &BlocksHandler{
		coordinator: coordinator,
		logger:      logger,
	}
}

// blocklistResponse pairs the snapshot with the sync status so the UI
// can show an offline banner.
func (h *BlocksHandler) respond(c *gin.Context, status int, userID string, snapshot any) {
	var syncError *string
	if err := h.coordinator.LastError(userID); err != nil {
		msg := err.Error()
		syncError = &msg
	}
	c.JSON(status, gin.H{
		"blocklist":  snapshot,
		"sync_error": syncError,
	})
}

// GetBlocklist returns the user's blocklist
// GET /v1/dashboards/:userId/blocklist
func (h *BlocksHandler) GetBlocklist(c *gin.Context) {
	userID := c.Param("userId")
	snapshot, err := h.coordinator.Load(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load blocklist", "user_id", userID, "error", err)
		writeError(c, err)
		return
	}
	h.respond(c, http.StatusOK, userID, snapshot)
}

// AddAppRequest represents an app to block
type AddAppRequest struct {
	BundleIdentifier string `json:"bundle_identifier" binding:"required"`
	DisplayName      string `json:"display_name"`
}

// AddApp adds an application to the blocklist
// POST /v1/dashboards/:userId/blocklist/apps
func (h *BlocksHandler) AddApp(c *gin.Context) {
	var req AddAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "bundle_identifier is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	userID := c.Param("userId")
	snapshot, err := h.coordinator.AddApp(c.Request.Context(), userID, req.BundleIdentifier, req.DisplayName)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, userID, snapshot)
}

// RemoveApp removes an application from the blocklist
// DELETE /v1/dashboards/:userId/blocklist/apps/:appId
func (h *BlocksHandler) RemoveApp(c *gin.Context) {
	userID := c.Param("userId")
	snapshot, err := h.coordinator.RemoveApp(c.Request.Context(), userID, c.Param("appId"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, http.StatusOK, userID, snapshot)
}

// AddWebsiteRequest represents a website to block. The input is
// normalized server-side, so full URLs are accepted.
type AddWebsiteRequest struct {
	URL string `json:"url" binding:"required"`
}

// AddWebsite adds a website to the blocklist
// POST /v1/dashboards/:userId/blocklist/websites
func (h *BlocksHandler) AddWebsite(c *gin.Context) {
	var req AddWebsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "url is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	userID := c.Param("userId")
	snapshot, err := h.coordinator.AddWebsite(c.Request.Context(), userID, req.URL)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, userID, snapshot)
}

// RemoveWebsite removes a website from the blocklist
// DELETE /v1/dashboards/:userId/blocklist/websites/:websiteId
func (h *BlocksHandler) RemoveWebsite(c *gin.Context) {
	userID := c.Param("userId")
	snapshot, err := h.coordinator.RemoveWebsite(c.Request.Context(), userID, c.Param("websiteId"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, http.StatusOK, userID, snapshot)
}
