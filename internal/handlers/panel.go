package handlers

import (
	"errors"
	"net/http"

	"heating_panel/internal/models"
	"heating_panel/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK         = "ok"
	statusDispatched = "dispatched"
	statusSuppressed = "suppressed"

	errDispatch        = "failed to reach device; state will refresh on the next poll"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for a toggle flip. State is a pointer so an explicit false binds.
type toggleRequest struct {
	State *bool `json:"state" binding:"required"`
}

// ToggleRequest is an exported model for Swagger docs of the toggle payload.
type ToggleRequest struct {
	// Desired state of the subsystem
	State bool `json:"state" example:"true"`
}

// Request DTO for a timed on.
type onForRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

// OnForRequest is an exported model for Swagger docs of the on-for payload.
type OnForRequest struct {
	// Minutes to stay on before the device switches off
	Minutes int `json:"minutes" example:"90"`
}

type testingRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Current view
// @Description  Toggle states, off-time labels and tank gradient, as last polled
// @Tags         panel
// @Produce      json
// @Success      200  {object}  models.View
// @Router       /api/v1/view [get]
func (h *Handler) getView(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.View())
}

// @Summary      Toggle subsystem
// @Description  Sends exactly one on/off command without a duration
// @Tags         panel
// @Accept       json
// @Produce      json
// @Param        subsystem  path  string         true  "power, ch or hw"
// @Param        body       body  ToggleRequest  true  "Desired state"
// @Success      202  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/subsystems/{subsystem}/toggle [post]
func (h *Handler) toggleSubsystem(c *gin.Context) {
	sub, ok := h.subsystemParam(c)
	if !ok {
		return
	}
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.dispatch(c, models.ToggleSubsystem{Subsystem: sub, On: *req.State})
}

// @Summary      Turn subsystem on for a duration
// @Description  ch and hw only; the device reports the scheduled off time on the next poll
// @Tags         panel
// @Accept       json
// @Produce      json
// @Param        subsystem  path  string        true  "ch or hw"
// @Param        body       body  OnForRequest  true  "Duration"
// @Success      202  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/subsystems/{subsystem}/on-for [post]
func (h *Handler) setSubsystemOnFor(c *gin.Context) {
	sub, ok := h.subsystemParam(c)
	if !ok {
		return
	}
	var req onForRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.dispatch(c, models.SetSubsystemOnFor{Subsystem: sub, Minutes: req.Minutes})
}

// @Summary      Testing mode
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/v1/testing [get]
func (h *Handler) getTesting(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"enabled": h.services.Modes.Testing()})
}

// @Summary      Set testing mode
// @Description  While enabled every command is suppressed; polling continues
// @Tags         system
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/testing [put]
func (h *Handler) setTesting(c *gin.Context) {
	var req testingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.services.Modes.SetTesting(*req.Enabled)
	h.hub.StateChanged()
	c.JSON(http.StatusOK, gin.H{"enabled": *req.Enabled})
}

func (h *Handler) subsystemParam(c *gin.Context) (models.Subsystem, bool) {
	sub, err := models.ParseSubsystem(c.Param("subsystem"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return sub, true
}

// dispatch hands the intent to the dispatcher. The view is not touched:
// it changes only once a poll confirms the new state.
func (h *Handler) dispatch(c *gin.Context, intent models.Intent) {
	res, err := h.services.Commands.Handle(c.Request.Context(), intent)
	if err != nil {
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusBadGateway, errDispatch, "dispatch_failed", err, "path", res.Path)
		return
	}
	c.JSON(http.StatusAccepted, dispatchResponse(res))
}

func dispatchResponse(res service.DispatchResult) gin.H {
	status := statusDispatched
	if res.Suppressed {
		status = statusSuppressed
	}
	resp := gin.H{"status": status, "path": res.Path}
	if res.RequestID != "" {
		resp["request_id"] = res.RequestID
	}
	return resp
}

func isValidationErr(err error) bool {
	return errors.Is(err, models.ErrUnknownSubsystem) ||
		errors.Is(err, models.ErrInvalidDuration) ||
		errors.Is(err, models.ErrDurationUnsupported)
}
