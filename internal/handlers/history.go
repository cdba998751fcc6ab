package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const errDispatchNotFound = "dispatch not found"

// @Summary      Recent dispatches
// @Description  Newest first; suppressed and failed attempts are included
// @Tags         panel
// @Produce      json
// @Param        limit  query  int  false  "max records (default 20)"
// @Success      200  {array}   models.DispatchRecord
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/dispatches [get]
func (h *Handler) listDispatches(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = v
	}
	c.JSON(http.StatusOK, h.services.History.Recent(limit))
}

// @Summary      Dispatch by id
// @Tags         panel
// @Produce      json
// @Param        id  path  string  true  "request id"
// @Success      200  {object}  models.DispatchRecord
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/dispatches/{id} [get]
func (h *Handler) getDispatch(c *gin.Context) {
	rec, ok := h.services.History.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errDispatchNotFound})
		return
	}
	c.JSON(http.StatusOK, rec)
}
