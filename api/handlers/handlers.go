package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tickertag/dto"
	"tickertag/services"
)

// GetCurrentViewHandler godoc
// @Summary      Current classification for an event
// @Description  Latest override merged over the latest run; state "filtered" when neither exists
// @Tags         classifications
// @Param        id   path   string  true  "Event ID"
// @Produce      json
// @Success      200  {object}  dto.ViewDTO
// @Router       /events/{id}/classification [get]
func GetCurrentViewHandler(svc *services.ClassificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.GetCurrentView(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// ListAssetViewsHandler godoc
// @Summary      Current classifications for an asset
// @Description  Resolved views for the asset's events, newest first
// @Tags         classifications
// @Param        id     path   string  true   "Asset ID"
// @Param        limit  query  int     false  "Max events (default 50)"
// @Produce      json
// @Success      200  {array}  dto.ViewDTO
// @Router       /assets/{id}/classifications [get]
func ListAssetViewsHandler(svc *services.ClassificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		views, err := svc.ListViewsByAsset(c.Request.Context(), c.Param("id"), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

// ListRunsHandler godoc
// @Summary      Run audit trail for an event
// @Description  Full append-only classification history, newest first
// @Tags         runs
// @Param        id   path   string  true  "Event ID"
// @Produce      json
// @Success      200  {array}  dto.RunDTO
// @Router       /events/{id}/runs [get]
func ListRunsHandler(svc *services.ClassificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		runs, err := svc.ListRuns(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, runs)
	}
}

// AppendOverrideHandler godoc
// @Summary      Append a human correction
// @Description  Appends an override for the event; the latest override wins in the current view
// @Tags         overrides
// @Param        id       path  string               true  "Event ID"
// @Param        request  body  dto.OverrideRequest  true  "Correction"
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.OverrideDTO
// @Router       /events/{id}/overrides [post]
func AppendOverrideHandler(svc *services.OverrideService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.OverrideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ov, err := svc.Append(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"id":         ov.ID.Hex(),
			"event_id":   ov.EventID,
			"created_at": ov.CreatedAt,
		})
	}
}
