package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stockwise/backend/internal/forecast"
	"github.com/stockwise/backend/internal/service"
)

const defaultForecastDays = 30

type InventoryHandler struct {
	service *service.ForecastService
	exports *service.ExportService
}

func NewInventoryHandler(svc *service.ForecastService, exports *service.ExportService) *InventoryHandler {
	return &InventoryHandler{service: svc, exports: exports}
}

func (h *InventoryHandler) GetForecast(c *gin.Context) {
	workspaceID := strings.TrimSpace(c.Query("workspace_id"))
	if workspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workspace_id is required"})
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(defaultForecastDays)))
	if days <= 0 {
		days = defaultForecastDays
	}

	forecasts := h.service.Forecast(c.Request.Context(), workspaceID, days, parseIDList(c.Query("product_ids")))

	c.JSON(http.StatusOK, gin.H{
		"forecasts": forecasts,
		"total":     len(forecasts),
	})
}

func (h *InventoryHandler) GetReorders(c *gin.Context) {
	workspaceID := strings.TrimSpace(c.Query("workspace_id"))
	if workspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workspace_id is required"})
		return
	}

	recommendations := h.service.Recommend(c.Request.Context(), workspaceID)

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recommendations,
		"total":           len(recommendations),
	})
}

// GetPlanning evaluates the standalone EOQ and safety stock formulas for
// caller-supplied inputs.
func (h *InventoryHandler) GetPlanning(c *gin.Context) {
	annualDemand := parseQueryFloat(c, "annual_demand")
	orderingCost := parseQueryFloat(c, "ordering_cost")
	holdingCost := parseQueryFloat(c, "holding_cost")
	avgDailySales := parseQueryFloat(c, "avg_daily_sales")
	leadTimeDays := parseQueryFloat(c, "lead_time_days")
	serviceLevel := parseQueryFloat(c, "service_level")

	c.JSON(http.StatusOK, gin.H{
		"eoq":          forecast.CalculateEOQ(annualDemand, orderingCost, holdingCost),
		"safety_stock": forecast.CalculateSafetyStock(avgDailySales, leadTimeDays, serviceLevel),
	})
}

func (h *InventoryHandler) ExportForecast(c *gin.Context) {
	workspaceID := strings.TrimSpace(c.Query("workspace_id"))
	if workspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workspace_id is required"})
		return
	}
	if h.exports == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export storage is not configured"})
		return
	}

	key, err := h.exports.ExportSnapshot(c.Request.Context(), workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export snapshot", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key})
}

func parseIDList(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func parseQueryFloat(c *gin.Context, param string) float64 {
	value := strings.TrimSpace(c.Query(param))
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
