package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stockwise/backend/internal/service"
)

type PricingHandler struct {
	service *service.PricingService
}

func NewPricingHandler(svc *service.PricingService) *PricingHandler {
	return &PricingHandler{service: svc}
}

func (h *PricingHandler) GetAnalysis(c *gin.Context) {
	workspaceID := strings.TrimSpace(c.Query("workspace_id"))
	if workspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workspace_id is required"})
		return
	}

	analyses := h.service.GetPriceAnalysis(c.Request.Context(), workspaceID, parseIDList(c.Query("product_ids")))

	c.JSON(http.StatusOK, gin.H{
		"analyses": analyses,
		"total":    len(analyses),
	})
}

func (h *PricingHandler) GetMargins(c *gin.Context) {
	workspaceID := strings.TrimSpace(c.Query("workspace_id"))
	if workspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workspace_id is required"})
		return
	}

	margins := h.service.GetProductMargins(c.Request.Context(), workspaceID, strings.ToLower(strings.TrimSpace(c.Query("sort_by"))))

	c.JSON(http.StatusOK, gin.H{
		"margins": margins,
		"total":   len(margins),
	})
}

func (h *PricingHandler) GetMarginSummary(c *gin.Context) {
	workspaceID := strings.TrimSpace(c.Query("workspace_id"))
	if workspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workspace_id is required"})
		return
	}

	c.JSON(http.StatusOK, h.service.GetMarginAnalysis(c.Request.Context(), workspaceID))
}

func (h *PricingHandler) GetSuggestions(c *gin.Context) {
	workspaceID := strings.TrimSpace(c.Query("workspace_id"))
	if workspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workspace_id is required"})
		return
	}

	suggestions := h.service.Suggest(c.Request.Context(), workspaceID)

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"total":       len(suggestions),
	})
}

type priceChangeRequest struct {
	WorkspaceID string   `json:"workspace_id" binding:"required"`
	ProductID   string   `json:"product_id" binding:"required"`
	Price       float64  `json:"price" binding:"required"`
	Cost        *float64 `json:"cost"`
	Currency    string   `json:"currency"`
}

func (h *PricingHandler) RecordPriceChange(c *gin.Context) {
	var req priceChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ok := h.service.RecordPriceChange(c.Request.Context(), req.WorkspaceID, req.ProductID, req.Price, service.PriceChangeOptions{
		Cost:     req.Cost,
		Currency: req.Currency,
	})

	c.JSON(http.StatusOK, gin.H{"success": ok})
}
