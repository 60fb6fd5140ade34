package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jpatelved/tradeboard/internal/auth"
	"github.com/jpatelved/tradeboard/internal/db"
	"github.com/jpatelved/tradeboard/internal/models"
	"go.uber.org/zap"
)

const (
	defaultInsightLimit = 10
	maxInsightLimit     = 100
)

// InsightHandler serves the trade insight ingest and feed endpoints
type InsightHandler struct {
	Auth *auth.Client
	Log  *zap.SugaredLogger

	// IngestKey guards the write endpoint. Empty means open: the
	// endpoint trusts its private automation caller, matching the
	// original deployment.
	IngestKey string
}

// NewInsightHandler creates an insight handler
func NewInsightHandler(authClient *auth.Client, ingestKey string, log *zap.SugaredLogger) *InsightHandler {
	return &InsightHandler{
		Auth:      authClient,
		IngestKey: ingestKey,
		Log:       log,
	}
}

// CreateInsight handles POST /api/trade-insights
func (h *InsightHandler) CreateInsight(c *gin.Context) {
	if h.IngestKey != "" && c.GetHeader("X-Ingest-Key") != h.IngestKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid ingest key"})
		return
	}

	var req models.InsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Metadata == nil {
		req.Metadata = models.Metadata{}
	}
	metadataJSON, err := json.Marshal(req.Metadata)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid metadata"})
		return
	}

	// Pre-rendered HTML fragments skip field validation entirely
	if req.HTMLContent != "" {
		insight := models.TradeInsight{
			HTMLContent: req.HTMLContent,
			Metadata:    req.Metadata,
		}
		err := db.DB.QueryRowContext(c.Request.Context(), `
            INSERT INTO trade_insights (html_content, metadata)
            VALUES ($1, $2)
            RETURNING id, created_at
        `, req.HTMLContent, metadataJSON).Scan(&insight.ID, &insight.CreatedAt)

		if err != nil {
			h.Log.Errorf("Insight insert failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to store trade insight",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": insight})
		return
	}

	if req.Symbol == "" || req.Action == "" || req.Price == nil || req.Reasoning == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields: either html_content OR (symbol, action, price, reasoning)",
		})
		return
	}

	if !models.ValidActions[req.Action] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action. Must be: buy, sell, or hold"})
		return
	}

	price := float64(*req.Price)
	if price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a positive number"})
		return
	}

	confidence := req.Confidence
	if confidence == "" {
		confidence = "medium"
	}

	insight := models.TradeInsight{
		Symbol:     strings.ToUpper(req.Symbol),
		Action:     req.Action,
		Price:      price,
		Reasoning:  req.Reasoning,
		Confidence: confidence,
		Metadata:   req.Metadata,
	}
	err = db.DB.QueryRowContext(c.Request.Context(), `
        INSERT INTO trade_insights (symbol, action, price, reasoning, confidence, metadata)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `, insight.Symbol, insight.Action, insight.Price, insight.Reasoning,
		insight.Confidence, metadataJSON).Scan(&insight.ID, &insight.CreatedAt)

	if err != nil {
		h.Log.Errorf("Insight insert failed for %s: %v", insight.Symbol, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to store trade insight",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": insight})
}

// GetInsights handles GET /api/trade-insights
func (h *InsightHandler) GetInsights(c *gin.Context) {
	if _, err := h.Auth.Authorize(c.Request.Context(), c.GetHeader("Authorization")); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	limit := defaultInsightLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	// Clamp so a caller can't request an unbounded result set
	if limit < 1 {
		limit = 1
	}
	if limit > maxInsightLimit {
		limit = maxInsightLimit
	}

	rows, err := db.DB.QueryContext(c.Request.Context(), `
        SELECT id, symbol, action, price, reasoning, confidence, html_content, metadata, created_at
        FROM trade_insights
        ORDER BY created_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch trade insights",
			"details": err.Error(),
		})
		return
	}
	defer rows.Close()

	insights := make([]models.TradeInsight, 0)
	for rows.Next() {
		var in models.TradeInsight
		var symbol, action, reasoning, confidence, htmlContent sql.NullString
		var price sql.NullFloat64
		var metadata []byte
		if err := rows.Scan(&in.ID, &symbol, &action, &price, &reasoning,
			&confidence, &htmlContent, &metadata, &in.CreatedAt); err != nil {
			continue
		}
		in.Symbol = symbol.String
		in.Action = action.String
		in.Price = price.Float64
		in.Reasoning = reasoning.String
		in.Confidence = confidence.String
		in.HTMLContent = htmlContent.String
		in.Metadata = models.Metadata{}
		_ = json.Unmarshal(metadata, &in.Metadata)
		insights = append(insights, in)
	}

	c.JSON(http.StatusOK, gin.H{"insights": insights})
}
