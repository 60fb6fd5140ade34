package handlers

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jpatelved/tradeboard/internal/auth"
	"github.com/jpatelved/tradeboard/internal/db"
	"github.com/jpatelved/tradeboard/internal/models"
	"github.com/jpatelved/tradeboard/internal/storage"
	"go.uber.org/zap"
)

// ChartHandler serves the chart upload and listing endpoints
type ChartHandler struct {
	Auth  *auth.Client
	Blobs storage.BlobStore
	Log   *zap.SugaredLogger
}

// NewChartHandler creates a chart handler
func NewChartHandler(authClient *auth.Client, blobs storage.BlobStore, log *zap.SugaredLogger) *ChartHandler {
	return &ChartHandler{
		Auth:  authClient,
		Blobs: blobs,
		Log:   log,
	}
}

// UploadChart handles POST /api/charts.
// Validation order matters: credential, then role, then input fields.
// Nothing is written until all three pass.
func (h *ChartHandler) UploadChart(c *gin.Context) {
	identity, err := h.Auth.Authorize(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if !identity.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can upload charts"})
		return
	}

	fileHeader, fileErr := c.FormFile("file")
	symbol := c.PostForm("symbol")
	if fileErr != nil || symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	notes := c.PostForm("notes")

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	symbol = strings.ToUpper(symbol)
	key := fmt.Sprintf("charts/%d-%s%s",
		time.Now().UnixMilli(), symbol, filepath.Ext(fileHeader.Filename))

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.Blobs.Put(c.Request.Context(), key, data, contentType); err != nil {
		h.Log.Errorf("Blob write failed for %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	imageURL := h.Blobs.PublicURL(key)

	// The asset is written before the row is inserted. If the insert
	// fails the blob stays orphaned; no rollback is attempted.
	var notesVal sql.NullString
	if notes != "" {
		notesVal = sql.NullString{String: notes, Valid: true}
	}

	chart := models.Chart{
		Symbol:     symbol,
		ImageURL:   imageURL,
		Notes:      notes,
		UploadedBy: identity.UserID,
	}
	err = db.DB.QueryRowContext(c.Request.Context(), `
        INSERT INTO charts (symbol, image_url, notes, uploaded_by)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `, symbol, imageURL, notesVal, identity.UserID).Scan(&chart.ID, &chart.CreatedAt)

	if err != nil {
		h.Log.Errorf("Chart insert failed for %s: %v", symbol, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"chart":   chart,
	})
}

// GetCharts handles GET /api/charts
func (h *ChartHandler) GetCharts(c *gin.Context) {
	if _, err := h.Auth.Authorize(c.Request.Context(), c.GetHeader("Authorization")); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	rows, err := db.DB.QueryContext(c.Request.Context(), `
        SELECT id, symbol, image_url, notes, uploaded_by, created_at
        FROM charts
        ORDER BY created_at DESC
    `)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch charts"})
		return
	}
	defer rows.Close()

	charts := make([]models.Chart, 0)
	for rows.Next() {
		var chart models.Chart
		var notes sql.NullString
		if err := rows.Scan(&chart.ID, &chart.Symbol, &chart.ImageURL,
			&notes, &chart.UploadedBy, &chart.CreatedAt); err != nil {
			continue
		}
		chart.Notes = notes.String
		charts = append(charts, chart)
	}

	c.JSON(http.StatusOK, gin.H{"charts": charts})
}
