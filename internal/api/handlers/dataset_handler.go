// internal/api/handlers/dataset_handler.go
package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/talvik-analytics/shipkpi/internal/service"
)

type DatasetHandler struct {
	datasets     *service.DatasetService
	calculations *service.CalculationService
	uploadDir    string
}

func NewDatasetHandler(datasets *service.DatasetService, calculations *service.CalculationService, uploadDir string) *DatasetHandler {
	return &DatasetHandler{
		datasets:     datasets,
		calculations: calculations,
		uploadDir:    uploadDir,
	}
}

// Upload accepts one XLSX workbook and registers it for analysis.
func (h *DatasetHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	if !strings.EqualFold(filepath.Ext(file.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .xlsx files are supported"})
		return
	}

	filePath := filepath.Join(h.uploadDir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, filePath); err != nil {
		log.Error().Err(err).Str("filename", file.Filename).Msg("failed to save uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file"})
		return
	}

	dataset, err := h.datasets.Register(c.Request.Context(), file.Filename, filePath, file.Size)
	if err != nil {
		log.Error().Err(err).Str("filename", file.Filename).Msg("failed to register dataset")
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read workbook"})
		return
	}

	c.JSON(http.StatusCreated, dataset)
}

// List returns all registered datasets.
func (h *DatasetHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.datasets.List())
}

// Preview returns a sheet sample with header detection and a suggested
// field mapping.
func (h *DatasetHandler) Preview(c *gin.Context) {
	preview, err := h.datasets.Preview(c.Param("id"), c.Param("sheet"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, preview)
}

// Calculate runs the metrics pipeline over one dataset sheet.
func (h *DatasetHandler) Calculate(c *gin.Context) {
	var req service.CalculationRequest
	req.HeaderRow = -1 // detect unless the client pins a row
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calculation request"})
		return
	}

	result, err := h.calculations.Calculate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Runs returns the persisted calculation run history.
func (h *DatasetHandler) Runs(c *gin.Context) {
	limit := parsePositiveIntWithDefault(c.Query("limit"), 50)

	runs, err := h.calculations.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch runs"})
		return
	}
	c.JSON(http.StatusOK, runs)
}

func parsePositiveIntWithDefault(value string, fallback int) int {
	if fallback <= 0 {
		fallback = 50
	}
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v > 0 {
		return v
	}
	return fallback
}
