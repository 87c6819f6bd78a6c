package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"centavo/internal/services"
)

// ExportHandler serves the export/backup collaborators.
type ExportHandler struct {
	exportService services.ExportServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService services.ExportServicer) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportCSV streams all transactions as a CSV download.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "transactions_"+time.Now().Format("20060102")+".csv"))

	if err := h.exportService.ExportTransactionsCSV(c.Writer); err != nil {
		respondWithError(c, err)
		return
	}
}

// Backup copies the raw store file into the backup directory.
func (h *ExportHandler) Backup(c *gin.Context) {
	path, err := h.exportService.BackupStore()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"backup_path": path})
}
