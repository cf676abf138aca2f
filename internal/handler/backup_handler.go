package handler

import (
	"fmt"
	"io"
	"net/http"

	"quotepanel/internal/service"
	"quotepanel/pkg/response"

	"github.com/gin-gonic/gin"
)

type BackupHandler struct {
	backupService service.BackupService
}

func NewBackupHandler(backupService service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

func (h *BackupHandler) RegisterRoutes(router *gin.RouterGroup) {
	backup := router.Group("/api/backup")
	{
		backup.GET("/export", h.ExportAll)
		backup.GET("/export/budgets", h.ExportBudgets)
		backup.GET("/export/clients", h.ExportClients)
		backup.GET("/export/products", h.ExportProducts)
		backup.POST("/import", h.Import)
	}
}

// Export endpoints serve the bare payload, not the API envelope, so the
// downloaded file round-trips through import unchanged.

// ExportAll downloads the full backup
// @Summary      Export everything
// @Description  Downloads clients, the whole catalog, user products and budgets in one envelope
// @Tags         backup
// @Produce      json
// @Success      200  {object}  service.Backup
// @Router       /api/backup/export [get]
func (h *BackupHandler) ExportAll(c *gin.Context) {
	payload, filename := h.backupService.ExportAll(c.Request.Context())
	writeDownload(c, payload, filename)
}

// ExportBudgets downloads the saved quotes only
// @Summary      Export budgets
// @Tags         backup
// @Produce      json
// @Success      200  {array}  model.Budget
// @Router       /api/backup/export/budgets [get]
func (h *BackupHandler) ExportBudgets(c *gin.Context) {
	payload, filename := h.backupService.ExportBudgets(c.Request.Context())
	writeDownload(c, payload, filename)
}

// ExportClients downloads the client list only
// @Summary      Export clients
// @Tags         backup
// @Produce      json
// @Success      200  {array}  model.Client
// @Router       /api/backup/export/clients [get]
func (h *BackupHandler) ExportClients(c *gin.Context) {
	payload, filename := h.backupService.ExportClients(c.Request.Context())
	writeDownload(c, payload, filename)
}

// ExportProducts downloads the full catalog view
// @Summary      Export products
// @Tags         backup
// @Produce      json
// @Success      200  {array}  model.Product
// @Router       /api/backup/export/products [get]
func (h *BackupHandler) ExportProducts(c *gin.Context) {
	payload, filename := h.backupService.ExportProducts(c.Request.Context())
	writeDownload(c, payload, filename)
}

// Import restores a full backup file
// @Summary      Import backup
// @Description  Replaces clients, budgets and user products with the sections present in the file; requires confirm=true
// @Tags         backup
// @Accept       json
// @Produce      json
// @Param        confirm  query     bool            true  "Must be true to proceed"
// @Param        payload  body      service.Backup  true  "Backup file contents"
// @Success      200      {object}  response.Response{data=service.ImportSummary}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/backup/import [post]
func (h *BackupHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Could not read request body: "+err.Error()))
		return
	}
	sum, err := h.backupService.Import(c.Request.Context(), raw, confirmParam(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, sum))
}

func writeDownload(c *gin.Context, payload interface{}, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, payload)
}
