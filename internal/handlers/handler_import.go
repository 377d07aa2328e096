package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
	"github.com/SscSPs/voucher_engine/internal/dto"
	"github.com/SscSPs/voucher_engine/internal/jobs"
	"github.com/SscSPs/voucher_engine/internal/middleware"
	"github.com/SscSPs/voucher_engine/internal/utils/csvimport"
)

// maxImportSize bounds the accepted CSV body.
const maxImportSize = 10 << 20

// ImportEnqueuer hands an import to the background worker.
type ImportEnqueuer interface {
	EnqueueImport(ctx context.Context, payload jobs.ImportPayload) (string, error)
}

// importHandler handles bulk voucher imports.
type importHandler struct {
	importService portssvc.ImportSvc
	queue         ImportEnqueuer
}

// registerImportRoutes registers the import route on the vouchers group. A nil
// queue runs imports inside the request.
func registerImportRoutes(vouchers *gin.RouterGroup, importService portssvc.ImportSvc, queue ImportEnqueuer) {
	h := &importHandler{importService: importService, queue: queue}
	vouchers.POST("/import", h.importVouchers)
}

func readImportBody(c *gin.Context) (io.ReadCloser, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		return fh.Open()
	}
	return c.Request.Body, nil
}

// importVouchers godoc
// @Summary Import vouchers from CSV
// @Description Groups rows by group_id and saves one voucher per group with the same rules as a manual save. Failing groups are reported without stopping the others.
// @Tags vouchers
// @Accept  text/csv
// @Accept  multipart/form-data
// @Produce  json
// @Param   status query string false "Target status" Enums(draft, temporary) default(temporary)
// @Param   file formData file false "CSV file when sent as multipart"
// @Success 200 {object} dto.ImportResponse "Imported synchronously"
// @Success 202 {object} dto.ImportResponse "Queued for the background worker"
// @Failure 400 {object} dto.ErrorResponse "Malformed file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Missing voucher.write permission"
// @Failure 500 {object} dto.ErrorResponse "Failed to import vouchers"
// @Security BearerAuth
// @Router /vouchers/import [post]
func (h *importHandler) importVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	target := domain.VoucherStatus(c.DefaultQuery("status", string(domain.StatusTemporary)))
	if !target.Saveable() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "status must be draft or temporary"})
		return
	}

	body, err := readImportBody(c)
	if err != nil {
		logger.Warn("Failed to read import body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid import file: " + err.Error()})
		return
	}
	defer body.Close()

	rows, err := csvimport.Parse(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: "Import file too large"})
			return
		}
		respondError(c, err, "parse import file")
		return
	}

	if h.queue != nil {
		taskID, err := h.queue.EnqueueImport(c.Request.Context(), jobs.ImportPayload{Actor: actor, Rows: rows, Target: target})
		if err != nil {
			respondError(c, err, "queue import")
			return
		}
		logger.Info("Import queued", slog.String("task_id", taskID), slog.Int("rows", len(rows)))
		c.JSON(http.StatusAccepted, dto.ImportResponse{Queued: true, TaskID: taskID})
		return
	}

	results, err := h.importService.Import(c.Request.Context(), actor, rows, target)
	if err != nil {
		respondError(c, err, "import vouchers")
		return
	}
	resp := dto.ToImportResponse(results)
	logger.Info("Import finished", slog.Int("saved", resp.Saved), slog.Int("failed", resp.Failed))
	c.JSON(http.StatusOK, resp)
}
