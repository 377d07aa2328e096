package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/core/engine"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
	"github.com/SscSPs/voucher_engine/internal/dto"
	"github.com/SscSPs/voucher_engine/internal/middleware"
)

// voucherHandler handles HTTP requests related to vouchers.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

// newVoucherHandler creates a new voucherHandler.
func newVoucherHandler(vs portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{voucherService: vs}
}

// registerVoucherRoutes registers routes related to vouchers.
func registerVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) *gin.RouterGroup {
	h := newVoucherHandler(voucherService)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("/draft", h.newDraft)
		vouchers.POST("/draft/edits", h.applyEdits)
		vouchers.POST("/draft/autobalance", h.autoBalance)
		vouchers.POST("", h.saveVoucher)
		vouchers.GET("/:voucherID", h.getVoucher)
		vouchers.POST("/:voucherID/review", h.reviewVoucher)
		vouchers.POST("/:voucherID/finalize", h.finalizeVoucher)
		vouchers.POST("/:voucherID/revert", h.revertVoucher)
		vouchers.POST("/:voucherID/copy", h.copyVoucher)
	}
	return vouchers
}

// newDraft godoc
// @Summary Start a new voucher
// @Description Opens a draft with one blank line dated today and previews its numbers
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   draft body dto.NewDraftRequest true "Ledger and branch"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Missing voucher.write permission"
// @Failure 404 {object} dto.ErrorResponse "Ledger not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to start voucher"
// @Security BearerAuth
// @Router /vouchers/draft [post]
func (h *voucherHandler) newDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.NewDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for NewDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	view, err := h.voucherService.NewDraft(c.Request.Context(), actor, req.LedgerID, req.BranchID)
	if err != nil {
		respondError(c, err, "start voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(view))
}

// applyEdits godoc
// @Summary Replay edits on a draft
// @Description Applies the edits in order and returns the draft with totals and current violations
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   edits body dto.ApplyEditsRequest true "Draft and edits"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid edit"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Missing voucher.write permission"
// @Failure 500 {object} dto.ErrorResponse "Failed to apply edits"
// @Security BearerAuth
// @Router /vouchers/draft/edits [post]
func (h *voucherHandler) applyEdits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApplyEditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyEdits", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	view, err := h.voucherService.ApplyEdits(c.Request.Context(), actor, req.Voucher, req.ToEdits())
	if err != nil {
		respondError(c, err, "apply edits")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(view))
}

// autoBalance godoc
// @Summary Balance a draft
// @Description Adds or adjusts the row that makes total debit equal total credit
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   draft body dto.AutoBalanceRequest true "Draft"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} dto.ErrorResponse "Voucher cannot be edited"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to balance voucher"
// @Security BearerAuth
// @Router /vouchers/draft/autobalance [post]
func (h *voucherHandler) autoBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AutoBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AutoBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	view, err := h.voucherService.ApplyEdits(c.Request.Context(), actor, req.Voucher, []engine.Edit{{Op: engine.OpAutoBalance}})
	if err != nil {
		respondError(c, err, "balance voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(view))
}

// saveVoucher godoc
// @Summary Save a voucher
// @Description Validates the voucher and persists header and lines with the requested status in one transaction
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucher body dto.SaveVoucherRequest true "Voucher and target status"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} dto.ErrorResponse "Rule violation, with row and reason when known"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Missing voucher.write permission"
// @Failure 404 {object} dto.ErrorResponse "Referenced entity not found"
// @Failure 409 {object} dto.ErrorResponse "Sequence number taken concurrently"
// @Failure 500 {object} dto.ErrorResponse "Failed to save voucher"
// @Security BearerAuth
// @Router /vouchers [post]
func (h *voucherHandler) saveVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	saved, err := h.voucherService.Save(c.Request.Context(), actor, req.Voucher, domain.VoucherStatus(req.Status))
	if err != nil {
		respondError(c, err, "save voucher")
		return
	}
	logger.Info("Voucher saved",
		slog.String("voucher_id", saved.VoucherID),
		slog.String("voucher_number", saved.VoucherNumber),
		slog.String("status", string(saved.Status)))
	c.JSON(http.StatusOK, dto.ToVoucherResponse(saved))
}

// getVoucher godoc
// @Summary Get a voucher
// @Description Retrieves a saved voucher with its lines, totals and current violations
// @Tags vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} dto.DraftResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Voucher not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve voucher"
// @Security BearerAuth
// @Router /vouchers/{voucherID} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	voucherID := c.Param("voucherID")

	view, err := h.voucherService.Get(c.Request.Context(), voucherID)
	if err != nil {
		respondError(c, err, "retrieve voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(view))
}

type transitionFunc func(c *gin.Context, actor domain.Actor, voucherID string) (*domain.Voucher, error)

func (h *voucherHandler) transition(c *gin.Context, action string, fn transitionFunc) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	voucherID := c.Param("voucherID")

	v, err := fn(c, actor, voucherID)
	if err != nil {
		respondError(c, err, action)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Voucher status changed",
		slog.String("voucher_id", voucherID),
		slog.String("status", string(v.Status)))
	c.JSON(http.StatusOK, dto.ToVoucherResponse(v))
}

// reviewVoucher godoc
// @Summary Review a voucher
// @Description Moves a temporary voucher to reviewed and stamps the reviewer
// @Tags vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} dto.ErrorResponse "Transition not allowed"
// @Failure 403 {object} dto.ErrorResponse "Missing voucher.review permission"
// @Failure 404 {object} dto.ErrorResponse "Voucher not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to review voucher"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/review [post]
func (h *voucherHandler) reviewVoucher(c *gin.Context) {
	h.transition(c, "review voucher", func(c *gin.Context, actor domain.Actor, id string) (*domain.Voucher, error) {
		return h.voucherService.Review(c.Request.Context(), actor, id)
	})
}

// finalizeVoucher godoc
// @Summary Finalize a voucher
// @Description Moves a reviewed voucher to final and stamps the approver
// @Tags vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} dto.ErrorResponse "Transition not allowed"
// @Failure 403 {object} dto.ErrorResponse "Missing voucher.finalize permission"
// @Failure 404 {object} dto.ErrorResponse "Voucher not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to finalize voucher"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/finalize [post]
func (h *voucherHandler) finalizeVoucher(c *gin.Context) {
	h.transition(c, "finalize voucher", func(c *gin.Context, actor domain.Actor, id string) (*domain.Voucher, error) {
		return h.voucherService.Finalize(c.Request.Context(), actor, id)
	})
}

// revertVoucher godoc
// @Summary Revert a reviewed voucher
// @Description Moves a reviewed voucher back to temporary so it can be edited again
// @Tags vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} dto.ErrorResponse "Transition not allowed"
// @Failure 403 {object} dto.ErrorResponse "Missing voucher.revert permission"
// @Failure 404 {object} dto.ErrorResponse "Voucher not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to revert voucher"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/revert [post]
func (h *voucherHandler) revertVoucher(c *gin.Context) {
	h.transition(c, "revert voucher", func(c *gin.Context, actor domain.Actor, id string) (*domain.Voucher, error) {
		return h.voucherService.RevertToTemporary(c.Request.Context(), actor, id)
	})
}

// copyVoucher godoc
// @Summary Copy a voucher
// @Description Starts a new draft seeded with the lines of an existing voucher
// @Tags vouchers
// @Produce  json
// @Param   voucherID path string true "Source voucher ID"
// @Success 200 {object} dto.DraftResponse
// @Failure 403 {object} dto.ErrorResponse "Missing voucher.write permission"
// @Failure 404 {object} dto.ErrorResponse "Voucher not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to copy voucher"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/copy [post]
func (h *voucherHandler) copyVoucher(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	view, err := h.voucherService.Copy(c.Request.Context(), actor, c.Param("voucherID"))
	if err != nil {
		respondError(c, err, "copy voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(view))
}
