package handlers

import (
	"encoding/csv"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kyle-1207/components-plat-sub002/internal/logger"
	"github.com/kyle-1207/components-plat-sub002/internal/repos"
	"github.com/kyle-1207/components-plat-sub002/internal/services"
	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

type TraceabilityHandler struct {
	log                 *logger.Logger
	traceabilityService services.TraceabilityService
}

func NewTraceabilityHandler(log *logger.Logger, traceabilityService services.TraceabilityService) *TraceabilityHandler {
	return &TraceabilityHandler{
		log:                 log.With("handler", "TraceabilityHandler"),
		traceabilityService: traceabilityService,
	}
}

func (h *TraceabilityHandler) Create(c *gin.Context) {
	var rec types.TraceabilityRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_traceability_record", err)
		return
	}
	created, err := h.traceabilityService.Create(c.Request.Context(), nil, &rec)
	if err != nil {
		if errors.Is(err, repos.ErrDuplicateID) {
			RespondError(c, http.StatusConflict, "duplicate_traceability_id", err)
			return
		}
		h.log.Error("Create traceability record failed", "error", err)
		RespondError(c, statusFor(err), "traceability_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"record": created})
}

func (h *TraceabilityHandler) Get(c *gin.Context) {
	rec, err := h.traceabilityService.Get(c.Request.Context(), nil, c.Param("traceabilityId"))
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			// "No traceability record yet" is a business state, not a fault.
			RespondOK(c, gin.H{"record": nil})
			return
		}
		h.log.Error("Get traceability record failed", "error", err)
		RespondError(c, statusFor(err), "traceability_load_failed", err)
		return
	}
	RespondOK(c, gin.H{"record": rec})
}

// Chain returns the assembled life-cycle chain plus the derived summary for
// timeline rendering and audit.
func (h *TraceabilityHandler) Chain(c *gin.Context) {
	stages, summary, err := h.traceabilityService.Chain(c.Request.Context(), nil, c.Param("traceabilityId"))
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			RespondOK(c, gin.H{"stages": []any{}, "summary": nil})
			return
		}
		h.log.Error("Build chain failed", "error", err)
		RespondError(c, statusFor(err), "traceability_chain_failed", err)
		return
	}
	RespondOK(c, gin.H{"stages": stages, "summary": summary})
}

func (h *TraceabilityHandler) ListByTarget(c *gin.Context) {
	targetValue := c.Query("targetValue")
	if targetValue == "" {
		RespondError(c, http.StatusBadRequest, "target_value_required", errors.New("targetValue query parameter required"))
		return
	}
	records, err := h.traceabilityService.ListByTarget(c.Request.Context(), nil, c.Query("targetType"), targetValue)
	if err != nil {
		h.log.Error("List traceability records failed", "error", err)
		RespondError(c, statusFor(err), "traceability_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"records": records})
}

func (h *TraceabilityHandler) ExportChainCSV(c *gin.Context) {
	stages, _, err := h.traceabilityService.Chain(c.Request.Context(), nil, c.Param("traceabilityId"))
	if err != nil && !errors.Is(err, repos.ErrNotFound) {
		h.log.Error("Export chain failed", "error", err)
		RespondError(c, statusFor(err), "traceability_export_failed", err)
		return
	}

	header, rows := services.ChainExportRows(stages)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="traceability_chain.csv"`)
	w := csv.NewWriter(c.Writer)
	_ = w.Write(header)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
}
