package handlers

import (
	"encoding/csv"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kyle-1207/components-plat-sub002/internal/catalog"
	"github.com/kyle-1207/components-plat-sub002/internal/logger"
	"github.com/kyle-1207/components-plat-sub002/internal/repos"
	"github.com/kyle-1207/components-plat-sub002/internal/services"
	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

type ComponentHandler struct {
	log              *logger.Logger
	componentService services.ComponentService
	defaultPageSize  int
	maxPageSize      int
}

func NewComponentHandler(log *logger.Logger, componentService services.ComponentService, defaultPageSize, maxPageSize int) *ComponentHandler {
	return &ComponentHandler{
		log:              log.With("handler", "ComponentHandler"),
		componentService: componentService,
		defaultPageSize:  defaultPageSize,
		maxPageSize:      maxPageSize,
	}
}

// List serves the category pages: filter + sort + paginate + facets. Bad
// paging or filter input degrades to defaults instead of failing, so stale
// bookmarked query strings keep working.
func (h *ComponentHandler) List(c *gin.Context) {
	q := c.Request.URL.Query()
	cr := catalog.ParseCriteria(q)
	page := catalog.ParsePage(q.Get("page"))
	pageSize := catalog.ParsePageSize(q.Get("limit"), h.defaultPageSize, h.maxPageSize)
	sort := catalog.ParseSort(q.Get("sortBy"), q.Get("sortOrder"))

	result, err := h.componentService.Search(c.Request.Context(), nil, cr, page, pageSize, sort)
	if err != nil {
		h.log.Error("List components failed", "error", err)
		RespondError(c, statusFor(err), "component_search_failed", err)
		return
	}
	RespondOK(c, result)
}

func (h *ComponentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_component_id", err)
		return
	}
	component, err := h.componentService.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "component_not_found", err)
			return
		}
		h.log.Error("Get component failed", "component_id", id, "error", err)
		RespondError(c, statusFor(err), "component_load_failed", err)
		return
	}
	RespondOK(c, gin.H{"component": component})
}

// Meta serves distinct field values for filter dropdowns.
func (h *ComponentHandler) Meta(c *gin.Context) {
	field := c.DefaultQuery("field", "manufacturer")
	values, err := h.componentService.DistinctValues(c.Request.Context(), nil, field)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "meta_field_failed", err)
		return
	}
	RespondOK(c, gin.H{"field": field, "values": values})
}

// ExportCSV streams the filtered (unpaginated) result set as CSV with the
// stable column order and "--" placeholders the report tooling expects.
func (h *ComponentHandler) ExportCSV(c *gin.Context) {
	q := c.Request.URL.Query()
	cr := catalog.ParseCriteria(q)
	sort := catalog.ParseSort(q.Get("sortBy"), q.Get("sortOrder"))

	// Export ignores pagination: walk every page of the filtered set so the
	// CSV never drops rows past the page-size clamp.
	var items []types.Component
	for page := 1; ; page++ {
		result, err := h.componentService.Search(c.Request.Context(), nil, cr, page, h.maxPageSize, sort)
		if err != nil {
			h.log.Error("Export components failed", "error", err)
			RespondError(c, statusFor(err), "component_export_failed", err)
			return
		}
		items = append(items, result.Items...)
		if len(result.Items) == 0 || len(items) >= result.Total {
			break
		}
	}

	header, rows := services.ComponentExportRows(items)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="components.csv"`)
	w := csv.NewWriter(c.Writer)
	_ = w.Write(header)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
}

func statusFor(err error) int {
	if errors.Is(err, repos.ErrStorageUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
