package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kyle-1207/components-plat-sub002/internal/catalog"
	"github.com/kyle-1207/components-plat-sub002/internal/logger"
	"github.com/kyle-1207/components-plat-sub002/internal/services"
)

// SearchHandler is the consolidated global search surface shared by every
// category page.
type SearchHandler struct {
	log              *logger.Logger
	componentService services.ComponentService
	defaultPageSize  int
	maxPageSize      int
}

func NewSearchHandler(log *logger.Logger, componentService services.ComponentService, defaultPageSize, maxPageSize int) *SearchHandler {
	return &SearchHandler{
		log:              log.With("handler", "SearchHandler"),
		componentService: componentService,
		defaultPageSize:  defaultPageSize,
		maxPageSize:      maxPageSize,
	}
}

func (h *SearchHandler) Search(c *gin.Context) {
	q := c.Request.URL.Query()
	cr := catalog.ParseCriteria(q)
	page := catalog.ParsePage(q.Get("page"))
	pageSize := catalog.ParsePageSize(q.Get("limit"), h.defaultPageSize, h.maxPageSize)
	sort := catalog.ParseSort(q.Get("sortBy"), q.Get("sortOrder"))

	result, err := h.componentService.Search(c.Request.Context(), nil, cr, page, pageSize, sort)
	if err != nil {
		h.log.Error("Search failed", "error", err)
		RespondError(c, statusFor(err), "search_failed", err)
		return
	}
	RespondOK(c, result)
}

func (h *SearchHandler) Suggestions(c *gin.Context) {
	term := c.Query("q")
	limit := catalog.ParsePageSize(c.Query("limit"), 10, 50)
	suggestions, err := h.componentService.Suggest(c.Request.Context(), nil, term, limit)
	if err != nil {
		h.log.Error("Suggestions failed", "error", err)
		RespondError(c, statusFor(err), "suggestions_failed", err)
		return
	}
	RespondOK(c, gin.H{"suggestions": suggestions})
}
