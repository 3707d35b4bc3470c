package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kyle-1207/components-plat-sub002/internal/catalog"
	"github.com/kyle-1207/components-plat-sub002/internal/data"
	"github.com/kyle-1207/components-plat-sub002/internal/handlers"
	"github.com/kyle-1207/components-plat-sub002/internal/logger"
	"github.com/kyle-1207/components-plat-sub002/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	return newTestRouterSized(t, 20, 200)
}

func newTestRouterSized(t *testing.T, defaultPageSize, maxPageSize int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	componentRepo := data.NewMemoryComponentRepo(data.SeedComponents())
	traceabilityRepo := data.NewMemoryTraceabilityRepo()
	engine := catalog.NewEngine(defaultPageSize, maxPageSize)
	componentService := services.NewComponentService(nil, log, componentRepo, engine, nil, "catalog")
	traceabilityService := services.NewTraceabilityService(nil, log, traceabilityRepo)

	return NewRouter(RouterConfig{
		AllowOrigins:        []string{"http://localhost:3000"},
		ComponentHandler:    handlers.NewComponentHandler(log, componentService, defaultPageSize, maxPageSize),
		SearchHandler:       handlers.NewSearchHandler(log, componentService, defaultPageSize, maxPageSize),
		TraceabilityHandler: handlers.NewTraceabilityHandler(log, traceabilityService),
		AdminHandler:        handlers.NewAdminHandler(log, componentService),
	})
}

func get(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthcheckRoute(t *testing.T) {
	rec := get(t, newTestRouter(t), "/healthcheck")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestComponentsListRoute(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/components?keyword=stm32&qualityLevel=industrial")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var page catalog.Page
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("Total = %d, want 2", page.Total)
	}
	if len(page.Facets.Manufacturers) != 1 || page.Facets.Manufacturers[0] != "STMicroelectronics" {
		t.Errorf("Facets.Manufacturers = %v", page.Facets.Manufacturers)
	}
}

func TestComponentsListDegradesOnBadPaging(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/components?page=junk&limit=-5")
	if rec.Code != http.StatusOK {
		t.Fatalf("bad paging must degrade to defaults, got status %d", rec.Code)
	}
	var page catalog.Page
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Page != 1 || page.PageSize != 20 {
		t.Errorf("page=%d size=%d, want defaults 1 and 20", page.Page, page.PageSize)
	}
}

func TestComponentGetByIDInvalid(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/components/not-a-uuid")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var envelope handlers.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Code != "invalid_component_id" {
		t.Errorf("error code = %q", envelope.Error.Code)
	}
}

func TestSuggestionsRoute(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/search/suggestions?q=stm")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Suggestions []catalog.Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Suggestions) == 0 {
		t.Fatalf("no suggestions returned")
	}
}

func TestComponentsExportRoute(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/components/export?category="+"半导体分立器件")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 5 {
		t.Errorf("CSV has %d lines, want header plus 4 rows", len(lines))
	}
}

// The export walks every page: a filtered set larger than the page-size
// clamp must still come back complete.
func TestComponentsExportNotTruncatedByMaxPageSize(t *testing.T) {
	router := newTestRouterSized(t, 2, 4)

	rec := get(t, router, "/api/components/export")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	want := len(data.SeedComponents()) + 1
	if len(lines) != want {
		t.Fatalf("CSV has %d lines, want header plus all %d seeded rows", len(lines), want-1)
	}
}

func TestAdminInvalidateCacheScopes(t *testing.T) {
	router := newTestRouter(t)

	post := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	for _, scope := range []string{"search", "all"} {
		rec := post("/api/admin/cache/invalidate?scope=" + scope)
		if rec.Code != http.StatusOK {
			t.Fatalf("scope=%s status = %d, body = %s", scope, rec.Code, rec.Body.String())
		}
		var body struct {
			Scope   string `json:"scope"`
			Deleted int    `json:"deleted"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Scope != scope || body.Deleted != 0 {
			t.Errorf("scope=%s response = %+v", scope, body)
		}
	}

	if rec := post("/api/admin/cache/invalidate?scope=bogus"); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown scope status = %d, want 400", rec.Code)
	}
}

func TestTraceabilityRoutes(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"query_target":{"target_type":"component","target_value":"2N2222A"},"batch_traceability":{"production_traceability":[{"process_step":"die attach"}]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/traceability", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Record struct {
			TraceabilityID string `json:"traceability_id"`
		} `json:"record"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created record: %v", err)
	}
	if created.Record.TraceabilityID == "" {
		t.Fatalf("created record has no traceability ID: %s", rec.Body.String())
	}

	chainRec := get(t, router, "/api/traceability/"+created.Record.TraceabilityID+"/chain")
	if chainRec.Code != http.StatusOK {
		t.Fatalf("chain status = %d", chainRec.Code)
	}
	var chain struct {
		Stages []struct {
			SourceSection string `json:"source_section"`
		} `json:"stages"`
	}
	if err := json.Unmarshal(chainRec.Body.Bytes(), &chain); err != nil {
		t.Fatalf("decode chain: %v", err)
	}
	if len(chain.Stages) != 1 {
		t.Fatalf("stages = %d, want 1", len(chain.Stages))
	}

	listRec := get(t, router, "/api/traceability?targetValue=2N2222A")
	if listRec.Code != http.StatusOK {
		t.Fatalf("list status = %d", listRec.Code)
	}
}
