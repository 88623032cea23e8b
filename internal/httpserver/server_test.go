package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"mercadolibre-replica/internal/domain"
	productrepo "mercadolibre-replica/internal/repository/product"
	"mercadolibre-replica/internal/service/catalog"
)

func init() {
	gin.SetMode(gin.TestMode)
	decimal.MarshalJSONWithoutQuotes = true
}

type seqGen struct{ next int }

func (g *seqGen) NewID() string {
	g.next++
	return fmt.Sprintf("MLA%d", g.next)
}

func newTestRouter(t *testing.T) (*gin.Engine, *catalog.Service) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	svc := catalog.New(productrepo.NewMemory(nil), &seqGen{}, "MLA", "MLA", logger)
	return buildRouter(logger, Deps{Catalog: svc}), svc
}

func seedCatalog(t *testing.T, svc *catalog.Service) {
	t.Helper()
	inputs := []catalog.CreateInput{
		{Title: "Zapatillas Nike Air Max 270 - Negras", Price: decimal.RequireFromString("89999.99"), CurrencyID: "ARS", Condition: domain.ConditionNew,
			Attributes: []domain.Attribute{{ID: domain.AttributeBrand, Name: "Marca", ValueName: "Nike"}}},
		{Title: "iPhone 15 Pro 128GB Titanio Natural", Price: decimal.RequireFromString("1299999.00"), CurrencyID: "ARS", Condition: domain.ConditionNew,
			Attributes: []domain.Attribute{{ID: domain.AttributeBrand, Name: "Marca", ValueName: "Apple"}}},
		{Title: "Remera Adidas Originals Trefoil", Price: decimal.RequireFromString("24999.50"), CurrencyID: "ARS", Condition: domain.ConditionNew,
			Attributes: []domain.Attribute{{ID: domain.AttributeBrand, Name: "Marca", ValueName: "Adidas"}}},
	}
	for _, in := range inputs {
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("seed create: %v", err)
		}
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "product-catalog-api" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestReadyz(t *testing.T) {
	router, svc := newTestRouter(t)
	seedCatalog(t, svc)
	rec := doJSON(t, router, http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["products"] != float64(3) {
		t.Fatalf("unexpected product count: %v", body["products"])
	}
}

func TestCreateItem(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/items", map[string]any{
		"title":       "Botines Nike Mercurial",
		"price":       129999.00,
		"currency_id": "ARS",
		"condition":   "new",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	var p domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if p.ID != "MLA1" || p.Status != domain.StatusActive {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestCreateItemRejectsCheapNewProduct(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/items", map[string]any{
		"title":       "Llavero",
		"price":       50,
		"currency_id": "ARS",
		"condition":   "new",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error != "INVALID_PRODUCT_DATA" || resp.Status != http.StatusBadRequest {
		t.Fatalf("unexpected error body: %+v", resp)
	}
}

func TestCreateItemMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/items", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestGetItemNotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/items/MLA999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error != "PRODUCT_NOT_FOUND" {
		t.Fatalf("unexpected error body: %+v", resp)
	}
}

func TestGetItemBadIDFormat(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/items/not-an-id", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestListItemsSortedPage(t *testing.T) {
	router, svc := newTestRouter(t)
	seedCatalog(t, svc)

	rec := doJSON(t, router, http.MethodGet, "/api/items?offset=0&limit=2&sort=price_asc", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	var resp catalog.ListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(resp.Results) != 2 || resp.Results[0].Title != "Remera Adidas Originals Trefoil" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
	if resp.Paging.Total != 3 || !resp.Paging.HasNextPage {
		t.Fatalf("unexpected paging: %+v", resp.Paging)
	}
}

func TestListItemsRejectsBadPagination(t *testing.T) {
	router, _ := newTestRouter(t)
	for _, q := range []string{"limit=0", "limit=201", "offset=-1", "offset=abc"} {
		rec := doJSON(t, router, http.MethodGet, "/api/items?"+q, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: unexpected status %d", q, rec.Code)
		}
	}
}

func TestSearchEnvelope(t *testing.T) {
	router, svc := newTestRouter(t)
	seedCatalog(t, svc)

	rec := doJSON(t, router, http.MethodGet, "/api/items/search?q=nike&sort=price_asc", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	var resp catalog.ListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.SiteID != "MLA" || resp.Query != "nike" {
		t.Fatalf("unexpected envelope: site=%s query=%s", resp.SiteID, resp.Query)
	}
	if len(resp.Results) != 1 || resp.Sort == nil || !resp.Sort.Active {
		t.Fatalf("unexpected results or sort: %+v", resp)
	}
}

func TestSearchRejectsInvertedPriceRange(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/items/search?price_min=100&price_max=50", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestSearchByBrandRoute(t *testing.T) {
	router, svc := newTestRouter(t)
	seedCatalog(t, svc)

	rec := doJSON(t, router, http.MethodGet, "/api/items/search/brand/nike", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	var products []domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("unexpected results: %+v", products)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/items/search/brand/Samsung", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown brand: unexpected status %d", rec.Code)
	}
}

func TestUpdatePriceRoute(t *testing.T) {
	router, svc := newTestRouter(t)
	seedCatalog(t, svc)

	rec := doJSON(t, router, http.MethodPut, "/api/items/MLA1/price?price=99999.99&reason=promo", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	var p domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if p.Price.String() != "99999.99" {
		t.Fatalf("unexpected price: %s", p.Price)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/items/MLA1/price", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing price: unexpected status %d", rec.Code)
	}
}

func TestUpdateStatusRoute(t *testing.T) {
	router, svc := newTestRouter(t)
	seedCatalog(t, svc)

	rec := doJSON(t, router, http.MethodPut, "/api/items/MLA1/status?status=paused", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPut, "/api/items/MLA1/status?status=archived", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: unexpected status %d", rec.Code)
	}
}

func TestSoftDeleteRoute(t *testing.T) {
	router, svc := newTestRouter(t)
	seedCatalog(t, svc)

	rec := doJSON(t, router, http.MethodDelete, "/api/items/MLA1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	// The product is closed, not gone.
	rec = doJSON(t, router, http.MethodGet, "/api/items/MLA1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var p domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if p.Status != domain.StatusClosed {
		t.Fatalf("expected closed, got %s", p.Status)
	}

	// Deleting again hits the terminal-state rule.
	rec = doJSON(t, router, http.MethodDelete, "/api/items/MLA1", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second delete: unexpected status %d", rec.Code)
	}
}

func TestDeleteBatchRoute(t *testing.T) {
	router, svc := newTestRouter(t)
	seedCatalog(t, svc)

	rec := doJSON(t, router, http.MethodDelete, "/api/items/batch", []string{"MLA1", "MLA999", "bad"})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	var result catalog.BatchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.TotalProcessed != 3 || result.Successful != 1 || result.Failed != 2 {
		t.Fatalf("unexpected tally: %+v", result)
	}
}

func TestStatisticsRoute(t *testing.T) {
	router, svc := newTestRouter(t)
	seedCatalog(t, svc)

	rec := doJSON(t, router, http.MethodGet, "/api/items/statistics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var stats catalog.Statistics
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if stats.TotalProducts != 3 || stats.TotalBrands != 3 {
		t.Fatalf("unexpected statistics: %+v", stats)
	}
}

func TestSortOptionsRoute(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/items/sort-options", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var options []catalog.SortOption
	if err := json.Unmarshal(rec.Body.Bytes(), &options); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(options) != 7 {
		t.Fatalf("expected 7 sort options, got %d", len(options))
	}
}

func TestRequestIDHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Fatalf("request id not propagated: %q", got)
	}
}
