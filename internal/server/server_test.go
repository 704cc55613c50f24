package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dinesafe/dinesafe/internal/engine"
	"github.com/dinesafe/dinesafe/internal/models"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	catalog *models.Catalog
	err     error
}

func (s *stubSource) Load(ctx context.Context) (*models.Catalog, error) {
	return s.catalog, s.err
}

func newTestServer(items ...models.MenuItem) (*Server, *stubSource) {
	cat := &models.Catalog{Items: items}
	source := &stubSource{catalog: cat}
	return New(engine.New(cat), source, nil), source
}

func glazedBowl() models.MenuItem {
	return models.MenuItem{
		ID: "glazed", Name: "Glazed Bowl", Category: "main course",
		Components: []models.Component{
			{Name: "soy glaze", Allergens: []string{models.AllergenGluten}, Flags: []string{models.FlagSoySauce}},
		},
		Modifications: []models.Modification{
			{Action: models.ActionRemove, Target: "soy glaze", When: models.Trigger{Allergens: []string{models.AllergenGluten}}},
		},
	}
}

func TestEvaluateEndpoint(t *testing.T) {
	srv, _ := newTestServer(glazedBowl())
	body := `{"profile": {"avoid_allergens": ["gluten"]}}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", strings.NewReader(body))
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.CanBeModified, 1)
	require.Equal(t, "glazed", report.CanBeModified[0].ID)
}

func TestEvaluateMissingProfileIsClientError(t *testing.T) {
	srv, _ := newTestServer(glazedBowl())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", strings.NewReader(`{}`))
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "profile is required", resp["error"])
}

func TestEvaluateEmptyProfileMeansNoRestrictions(t *testing.T) {
	srv, _ := newTestServer(glazedBowl())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", strings.NewReader(`{"profile": {}}`))
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var report models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Safe, 1)
}

func TestEvaluateInvalidBodyIsClientError(t *testing.T) {
	srv, _ := newTestServer(glazedBowl())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", strings.NewReader(`{broken`))
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluateRejectsGet(t *testing.T) {
	srv, _ := newTestServer(glazedBowl())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/evaluate", nil)
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCatalogReloadSwapsSnapshot(t *testing.T) {
	srv, source := newTestServer(glazedBowl())
	source.catalog = &models.Catalog{Items: []models.MenuItem{
		{ID: "new", Name: "New Dish", Components: []models.Component{{Name: "rice"}}},
	}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/reload", nil)
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", strings.NewReader(`{"profile": {}}`))
	srv.Handler().ServeHTTP(rec, req)

	var report models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Safe, 1)
	require.Equal(t, "new", report.Safe[0].ID)
}

func TestCatalogReloadFailureKeepsServing(t *testing.T) {
	srv, source := newTestServer(glazedBowl())
	source.err = fmt.Errorf("boom")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/reload", nil)
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "boom", "internals must not leak")

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", strings.NewReader(`{"profile": {}}`))
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "the old snapshot keeps serving")
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
