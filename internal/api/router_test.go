package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadside-dispatch-service/internal/adapters/distance"
	"roadside-dispatch-service/internal/domain"
)

type emptyRepo struct{}

func (emptyRepo) ListProviders(context.Context) ([]domain.Provider, error) { return nil, nil }

func (emptyRepo) GetProvider(context.Context, string) (*domain.Provider, error) {
	return nil, domain.ErrProviderNotFound
}

func (emptyRepo) IncrementLoad(context.Context, string) (*domain.Provider, error) {
	return nil, domain.ErrProviderNotFound
}

func newTestRouter() http.Handler {
	return NewRouter(emptyRepo{}, distance.NewHaversineDistanceProvider(0), Options{
		DefaultRadiusKm: 5,
		MaxRadiusKm:     20,
	})
}

func TestRouterAssignsRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Header().Get(requestIDHeader), 36)
}

func TestRouterKeepsCallerRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestRouterServesMetrics(t *testing.T) {
	router := newTestRouter()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/health",status="200"}`)
}

func TestRouterUnknownPath(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterEmptyDirectory(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/providers", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"providers":[]}`, rec.Body.String())
}
