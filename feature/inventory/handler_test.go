package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-sync/core/rowstore"
	"stock-sync/feature/inventory/models"
	"stock-sync/feature/inventory/remote"
)

func newTestApp(t *testing.T, store *rowstore.MemoryStore, f *fakeRemote) (*fiber.App, *Handler) {
	t.Helper()
	svc := newTestService(t, store, f)
	h := NewHandler(svc, "api")

	app := fiber.New()
	h.RegisterRoutes(app)
	return app, h
}

func TestHandleCreateTransaction(t *testing.T) {
	store := rowstore.NewMemoryStore()
	seedProducts(store)
	app, _ := newTestApp(t, store, newFakeRemote())

	req := httptest.NewRequest(http.MethodPost, "/inventory/tx",
		strings.NewReader(`{"user":"alice","sku":"WIDGET-1","qty_change":-3,"reason":"sale"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.TxResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.OK)
	assert.Equal(t, 7.0, result.NewStock)
}

func TestHandleCreateTransaction_BadRequests(t *testing.T) {
	store := rowstore.NewMemoryStore()
	seedProducts(store)
	app, _ := newTestApp(t, store, newFakeRemote())

	req := httptest.NewRequest(http.MethodPost, "/inventory/tx", strings.NewReader(`not json`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/inventory/tx", strings.NewReader(`{"qty_change":1}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetProduct(t *testing.T) {
	store := rowstore.NewMemoryStore()
	seedProducts(store)
	app, _ := newTestApp(t, store, newFakeRemote())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/inventory/products/WIDGET-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var product map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
	assert.Equal(t, "10", product[models.ColCurrentStock])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/inventory/products/GHOST", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleDrain(t *testing.T) {
	store := rowstore.NewMemoryStore()
	seedDrainTables(store, queueRow("WIDGET-1", "10", "true", models.StatusQueued))
	app, _ := newTestApp(t, store, newFakeRemote(remote.Product{ID: 42, SKU: "WIDGET-1", Quantity: 7}))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/inventory/sync/drain", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report models.DrainReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, models.DrainReport{OK: 1}, report)
}

func TestJobsRejectedWhileAnotherRuns(t *testing.T) {
	store := rowstore.NewMemoryStore()
	seedDrainTables(store)
	app, h := newTestApp(t, store, newFakeRemote())

	// Hold the job lock as a running job would.
	require.True(t, h.jobMu.TryLock())
	defer h.jobMu.Unlock()

	for _, path := range []string{
		"/inventory/sync/drain",
		"/inventory/catalog/refresh",
		"/inventory/catalog/import/42",
		"/inventory/backfill",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode, path)
	}
}

func TestHandleImport_InvalidID(t *testing.T) {
	store := rowstore.NewMemoryStore()
	app, _ := newTestApp(t, store, newFakeRemote())

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/inventory/catalog/import/banana", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleBackfill(t *testing.T) {
	store := rowstore.NewMemoryStore()
	store.Seed("Products", [][]string{
		productsHeader(),
		{"WIDGET-1", "10", "", ""},
	})
	app, _ := newTestApp(t, store, newFakeRemote(remote.Product{ID: 42, SKU: "WIDGET-1"}))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/inventory/backfill", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report models.BackfillReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 1, report.Resolved)
}
