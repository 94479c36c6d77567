package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stock-sync/core/cache"
	"stock-sync/core/rowstore"
	"stock-sync/feature/inventory/models"
	"stock-sync/feature/inventory/remote"
)

// adjustCall records one inventory adjustment the fake remote received.
type adjustCall struct {
	ProductID     int64
	CombinationID int64
	Delta         float64
}

// fakeRemote serves a minimal store API: product lookup by id and SKU,
// paginated catalog listing, and inventory adjustments.
type fakeRemote struct {
	mu sync.Mutex

	products []remote.Product

	failReads    bool
	adjustStatus int

	adjusts []adjustCall
}

func newFakeRemote(products ...remote.Product) *fakeRemote {
	return &fakeRemote{products: products, adjustStatus: http.StatusOK}
}

func (f *fakeRemote) adjustments() []adjustCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]adjustCall, len(f.adjusts))
	copy(out, f.adjusts)
	return out
}

func (f *fakeRemote) find(id int64) *remote.Product {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i]
		}
	}
	return nil
}

func (f *fakeRemote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/1/products")
	if path == "" {
		f.serveList(w, r)
		return
	}
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	productID, _ := strconv.ParseInt(parts[0], 10, 64)
	p := f.find(productID)

	switch {
	case len(parts) == 1:
		if f.failReads || p == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(p)

	case len(parts) == 2 && parts[1] == "inventory":
		f.serveAdjust(w, r, productID, 0)

	case len(parts) == 3 && parts[1] == "combinations":
		combinationID, _ := strconv.ParseInt(parts[2], 10, 64)
		if f.failReads || p == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		for _, c := range p.Combinations {
			if c.ID == combinationID {
				json.NewEncoder(w).Encode(c)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)

	case len(parts) == 4 && parts[1] == "combinations" && parts[3] == "inventory":
		combinationID, _ := strconv.ParseInt(parts[2], 10, 64)
		f.serveAdjust(w, r, productID, combinationID)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeRemote) serveList(w http.ResponseWriter, r *http.Request) {
	if sku := r.URL.Query().Get("sku"); sku != "" {
		for _, p := range f.products {
			if p.SKU == sku {
				json.NewEncoder(w).Encode(remote.ProductPage{Total: 1, Count: 1, Items: []remote.Product{p}})
				return
			}
			for _, c := range p.Combinations {
				if c.SKU == sku {
					json.NewEncoder(w).Encode(remote.ProductPage{Total: 1, Count: 1, Items: []remote.Product{p}})
					return
				}
			}
		}
		json.NewEncoder(w).Encode(remote.ProductPage{})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 100
	}
	items := []remote.Product{}
	for i := offset; i < len(f.products) && i < offset+limit; i++ {
		items = append(items, f.products[i])
	}
	json.NewEncoder(w).Encode(remote.ProductPage{
		Total:  len(f.products),
		Count:  len(items),
		Offset: offset,
		Items:  items,
	})
}

func (f *fakeRemote) serveAdjust(w http.ResponseWriter, r *http.Request, productID, combinationID int64) {
	var body struct {
		QuantityDelta float64 `json:"quantityDelta"`
	}
	json.NewDecoder(r.Body).Decode(&body)
	f.adjusts = append(f.adjusts, adjustCall{
		ProductID:     productID,
		CombinationID: combinationID,
		Delta:         body.QuantityDelta,
	})
	w.WriteHeader(f.adjustStatus)
}

// newTestService wires a service against an in-memory store and the fake
// remote, with pacing disabled.
func newTestService(t *testing.T, store rowstore.Store, f *fakeRemote) *Service {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	client, err := remote.NewClient(remote.Config{
		BaseURL:   srv.URL,
		StoreID:   "1",
		Token:     "test-token",
		PageLimit: 2,
	}, zap.NewNop())
	require.NoError(t, err)

	return NewService(store, client, cache.New(), zap.NewNop(), Config{
		ProductsTable:     "Products",
		TransactionsTable: "Transactions",
		QueueTable:        "SyncQueue",
	})
}

func productsHeader() []string {
	return []string{
		models.ColSKU, models.ColCurrentStock,
		models.ColProductID, models.ColCombinationID,
	}
}

func queueRow(sku, target, allowRaise, status string) []string {
	return []string{"2026-01-05T10:00:00Z", sku, target, allowRaise, status, ""}
}
