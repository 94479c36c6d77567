package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"stock-sync/core/cache"
	"stock-sync/core/rowstore"
	"stock-sync/core/utils"
	"stock-sync/feature/inventory/models"
	"stock-sync/feature/inventory/remote"
)

// ErrSKUNotFound is returned by lookups for SKUs absent from the product table.
var ErrSKUNotFound = errors.New("sku not found")

// Service runs the inventory engines against a row store and the remote API.
type Service struct {
	store  rowstore.Store
	remote *remote.Client
	cache  *cache.Cache
	logger *zap.Logger
	cfg    Config
}

// NewService wires the inventory service. The cache may be nil, in which case
// product lookups always hit the store.
func NewService(store rowstore.Store, client *remote.Client, c *cache.Cache, logger *zap.Logger, cfg Config) *Service {
	return &Service{
		store:  store,
		remote: client,
		cache:  c,
		logger: logger,
		cfg:    cfg,
	}
}

func productCacheKey(sku string) string {
	return "product:" + sku
}

// readTable loads a table and fails when it has no header row. Every engine
// needs the header to resolve columns, so an absent table is a configuration
// error rather than an empty result.
func (s *Service) readTable(ctx context.Context, table string) ([][]string, *rowstore.Schema, error) {
	rows, err := s.store.ReadAll(ctx, table)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("table %s has no header row", table)
	}
	return rows, rowstore.NewSchema(rows[0]), nil
}

// ensureTable creates the table with the given header when it does not exist
// yet, and returns its rows either way.
func (s *Service) ensureTable(ctx context.Context, table string, header []string) ([][]string, error) {
	rows, err := s.store.ReadAll(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	if len(rows) == 0 {
		if err := s.store.Append(ctx, table, [][]string{header}); err != nil {
			return nil, fmt.Errorf("failed to create table %s: %w", table, err)
		}
		return [][]string{header}, nil
	}
	return rows, nil
}

// GetProductBySKU returns one product row as a header-keyed map. Lookups are
// cached with a short TTL; transactions invalidate the entry they touch.
func (s *Service) GetProductBySKU(ctx context.Context, sku string) (map[string]string, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(productCacheKey(sku)); ok {
			return v.(map[string]string), nil
		}
	}

	rows, schema, err := s.readTable(ctx, s.cfg.ProductsTable)
	if err != nil {
		return nil, err
	}
	if err := schema.Require(s.cfg.ProductsTable, models.ColSKU); err != nil {
		return nil, err
	}

	for _, row := range rows[1:] {
		if schema.Value(row, models.ColSKU) != sku {
			continue
		}
		product := make(map[string]string, len(schema.Header()))
		for _, col := range schema.Header() {
			product[col] = schema.Value(row, col)
		}
		if s.cache != nil {
			s.cache.Put(productCacheKey(sku), product, s.cfg.CacheTTL())
		}
		return product, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrSKUNotFound, sku)
}

// CreateTransaction appends a ledger entry, applies the quantity change to the
// product's local stock, and enqueues a sync record for the new absolute
// level. The ledger append comes first: even if the stock update fails, the
// movement is recorded.
func (s *Service) CreateTransaction(ctx context.Context, req models.TxRequest, origin string) (*models.TxResult, error) {
	if req.SKU == "" {
		return nil, errors.New("missing sku")
	}

	ts := time.Now().UTC().Format(time.RFC3339)
	location := req.Location
	if location == "" {
		location = "MAIN"
	}

	if _, err := s.ensureTable(ctx, s.cfg.TransactionsTable, models.LedgerHeader); err != nil {
		return nil, err
	}
	entry := []string{ts, req.User, req.SKU, location, utils.FormatFloat(req.QtyChange), req.Reason, req.Note, origin}
	if err := s.store.Append(ctx, s.cfg.TransactionsTable, [][]string{entry}); err != nil {
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	rows, schema, err := s.readTable(ctx, s.cfg.ProductsTable)
	if err != nil {
		return nil, err
	}
	if err := schema.Require(s.cfg.ProductsTable, models.ColSKU, models.ColCurrentStock); err != nil {
		return nil, err
	}

	rowIdx := -1
	for i := 1; i < len(rows); i++ {
		if schema.Value(rows[i], models.ColSKU) == req.SKU {
			rowIdx = i
			break
		}
	}
	if rowIdx == -1 {
		return nil, fmt.Errorf("SKU %s not found in %s", req.SKU, s.cfg.ProductsTable)
	}

	current, _ := utils.ToFloat(schema.Value(rows[rowIdx], models.ColCurrentStock))
	newStock := current + req.QtyChange

	row := schema.Set(rows[rowIdx], models.ColCurrentStock, utils.FormatFloat(newStock))
	if err := s.store.WriteRange(ctx, s.cfg.ProductsTable, rowIdx, [][]string{row}); err != nil {
		return nil, fmt.Errorf("failed to update stock for %s: %w", req.SKU, err)
	}

	if _, err := s.ensureTable(ctx, s.cfg.QueueTable, models.QueueHeader); err != nil {
		return nil, err
	}
	allowRaise := "false"
	if req.QtyChange > 0 {
		allowRaise = "true"
	}
	queued := []string{ts, req.SKU, utils.FormatFloat(newStock), allowRaise, models.StatusQueued, ""}
	if err := s.store.Append(ctx, s.cfg.QueueTable, [][]string{queued}); err != nil {
		return nil, fmt.Errorf("failed to enqueue sync record: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(productCacheKey(req.SKU))
	}

	result := &models.TxResult{OK: true, SKU: req.SKU, NewStock: newStock}
	if newStock < 0 {
		result.Warning = "Stock is negative!"
		s.logger.Warn("Stock went negative",
			zap.String("sku", req.SKU),
			zap.Float64("new_stock", newStock),
		)
	}
	s.logger.Info("Transaction recorded",
		zap.String("sku", req.SKU),
		zap.Float64("qty_change", req.QtyChange),
		zap.Float64("new_stock", newStock),
		zap.String("origin", origin),
	)
	return result, nil
}
