package inventory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"stock-sync/feature/inventory/models"
	"stock-sync/feature/inventory/remote"
)

// BackfillIdentities resolves remote identities for product rows that have a
// SKU but no product_id, one remote lookup per row. Rows whose SKU the remote
// catalog does not know stay unresolved; a transport failure aborts the pass
// with whatever was already persisted.
func (s *Service) BackfillIdentities(ctx context.Context) (*models.BackfillReport, error) {
	rows, schema, err := s.readTable(ctx, s.cfg.ProductsTable)
	if err != nil {
		return nil, err
	}
	if err := schema.Require(s.cfg.ProductsTable,
		models.ColSKU, models.ColProductID, models.ColCombinationID,
	); err != nil {
		return nil, err
	}

	report := &models.BackfillReport{}
	pacing := s.cfg.Pacing()

	for i := 1; i < len(rows); i++ {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		row := rows[i]
		sku := schema.Value(row, models.ColSKU)
		if sku == "" || strings.TrimSpace(schema.Value(row, models.ColProductID)) != "" {
			continue
		}

		p, err := s.remote.FetchBySKU(ctx, sku)
		if err != nil {
			return report, fmt.Errorf("lookup failed for %s: %w", sku, err)
		}
		if pacing > 0 {
			time.Sleep(pacing)
		}
		if p == nil {
			s.logger.Debug("SKU unknown to remote catalog", zap.String("sku", sku))
			continue
		}

		productID, combinationID, matched := matchIdentity(p, sku)
		if !matched {
			s.logger.Debug("SKU matched a product but none of its variants",
				zap.String("sku", sku),
				zap.Int64("product_id", p.ID),
			)
			continue
		}

		row = schema.Set(row, models.ColProductID, strconv.FormatInt(productID, 10))
		row = schema.Set(row, models.ColCombinationID, combinationID)
		if err := s.store.WriteRange(ctx, s.cfg.ProductsTable, i, [][]string{row}); err != nil {
			return report, fmt.Errorf("failed to persist identity for %s: %w", sku, err)
		}
		report.Resolved++

		if s.cache != nil {
			s.cache.Invalidate(productCacheKey(sku))
		}
	}

	s.logger.Info("Identity backfill finished", zap.Int("resolved", report.Resolved))
	return report, nil
}

// matchIdentity locates the SKU inside a fetched product: either the product
// itself or exactly one of its variants. The combination id comes back as the
// cell value to write, empty for a product-level match.
func matchIdentity(p *remote.Product, sku string) (int64, string, bool) {
	if p.SKU == sku {
		return p.ID, "", true
	}
	for _, c := range p.Combinations {
		if c.SKU == sku {
			return p.ID, strconv.FormatInt(c.ID, 10), true
		}
	}
	return 0, "", false
}
