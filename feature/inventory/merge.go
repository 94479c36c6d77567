package inventory

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"stock-sync/core/rowstore"
	"stock-sync/feature/inventory/models"
	"stock-sync/feature/inventory/remote"
)

// catalogRow is one catalog-owned projection of a remote product or variant,
// keyed by lowercased column name.
type catalogRow struct {
	sku    string
	values map[string]string
}

// expandProduct flattens a remote product into catalog rows: one for the
// product itself when it carries a SKU, one per variant with a SKU. Rows
// without a SKU cannot be merged and are dropped.
func expandProduct(p remote.Product) []catalogRow {
	var out []catalogRow
	if p.SKU != "" {
		out = append(out, catalogRow{sku: p.SKU, values: map[string]string{
			models.ColProductID:     strconv.FormatInt(p.ID, 10),
			models.ColCombinationID: "",
			models.ColSKU:           p.SKU,
			models.ColName:          p.Name,
			models.ColOptionValues:  "",
			models.ColEnabled:       strconv.FormatBool(p.Enabled),
			models.ColUnlimited:     strconv.FormatBool(p.Unlimited),
			models.ColImageURL:      p.ImageURL,
		}})
	}
	for _, c := range p.Combinations {
		if c.SKU == "" {
			continue
		}
		out = append(out, catalogRow{sku: c.SKU, values: map[string]string{
			models.ColProductID:     strconv.FormatInt(p.ID, 10),
			models.ColCombinationID: strconv.FormatInt(c.ID, 10),
			models.ColSKU:           c.SKU,
			models.ColName:          p.Name,
			models.ColOptionValues:  formatOptions(c.Options),
			models.ColEnabled:       strconv.FormatBool(p.Enabled),
			models.ColUnlimited:     strconv.FormatBool(c.Unlimited),
			models.ColImageURL:      p.ImageURL,
		}})
	}
	return out
}

// formatOptions renders variant options as "name:value" pairs joined with
// "; ". Options with an empty name are skipped.
func formatOptions(options []remote.OptionValue) string {
	parts := make([]string, 0, len(options))
	for _, o := range options {
		if o.Name == "" {
			continue
		}
		parts = append(parts, o.Name+":"+o.Value)
	}
	return strings.Join(parts, "; ")
}

func isCatalogColumn(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, col := range models.CatalogColumns {
		if name == col {
			return true
		}
	}
	return false
}

// composeRow builds a full table row for the given header: catalog-owned
// columns from the remote projection, everything else from the kept values of
// the previous row with the same SKU (nil when there was none).
func composeRow(header []string, cr catalogRow, kept map[string]string) []string {
	row := make([]string, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		if isCatalogColumn(key) {
			row[i] = cr.values[key]
		} else if kept != nil {
			row[i] = kept[key]
		}
	}
	return row
}

// RefreshCatalog rebuilds the product table from the full remote catalog.
// Catalog-owned columns are overwritten; any other column present in the
// existing table keeps its value for rows whose SKU survives the refresh.
// The new content replaces the table in one staged write, never in place.
func (s *Service) RefreshCatalog(ctx context.Context) (*models.RefreshReport, error) {
	existing, err := s.store.ReadAll(ctx, s.cfg.ProductsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", s.cfg.ProductsTable, err)
	}

	var oldHeader []string
	kept := make(map[string]map[string]string)
	if len(existing) > 0 {
		oldHeader = existing[0]
		schema := rowstore.NewSchema(oldHeader)
		if _, ok := schema.Col(models.ColSKU); ok {
			for _, row := range existing[1:] {
				sku := schema.Value(row, models.ColSKU)
				if sku == "" {
					continue
				}
				if _, exists := kept[sku]; exists {
					continue
				}
				values := make(map[string]string, len(oldHeader))
				for _, col := range oldHeader {
					values[strings.ToLower(strings.TrimSpace(col))] = schema.Value(row, col)
				}
				kept[sku] = values
			}
		}
	}

	header := rowstore.EnsureColumns(oldHeader, models.CatalogColumns)

	var catalog []catalogRow
	seen := make(map[string]bool)
	err = s.remote.EachProduct(ctx, func(p remote.Product) error {
		for _, cr := range expandProduct(p) {
			if seen[cr.sku] {
				continue
			}
			seen[cr.sku] = true
			catalog = append(catalog, cr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog fetch failed: %w", err)
	}

	out := make([][]string, 0, len(catalog)+1)
	out = append(out, header)
	for _, cr := range catalog {
		out = append(out, composeRow(header, cr, kept[cr.sku]))
	}

	if err := s.store.Replace(ctx, s.cfg.ProductsTable, out); err != nil {
		return nil, fmt.Errorf("failed to replace table %s: %w", s.cfg.ProductsTable, err)
	}

	if s.cache != nil {
		for _, cr := range catalog {
			s.cache.Invalidate(productCacheKey(cr.sku))
		}
	}

	s.logger.Info("Catalog refreshed",
		zap.Int("rows", len(catalog)),
		zap.Int("previous_rows", len(kept)),
	)
	return &models.RefreshReport{RowsWritten: len(catalog)}, nil
}

// ImportProduct merges one remote product (and its variants) into the product
// table in place: rows matched by SKU are updated, unmatched rows are
// appended. Rows belonging to other products are untouched.
func (s *Service) ImportProduct(ctx context.Context, productID int64) (*models.ImportReport, error) {
	p, err := s.remote.FetchByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d not found in remote catalog", productID)
	}
	catalog := expandProduct(*p)

	existing, err := s.store.ReadAll(ctx, s.cfg.ProductsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", s.cfg.ProductsTable, err)
	}

	var oldHeader []string
	if len(existing) > 0 {
		oldHeader = existing[0]
	}
	header := rowstore.EnsureColumns(oldHeader, models.CatalogColumns)
	schema := rowstore.NewSchema(header)

	if len(existing) == 0 || len(header) != len(oldHeader) {
		if err := s.store.WriteRange(ctx, s.cfg.ProductsTable, 0, [][]string{header}); err != nil {
			return nil, fmt.Errorf("failed to extend header of %s: %w", s.cfg.ProductsTable, err)
		}
	}

	rowBySKU := make(map[string]int, len(existing))
	for i := 1; i < len(existing); i++ {
		sku := schema.Value(existing[i], models.ColSKU)
		if sku == "" {
			continue
		}
		if _, exists := rowBySKU[sku]; !exists {
			rowBySKU[sku] = i
		}
	}

	report := &models.ImportReport{}
	seen := make(map[string]bool, len(catalog))
	var appended [][]string
	for _, cr := range catalog {
		if seen[cr.sku] {
			continue
		}
		seen[cr.sku] = true
		if idx, ok := rowBySKU[cr.sku]; ok {
			row := existing[idx]
			for _, col := range models.CatalogColumns {
				row = schema.Set(row, col, cr.values[col])
			}
			if err := s.store.WriteRange(ctx, s.cfg.ProductsTable, idx, [][]string{row}); err != nil {
				return nil, fmt.Errorf("failed to update row for %s: %w", cr.sku, err)
			}
			report.Updated++
		} else {
			appended = append(appended, composeRow(header, cr, nil))
			report.Added++
		}
		if s.cache != nil {
			s.cache.Invalidate(productCacheKey(cr.sku))
		}
	}

	if len(appended) > 0 {
		if err := s.store.Append(ctx, s.cfg.ProductsTable, appended); err != nil {
			return nil, fmt.Errorf("failed to append rows to %s: %w", s.cfg.ProductsTable, err)
		}
	}

	s.logger.Info("Product imported",
		zap.Int64("product_id", productID),
		zap.Int("updated", report.Updated),
		zap.Int("added", report.Added),
	)
	return report, nil
}
