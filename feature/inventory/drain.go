package inventory

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"stock-sync/core/rowstore"
	"stock-sync/core/utils"
	"stock-sync/feature/inventory/models"
)

// identity is a product's remote addressing: the product id, plus the
// combination id when the SKU names a variant.
type identity struct {
	productID     int64
	combinationID int64
}

// DrainQueue processes every queued sync record once, pushing the delta
// between the locally recorded stock level and the remote level. Each record
// is finalized (done or error) and persisted individually before the next one
// starts, so an aborted pass never loses completed work. One record's failure
// never stops the pass.
func (s *Service) DrainQueue(ctx context.Context) (*models.DrainReport, error) {
	rows, queue, err := s.readTable(ctx, s.cfg.QueueTable)
	if err != nil {
		return nil, err
	}
	if err := queue.Require(s.cfg.QueueTable,
		models.ColSKU, models.ColTargetStock, models.ColAllowRaise,
		models.ColStatus, models.ColLastError,
	); err != nil {
		return nil, err
	}

	identities, err := s.loadIdentities(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.DrainReport{}
	pacing := s.cfg.Pacing()

	for i := 1; i < len(rows); i++ {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		row := rows[i]
		if !strings.EqualFold(queue.Value(row, models.ColStatus), models.StatusQueued) {
			continue
		}

		outcome := s.processRecord(ctx, queue, row, identities)
		switch outcome.status {
		case models.StatusDone:
			if outcome.skipped {
				report.Skipped++
			} else {
				report.OK++
			}
		case models.StatusError:
			report.Errors++
			s.logger.Warn("Sync record failed",
				zap.Int("row", i),
				zap.String("sku", queue.Value(row, models.ColSKU)),
				zap.String("error", outcome.message),
			)
		}

		row = queue.Set(row, models.ColStatus, outcome.status)
		row = queue.Set(row, models.ColLastError, outcome.message)
		if err := s.store.WriteRange(ctx, s.cfg.QueueTable, i, [][]string{row}); err != nil {
			return report, fmt.Errorf("failed to persist queue row %d: %w", i, err)
		}

		if pacing > 0 && outcome.calledRemote {
			time.Sleep(pacing)
		}
	}

	s.logger.Info("Queue drained",
		zap.Int("ok", report.OK),
		zap.Int("skipped", report.Skipped),
		zap.Int("errors", report.Errors),
	)
	return report, nil
}

type recordOutcome struct {
	status       string
	message      string
	skipped      bool
	calledRemote bool
}

func errorOutcome(calledRemote bool, format string, args ...any) recordOutcome {
	return recordOutcome{
		status:       models.StatusError,
		message:      fmt.Sprintf(format, args...),
		calledRemote: calledRemote,
	}
}

// processRecord runs one queued record through the full resolve/read/clamp/
// push pipeline and reports its final status. It never touches the store.
func (s *Service) processRecord(ctx context.Context, queue *rowstore.Schema, row []string, identities map[string]identity) recordOutcome {
	sku := queue.Value(row, models.ColSKU)

	id, found := identities[sku]
	if !found {
		return errorOutcome(false, "SKU %s not found in %s", sku, s.cfg.ProductsTable)
	}
	if id.productID == 0 {
		return errorOutcome(false, "Missing product_id for SKU %s", sku)
	}

	current, err := s.remote.CurrentQuantity(ctx, id.productID, id.combinationID)
	if err != nil {
		s.logger.Warn("Quantity read failed", zap.String("sku", sku), zap.Error(err))
		return errorOutcome(true, "Unable to read current qty for %s", sku)
	}

	rawTarget := queue.Value(row, models.ColTargetStock)
	target, ok := utils.ToFloat(rawTarget)
	if !ok || math.IsNaN(target) || math.IsInf(target, 0) {
		return errorOutcome(true, "Invalid target stock for %s: target=%q current=%s",
			sku, rawTarget, utils.FormatFloat(current))
	}

	// Clamp per policy. Raise-forbidden records may only lower remote stock;
	// either way the pushed level never goes below zero.
	if utils.ToBool(queue.Value(row, models.ColAllowRaise)) {
		target = math.Max(0, target)
	} else {
		target = math.Max(0, math.Min(target, current))
	}

	delta := target - current
	if delta == 0 {
		return recordOutcome{status: models.StatusDone, skipped: true, calledRemote: true}
	}

	if err := s.remote.AdjustQuantity(ctx, id.productID, id.combinationID, delta); err != nil {
		return errorOutcome(true, "Failed to push delta %s for SKU %s: %v",
			utils.FormatFloat(delta), sku, err)
	}
	return recordOutcome{status: models.StatusDone, calledRemote: true}
}

// loadIdentities indexes the product table by SKU. Identity cells that do not
// parse as integers read as zero, which the drain then reports as a missing
// product_id.
func (s *Service) loadIdentities(ctx context.Context) (map[string]identity, error) {
	rows, products, err := s.readTable(ctx, s.cfg.ProductsTable)
	if err != nil {
		return nil, err
	}
	if err := products.Require(s.cfg.ProductsTable,
		models.ColSKU, models.ColProductID, models.ColCombinationID,
	); err != nil {
		return nil, err
	}

	identities := make(map[string]identity, len(rows))
	for _, row := range rows[1:] {
		sku := products.Value(row, models.ColSKU)
		if sku == "" {
			continue
		}
		if _, exists := identities[sku]; exists {
			continue
		}
		pid, _ := strconv.ParseInt(strings.TrimSpace(products.Value(row, models.ColProductID)), 10, 64)
		cid, _ := strconv.ParseInt(strings.TrimSpace(products.Value(row, models.ColCombinationID)), 10, 64)
		identities[sku] = identity{productID: pid, combinationID: cid}
	}
	return identities, nil
}
