package rowstore

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// replaceBatchSize caps single INSERT statements during Replace so a full
// catalog rewrite stays under the server's packet ceiling.
const replaceBatchSize = 500

// sheetRow is one table row persisted as a JSON-encoded cell array.
type sheetRow struct {
	Sheet  string `gorm:"column:sheet;primaryKey;size:64"`
	RowIdx int    `gorm:"column:row_idx;primaryKey"`
	Cells  string `gorm:"column:cells;type:text"`
}

func (sheetRow) TableName() string {
	return "sheet_rows"
}

// SQLStore persists tables in a relational database through GORM. Each row
// keeps its position explicitly, so append order survives round trips.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore creates a SQL-backed row store.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates the backing table if it does not exist.
func (s *SQLStore) Migrate() error {
	return s.db.AutoMigrate(&sheetRow{})
}

func (s *SQLStore) ReadAll(ctx context.Context, table string) ([][]string, error) {
	var recs []sheetRow
	err := s.db.WithContext(ctx).
		Where("sheet = ?", table).
		Order("row_idx").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	if len(recs) == 0 {
		return nil, nil
	}

	rows := make([][]string, len(recs))
	for i, rec := range recs {
		var cells []string
		if err := json.Unmarshal([]byte(rec.Cells), &cells); err != nil {
			return nil, fmt.Errorf("table %s row %d: malformed cells: %w", table, rec.RowIdx, err)
		}
		rows[i] = cells
	}
	return rows, nil
}

func (s *SQLStore) WriteRange(ctx context.Context, table string, start int, rows [][]string) error {
	recs, err := encodeRows(table, start, rows)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&recs).Error
	if err != nil {
		return fmt.Errorf("failed to write table %s: %w", table, err)
	}
	return nil
}

func (s *SQLStore) Append(ctx context.Context, table string, rows [][]string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int
		err := tx.Model(&sheetRow{}).
			Where("sheet = ?", table).
			Select("COALESCE(MAX(row_idx) + 1, 0)").
			Scan(&next).Error
		if err != nil {
			return fmt.Errorf("failed to size table %s: %w", table, err)
		}

		recs, err := encodeRows(table, next, rows)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		if err := tx.Create(&recs).Error; err != nil {
			return fmt.Errorf("failed to append to table %s: %w", table, err)
		}
		return nil
	})
}

func (s *SQLStore) Replace(ctx context.Context, table string, rows [][]string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sheet = ?", table).Delete(&sheetRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
		recs, err := encodeRows(table, 0, rows)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&recs, replaceBatchSize).Error; err != nil {
			return fmt.Errorf("failed to fill table %s: %w", table, err)
		}
		return nil
	})
}

func encodeRows(table string, start int, rows [][]string) ([]sheetRow, error) {
	recs := make([]sheetRow, 0, len(rows))
	for i, row := range rows {
		if row == nil {
			row = []string{}
		}
		cells, err := json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("table %s row %d: %w", table, start+i, err)
		}
		recs = append(recs, sheetRow{Sheet: table, RowIdx: start + i, Cells: string(cells)})
	}
	return recs, nil
}
