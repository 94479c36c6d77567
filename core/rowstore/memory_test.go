package rowstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_MissingTableReadsEmpty(t *testing.T) {
	m := NewMemoryStore()

	rows, err := m.ReadAll(context.Background(), "Products")
	assert.NoError(t, err)
	assert.Nil(t, rows)
}

func TestMemoryStore_AppendAndRead(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, m.Append(ctx, "Products", [][]string{{"sku", "current_stock"}}))
	assert.NoError(t, m.Append(ctx, "Products", [][]string{{"A1", "5"}, {"B2", "0"}}))

	rows, err := m.ReadAll(ctx, "Products")
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, []string{"A1", "5"}, rows[1])
}

func TestMemoryStore_WriteRangeOverwritesAndExtends(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	m.Seed("Q", [][]string{{"h"}, {"a"}, {"b"}})

	assert.NoError(t, m.WriteRange(ctx, "Q", 2, [][]string{{"B"}, {"c"}}))

	rows, _ := m.ReadAll(ctx, "Q")
	assert.Equal(t, [][]string{{"h"}, {"a"}, {"B"}, {"c"}}, rows)
}

func TestMemoryStore_ReplaceSwapsWholeTable(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	m.Seed("Q", [][]string{{"h"}, {"a"}})

	assert.NoError(t, m.Replace(ctx, "Q", [][]string{{"h2"}, {"x"}, {"y"}}))

	rows, _ := m.ReadAll(ctx, "Q")
	assert.Equal(t, [][]string{{"h2"}, {"x"}, {"y"}}, rows)
}

func TestMemoryStore_ReadIsSnapshot(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	m.Seed("Q", [][]string{{"h"}, {"a"}})

	rows, _ := m.ReadAll(ctx, "Q")
	rows[1][0] = "mutated"

	again, _ := m.ReadAll(ctx, "Q")
	assert.Equal(t, "a", again[1][0])
}
