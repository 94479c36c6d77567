package rowstore

import "context"

// Store is a generic key-ordered row store with a header row at index 0.
// Rows are slices of string cells; numeric and boolean meaning is applied by
// the callers through core/utils. Implementations must keep row order stable:
// the drain engine addresses queue records by row position.
type Store interface {
	// ReadAll returns every row of the table, header included. A table that
	// does not exist yet reads as empty (nil, nil).
	ReadAll(ctx context.Context, table string) ([][]string, error)

	// WriteRange overwrites rows starting at the given row index (0 is the
	// header row). Writing past the current end extends the table.
	WriteRange(ctx context.Context, table string, start int, rows [][]string) error

	// Append adds rows at the end of the table.
	Append(ctx context.Context, table string, rows [][]string) error

	// Replace swaps the whole table content for the given rows. The live
	// table is never left partially overwritten: implementations stage the
	// new content (temp object, transaction) before promoting it.
	Replace(ctx context.Context, table string, rows [][]string) error
}

// Config selects and parameterizes the row-store driver.
type Config struct {
	// Driver is the row-store backend (memory, object, mysql).
	Driver string `mapstructure:"driver" default:"object"`
	// Prefix is the object-key prefix for the object driver.
	Prefix string `mapstructure:"prefix" default:"tables/"`
}

const (
	DriverMemory = "memory"
	DriverObject = "object"
	DriverMySQL  = "mysql"
)

// IsValidDriver checks if the configured driver is known.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverMemory, DriverObject, DriverMySQL:
		return true
	default:
		return false
	}
}
