package inventory

import "time"

// Config holds the inventory feature settings: table names and the knobs of
// the batch jobs.
type Config struct {
	// ProductsTable is the product table name.
	ProductsTable string `mapstructure:"products_table" default:"Products"`
	// TransactionsTable is the append-only ledger table name.
	TransactionsTable string `mapstructure:"transactions_table" default:"Transactions"`
	// QueueTable is the sync queue table name.
	QueueTable string `mapstructure:"queue_table" default:"SyncQueue"`
	// PacingMS is the delay between successive remote calls in a drain pass,
	// in milliseconds. The remote API rate-limits aggressive clients.
	PacingMS int `mapstructure:"pacing_ms" default:"250"`
	// CacheTTLSeconds is the TTL of cached single-product lookups.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"60"`
}

// Pacing returns the drain pacing delay.
func (c Config) Pacing() time.Duration {
	if c.PacingMS <= 0 {
		return 0
	}
	return time.Duration(c.PacingMS) * time.Millisecond
}

// CacheTTL returns the product lookup cache TTL.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
