package models

// Column names for the three tables. Header matching is case-insensitive,
// these are the canonical spellings written when a table is created.
const (
	ColSKU           = "sku"
	ColCurrentStock  = "current_stock"
	ColProductID     = "product_id"
	ColCombinationID = "combination_id"
	ColName          = "name"
	ColOptionValues  = "option_values"
	ColEnabled       = "enabled"
	ColUnlimited     = "unlimited"
	ColImageURL      = "image_url"

	ColTS          = "ts"
	ColTargetStock = "target_stock"
	ColAllowRaise  = "allow_raise"
	ColStatus      = "status"
	ColLastError   = "last_error"

	ColUser      = "user"
	ColLocation  = "location"
	ColQtyChange = "qty_change"
	ColReason    = "reason"
	ColNote      = "note"
	ColOrigin    = "origin"
)

// Sync queue statuses. A record moves queued -> done|error exactly once per
// drain pass; done and error records are inert on re-drains.
const (
	StatusQueued = "queued"
	StatusDone   = "done"
	StatusError  = "error"
)

// CatalogColumns is the fixed, ordered set of catalog-owned columns. The
// merge engine overwrites exactly these from the remote catalog and appends
// any that are missing from an existing header, in this order.
var CatalogColumns = []string{
	ColProductID,
	ColCombinationID,
	ColSKU,
	ColName,
	ColOptionValues,
	ColEnabled,
	ColUnlimited,
	ColImageURL,
}

// QueueHeader is the sync queue header written when the table is created.
var QueueHeader = []string{ColTS, ColSKU, ColTargetStock, ColAllowRaise, ColStatus, ColLastError}

// LedgerHeader is the transaction ledger header written when the table is created.
var LedgerHeader = []string{ColTS, ColUser, ColSKU, ColLocation, ColQtyChange, ColReason, ColNote, ColOrigin}

// TxRequest is the canonical transaction-creation request. Every entry
// surface (HTTP, CLI) decodes into this one type before the core sees it.
type TxRequest struct {
	User      string  `json:"user"`
	SKU       string  `json:"sku"`
	Location  string  `json:"location"`
	QtyChange float64 `json:"qty_change"`
	Reason    string  `json:"reason"`
	Note      string  `json:"note"`
}

// TxResult reports a created transaction.
type TxResult struct {
	OK       bool    `json:"ok"`
	SKU      string  `json:"sku"`
	NewStock float64 `json:"new_stock"`
	Warning  string  `json:"warning,omitempty"`
}

// DrainReport summarizes one drain pass over the sync queue.
type DrainReport struct {
	OK      int `json:"ok"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// RefreshReport summarizes a full catalog refresh.
type RefreshReport struct {
	RowsWritten int `json:"rows_written"`
}

// ImportReport summarizes a single-product import.
type ImportReport struct {
	Updated int `json:"updated"`
	Added   int `json:"added"`
}

// BackfillReport summarizes an identity backfill pass.
type BackfillReport struct {
	Resolved int `json:"resolved"`
}
