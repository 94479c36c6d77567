// Package inventory keeps a locally-edited product table and a remote store's
// inventory in agreement.
//
// Local stock movements append to a transaction ledger, mutate the product
// table, and enqueue sync records. A drain pass later pushes each record's
// absolute stock level to the remote API as a relative delta, clamped by the
// record's raise policy. The merge engine pulls the remote catalog back into
// the product table without disturbing locally-authored columns, and the
// backfill resolves remote identities for rows that only have a SKU.
//
// All engines are single-flight: they assume no concurrent writer on their
// tables, and the HTTP layer enforces that with a non-blocking job lock.
package inventory
