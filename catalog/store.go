/*
store.go - Persistence contract for the reference store and ticket ledger

PURPOSE:
  Defines the interface between the domain logic and the backing tabular
  documents. Implementations:
  - store/excel: production workbook-backed store (the workbook doubles as
    the human-editable save format)
  - store:       in-memory store for tests and dev

SEMANTICS:
  - LoadAll/SaveAll operate on full snapshots. SaveAll performs a full
    replace of every collection's data rows while keeping the header row.
    No partial-write rollback exists; an interrupted write can corrupt the
    document (accepted risk, single-writer design).
  - AppendTicket writes through immediately; it is not part of SaveAll's
    batched semantics.
  - Each call opens the document, works, and closes it: no handle is held
    across calls, and nothing is cached between them.

APPEND-ONLY CONTRACT:
  Tickets have Append and List only. No Update, no Delete.
*/
package catalog

import "context"

// Store handles persistence of the reference snapshot and the ticket
// ledger.
type Store interface {
	// LoadAll reads every reference collection from the backing document.
	// Returns ErrStoreMissing when the document does not exist yet.
	LoadAll(ctx context.Context) (*Snapshot, error)

	// SaveAll replaces every collection's rows with the given snapshot.
	SaveAll(ctx context.Context, snap *Snapshot) error

	// AppendTicket assigns the next display number (count of stored
	// tickets + 1), appends the ticket, persists immediately, and returns
	// the ticket with its number filled in.
	AppendTicket(ctx context.Context, t Ticket) (Ticket, error)

	// ListTickets returns all tickets in storage (append) order.
	ListTickets(ctx context.Context) ([]Ticket, error)
}

// Importer extends a Store with bulk merge-import from an external tabular
// document. Not every Store can read foreign documents, so this is a
// separate capability.
type Importer interface {
	Store

	// MergeImport reads every recognized collection table from the source
	// document, appends its rows to the current snapshot with freshly
	// minted IDs (max(existing)+1 per collection, independently), persists
	// via SaveAll, and reports per-collection counts. Unrecognized tables
	// are silently skipped. Returns an ImportError wrapping
	// ErrNoImportData when nothing matched.
	MergeImport(ctx context.Context, sourcePath string) (ImportSummary, error)
}
