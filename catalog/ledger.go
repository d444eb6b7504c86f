/*
ledger.go - Append-only repair ticket ledger

PURPOSE:
  The ticket ledger is the audit trail of repair intakes. It is layered on
  Store.AppendTicket/ListTickets and exposes no update or delete: history
  is never rewritten.

DISPLAY NUMBERS:
  Numbers are recomputed at append time from the stored ticket count; they
  are not an independent identity. Two processes appending concurrently can
  collide — the design assumes a single active writer.
*/
package catalog

import (
	"context"
	"strings"
)

// Ledger wraps a Store with ticket validation.
type Ledger struct {
	store Store
}

// NewLedger creates a ledger over the given store.
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Append validates the mandatory entry fields and appends the ticket.
// Client, Product and Model are required; everything else may be empty.
func (l *Ledger) Append(ctx context.Context, t Ticket) (Ticket, error) {
	if strings.TrimSpace(t.Client) == "" {
		return Ticket{}, &MissingFieldError{Field: "client"}
	}
	if strings.TrimSpace(t.Product) == "" {
		return Ticket{}, &MissingFieldError{Field: "product"}
	}
	if strings.TrimSpace(t.Model) == "" {
		return Ticket{}, &MissingFieldError{Field: "model"}
	}
	return l.store.AppendTicket(ctx, t)
}

// List returns all tickets in append order.
func (l *Ledger) List(ctx context.Context) ([]Ticket, error) {
	return l.store.ListTickets(ctx)
}
