package catalog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geantfroid/sav-engine/catalog"
	"github.com/geantfroid/sav-engine/store"
)

func validTicket(client string) catalog.Ticket {
	return catalog.Ticket{
		Client:  client,
		Product: "RÉFRIGÉRATEUR",
		Model:   "GF-240",
		Status:  "Réparé",
	}
}

func TestLedger_SequentialDisplayNumbers(t *testing.T) {
	// GIVEN: An empty ledger
	// WHEN:  Appending N tickets in sequence
	// THEN:  Display numbers are exactly 1..N in append order

	ledger := catalog.NewLedger(store.NewMemory())
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		saved, err := ledger.Append(ctx, validTicket(fmt.Sprintf("Client %d", i)))
		require.NoError(t, err)
		assert.Equal(t, i, saved.Number)
	}

	tickets, err := ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 5)
	for i, ticket := range tickets {
		assert.Equal(t, i+1, ticket.Number)
		assert.Equal(t, fmt.Sprintf("Client %d", i+1), ticket.Client)
	}
}

func TestLedger_MandatoryFields(t *testing.T) {
	ledger := catalog.NewLedger(store.NewMemory())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*catalog.Ticket)
		field  string
	}{
		{"missing client", func(t *catalog.Ticket) { t.Client = "  " }, "client"},
		{"missing product", func(t *catalog.Ticket) { t.Product = "" }, "product"},
		{"missing model", func(t *catalog.Ticket) { t.Model = "" }, "model"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ticket := validTicket("A. Meziane")
			tc.mutate(&ticket)

			_, err := ledger.Append(ctx, ticket)
			require.Error(t, err)
			assert.ErrorIs(t, err, catalog.ErrMissingField)

			var missing *catalog.MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tc.field, missing.Field)
		})
	}

	// Nothing was appended by the rejected tickets.
	tickets, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestLedger_OptionalFieldsMayBeEmpty(t *testing.T) {
	ledger := catalog.NewLedger(store.NewMemory())

	ticket := catalog.Ticket{Client: "B. Saidi", Product: "CONGÉLATEUR", Model: "GC-110"}
	saved, err := ledger.Append(context.Background(), ticket)

	require.NoError(t, err)
	assert.Equal(t, 1, saved.Number)
	assert.Equal(t, "", saved.Repair)
}
