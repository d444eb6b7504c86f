/*
ledger.go - Ticket ledger workbook

The ledger workbook has a single sheet, "Insertions", with a styled header
row and auto-filter enabled for the shop staff who open it directly.
Tickets are appended one row at a time and written through immediately;
the display number is recomputed from the stored row count on every
append, never kept as a separate identity.
*/
package excel

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/geantfroid/sav-engine/catalog"
)

const ledgerSheet = "Insertions"

var ledgerHeaders = []string{
	"#", "Client", "Produit", "Type de produit", "N° de série",
	"Garantie", "Date produit", "Panne", "Réparation effectuée",
	"PDR consommée", "Statut", "Centre", "Date réception", "Date réparation",
}

// createLedger writes a fresh ledger workbook with the styled header row.
func (s *Store) createLedger() error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return err
	}
	if err := setRow(f, ledgerSheet, 1, toCells(ledgerHeaders)); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"CCCCCC"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ledgerSheet, "A1", "N1", style); err != nil {
		return err
	}
	if err := f.AutoFilter(ledgerSheet, "A1:N1", nil); err != nil {
		return err
	}
	return f.SaveAs(s.ledgerPath)
}

// AppendTicket computes the display number from the current row count,
// appends the ticket as a new row and saves immediately. A missing ledger
// workbook is created first.
func (s *Store) AppendTicket(_ context.Context, t catalog.Ticket) (catalog.Ticket, error) {
	if _, err := os.Stat(s.ledgerPath); os.IsNotExist(err) {
		if err := s.createLedger(); err != nil {
			return catalog.Ticket{}, err
		}
	}
	f, err := excelize.OpenFile(s.ledgerPath)
	if err != nil {
		return catalog.Ticket{}, fmt.Errorf("open ledger workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ledgerSheet)
	if err != nil {
		return catalog.Ticket{}, err
	}
	// Header occupies row 1, so the row count is also the next number.
	t.Number = len(rows)
	if t.Number < 1 {
		t.Number = 1
	}
	if err := setRow(f, ledgerSheet, t.Number+1, ticketRow(t)); err != nil {
		return catalog.Ticket{}, err
	}
	if err := f.Save(); err != nil {
		return catalog.Ticket{}, err
	}

	s.log.Debug().Int("number", t.Number).Str("client", t.Client).Msg("ticket appended")
	return t, nil
}

// ListTickets returns every stored ticket in append order. A missing
// ledger workbook is simply an empty ledger.
func (s *Store) ListTickets(_ context.Context) ([]catalog.Ticket, error) {
	if _, err := os.Stat(s.ledgerPath); os.IsNotExist(err) {
		return nil, nil
	}
	f, err := excelize.OpenFile(s.ledgerPath)
	if err != nil {
		return nil, fmt.Errorf("open ledger workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ledgerSheet)
	if err != nil {
		return nil, err
	}
	var tickets []catalog.Ticket
	for i, row := range rows {
		if i == 0 || cellInt(row, 0) == 0 {
			continue
		}
		tickets = append(tickets, ticketFromRow(row))
	}
	return tickets, nil
}

func ticketRow(t catalog.Ticket) []interface{} {
	return []interface{}{
		t.Number, t.Client, t.Product, t.Model, t.Serial,
		t.Warranty, t.ProductDate, t.Fault, t.Repair,
		t.SparePart, t.Status, t.Center, t.ReceivedDate, t.RepairedDate,
	}
}

// ticketFromRow maps columns positionally, substituting the empty string
// for any missing trailing column.
func ticketFromRow(row []string) catalog.Ticket {
	return catalog.Ticket{
		Number:       cellInt(row, 0),
		Client:       cellStr(row, 1),
		Product:      cellStr(row, 2),
		Model:        cellStr(row, 3),
		Serial:       cellStr(row, 4),
		Warranty:     cellStr(row, 5),
		ProductDate:  cellStr(row, 6),
		Fault:        cellStr(row, 7),
		Repair:       cellStr(row, 8),
		SparePart:    cellStr(row, 9),
		Status:       cellStr(row, 10),
		Center:       cellStr(row, 11),
		ReceivedDate: cellStr(row, 12),
		RepairedDate: cellStr(row, 13),
	}
}
