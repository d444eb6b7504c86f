/*
import.go - Merge-import from foreign workbooks

A merge-import source is any workbook containing zero or more of the
recognized reference sheets with their columns in the fixed positional
order. Recognized rows are appended to the current snapshot with freshly
minted IDs (catalog.Merge); unrecognized sheets are silently skipped; the
Users sheet is never imported. The result is persisted with SaveAll.
*/
package excel

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/geantfroid/sav-engine/catalog"
)

// MergeImport implements catalog.Importer.
func (s *Store) MergeImport(ctx context.Context, sourcePath string) (catalog.ImportSummary, error) {
	snap, err := s.LoadAll(ctx)
	if errors.Is(err, catalog.ErrStoreMissing) {
		snap = catalog.NewSnapshot()
	} else if err != nil {
		return catalog.ImportSummary{}, err
	}

	src, err := excelize.OpenFile(sourcePath)
	if err != nil {
		return catalog.ImportSummary{}, &catalog.ImportError{
			Source: sourcePath, Reason: "cannot open source document", Err: err,
		}
	}
	imported := readSnapshot(src)
	src.Close()

	sum := catalog.Merge(snap, imported)
	if sum.Total() == 0 {
		return catalog.ImportSummary{}, &catalog.ImportError{
			Source: sourcePath, Reason: "no data found", Err: catalog.ErrNoImportData,
		}
	}
	if err := s.SaveAll(ctx, snap); err != nil {
		return catalog.ImportSummary{}, err
	}

	for _, c := range sum.Counts {
		s.log.Info().Str("collection", c.Collection).Int("rows", c.Rows).Msg("merge-imported")
	}
	return sum, nil
}

// ImportAgents imports approved agents from a simple listing workbook:
// first sheet, first row a header, then Nom_Prenom | Telephone | Wilaya |
// Adresse. IDs are assigned fresh, and the result is persisted.
func (s *Store) ImportAgents(ctx context.Context, sourcePath string) (int, error) {
	snap, err := s.LoadAll(ctx)
	if errors.Is(err, catalog.ErrStoreMissing) {
		snap = catalog.NewSnapshot()
	} else if err != nil {
		return 0, err
	}

	src, err := excelize.OpenFile(sourcePath)
	if err != nil {
		return 0, &catalog.ImportError{Source: sourcePath, Reason: "cannot open source document", Err: err}
	}
	defer src.Close()

	sheets := src.GetSheetList()
	if len(sheets) == 0 {
		return 0, &catalog.ImportError{Source: sourcePath, Reason: "no data found", Err: catalog.ErrNoImportData}
	}
	rows, err := src.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	count := 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		name := cellStr(row, 0)
		if name == "" {
			continue
		}
		snap.AddAgent(name, cellStr(row, 1), cellStr(row, 2), cellStr(row, 3))
		count++
	}
	if count == 0 {
		return 0, &catalog.ImportError{Source: sourcePath, Reason: "no data found", Err: catalog.ErrNoImportData}
	}
	if err := s.SaveAll(ctx, snap); err != nil {
		return 0, err
	}
	s.log.Info().Int("rows", count).Msg("agents imported")
	return count, nil
}
