/*
Package excel implements catalog.Store on top of spreadsheet workbooks.

PURPOSE:
  The workbooks ARE the database. Two documents live under the data
  directory:
  - codification_reference.xlsx: one sheet per reference collection
  - rapport_insertions.xlsx:     the ticket ledger, one data row per ticket
  Both are the human-editable save format: shop staff open them directly,
  so sheet names, header rows and column order are a fixed, positional
  contract.

FILE HANDLING:
  Every operation opens the workbook, performs its work, and closes it
  before returning. Nothing is cached between calls and no handle is held.
  SaveAll is a full replace of every sheet's data rows (the format has no
  in-place row update worth using); an interrupted write can corrupt the
  document — accepted risk under the single-writer assumption.

SEE ALSO:
  - ledger.go:  ticket workbook read/append
  - import.go:  merge-import from foreign workbooks
  - archive.go: report archiving and heuristic row recovery
*/
package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/geantfroid/sav-engine/catalog"
)

const (
	referenceFile = "codification_reference.xlsx"
	ledgerFile    = "rapport_insertions.xlsx"
	archivesDir   = "archives"
)

// Reference sheet names and their positional headers.
var referenceSheets = []struct {
	name    string
	headers []string
}{
	{"Familles", []string{"ID", "Famille"}},
	{"Produits", []string{"ID", "Famille_ID", "Produit"}},
	{"Models", []string{"ID", "Produit_ID", "Model"}},
	{"Pannes", []string{"ID", "Code", "Produit_ID", "Panne"}},
	{"Causes", []string{"ID", "Code", "Panne_ID", "Cause"}},
	{"Solutions", []string{"ID", "Code", "Cause_ID", "Solution"}},
	{"PDR", []string{"ID", "Code", "PDR"}},
	{"Centres", []string{"ID", "Centre"}},
	{"Agents", []string{"ID", "Nom_Prenom", "Telephone", "Wilaya", "Adresse"}},
	{"Users", []string{"ID", "Username", "Password", "Role"}},
}

// Store is the workbook-backed catalog.Store and catalog.Importer.
type Store struct {
	dir           string
	referencePath string
	ledgerPath    string
	archivesPath  string
	log           zerolog.Logger
}

// New returns a store rooted at dir. The data directory is created, but
// the workbooks are not: a missing reference workbook means "no data yet"
// and is reported by LoadAll as catalog.ErrStoreMissing.
func New(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{
		dir:           dir,
		referencePath: filepath.Join(dir, referenceFile),
		ledgerPath:    filepath.Join(dir, ledgerFile),
		archivesPath:  filepath.Join(dir, archivesDir),
		log:           log,
	}, nil
}

// ReferencePath returns the path of the reference workbook.
func (s *Store) ReferencePath() string { return s.referencePath }

// LedgerPath returns the path of the ticket ledger workbook.
func (s *Store) LedgerPath() string { return s.ledgerPath }

// =============================================================================
// WORKBOOK CREATION
// =============================================================================

// createReference writes a fresh reference workbook: every sheet with its
// header row, and the default admin account in Users.
func (s *Store) createReference() error {
	f := excelize.NewFile()
	defer f.Close()

	for _, sheet := range referenceSheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return err
		}
		if err := setRow(f, sheet.name, 1, toCells(sheet.headers)); err != nil {
			return err
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	// Default admin account, so a fresh install can be logged into.
	if err := setRow(f, "Users", 2, []interface{}{1, "admin", "admin123", catalog.RoleAdmin}); err != nil {
		return err
	}
	return f.SaveAs(s.referencePath)
}

// Bootstrap creates both workbooks if absent and, when snap is non-nil,
// saves it as the initial reference data. Used on first run and by the
// one-time codification seed.
func (s *Store) Bootstrap(ctx context.Context, snap *catalog.Snapshot) error {
	if _, err := os.Stat(s.referencePath); os.IsNotExist(err) {
		if err := s.createReference(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(s.ledgerPath); os.IsNotExist(err) {
		if err := s.createLedger(); err != nil {
			return err
		}
	}
	if snap != nil {
		return s.SaveAll(ctx, snap)
	}
	return nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// LoadAll reads every reference collection. Missing sheets load as empty
// collections; a missing workbook is catalog.ErrStoreMissing.
func (s *Store) LoadAll(_ context.Context) (*catalog.Snapshot, error) {
	if _, err := os.Stat(s.referencePath); os.IsNotExist(err) {
		return nil, catalog.ErrStoreMissing
	}
	f, err := excelize.OpenFile(s.referencePath)
	if err != nil {
		return nil, fmt.Errorf("open reference workbook: %w", err)
	}
	defer f.Close()

	snap := readSnapshot(f)
	s.log.Debug().
		Int("families", len(snap.Families)).
		Int("products", len(snap.Products)).
		Int("faults", len(snap.Faults)).
		Int("users", len(snap.Users)).
		Msg("reference data loaded")
	return snap, nil
}

// SaveAll replaces every sheet's data rows with the snapshot's rows. The
// header rows stay in place. A missing workbook is created first, so the
// initial save after a seed works without a separate setup step.
// Dangling parent references are logged, never rejected: the original data
// contains orphaned rows and remains loadable.
func (s *Store) SaveAll(_ context.Context, snap *catalog.Snapshot) error {
	for _, issue := range catalog.CheckIntegrity(snap) {
		s.log.Warn().Str("issue", issue.String()).Msg("saving snapshot with dangling reference")
	}

	if _, err := os.Stat(s.referencePath); os.IsNotExist(err) {
		if err := s.createReference(); err != nil {
			return err
		}
	}
	f, err := excelize.OpenFile(s.referencePath)
	if err != nil {
		return fmt.Errorf("open reference workbook: %w", err)
	}
	defer f.Close()

	if err := writeSnapshot(f, snap); err != nil {
		return err
	}
	return f.Save()
}

func writeSnapshot(f *excelize.File, snap *catalog.Snapshot) error {
	rows := make(map[string][][]interface{}, len(referenceSheets))
	for _, it := range snap.Families {
		rows["Familles"] = append(rows["Familles"], []interface{}{it.ID, it.Name})
	}
	for _, it := range snap.Products {
		rows["Produits"] = append(rows["Produits"], []interface{}{it.ID, it.FamilyID, it.Name})
	}
	for _, it := range snap.Models {
		rows["Models"] = append(rows["Models"], []interface{}{it.ID, it.ProductID, it.Name})
	}
	for _, it := range snap.Faults {
		rows["Pannes"] = append(rows["Pannes"], []interface{}{it.ID, it.Code, it.ProductID, it.Name})
	}
	for _, it := range snap.Causes {
		rows["Causes"] = append(rows["Causes"], []interface{}{it.ID, it.Code, it.FaultID, it.Name})
	}
	for _, it := range snap.Fixes {
		rows["Solutions"] = append(rows["Solutions"], []interface{}{it.ID, it.Code, it.CauseID, it.Text})
	}
	for _, it := range snap.SpareParts {
		rows["PDR"] = append(rows["PDR"], []interface{}{it.ID, it.Code, it.Name})
	}
	for _, it := range snap.Centers {
		rows["Centres"] = append(rows["Centres"], []interface{}{it.ID, it.Name})
	}
	for _, it := range snap.Agents {
		rows["Agents"] = append(rows["Agents"], []interface{}{it.ID, it.Name, it.Phone, it.Wilaya, it.Address})
	}
	for _, it := range snap.Users {
		rows["Users"] = append(rows["Users"], []interface{}{it.ID, it.Username, it.Password, it.Role})
	}

	for _, sheet := range referenceSheets {
		if err := replaceDataRows(f, sheet.name, sheet.headers, rows[sheet.name]); err != nil {
			return fmt.Errorf("rewrite sheet %s: %w", sheet.name, err)
		}
	}
	return nil
}

// replaceDataRows clears every row below the header and writes the given
// rows in order. Sheets absent from older workbooks are (re)created.
func replaceDataRows(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	if !sheetExists(f, sheet) {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := setRow(f, sheet, 1, toCells(headers)); err != nil {
			return err
		}
	}
	existing, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	for i := len(existing); i >= 2; i-- {
		if err := f.RemoveRow(sheet, i); err != nil {
			return err
		}
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// SHEET READING
// =============================================================================

// readSnapshot maps every recognized sheet positionally. Rows whose first
// cell does not parse to a positive ID are skipped, matching the on-disk
// convention that the ID column marks real data rows.
func readSnapshot(f *excelize.File) *catalog.Snapshot {
	snap := catalog.NewSnapshot()
	for _, row := range dataRows(f, "Familles") {
		snap.Families = append(snap.Families, catalog.Family{
			ID: cellInt(row, 0), Name: cellStr(row, 1),
		})
	}
	for _, row := range dataRows(f, "Produits") {
		snap.Products = append(snap.Products, catalog.Product{
			ID: cellInt(row, 0), FamilyID: cellInt(row, 1), Name: cellStr(row, 2),
		})
	}
	for _, row := range dataRows(f, "Models") {
		snap.Models = append(snap.Models, catalog.Model{
			ID: cellInt(row, 0), ProductID: cellInt(row, 1), Name: cellStr(row, 2),
		})
	}
	for _, row := range dataRows(f, "Pannes") {
		snap.Faults = append(snap.Faults, catalog.Fault{
			ID: cellInt(row, 0), Code: cellStr(row, 1), ProductID: cellInt(row, 2), Name: cellStr(row, 3),
		})
	}
	for _, row := range dataRows(f, "Causes") {
		snap.Causes = append(snap.Causes, catalog.Cause{
			ID: cellInt(row, 0), Code: cellStr(row, 1), FaultID: cellInt(row, 2), Name: cellStr(row, 3),
		})
	}
	for _, row := range dataRows(f, "Solutions") {
		snap.Fixes = append(snap.Fixes, catalog.Fix{
			ID: cellInt(row, 0), Code: cellStr(row, 1), CauseID: cellInt(row, 2), Text: cellStr(row, 3),
		})
	}
	for _, row := range dataRows(f, "PDR") {
		snap.SpareParts = append(snap.SpareParts, catalog.SparePart{
			ID: cellInt(row, 0), Code: cellStr(row, 1), Name: cellStr(row, 2),
		})
	}
	for _, row := range dataRows(f, "Centres") {
		snap.Centers = append(snap.Centers, catalog.Center{
			ID: cellInt(row, 0), Name: cellStr(row, 1),
		})
	}
	for _, row := range dataRows(f, "Agents") {
		snap.Agents = append(snap.Agents, catalog.Agent{
			ID: cellInt(row, 0), Name: cellStr(row, 1), Phone: cellStr(row, 2),
			Wilaya: cellStr(row, 3), Address: cellStr(row, 4),
		})
	}
	for _, row := range dataRows(f, "Users") {
		snap.Users = append(snap.Users, catalog.User{
			ID: cellInt(row, 0), Username: cellStr(row, 1), Password: cellStr(row, 2), Role: cellStr(row, 3),
		})
	}
	return snap
}

// dataRows returns the sheet's rows below the header that carry a positive
// ID in the first cell. A missing sheet yields no rows.
func dataRows(f *excelize.File, sheet string) [][]string {
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return nil
	}
	var out [][]string
	for _, row := range rows[1:] {
		if cellInt(row, 0) > 0 {
			out = append(out, row)
		}
	}
	return out
}

// =============================================================================
// CELL HELPERS
// =============================================================================

func cellStr(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func cellInt(row []string, i int) int {
	v := cellStr(row, i)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// Spreadsheet tools sometimes store integers as "3.0".
		fl, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return 0
		}
		return int(fl)
	}
	return n
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	return f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values)
}

func toCells(headers []string) []interface{} {
	out := make([]interface{}, len(headers))
	for i, h := range headers {
		out[i] = h
	}
	return out
}

func sheetExists(f *excelize.File, name string) bool {
	for _, s := range f.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}
