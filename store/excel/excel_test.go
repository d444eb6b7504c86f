package excel_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/geantfroid/sav-engine/catalog"
	"github.com/geantfroid/sav-engine/store/excel"
)

func newTestStore(t *testing.T) *excel.Store {
	t.Helper()
	s, err := excel.New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestLoadAll_MissingWorkbook_ErrStoreMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadAll(context.Background())
	assert.ErrorIs(t, err, catalog.ErrStoreMissing)
}

func TestBootstrap_CreatesWorkbooksWithDefaultAdmin(t *testing.T) {
	// GIVEN: An empty data directory
	// WHEN:  Bootstrapping without initial data
	// THEN:  Both workbooks exist and the reference holds the default admin

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Bootstrap(ctx, nil))

	_, err := os.Stat(s.ReferencePath())
	require.NoError(t, err)
	_, err = os.Stat(s.LedgerPath())
	require.NoError(t, err)

	snap, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Users, 1)
	assert.Equal(t, "admin", snap.Users[0].Username)
	assert.Equal(t, "admin123", snap.Users[0].Password)
	assert.Equal(t, catalog.RoleAdmin, snap.Users[0].Role)
	assert.Empty(t, snap.Families)
}

func TestSaveAll_LoadAll_Roundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	snap := catalog.NewSnapshot()
	fam := snap.AddFamily("FROID")
	prod := snap.AddProduct(fam.ID, "RÉFRIGÉRATEUR")
	snap.AddModel(prod.ID, "GF-240")
	fault := snap.AddFault(prod.ID, "REF-01", "No Cooling")
	cause := snap.AddCause(fault.ID, "C-01", "Compressor failure")
	snap.AddFix(cause.ID, "S-01", "Replace compressor")
	snap.AddSparePart("PDR-77", "Compresseur 1/4HP")
	snap.AddCenter("Centre BBA")
	snap.AddAgent("K. Benali", "0550 00 00 00", "Bordj Bou Arréridj", "Cité 40 logements")
	snap.AddUser("admin", "admin123", catalog.RoleAdmin)

	require.NoError(t, s.SaveAll(ctx, snap))

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Families, loaded.Families)
	assert.Equal(t, snap.Products, loaded.Products)
	assert.Equal(t, snap.Models, loaded.Models)
	assert.Equal(t, snap.Faults, loaded.Faults)
	assert.Equal(t, snap.Causes, loaded.Causes)
	assert.Equal(t, snap.Fixes, loaded.Fixes)
	assert.Equal(t, snap.SpareParts, loaded.SpareParts)
	assert.Equal(t, snap.Centers, loaded.Centers)
	assert.Equal(t, snap.Agents, loaded.Agents)
	assert.Equal(t, snap.Users, loaded.Users)
}

func TestSaveAll_ReplacesPreviousRows(t *testing.T) {
	// A second SaveAll must not leave stale rows from the first one behind.
	s := newTestStore(t)
	ctx := context.Background()

	first := catalog.NewSnapshot()
	first.AddFamily("FROID")
	first.AddFamily("CUISSON")
	first.AddUser("admin", "admin123", catalog.RoleAdmin)
	require.NoError(t, s.SaveAll(ctx, first))

	second := catalog.NewSnapshot()
	second.AddFamily("LAVAGE")
	second.AddUser("admin", "admin123", catalog.RoleAdmin)
	require.NoError(t, s.SaveAll(ctx, second))

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Families, 1)
	assert.Equal(t, "LAVAGE", loaded.Families[0].Name)
}

func TestSaveAll_DanglingReference_StillSaves(t *testing.T) {
	// Orphaned rows are logged, not rejected: legacy workbooks contain them.
	s := newTestStore(t)
	ctx := context.Background()

	snap := &catalog.Snapshot{
		Products: []catalog.Product{{ID: 1, FamilyID: 99, Name: "RÉFRIGÉRATEUR"}},
	}
	require.NoError(t, s.SaveAll(ctx, snap))

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Products, 1)
	assert.Equal(t, 99, loaded.Products[0].FamilyID)
}

func TestAppendTicket_NumbersSurviveReopen(t *testing.T) {
	// GIVEN: Two tickets appended through one store
	// WHEN:  A fresh store opens the same directory and appends a third
	// THEN:  Numbering continues from the stored row count

	dir := t.TempDir()
	ctx := context.Background()

	s1, err := excel.New(dir, zerolog.Nop())
	require.NoError(t, err)

	t1, err := s1.AppendTicket(ctx, catalog.Ticket{Client: "A", Product: "RÉFRIGÉRATEUR", Model: "GF-240"})
	require.NoError(t, err)
	assert.Equal(t, 1, t1.Number)

	t2, err := s1.AppendTicket(ctx, catalog.Ticket{Client: "B", Product: "RÉFRIGÉRATEUR", Model: "GF-240"})
	require.NoError(t, err)
	assert.Equal(t, 2, t2.Number)

	s2, err := excel.New(dir, zerolog.Nop())
	require.NoError(t, err)
	t3, err := s2.AppendTicket(ctx, catalog.Ticket{Client: "C", Product: "CONGÉLATEUR", Model: "GC-110"})
	require.NoError(t, err)
	assert.Equal(t, 3, t3.Number)

	tickets, err := s2.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	assert.Equal(t, "A", tickets[0].Client)
	assert.Equal(t, "C", tickets[2].Client)
}

func TestAppendTicket_AllColumnsRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := catalog.Ticket{
		Client:       "A. Meziane",
		Product:      "RÉFRIGÉRATEUR",
		Model:        "GF-240",
		Serial:       "SN-0042",
		Warranty:     "Sous garantie",
		ProductDate:  "2024-03-12",
		Fault:        "No Cooling",
		Repair:       "Replace compressor",
		SparePart:    "Compresseur 1/4HP",
		Status:       "Réparé",
		Center:       "Centre BBA",
		ReceivedDate: "2026-08-01",
		RepairedDate: "2026-08-03",
	}
	saved, err := s.AppendTicket(ctx, in)
	require.NoError(t, err)

	tickets, err := s.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	in.Number = saved.Number
	assert.Equal(t, in, tickets[0])
}

func TestListTickets_MissingLedger_Empty(t *testing.T) {
	s := newTestStore(t)

	tickets, err := s.ListTickets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

// =============================================================================
// MERGE-IMPORT
// =============================================================================

// writeSourceWorkbook builds a foreign workbook for import tests.
func writeSourceWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()
	return writeSourceWorkbookAt(t, filepath.Join(t.TempDir(), "source.xlsx"), sheets)
}

func writeSourceWorkbookAt(t *testing.T, path string, sheets map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cells := row
			require.NoError(t, f.SetSheetRow(name, fmt.Sprintf("A%d", i+1), &cells))
		}
	}
	if len(sheets) > 0 {
		require.NoError(t, f.DeleteSheet("Sheet1"))
	}

	require.NoError(t, f.SaveAs(path))
	return path
}

func TestMergeImport_AppendsWithFreshIDs(t *testing.T) {
	// GIVEN: A store already holding one family and one center
	// WHEN:  Importing a workbook with a family, a center and a junk sheet
	// THEN:  Recognized rows are appended with fresh IDs, the junk sheet is
	//        skipped, and the result is persisted

	s := newTestStore(t)
	ctx := context.Background()

	existing := catalog.NewSnapshot()
	existing.AddFamily("FROID")
	existing.AddCenter("Centre BBA")
	existing.AddUser("admin", "admin123", catalog.RoleAdmin)
	require.NoError(t, s.SaveAll(ctx, existing))

	source := writeSourceWorkbook(t, map[string][][]interface{}{
		"Familles": {
			{"ID", "Famille"},
			{1, "CUISSON"},
		},
		"Centres": {
			{"ID", "Centre"},
			{1, "Centre Alger"},
			{2, "Centre Oran"},
		},
		"Feuille Libre": {
			{"whatever", "columns"},
		},
	})

	sum, err := s.MergeImport(ctx, source)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Total())

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Families, 2)
	assert.Equal(t, 2, loaded.Families[1].ID)
	assert.Equal(t, "CUISSON", loaded.Families[1].Name)
	require.Len(t, loaded.Centers, 3)
	assert.Equal(t, 3, loaded.Centers[2].ID)
}

func TestMergeImport_UsersSheetIgnored(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	source := writeSourceWorkbook(t, map[string][][]interface{}{
		"Familles": {
			{"ID", "Famille"},
			{1, "FROID"},
		},
		"Users": {
			{"ID", "Username", "Password", "Role"},
			{1, "eve", "x", "admin"},
		},
	})

	sum, err := s.MergeImport(ctx, source)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Total())

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Users)
}

func TestMergeImport_NoRecognizedData_ImportError(t *testing.T) {
	s := newTestStore(t)

	source := writeSourceWorkbook(t, map[string][][]interface{}{
		"Feuille Libre": {
			{"colonne", "autre"},
			{"x", "y"},
		},
	})

	_, err := s.MergeImport(context.Background(), source)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrNoImportData)

	var imp *catalog.ImportError
	require.ErrorAs(t, err, &imp)
	assert.Equal(t, "no data found", imp.Reason)
}

func TestMergeImport_UnreadableSource_ImportError(t *testing.T) {
	s := newTestStore(t)

	_, err := s.MergeImport(context.Background(), filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)

	var imp *catalog.ImportError
	require.ErrorAs(t, err, &imp)
	assert.Equal(t, "cannot open source document", imp.Reason)
}

func TestImportAgents_FromListingWorkbook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	source := writeSourceWorkbook(t, map[string][][]interface{}{
		"Agents agréés": {
			{"Nom_Prenom", "Telephone", "Wilaya", "Adresse"},
			{"K. Benali", "0550 00 00 00", "Bordj Bou Arréridj", "Cité 40 logements"},
			{"", "ignored: no name", "", ""},
			{"S. Hamidi", "0660 11 22 33", "Alger", ""},
		},
	})

	count, err := s.ImportAgents(ctx, source)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Agents, 2)
	assert.Equal(t, "K. Benali", loaded.Agents[0].Name)
	assert.Equal(t, "Alger", loaded.Agents[1].Wilaya)
}

func TestImportAgents_EmptyListing_ImportError(t *testing.T) {
	s := newTestStore(t)

	source := writeSourceWorkbook(t, map[string][][]interface{}{
		"Agents agréés": {
			{"Nom_Prenom", "Telephone", "Wilaya", "Adresse"},
		},
	})

	_, err := s.ImportAgents(context.Background(), source)
	assert.ErrorIs(t, err, catalog.ErrNoImportData)
}
