package excel_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geantfroid/sav-engine/catalog"
)

// writeReportDocument builds a monthly report workbook the way the report
// step produces them: decorative title rows, then the ledger header, then
// the data rows.
func writeReportDocument(t *testing.T, dir string) string {
	t.Helper()
	return writeSourceWorkbookAt(t, filepath.Join(dir, "rapport_aout.xlsx"), map[string][][]interface{}{
		"Insertions": {
			{"Direction SAV Géant Froid"},
			{"Centre SAV"},
			{"Rapport Mois"},
			{"#", "Client", "Produit", "Type de produit", "N° de série",
				"Garantie", "Date produit", "Panne", "Réparation effectuée",
				"PDR consommée", "Statut", "Centre", "Date réception", "Date réparation"},
			{1, "A. Meziane", "RÉFRIGÉRATEUR", "GF-240", "SN-0042",
				"Sous garantie", "2024-03-12", "No Cooling", "Replace compressor",
				"Compresseur 1/4HP", "Réparé", "Centre BBA", "2026-08-01", "2026-08-03"},
			{2, "B. Saidi", "CONGÉLATEUR", "GC-110", "SN-0043",
				"Hors garantie", "", "Noisy", "", "", "En attente PDR", "Centre BBA", "2026-08-02", ""},
		},
	})
}

func TestArchive_CollisionSuffixes(t *testing.T) {
	// GIVEN: A report archived three times under the same filename
	// THEN:  The copies are stored as base, base_1, base_2

	s := newTestStore(t)
	ctx := context.Background()
	report := writeReportDocument(t, t.TempDir())

	first, err := s.Archive(ctx, report)
	require.NoError(t, err)
	assert.Equal(t, "rapport_aout.xlsx", first.Filename)

	second, err := s.Archive(ctx, report)
	require.NoError(t, err)
	assert.Equal(t, "rapport_aout_1.xlsx", second.Filename)

	third, err := s.Archive(ctx, report)
	require.NoError(t, err)
	assert.Equal(t, "rapport_aout_2.xlsx", third.Filename)

	// Copies are byte-for-byte identical to the source.
	want, err := os.ReadFile(report)
	require.NoError(t, err)
	got, err := os.ReadFile(third.Path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestArchive_UnreadableSource_ArchiveError(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Archive(context.Background(), filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)

	var ae *catalog.ArchiveError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "cannot read source", ae.Reason)
}

func TestListArchives_EmptyBeforeFirstArchive(t *testing.T) {
	s := newTestStore(t)

	entries, err := s.ListArchives(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListArchives_ReturnsStoredCopies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	report := writeReportDocument(t, t.TempDir())

	_, err := s.Archive(ctx, report)
	require.NoError(t, err)
	_, err = s.Archive(ctx, report)
	require.NoError(t, err)

	entries, err := s.ListArchives(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "rapport_aout.xlsx", entries[0].Filename)
	assert.Equal(t, "rapport_aout_1.xlsx", entries[1].Filename)
	assert.Positive(t, entries[0].Size)
}

func TestArchivePath_StripsDirectories(t *testing.T) {
	s := newTestStore(t)

	path := s.ArchivePath("../../etc/passwd")
	assert.Equal(t, "passwd", filepath.Base(path))
	assert.NotContains(t, path, "..")
}

func TestReadArchive_SkipsDecorativeAndHeaderRows(t *testing.T) {
	// GIVEN: An archived report with three title rows, the header row and
	//        two data rows
	// WHEN:  Reading it back
	// THEN:  Exactly the two data rows come out as tickets

	s := newTestStore(t)
	ctx := context.Background()
	report := writeReportDocument(t, t.TempDir())

	entry, err := s.Archive(ctx, report)
	require.NoError(t, err)

	tickets, err := s.ReadArchive(ctx, entry.Path)
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	assert.Equal(t, 1, tickets[0].Number)
	assert.Equal(t, "A. Meziane", tickets[0].Client)
	assert.Equal(t, "Replace compressor", tickets[0].Repair)
	assert.Equal(t, 2, tickets[1].Number)
	assert.Equal(t, "En attente PDR", tickets[1].Status)
	assert.Equal(t, "", tickets[1].RepairedDate)
}

func TestReadArchive_PlainLedgerWithoutTitles(t *testing.T) {
	// Archives made before the report step added titles start straight at
	// the header row.
	s := newTestStore(t)
	ctx := context.Background()

	path := writeSourceWorkbookAt(t, filepath.Join(t.TempDir(), "ancien.xlsx"), map[string][][]interface{}{
		"Insertions": {
			{"#", "Client", "Produit", "Type de produit"},
			{1, "C. Brahimi", "RÉFRIGÉRATEUR", "GF-320"},
		},
	})

	tickets, err := s.ReadArchive(ctx, path)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "C. Brahimi", tickets[0].Client)
}

func TestReadArchive_UnreadableDocument_ArchiveError(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ReadArchive(context.Background(), filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)

	var ae *catalog.ArchiveError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "cannot read archive", ae.Reason)
}
