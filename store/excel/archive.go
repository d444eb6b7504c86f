/*
archive.go - Report archiving and heuristic ticket recovery

PURPOSE:
  Monthly report workbooks are copied into the archives/ directory as
  self-contained snapshots of the ledger at some prior point in time.
  Reading one back is heuristic: the report step injects decorative title
  rows (shop name, center, month) above the real header, and older
  archives differ in how many of those rows exist.

THE SKIP HEURISTIC:
  A row is skipped when, after trimming, its FIRST cell exactly equals one
  of a small fixed set of non-data tokens: the empty string, the header
  spellings ("#", "N°"), and the known report title labels. Every other
  row is treated as data and mapped positionally into the ticket shape.
  Best-effort by construction: a legitimate data row whose first cell
  happens to equal a reserved token is silently dropped, and a stray title
  outside the set comes through as a junk ticket. No structural marker in
  the source documents allows better.
*/
package excel

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/geantfroid/sav-engine/catalog"
)

// maxArchiveAttempts bounds the collision-suffix search so archiving
// always terminates.
const maxArchiveAttempts = 1000

// archiveSkipTokens are the first-cell values that mark a non-data row.
var archiveSkipTokens = map[string]bool{
	"":                          true,
	"#":                         true,
	"N°":                        true,
	"Direction SAV Géant Froid": true,
	"Centre SAV":                true,
	"Rapport Mois":              true,
}

// Archive copies the source document into the archive directory, creating
// it lazily. On a filename collision the stem gets _1, _2, … suffixes; if
// every candidate up to the attempt bound exists, the archive fails.
func (s *Store) Archive(_ context.Context, sourcePath string) (catalog.ArchiveEntry, error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		return catalog.ArchiveEntry{}, &catalog.ArchiveError{
			Source: sourcePath, Reason: "cannot read source", Err: err,
		}
	}
	defer src.Close()

	if err := os.MkdirAll(s.archivesPath, 0o755); err != nil {
		return catalog.ArchiveEntry{}, err
	}

	base := filepath.Base(sourcePath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	name := ""
	for attempt := 0; attempt < maxArchiveAttempts; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, attempt, ext)
		}
		if _, err := os.Stat(filepath.Join(s.archivesPath, candidate)); os.IsNotExist(err) {
			name = candidate
			break
		}
	}
	if name == "" {
		return catalog.ArchiveEntry{}, &catalog.ArchiveError{
			Source: sourcePath, Reason: "too many copies", Err: catalog.ErrTooManyCopies,
		}
	}

	storedPath := filepath.Join(s.archivesPath, name)
	dst, err := os.Create(storedPath)
	if err != nil {
		return catalog.ArchiveEntry{}, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return catalog.ArchiveEntry{}, err
	}
	if err := dst.Close(); err != nil {
		return catalog.ArchiveEntry{}, err
	}

	info, err := os.Stat(storedPath)
	if err != nil {
		return catalog.ArchiveEntry{}, err
	}
	s.log.Info().Str("filename", name).Int64("size", info.Size()).Msg("report archived")
	return catalog.ArchiveEntry{
		Filename: name,
		Path:     storedPath,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}, nil
}

// ListArchives returns the stored documents sorted by filename.
func (s *Store) ListArchives(_ context.Context) ([]catalog.ArchiveEntry, error) {
	entries, err := os.ReadDir(s.archivesPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []catalog.ArchiveEntry
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, catalog.ArchiveEntry{
			Filename: e.Name(),
			Path:     filepath.Join(s.archivesPath, e.Name()),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		})
	}
	return out, nil
}

// ArchivePath resolves a stored filename to its path inside the archive
// directory. The filename must be a bare name, not a path.
func (s *Store) ArchivePath(filename string) string {
	return filepath.Join(s.archivesPath, filepath.Base(filename))
}

// ReadArchive recovers ticket rows from an archived document. Rows caught
// by the skip heuristic are dropped silently; only the resulting tickets
// are reported.
func (s *Store) ReadArchive(_ context.Context, path string) ([]catalog.Ticket, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &catalog.ArchiveError{Source: path, Reason: "cannot read archive", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	sheet := sheets[0]
	if sheetExists(f, ledgerSheet) {
		sheet = ledgerSheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	var tickets []catalog.Ticket
	skipped := 0
	for _, row := range rows {
		if archiveSkipTokens[cellStr(row, 0)] {
			skipped++
			continue
		}
		tickets = append(tickets, ticketFromRow(row))
	}
	s.log.Debug().Str("path", path).Int("tickets", len(tickets)).Int("skipped", skipped).Msg("archive parsed")
	return tickets, nil
}
