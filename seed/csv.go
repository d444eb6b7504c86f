/*
Package seed converts the legacy codification CSV into a catalog snapshot.

PURPOSE:
  The reference taxonomy originally lived in one hand-maintained
  spreadsheet ("NOUVEAU CODIFICATIO"), exported to CSV. This package is
  the one-time conversion used at setup: it walks the sheet's layout —
  product-type header rows, model rows, then fault/cause/fix rows spread
  across fixed columns — and builds a Snapshot ready for Store.SaveAll.

LAYOUT RECOVERED FROM THE LEGACY SHEET:
  - column 2: product-type headers (misspelled in the source, normalized
    here) and model names
  - column 3: fault code, which doubles as the model-row detector (fault
    codes contain "-" or start with REF/CON/FON)
  - columns 3..8: fault code, fault name, cause code, cause name, fix
    code, fix text
  The sheet ends with an incomplete "NO FROST INVERTER" section that is
  deliberately not converted.

DEDUPLICATION:
  Faults deduplicate by name within their product, causes by name within
  their fault (the legacy sheet repeats them per combination); fixes are
  kept as-is.
*/
package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/geantfroid/sav-engine/catalog"
)

// Product-type header spellings as they appear in the legacy sheet,
// mapped to their normalized names.
var productNames = map[string]string{
	"REFREGERATEUR":            "RÉFRIGÉRATEUR",
	"CONGELATEUR":              "CONGÉLATEUR",
	"REFREGERATEUR PRESONTOIR": "RÉFRIGÉRATEUR PRÉSENTOIR",
	"FONAINE FRECH":            "FONTAINE FRAÎCHE",
}

const rootFamily = "FROID"

// FromFile converts the codification CSV at path into a snapshot.
func FromFile(path string) (*catalog.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open codification csv: %w", err)
	}
	defer f.Close()
	return FromReader(f)
}

// FromReader converts codification CSV data into a snapshot. The default
// admin account is included so the resulting store is usable immediately.
func FromReader(r io.Reader) (*catalog.Snapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read codification csv: %w", err)
	}

	snap := catalog.NewSnapshot()
	family := snap.AddFamily(rootFamily)

	// Scope-keyed dedup maps, as the legacy sheet repeats names.
	modelSeen := make(map[string]bool)
	faultIDs := make(map[string]int)
	causeIDs := make(map[string]int)

	currentProductID := 0

rows:
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}

		if name := field(row, 2); name != "" {
			upper := strings.ToUpper(name)

			// The trailing section was never finished in the source sheet.
			if strings.Contains(upper, "NO FROST INVERTER") {
				break rows
			}

			if normalized, ok := productNames[upper]; ok {
				currentProductID = productID(snap, family.ID, normalized)
				continue
			}

			// A model row carries the model name in column 2 and a fault
			// code alongside in column 3.
			if currentProductID != 0 && looksLikeFaultCode(field(row, 3)) {
				key := fmt.Sprintf("%d_%s", currentProductID, name)
				if !modelSeen[key] {
					snap.AddModel(currentProductID, name)
					modelSeen[key] = true
				}
			}
		}

		if currentProductID == 0 || len(row) < 9 {
			continue
		}
		faultCode := field(row, 3)
		faultName := field(row, 4)
		causeCode := field(row, 5)
		causeName := field(row, 6)
		fixCode := field(row, 7)
		fixText := field(row, 8)

		// Repeated in-sheet header rows.
		if strings.EqualFold(faultCode, "CODE PANNE") || strings.EqualFold(faultName, "PANNE") {
			continue
		}
		if faultCode == "" || faultName == "" || causeCode == "" || causeName == "" {
			continue
		}

		faultKey := fmt.Sprintf("%d_%s", currentProductID, faultName)
		faultID, ok := faultIDs[faultKey]
		if !ok {
			faultID = snap.AddFault(currentProductID, faultCode, faultName).ID
			faultIDs[faultKey] = faultID
		}

		causeKey := fmt.Sprintf("%d_%s", faultID, causeName)
		causeID, ok := causeIDs[causeKey]
		if !ok {
			causeID = snap.AddCause(faultID, causeCode, causeName).ID
			causeIDs[causeKey] = causeID
		}

		if fixCode != "" && fixText != "" {
			snap.AddFix(causeID, fixCode, fixText)
		}
	}

	snap.AddUser("admin", "admin123", catalog.RoleAdmin)
	return snap, nil
}

// productID returns the product's ID, creating it on first sight.
func productID(snap *catalog.Snapshot, familyID int, name string) int {
	for _, p := range snap.Products {
		if p.Name == name {
			return p.ID
		}
	}
	return snap.AddProduct(familyID, name).ID
}

// looksLikeFaultCode reports whether the cell next to a candidate model
// name carries a fault code.
func looksLikeFaultCode(v string) bool {
	if v == "" {
		return false
	}
	return strings.Contains(v, "-") ||
		strings.HasPrefix(v, "REF") ||
		strings.HasPrefix(v, "CON") ||
		strings.HasPrefix(v, "FON")
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
