/*
merge.go - Merge-append of an imported snapshot into an existing one

PURPOSE:
  The pure half of merge-import: given the current snapshot and a partial
  snapshot read from an external document, append every imported row with a
  freshly minted ID. ID counters run per collection, independently, from
  max(existing)+1, so existing IDs never change and new IDs are strictly
  increasing.

NO DEDUPLICATION:
  Imports never deduplicate against existing entities by name: importing
  the same family twice produces two family rows with different IDs. The
  parent IDs carried by imported child rows are kept as-is; merge-import is
  an append of rows, not a re-link of the hierarchy.

USERS:
  The Users collection is never merge-imported. Credentials are only
  created through the editing surface.
*/
package catalog

// ImportCount is one collection's imported row count.
type ImportCount struct {
	Collection string
	Rows       int
}

// ImportSummary reports what a merge-import appended, in workbook sheet
// order, collections with zero rows omitted.
type ImportSummary struct {
	Counts []ImportCount
}

// Total returns the number of rows imported across all collections.
func (s ImportSummary) Total() int {
	n := 0
	for _, c := range s.Counts {
		n += c.Rows
	}
	return n
}

func (s *ImportSummary) add(collection string, rows int) {
	if rows > 0 {
		s.Counts = append(s.Counts, ImportCount{Collection: collection, Rows: rows})
	}
}

// Merge appends src's rows to dst with fresh IDs and returns the
// per-collection counts. src.Users is ignored.
func Merge(dst, src *Snapshot) ImportSummary {
	var sum ImportSummary

	next := maxFamilyID(dst.Families) + 1
	for _, it := range src.Families {
		it.ID = next
		next++
		dst.Families = append(dst.Families, it)
	}
	sum.add("Familles", len(src.Families))

	next = maxProductID(dst.Products) + 1
	for _, it := range src.Products {
		it.ID = next
		next++
		dst.Products = append(dst.Products, it)
	}
	sum.add("Produits", len(src.Products))

	next = maxModelID(dst.Models) + 1
	for _, it := range src.Models {
		it.ID = next
		next++
		dst.Models = append(dst.Models, it)
	}
	sum.add("Models", len(src.Models))

	next = maxFaultID(dst.Faults) + 1
	for _, it := range src.Faults {
		it.ID = next
		next++
		dst.Faults = append(dst.Faults, it)
	}
	sum.add("Pannes", len(src.Faults))

	next = maxCauseID(dst.Causes) + 1
	for _, it := range src.Causes {
		it.ID = next
		next++
		dst.Causes = append(dst.Causes, it)
	}
	sum.add("Causes", len(src.Causes))

	next = maxFixID(dst.Fixes) + 1
	for _, it := range src.Fixes {
		it.ID = next
		next++
		dst.Fixes = append(dst.Fixes, it)
	}
	sum.add("Solutions", len(src.Fixes))

	next = maxSparePartID(dst.SpareParts) + 1
	for _, it := range src.SpareParts {
		it.ID = next
		next++
		dst.SpareParts = append(dst.SpareParts, it)
	}
	sum.add("PDR", len(src.SpareParts))

	next = maxCenterID(dst.Centers) + 1
	for _, it := range src.Centers {
		it.ID = next
		next++
		dst.Centers = append(dst.Centers, it)
	}
	sum.add("Centres", len(src.Centers))

	next = maxAgentID(dst.Agents) + 1
	for _, it := range src.Agents {
		it.ID = next
		next++
		dst.Agents = append(dst.Agents, it)
	}
	sum.add("Agents", len(src.Agents))

	return sum
}
