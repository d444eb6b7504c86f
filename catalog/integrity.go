/*
integrity.go - Referential-integrity audit

The store never enforces parent references: the original data contains
orphaned rows and the editing surface may create more by deleting a parent.
CheckIntegrity reports every dangling reference so callers can log or
display them. Saving a snapshot with issues is allowed.
*/
package catalog

import "fmt"

// IntegrityIssue describes one dangling parent reference.
type IntegrityIssue struct {
	Collection string
	ID         int
	Parent     string
	ParentID   int
}

func (i IntegrityIssue) String() string {
	return fmt.Sprintf("%s %d references missing %s %d", i.Collection, i.ID, i.Parent, i.ParentID)
}

// CheckIntegrity returns every child row whose parent ID resolves to no
// existing parent. An empty result means the snapshot is fully linked.
func CheckIntegrity(s *Snapshot) []IntegrityIssue {
	families := make(map[int]bool, len(s.Families))
	for _, f := range s.Families {
		families[f.ID] = true
	}
	products := make(map[int]bool, len(s.Products))
	for _, p := range s.Products {
		products[p.ID] = true
	}
	faults := make(map[int]bool, len(s.Faults))
	for _, f := range s.Faults {
		faults[f.ID] = true
	}
	causes := make(map[int]bool, len(s.Causes))
	for _, c := range s.Causes {
		causes[c.ID] = true
	}

	var issues []IntegrityIssue
	for _, p := range s.Products {
		if !families[p.FamilyID] {
			issues = append(issues, IntegrityIssue{"Produits", p.ID, "Familles", p.FamilyID})
		}
	}
	for _, m := range s.Models {
		if !products[m.ProductID] {
			issues = append(issues, IntegrityIssue{"Models", m.ID, "Produits", m.ProductID})
		}
	}
	for _, f := range s.Faults {
		if !products[f.ProductID] {
			issues = append(issues, IntegrityIssue{"Pannes", f.ID, "Produits", f.ProductID})
		}
	}
	for _, c := range s.Causes {
		if !faults[c.FaultID] {
			issues = append(issues, IntegrityIssue{"Causes", c.ID, "Pannes", c.FaultID})
		}
	}
	for _, f := range s.Fixes {
		if !causes[f.CauseID] {
			issues = append(issues, IntegrityIssue{"Solutions", f.ID, "Causes", f.CauseID})
		}
	}
	return issues
}
