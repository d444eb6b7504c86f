/*
resolver.go - Cascading selection queries over a Snapshot

PURPOSE:
  Drives the entry form's cascading dropdowns: family → product → model,
  and product → fault → cause → fix. Pure read-only queries; the resolver
  never mutates the snapshot it wraps.

NAME-BASED LOOKUP:
  The selection surface round-trips through display strings, so the fault
  and cause steps resolve by name equality within a parent-narrowed scope,
  not by retained numeric keys. Two sibling entities with identical names
  under the same parent are therefore indistinguishable: the first match in
  storage order wins. This is a policy choice, not a general join. Callers
  that retained identifiers can use the ID-based alternates instead.
*/
package catalog

// Resolver answers cascading selection queries against one snapshot.
type Resolver struct {
	snap *Snapshot
}

// NewResolver wraps a loaded snapshot.
func NewResolver(snap *Snapshot) *Resolver {
	return &Resolver{snap: snap}
}

// ProductsOf returns the products of a family, in storage order.
func (r *Resolver) ProductsOf(familyID int) []Product {
	var out []Product
	for _, p := range r.snap.Products {
		if p.FamilyID == familyID {
			out = append(out, p)
		}
	}
	return out
}

// ModelsOf returns the models of a product, in storage order.
func (r *Resolver) ModelsOf(productID int) []Model {
	var out []Model
	for _, m := range r.snap.Models {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

// FaultsOf returns the faults of a product de-duplicated by name, first
// occurrence wins. The same fault name may legitimately appear under
// different fault codes in the source data, but the selection surface must
// offer each name once.
func (r *Resolver) FaultsOf(productID int) []Fault {
	seen := make(map[string]bool)
	var out []Fault
	for _, f := range r.snap.Faults {
		if f.ProductID != productID || seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		out = append(out, f)
	}
	return out
}

// CausesOf resolves the fault matching the given product and fault name,
// then returns its causes. An unknown fault yields an empty result, not an
// error: the entry surface only asks about names it previously offered.
func (r *Resolver) CausesOf(faultName string, productID int) []Cause {
	fault, ok := r.faultByName(faultName, productID)
	if !ok {
		return nil
	}
	return r.CausesOfFault(fault.ID)
}

// FixFor resolves fault → cause by name within the product scope and
// returns the first fix's text in storage order. Empty string when the
// cause has no fix or the path does not resolve.
func (r *Resolver) FixFor(causeName, faultName string, productID int) string {
	fault, ok := r.faultByName(faultName, productID)
	if !ok {
		return ""
	}
	for _, c := range r.snap.Causes {
		if c.FaultID == fault.ID && c.Name == causeName {
			return r.FixForCause(c.ID)
		}
	}
	return ""
}

// =============================================================================
// ID-BASED ALTERNATES
// =============================================================================
// For callers that kept numeric keys instead of display strings.

// CausesOfFault returns the causes of a fault by retained ID.
func (r *Resolver) CausesOfFault(faultID int) []Cause {
	var out []Cause
	for _, c := range r.snap.Causes {
		if c.FaultID == faultID {
			out = append(out, c)
		}
	}
	return out
}

// FixForCause returns the first fix text stored for a cause, or "".
func (r *Resolver) FixForCause(causeID int) string {
	for _, f := range r.snap.Fixes {
		if f.CauseID == causeID {
			return f.Text
		}
	}
	return ""
}

// FamilyByName returns the first family with the given name.
func (r *Resolver) FamilyByName(name string) (Family, bool) {
	for _, f := range r.snap.Families {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}

// ProductByName returns the first product with the given name within a
// family.
func (r *Resolver) ProductByName(name string, familyID int) (Product, bool) {
	for _, p := range r.snap.Products {
		if p.FamilyID == familyID && p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}

func (r *Resolver) faultByName(name string, productID int) (Fault, bool) {
	for _, f := range r.snap.Faults {
		if f.ProductID == productID && f.Name == name {
			return f, true
		}
	}
	return Fault{}, false
}
