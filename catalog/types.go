/*
Package catalog provides the core reference taxonomy and repair record model.

PURPOSE:
  This package contains the domain types and algorithms of the after-sales
  service (SAV) record keeper: the product/fault codification hierarchy
  (families → products → models; products → faults → causes → fixes), the
  flat reference lists (spare parts, centers, approved agents, users), and
  the append-only repair ticket ledger.

KEY CONCEPTS IN THIS FILE (types.go):
  - Taxonomy entities: Family, Product, Model, Fault, Cause, Fix
  - Flat reference entities: SparePart, Center, Agent, User
  - Ticket: one repair-intake record of the append-only ledger
  - ArchiveEntry: a preserved snapshot of a prior ledger document

DESIGN PRINCIPLES:
  1. Plain data: entities carry fields only, no behavior beyond access
  2. Store-assigned IDs: positive ints, unique per collection, never reused
  3. Append-only tickets: the ledger is an audit trail, never edited
  4. Explicit snapshot: all collections travel in a Snapshot value that is
     passed by reference — there is no ambient global state

SEE ALSO:
  - snapshot.go: the Snapshot aggregate and its editing helpers
  - resolver.go: cascading selection queries over a Snapshot
  - store.go:    persistence contract
*/
package catalog

import "time"

// =============================================================================
// TAXONOMY ENTITIES
// =============================================================================

// Family is the root of the product taxonomy ("Famille").
type Family struct {
	ID   int
	Name string
}

// Product is a catalog item within a family ("Produit").
type Product struct {
	ID       int
	FamilyID int
	Name     string
}

// Model is a named variant of a product ("Type de produit").
// Purely descriptive: it does not participate in fault resolution.
type Model struct {
	ID        int
	ProductID int
	Name      string
}

// Fault is a known failure mode of a product ("Panne").
type Fault struct {
	ID        int
	Code      string
	ProductID int
	Name      string
}

// Cause is a root cause associated with a fault.
type Cause struct {
	ID      int
	Code    string
	FaultID int
	Name    string
}

// Fix is the remedial action text associated with a cause ("Solution").
// Conceptually one canonical fix per cause; the model permits several and
// resolution always uses the first stored.
type Fix struct {
	ID      int
	Code    string
	CauseID int
	Text    string
}

// =============================================================================
// FLAT REFERENCE ENTITIES
// =============================================================================

// SparePart is a consumable repair part ("PDR").
type SparePart struct {
	ID   int
	Code string
	Name string
}

// Center is a repair center ("Centre").
type Center struct {
	ID   int
	Name string
}

// Agent is an approved external repair agent ("Agent Agréé").
type Agent struct {
	ID      int
	Name    string
	Phone   string
	Wilaya  string
	Address string
}

// User is an application account stored alongside the reference data.
type User struct {
	ID       int
	Username string
	Password string
	Role     string
}

const (
	RoleAdmin    = "admin"
	RoleInserter = "inserter"
)

// =============================================================================
// LEDGER ENTITIES
// =============================================================================

// Ticket is one repair-intake record ("insertion"). Tickets are append-only:
// they are never updated or deleted. All descriptive fields round-trip
// through the selection surface as display strings, so they are kept as
// strings here, dates included.
type Ticket struct {
	Number       int    // display number, assigned at append time
	Client       string
	Product      string
	Model        string
	Serial       string
	Warranty     string
	ProductDate  string
	Fault        string
	Repair       string // fix text auto-filled by the resolver
	SparePart    string
	Status       string
	Center       string
	ReceivedDate string
	RepairedDate string
}

// WarrantyOptions and StatusOptions are the closed choice lists offered by
// the entry surface.
var (
	WarrantyOptions = []string{"Garantie", "Hors Garantie", "Fiche de garantie", "Non-conforme"}
	StatusOptions   = []string{"Réparé", "En cours", "Non réparé", "Pièce non disponible", "Changé"}
)

// ArchiveEntry describes one archived ledger document.
type ArchiveEntry struct {
	Filename string
	Path     string
	Size     int64
	ModTime  time.Time
}
