/*
snapshot.go - The in-memory aggregate of every reference collection

PURPOSE:
  A Snapshot holds the full reference taxonomy in memory. The editing
  surface always works on a complete Snapshot: it loads one, mutates it
  through the helpers below, and persists it back with Store.SaveAll
  (delete-all-then-rewrite semantics).

ID ALLOCATION:
  Single-record creation allocates max(existing ids)+1 within the target
  collection. IDs are never reused, even after deletion, as long as a
  higher ID remains in the collection.

ORDERING:
  Collections are slices: insertion order is preserved on save/load but is
  not semantically meaningful, except that resolution queries always use
  "first match in storage order".
*/
package catalog

// Snapshot aggregates all reference collections. Pass it by pointer; it is
// mutated only through its helpers and persisted only through a Store.
type Snapshot struct {
	Families   []Family
	Products   []Product
	Models     []Model
	Faults     []Fault
	Causes     []Cause
	Fixes      []Fix
	SpareParts []SparePart
	Centers    []Center
	Agents     []Agent
	Users      []User
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// alias the store's internal state.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Families:   make([]Family, len(s.Families)),
		Products:   make([]Product, len(s.Products)),
		Models:     make([]Model, len(s.Models)),
		Faults:     make([]Fault, len(s.Faults)),
		Causes:     make([]Cause, len(s.Causes)),
		Fixes:      make([]Fix, len(s.Fixes)),
		SpareParts: make([]SparePart, len(s.SpareParts)),
		Centers:    make([]Center, len(s.Centers)),
		Agents:     make([]Agent, len(s.Agents)),
		Users:      make([]User, len(s.Users)),
	}
	copy(c.Families, s.Families)
	copy(c.Products, s.Products)
	copy(c.Models, s.Models)
	copy(c.Faults, s.Faults)
	copy(c.Causes, s.Causes)
	copy(c.Fixes, s.Fixes)
	copy(c.SpareParts, s.SpareParts)
	copy(c.Centers, s.Centers)
	copy(c.Agents, s.Agents)
	copy(c.Users, s.Users)
	return c
}

// IsEmpty reports whether no collection holds a single row.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Families) == 0 && len(s.Products) == 0 && len(s.Models) == 0 &&
		len(s.Faults) == 0 && len(s.Causes) == 0 && len(s.Fixes) == 0 &&
		len(s.SpareParts) == 0 && len(s.Centers) == 0 && len(s.Agents) == 0 &&
		len(s.Users) == 0
}

// =============================================================================
// ID ALLOCATION
// =============================================================================

func maxFamilyID(items []Family) int {
	m := 0
	for _, it := range items {
		if it.ID > m {
			m = it.ID
		}
	}
	return m
}

func maxProductID(items []Product) int {
	m := 0
	for _, it := range items {
		if it.ID > m {
			m = it.ID
		}
	}
	return m
}

func maxModelID(items []Model) int {
	m := 0
	for _, it := range items {
		if it.ID > m {
			m = it.ID
		}
	}
	return m
}

func maxFaultID(items []Fault) int {
	m := 0
	for _, it := range items {
		if it.ID > m {
			m = it.ID
		}
	}
	return m
}

func maxCauseID(items []Cause) int {
	m := 0
	for _, it := range items {
		if it.ID > m {
			m = it.ID
		}
	}
	return m
}

func maxFixID(items []Fix) int {
	m := 0
	for _, it := range items {
		if it.ID > m {
			m = it.ID
		}
	}
	return m
}

func maxSparePartID(items []SparePart) int {
	m := 0
	for _, it := range items {
		if it.ID > m {
			m = it.ID
		}
	}
	return m
}

func maxCenterID(items []Center) int {
	m := 0
	for _, it := range items {
		if it.ID > m {
			m = it.ID
		}
	}
	return m
}

func maxAgentID(items []Agent) int {
	m := 0
	for _, it := range items {
		if it.ID > m {
			m = it.ID
		}
	}
	return m
}

func maxUserID(items []User) int {
	m := 0
	for _, it := range items {
		if it.ID > m {
			m = it.ID
		}
	}
	return m
}

// =============================================================================
// SINGLE-RECORD CREATION (editing surface)
// =============================================================================

// AddFamily appends a family with a freshly allocated ID and returns it.
func (s *Snapshot) AddFamily(name string) Family {
	f := Family{ID: maxFamilyID(s.Families) + 1, Name: name}
	s.Families = append(s.Families, f)
	return f
}

func (s *Snapshot) AddProduct(familyID int, name string) Product {
	p := Product{ID: maxProductID(s.Products) + 1, FamilyID: familyID, Name: name}
	s.Products = append(s.Products, p)
	return p
}

func (s *Snapshot) AddModel(productID int, name string) Model {
	m := Model{ID: maxModelID(s.Models) + 1, ProductID: productID, Name: name}
	s.Models = append(s.Models, m)
	return m
}

func (s *Snapshot) AddFault(productID int, code, name string) Fault {
	f := Fault{ID: maxFaultID(s.Faults) + 1, Code: code, ProductID: productID, Name: name}
	s.Faults = append(s.Faults, f)
	return f
}

func (s *Snapshot) AddCause(faultID int, code, name string) Cause {
	c := Cause{ID: maxCauseID(s.Causes) + 1, Code: code, FaultID: faultID, Name: name}
	s.Causes = append(s.Causes, c)
	return c
}

func (s *Snapshot) AddFix(causeID int, code, text string) Fix {
	f := Fix{ID: maxFixID(s.Fixes) + 1, Code: code, CauseID: causeID, Text: text}
	s.Fixes = append(s.Fixes, f)
	return f
}

func (s *Snapshot) AddSparePart(code, name string) SparePart {
	p := SparePart{ID: maxSparePartID(s.SpareParts) + 1, Code: code, Name: name}
	s.SpareParts = append(s.SpareParts, p)
	return p
}

func (s *Snapshot) AddCenter(name string) Center {
	c := Center{ID: maxCenterID(s.Centers) + 1, Name: name}
	s.Centers = append(s.Centers, c)
	return c
}

func (s *Snapshot) AddAgent(name, phone, wilaya, address string) Agent {
	a := Agent{ID: maxAgentID(s.Agents) + 1, Name: name, Phone: phone, Wilaya: wilaya, Address: address}
	s.Agents = append(s.Agents, a)
	return a
}

func (s *Snapshot) AddUser(username, password, role string) User {
	u := User{ID: maxUserID(s.Users) + 1, Username: username, Password: password, Role: role}
	s.Users = append(s.Users, u)
	return u
}

// ResetPassword replaces the password of the user with the given ID.
// Returns false if no such user exists.
func (s *Snapshot) ResetPassword(userID int, password string) bool {
	for i := range s.Users {
		if s.Users[i].ID == userID {
			s.Users[i].Password = password
			return true
		}
	}
	return false
}

// =============================================================================
// SINGLE-RECORD DELETION (editing surface)
// =============================================================================
// Deletion removes the row only. Children referencing the removed ID are
// left in place; see CheckIntegrity.

func (s *Snapshot) RemoveFamily(id int) bool {
	for i, it := range s.Families {
		if it.ID == id {
			s.Families = append(s.Families[:i], s.Families[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Snapshot) RemoveProduct(id int) bool {
	for i, it := range s.Products {
		if it.ID == id {
			s.Products = append(s.Products[:i], s.Products[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Snapshot) RemoveModel(id int) bool {
	for i, it := range s.Models {
		if it.ID == id {
			s.Models = append(s.Models[:i], s.Models[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Snapshot) RemoveFault(id int) bool {
	for i, it := range s.Faults {
		if it.ID == id {
			s.Faults = append(s.Faults[:i], s.Faults[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Snapshot) RemoveCause(id int) bool {
	for i, it := range s.Causes {
		if it.ID == id {
			s.Causes = append(s.Causes[:i], s.Causes[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Snapshot) RemoveFix(id int) bool {
	for i, it := range s.Fixes {
		if it.ID == id {
			s.Fixes = append(s.Fixes[:i], s.Fixes[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Snapshot) RemoveSparePart(id int) bool {
	for i, it := range s.SpareParts {
		if it.ID == id {
			s.SpareParts = append(s.SpareParts[:i], s.SpareParts[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Snapshot) RemoveCenter(id int) bool {
	for i, it := range s.Centers {
		if it.ID == id {
			s.Centers = append(s.Centers[:i], s.Centers[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Snapshot) RemoveAgent(id int) bool {
	for i, it := range s.Agents {
		if it.ID == id {
			s.Agents = append(s.Agents[:i], s.Agents[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Snapshot) RemoveUser(id int) bool {
	for i, it := range s.Users {
		if it.ID == id {
			s.Users = append(s.Users[:i], s.Users[i+1:]...)
			return true
		}
	}
	return false
}
