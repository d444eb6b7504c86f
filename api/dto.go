/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for the HTTP surface. They decouple the catalog types
  from the wire contract; converters map in both directions because the
  editing surface round-trips full snapshots (load, edit, save-all).

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Request: request body types from clients

VALIDATION:
  Handlers validate; DTOs are pure data carriers.
*/
package api

import "github.com/geantfroid/sav-engine/catalog"

// =============================================================================
// REFERENCE SNAPSHOT
// =============================================================================

type FamilyDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ProductDTO struct {
	ID       int    `json:"id"`
	FamilyID int    `json:"family_id"`
	Name     string `json:"name"`
}

type ModelDTO struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
}

type FaultDTO struct {
	ID        int    `json:"id"`
	Code      string `json:"code"`
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
}

type CauseDTO struct {
	ID      int    `json:"id"`
	Code    string `json:"code"`
	FaultID int    `json:"fault_id"`
	Name    string `json:"name"`
}

type FixDTO struct {
	ID      int    `json:"id"`
	Code    string `json:"code"`
	CauseID int    `json:"cause_id"`
	Text    string `json:"text"`
}

type SparePartDTO struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type CenterDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type AgentDTO struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Wilaya  string `json:"wilaya"`
	Address string `json:"address"`
}

// UserDTO never carries the password.
type UserDTO struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// SnapshotDTO is the full reference data as exchanged with the editing
// surface. User rows are exposed without passwords and are not writable
// through this shape; credentials go through dedicated endpoints.
type SnapshotDTO struct {
	Families   []FamilyDTO    `json:"families"`
	Products   []ProductDTO   `json:"products"`
	Models     []ModelDTO     `json:"models"`
	Faults     []FaultDTO     `json:"faults"`
	Causes     []CauseDTO     `json:"causes"`
	Fixes      []FixDTO       `json:"fixes"`
	SpareParts []SparePartDTO `json:"spare_parts"`
	Centers    []CenterDTO    `json:"centers"`
	Agents     []AgentDTO     `json:"agents"`
	Users      []UserDTO      `json:"users"`
}

func toSnapshotDTO(s *catalog.Snapshot) SnapshotDTO {
	dto := SnapshotDTO{}
	for _, it := range s.Families {
		dto.Families = append(dto.Families, FamilyDTO{it.ID, it.Name})
	}
	for _, it := range s.Products {
		dto.Products = append(dto.Products, ProductDTO{it.ID, it.FamilyID, it.Name})
	}
	for _, it := range s.Models {
		dto.Models = append(dto.Models, ModelDTO{it.ID, it.ProductID, it.Name})
	}
	for _, it := range s.Faults {
		dto.Faults = append(dto.Faults, FaultDTO{it.ID, it.Code, it.ProductID, it.Name})
	}
	for _, it := range s.Causes {
		dto.Causes = append(dto.Causes, CauseDTO{it.ID, it.Code, it.FaultID, it.Name})
	}
	for _, it := range s.Fixes {
		dto.Fixes = append(dto.Fixes, FixDTO{it.ID, it.Code, it.CauseID, it.Text})
	}
	for _, it := range s.SpareParts {
		dto.SpareParts = append(dto.SpareParts, SparePartDTO{it.ID, it.Code, it.Name})
	}
	for _, it := range s.Centers {
		dto.Centers = append(dto.Centers, CenterDTO{it.ID, it.Name})
	}
	for _, it := range s.Agents {
		dto.Agents = append(dto.Agents, AgentDTO{it.ID, it.Name, it.Phone, it.Wilaya, it.Address})
	}
	for _, it := range s.Users {
		dto.Users = append(dto.Users, UserDTO{ID: it.ID, Username: it.Username, Role: it.Role})
	}
	return dto
}

// fromSnapshotDTO rebuilds a catalog snapshot from the wire shape. The
// stored user rows are carried over unchanged: the snapshot endpoint does
// not manage credentials.
func fromSnapshotDTO(dto SnapshotDTO, existingUsers []catalog.User) *catalog.Snapshot {
	s := catalog.NewSnapshot()
	for _, it := range dto.Families {
		s.Families = append(s.Families, catalog.Family{ID: it.ID, Name: it.Name})
	}
	for _, it := range dto.Products {
		s.Products = append(s.Products, catalog.Product{ID: it.ID, FamilyID: it.FamilyID, Name: it.Name})
	}
	for _, it := range dto.Models {
		s.Models = append(s.Models, catalog.Model{ID: it.ID, ProductID: it.ProductID, Name: it.Name})
	}
	for _, it := range dto.Faults {
		s.Faults = append(s.Faults, catalog.Fault{ID: it.ID, Code: it.Code, ProductID: it.ProductID, Name: it.Name})
	}
	for _, it := range dto.Causes {
		s.Causes = append(s.Causes, catalog.Cause{ID: it.ID, Code: it.Code, FaultID: it.FaultID, Name: it.Name})
	}
	for _, it := range dto.Fixes {
		s.Fixes = append(s.Fixes, catalog.Fix{ID: it.ID, Code: it.Code, CauseID: it.CauseID, Text: it.Text})
	}
	for _, it := range dto.SpareParts {
		s.SpareParts = append(s.SpareParts, catalog.SparePart{ID: it.ID, Code: it.Code, Name: it.Name})
	}
	for _, it := range dto.Centers {
		s.Centers = append(s.Centers, catalog.Center{ID: it.ID, Name: it.Name})
	}
	for _, it := range dto.Agents {
		s.Agents = append(s.Agents, catalog.Agent{ID: it.ID, Name: it.Name, Phone: it.Phone, Wilaya: it.Wilaya, Address: it.Address})
	}
	s.Users = append(s.Users, existingUsers...)
	return s
}

// =============================================================================
// TICKETS
// =============================================================================

// TicketDTO is one ledger row. The same shape is accepted on append,
// where Number is ignored and assigned by the store.
type TicketDTO struct {
	Number       int    `json:"number"`
	Client       string `json:"client"`
	Product      string `json:"product"`
	Model        string `json:"model"`
	Serial       string `json:"serial"`
	Warranty     string `json:"warranty"`
	ProductDate  string `json:"product_date"`
	Fault        string `json:"fault"`
	Repair       string `json:"repair"`
	SparePart    string `json:"spare_part"`
	Status       string `json:"status"`
	Center       string `json:"center"`
	ReceivedDate string `json:"received_date"`
	RepairedDate string `json:"repaired_date"`
}

func toTicketDTO(t catalog.Ticket) TicketDTO {
	return TicketDTO(t)
}

func fromTicketDTO(dto TicketDTO) catalog.Ticket {
	return catalog.Ticket(dto)
}

// =============================================================================
// IMPORT / ARCHIVE / LOGIN
// =============================================================================

// ImportRequest names the source document to merge-import. Path selection
// itself belongs to the presentation layer.
type ImportRequest struct {
	Path string `json:"path"`
}

type ImportCountDTO struct {
	Collection string `json:"collection"`
	Rows       int    `json:"rows"`
}

type ImportResponseDTO struct {
	Counts []ImportCountDTO `json:"counts"`
	Total  int              `json:"total"`
}

type ArchiveRequest struct {
	Path string `json:"path"`
}

type ArchiveEntryDTO struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	ModTime  string `json:"mod_time"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// OptionsDTO carries the closed choice lists of the entry form.
type OptionsDTO struct {
	Warranty []string `json:"warranty"`
	Status   []string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
