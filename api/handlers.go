/*
handlers.go - HTTP handlers for the SAV record keeper

PURPOSE:
  Exposes the reference store, taxonomy resolver, ticket ledger and
  archive area to the presentation layer. Handles HTTP request/response
  and JSON; all decisions (path selection, confirmation, error display)
  stay with the caller, which receives structured values only.

ENDPOINTS:
  Reference:
    GET    /api/reference              Full snapshot
    PUT    /api/reference              Save-all (full replace)
    POST   /api/reference/init         Create workbooks on first run
    POST   /api/reference/import       Merge-import a workbook
    POST   /api/reference/import/agents Import an agent listing

  Taxonomy (cascading selection):
    GET    /api/taxonomy/families
    GET    /api/taxonomy/families/{id}/products
    GET    /api/taxonomy/products/{id}/models
    GET    /api/taxonomy/products/{id}/faults
    GET    /api/taxonomy/products/{id}/causes?fault=NAME
    GET    /api/taxonomy/products/{id}/fix?fault=NAME&cause=NAME

  Tickets:
    GET    /api/tickets                Ledger in append order
    POST   /api/tickets                Append (number assigned here)
    GET    /api/tickets/options        Closed warranty/status lists

  Archives:
    GET    /api/archives
    POST   /api/archives               Copy a report into the archive
    GET    /api/archives/{filename}/tickets  Heuristic row recovery

  Session:
    POST   /api/login

ERROR HANDLING:
  - 400: invalid input, empty import source, missing mandatory field
  - 404: no reference data yet, unknown archive
  - 500: workbook I/O failures
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/geantfroid/sav-engine/auth"
	"github.com/geantfroid/sav-engine/catalog"
	"github.com/geantfroid/sav-engine/store/excel"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *excel.Store
	Ledger *catalog.Ledger
	Log    zerolog.Logger
}

// NewHandler creates a handler over the workbook store.
func NewHandler(store *excel.Store, log zerolog.Logger) *Handler {
	return &Handler{
		Store:  store,
		Ledger: catalog.NewLedger(store),
		Log:    log,
	}
}

// loadSnapshot loads the reference data, translating a missing store into
// a 404. Returns nil after writing the response on failure.
func (h *Handler) loadSnapshot(w http.ResponseWriter, r *http.Request) *catalog.Snapshot {
	snap, err := h.Store.LoadAll(r.Context())
	if err != nil {
		if catalog.IsFirstRun(err) {
			writeError(w, http.StatusNotFound, "No reference data yet", nil)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to load reference data", err)
		}
		return nil
	}
	return snap
}

// =============================================================================
// REFERENCE HANDLERS
// =============================================================================

// GetReference returns the full reference snapshot.
func (h *Handler) GetReference(w http.ResponseWriter, r *http.Request) {
	snap := h.loadSnapshot(w, r)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotDTO(snap))
}

// SaveReference replaces every collection with the submitted snapshot.
// Stored user rows are preserved as-is.
func (h *Handler) SaveReference(w http.ResponseWriter, r *http.Request) {
	var dto SnapshotDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var existingUsers []catalog.User
	if current, err := h.Store.LoadAll(r.Context()); err == nil {
		existingUsers = current.Users
	}

	snap := fromSnapshotDTO(dto, existingUsers)
	if err := h.Store.SaveAll(r.Context(), snap); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save reference data", err)
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotDTO(snap))
}

// InitReference creates the backing workbooks on first run.
func (h *Handler) InitReference(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Bootstrap(r.Context(), nil); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to initialize store", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "initialized"})
}

// ImportReference merge-imports every recognized sheet of the named
// workbook.
func (h *Handler) ImportReference(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sum, err := h.Store.MergeImport(r.Context(), req.Path)
	if err != nil {
		if errors.Is(err, catalog.ErrNoImportData) {
			writeError(w, http.StatusBadRequest, "No data found in import source", err)
		} else {
			writeError(w, http.StatusInternalServerError, "Import failed", err)
		}
		return
	}

	resp := ImportResponseDTO{Total: sum.Total()}
	for _, c := range sum.Counts {
		resp.Counts = append(resp.Counts, ImportCountDTO{Collection: c.Collection, Rows: c.Rows})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ImportAgents imports an agent listing workbook.
func (h *Handler) ImportAgents(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	count, err := h.Store.ImportAgents(r.Context(), req.Path)
	if err != nil {
		if errors.Is(err, catalog.ErrNoImportData) {
			writeError(w, http.StatusBadRequest, "No data found in import source", err)
		} else {
			writeError(w, http.StatusInternalServerError, "Import failed", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, ImportResponseDTO{
		Counts: []ImportCountDTO{{Collection: "Agents", Rows: count}},
		Total:  count,
	})
}

// =============================================================================
// TAXONOMY HANDLERS
// =============================================================================

// ListFamilies returns the taxonomy roots.
func (h *Handler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	snap := h.loadSnapshot(w, r)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotDTO(snap).Families)
}

// ListProducts returns the products of one family.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	familyID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid family id", err)
		return
	}
	snap := h.loadSnapshot(w, r)
	if snap == nil {
		return
	}
	dtos := []ProductDTO{}
	for _, p := range catalog.NewResolver(snap).ProductsOf(familyID) {
		dtos = append(dtos, ProductDTO{p.ID, p.FamilyID, p.Name})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListModels returns the models of one product.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product id", err)
		return
	}
	snap := h.loadSnapshot(w, r)
	if snap == nil {
		return
	}
	dtos := []ModelDTO{}
	for _, m := range catalog.NewResolver(snap).ModelsOf(productID) {
		dtos = append(dtos, ModelDTO{m.ID, m.ProductID, m.Name})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListFaults returns the faults of one product, de-duplicated by name for
// the selection list.
func (h *Handler) ListFaults(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product id", err)
		return
	}
	snap := h.loadSnapshot(w, r)
	if snap == nil {
		return
	}
	dtos := []FaultDTO{}
	for _, f := range catalog.NewResolver(snap).FaultsOf(productID) {
		dtos = append(dtos, FaultDTO{f.ID, f.Code, f.ProductID, f.Name})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListCauses returns the causes of the fault named in ?fault= within the
// product's scope. Unknown names yield an empty list, never an error.
func (h *Handler) ListCauses(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product id", err)
		return
	}
	snap := h.loadSnapshot(w, r)
	if snap == nil {
		return
	}
	dtos := []CauseDTO{}
	for _, c := range catalog.NewResolver(snap).CausesOf(r.URL.Query().Get("fault"), productID) {
		dtos = append(dtos, CauseDTO{c.ID, c.Code, c.FaultID, c.Name})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetFix resolves fault → cause within the product scope and returns the
// fix text the entry form auto-fills. Empty text means no fix is stored.
func (h *Handler) GetFix(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product id", err)
		return
	}
	snap := h.loadSnapshot(w, r)
	if snap == nil {
		return
	}
	q := r.URL.Query()
	text := catalog.NewResolver(snap).FixFor(q.Get("cause"), q.Get("fault"), productID)
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// =============================================================================
// TICKET HANDLERS
// =============================================================================

// ListTickets returns the ledger in append order.
func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.Ledger.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tickets", err)
		return
	}
	dtos := []TicketDTO{}
	for _, t := range tickets {
		dtos = append(dtos, toTicketDTO(t))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateTicket appends one ticket; the display number is assigned here
// and returned to the caller.
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var dto TicketDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	saved, err := h.Ledger.Append(r.Context(), fromTicketDTO(dto))
	if err != nil {
		if errors.Is(err, catalog.ErrMissingField) {
			writeError(w, http.StatusBadRequest, "Missing mandatory field", err)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to append ticket", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, toTicketDTO(saved))
}

// GetTicketOptions returns the closed warranty/status choice lists.
func (h *Handler) GetTicketOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, OptionsDTO{
		Warranty: catalog.WarrantyOptions,
		Status:   catalog.StatusOptions,
	})
}

// =============================================================================
// ARCHIVE HANDLERS
// =============================================================================

// ListArchives returns the stored report documents sorted by filename.
func (h *Handler) ListArchives(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.ListArchives(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list archives", err)
		return
	}
	dtos := []ArchiveEntryDTO{}
	for _, e := range entries {
		dtos = append(dtos, ArchiveEntryDTO{
			Filename: e.Filename,
			Size:     e.Size,
			ModTime:  e.ModTime.Format("2006-01-02 15:04:05"),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateArchive copies the named report document into the archive area.
func (h *Handler) CreateArchive(w http.ResponseWriter, r *http.Request) {
	var req ArchiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := h.Store.Archive(r.Context(), req.Path)
	if err != nil {
		if errors.Is(err, catalog.ErrTooManyCopies) {
			writeError(w, http.StatusConflict, "Too many copies of this report", err)
		} else {
			writeError(w, http.StatusBadRequest, "Failed to archive report", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, ArchiveEntryDTO{
		Filename: entry.Filename,
		Size:     entry.Size,
		ModTime:  entry.ModTime.Format("2006-01-02 15:04:05"),
	})
}

// ReadArchive recovers the ticket rows of one stored archive.
func (h *Handler) ReadArchive(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	tickets, err := h.Store.ReadArchive(r.Context(), h.Store.ArchivePath(filename))
	if err != nil {
		writeError(w, http.StatusNotFound, "Archive not readable", err)
		return
	}
	dtos := []TicketDTO{}
	for _, t := range tickets {
		dtos = append(dtos, toTicketDTO(t))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SESSION HANDLERS
// =============================================================================

// Login validates credentials against the Users collection.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	snap := h.loadSnapshot(w, r)
	if snap == nil {
		return
	}
	user, ok := auth.New(snap).Authenticate(req.Username, req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid username or password", nil)
		return
	}
	writeJSON(w, http.StatusOK, UserDTO{ID: user.ID, Username: user.Username, Role: user.Role})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
