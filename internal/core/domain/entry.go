package domain

import (
	"strings"
	"time"
)

// Entry is a directory record as returned by the remote service.
// Entries are value snapshots; an edit produces a new Entry with the same ID.
type Entry struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
}

// FullName returns "{first_name} {last_name}", the string search matches against.
func (e Entry) FullName() string {
	return e.FirstName + " " + e.LastName
}

// MatchesQuery reports whether the entry's full name contains the query,
// ignoring case. The query is expected to be trimmed already.
func (e Entry) MatchesQuery(query string) bool {
	return strings.Contains(strings.ToLower(e.FullName()), strings.ToLower(query))
}

// Apply overlays the non-nil fields of an echoed patch onto a copy of the entry.
// Fields the server did not echo keep their client-held value.
func (e Entry) Apply(p EntryPatch) Entry {
	if p.FirstName != nil {
		e.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		e.LastName = *p.LastName
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	return e
}

// Page is one page of the remote listing.
type Page struct {
	Number     int
	Entries    []Entry
	TotalPages int
}

// Contains reports whether the page holds an entry with the given ID.
func (p Page) Contains(id int) bool {
	_, ok := p.Find(id)
	return ok
}

// Find returns the entry with the given ID, if present on this page.
func (p Page) Find(id int) (Entry, bool) {
	for _, e := range p.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// EntryPatch carries the editable fields of an entry. Nil means "not set".
// It is used both for update requests and for the fields the server echoes back.
type EntryPatch struct {
	FirstName *string    `json:"first_name,omitempty"`
	LastName  *string    `json:"last_name,omitempty"`
	Email     *string    `json:"email,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// PatchFromEntry builds a patch that sets every editable field of e.
func PatchFromEntry(e Entry) EntryPatch {
	first, last, email := e.FirstName, e.LastName, e.Email
	return EntryPatch{FirstName: &first, LastName: &last, Email: &email}
}

// IsEmpty returns true if no editable field is set.
func (p EntryPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil
}

// EntryFields is the editable form of an entry.
type EntryFields struct {
	FirstName string
	LastName  string
	Email     string
}

// FieldsOf returns the editable fields of an entry.
func FieldsOf(e Entry) EntryFields {
	return EntryFields{FirstName: e.FirstName, LastName: e.LastName, Email: e.Email}
}

// Validate checks that every field is non-empty after trimming.
// The returned error wraps ErrValidation.
func (f EntryFields) Validate() error {
	var missing []string
	if strings.TrimSpace(f.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(f.LastName) == "" {
		missing = append(missing, "last_name")
	}
	if strings.TrimSpace(f.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return &OpError{
			Kind:    ErrValidation,
			Op:      "validate",
			Message: "All fields are required (missing: " + strings.Join(missing, ", ") + ")",
		}
	}
	return nil
}

// Patch converts the fields into a full update patch.
func (f EntryFields) Patch() EntryPatch {
	first, last, email := f.FirstName, f.LastName, f.Email
	return EntryPatch{FirstName: &first, LastName: &last, Email: &email}
}

// WithoutID returns entries with every occurrence of id removed.
// The input slice is not modified. Removing an absent id returns an equal copy.
func WithoutID(entries []Entry, id int) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// FilterByQuery returns the entries whose full name matches query.
func FilterByQuery(entries []Entry, query string) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.MatchesQuery(query) {
			out = append(out, e)
		}
	}
	return out
}
