package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driven"
)

// Ensure Directory implements the interface.
var _ driven.DirectoryClient = (*Directory)(nil)

// DefaultPageSize is the number of entries per page.
const DefaultPageSize = 6

// DemoToken is the token returned for every successful login.
const DemoToken = "QpwL5tke4Pnpja7X4"

// Directory is an in-memory driven.DirectoryClient.
//
// Like the hosted demo service it mirrors, writes are not persisted by
// default: updates echo the submitted fields and deletes report success
// without removing anything. Set Persistent to apply writes.
// Failures can be injected per operation for testing.
type Directory struct {
	mu         sync.Mutex
	entries    []domain.Entry
	pageSize   int
	persistent bool
	now        func() time.Time

	pageErrs  map[int]error
	updateErr error
	deleteErr error
	authErr   error
	onList    func(page int)

	listCalls   []int
	updateCalls []int
	deleteCalls []int
}

// NewDirectory creates a directory seeded with the demo entries.
func NewDirectory() *Directory {
	return NewDirectoryWith(SeedEntries(), DefaultPageSize)
}

// NewDirectoryWith creates a directory over entries.
func NewDirectoryWith(entries []domain.Entry, pageSize int) *Directory {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	cp := make([]domain.Entry, len(entries))
	copy(cp, entries)
	return &Directory{
		entries:  cp,
		pageSize: pageSize,
		now:      time.Now,
		pageErrs: make(map[int]error),
	}
}

// SetPersistent controls whether updates and deletes are applied.
func (d *Directory) SetPersistent(p bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.persistent = p
}

// FailPage makes ListPage(page) return err. A nil err clears the failure.
func (d *Directory) FailPage(page int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err == nil {
		delete(d.pageErrs, page)
		return
	}
	d.pageErrs[page] = err
}

// FailUpdate makes UpdateEntry return err.
func (d *Directory) FailUpdate(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.updateErr = err
}

// FailDelete makes DeleteEntry return err.
func (d *Directory) FailDelete(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleteErr = err
}

// FailAuth makes Authenticate return err.
func (d *Directory) FailAuth(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.authErr = err
}

// OnList registers a hook run at the start of every ListPage call,
// outside the directory lock.
func (d *Directory) OnList(f func(page int)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onList = f
}

// Authenticate accepts any password for a known email.
func (d *Directory) Authenticate(_ context.Context, email, password string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.authErr != nil {
		return "", d.authErr
	}
	if email == "" {
		return "", domain.NewOpError(domain.ErrAuth, "login", "Missing email or username", nil)
	}
	if password == "" {
		return "", domain.NewOpError(domain.ErrAuth, "login", "Missing password", nil)
	}
	for _, e := range d.entries {
		if strings.EqualFold(e.Email, email) {
			return DemoToken, nil
		}
	}
	return "", domain.NewOpError(domain.ErrAuth, "login", "user not found", nil)
}

// ListPage returns page n. Pages past the end are empty.
func (d *Directory) ListPage(ctx context.Context, page int) (domain.Page, error) {
	d.mu.Lock()
	hook := d.onList
	d.mu.Unlock()
	if hook != nil {
		hook(page)
	}
	if err := ctx.Err(); err != nil {
		return domain.Page{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.listCalls = append(d.listCalls, page)
	if err, ok := d.pageErrs[page]; ok {
		return domain.Page{}, err
	}

	total := (len(d.entries) + d.pageSize - 1) / d.pageSize
	result := domain.Page{Number: page, TotalPages: total, Entries: []domain.Entry{}}
	if page < 1 {
		return result, nil
	}
	start := (page - 1) * d.pageSize
	if start >= len(d.entries) {
		return result, nil
	}
	end := min(start+d.pageSize, len(d.entries))
	result.Entries = append(result.Entries, d.entries[start:end]...)
	return result, nil
}

// UpdateEntry echoes the patch with an update timestamp.
func (d *Directory) UpdateEntry(_ context.Context, id int, patch domain.EntryPatch) (domain.EntryPatch, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.updateCalls = append(d.updateCalls, id)
	if d.updateErr != nil {
		return domain.EntryPatch{}, d.updateErr
	}
	if d.persistent {
		for i := range d.entries {
			if d.entries[i].ID == id {
				d.entries[i] = d.entries[i].Apply(patch)
			}
		}
	}
	echo := patch
	at := d.now().UTC()
	echo.UpdatedAt = &at
	return echo, nil
}

// DeleteEntry reports success for any id.
func (d *Directory) DeleteEntry(_ context.Context, id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleteCalls = append(d.deleteCalls, id)
	if d.deleteErr != nil {
		return d.deleteErr
	}
	if d.persistent {
		d.entries = domain.WithoutID(d.entries, id)
	}
	return nil
}

// ListCalls returns the pages requested so far, in order.
func (d *Directory) ListCalls() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int(nil), d.listCalls...)
}

// UpdateCalls returns the ids updated so far.
func (d *Directory) UpdateCalls() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int(nil), d.updateCalls...)
}

// DeleteCalls returns the ids deleted so far.
func (d *Directory) DeleteCalls() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int(nil), d.deleteCalls...)
}

// ResetCalls clears the recorded calls.
func (d *Directory) ResetCalls() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listCalls = nil
	d.updateCalls = nil
	d.deleteCalls = nil
}

// SeedEntries returns the demo directory: three pages of six entries.
func SeedEntries() []domain.Entry {
	names := [][2]string{
		{"George", "Bluth"}, {"Janet", "Weaver"}, {"Emma", "Wong"},
		{"Eve", "Holt"}, {"Charles", "Morris"}, {"Tracey", "Ramos"},
		{"Michael", "Lawson"}, {"Lindsay", "Ferguson"}, {"Tobias", "Funke"},
		{"Byron", "Fields"}, {"George", "Edwards"}, {"Rachel", "Howell"},
		{"Lucille", "Bluth"}, {"Oscar", "Bluth"}, {"Maeby", "Funke"},
		{"Stan", "Sitwell"}, {"Sally", "Sitwell"}, {"Barry", "Zuckerkorn"},
	}
	entries := make([]domain.Entry, len(names))
	for i, n := range names {
		id := i + 1
		entries[i] = domain.Entry{
			ID:        id,
			FirstName: n[0],
			LastName:  n[1],
			Email:     strings.ToLower(n[0]+"."+n[1]) + "@reqres.in",
			Avatar:    fmt.Sprintf("https://reqres.in/img/faces/%d-image.jpg", id),
		}
	}
	return entries
}
