package domain

// LoadStatus is the state of an asynchronous load.
type LoadStatus string

// Load statuses.
const (
	LoadIdle    LoadStatus = "idle"
	LoadLoading LoadStatus = "loading"
	LoadReady   LoadStatus = "ready"
	LoadError   LoadStatus = "error"
)

// ViewMode is the active display mode of the directory listing.
// Paginated browsing and flat search results are mutually exclusive.
type ViewMode string

// View modes.
const (
	ModePaginated ViewMode = "paginated"
	ModeSearch    ViewMode = "search"
)

// PageState is a snapshot of the page cache.
type PageState struct {
	Number     int
	TotalPages int
	Entries    []Entry
	Status     LoadStatus
	Err        error
}

// SearchState is a snapshot of the search session.
// Active is true iff the effective query is non-empty.
type SearchState struct {
	Active   bool
	Query    string
	All      []Entry
	Filtered []Entry
	Status   LoadStatus
	Err      error
}

// ViewState is the derived state of the directory listing.
type ViewState struct {
	Mode       ViewMode
	Page       int
	TotalPages int
	Query      string
	Displayed  []Entry
	Status     LoadStatus
	Err        error
}

// ShowPagination reports whether pagination controls are visible.
func (v ViewState) ShowPagination() bool {
	return v.Mode == ModePaginated
}

// CanPrev reports whether navigating to the previous page is enabled.
func (v ViewState) CanPrev() bool {
	return v.ShowPagination() && v.Page > 1
}

// CanNext reports whether navigating to the next page is enabled.
func (v ViewState) CanNext() bool {
	return v.ShowPagination() && v.Page < v.TotalPages
}

// Derive computes the displayed view from the page cache and search session.
func Derive(page PageState, search SearchState) ViewState {
	v := ViewState{
		Page:       page.Number,
		TotalPages: page.TotalPages,
	}
	if search.Active {
		v.Mode = ModeSearch
		v.Query = search.Query
		v.Displayed = search.Filtered
		v.Status = search.Status
		v.Err = search.Err
		return v
	}
	v.Mode = ModePaginated
	v.Displayed = page.Entries
	v.Status = page.Status
	v.Err = page.Err
	return v
}

// EditHint is an optional pre-known entry handed to the editor,
// together with the page it was sourced from.
type EditHint struct {
	Entry      Entry
	SourcePage int
}

// EditContext is created when navigating from the list to the editor
// and consumed once by the editor.
type EditContext struct {
	ID   int
	Hint *EditHint
}

// EditorState is the state of the entry editor.
type EditorState string

// Editor states.
const (
	EditorIdle       EditorState = "idle"
	EditorResolving  EditorState = "resolving"
	EditorEditing    EditorState = "editing"
	EditorSubmitting EditorState = "submitting"
	EditorSucceeded  EditorState = "success"
)
