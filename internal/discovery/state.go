package discovery

import (
	"github.com/marco/watchNext/internal/media"
)

// View names the screen the user is looking at
type View string

const (
	ViewRecommendations View = "recommendations"
	ViewSearch          View = "search"
	ViewDetails         View = "details"
)

// IsList reports whether v shows a results list
func (v View) IsList() bool {
	return v == ViewRecommendations || v == ViewSearch
}

// ViewState is everything the presentation layer needs. Selected is non-nil
// exactly when CurrentView is ViewDetails.
type ViewState struct {
	CurrentView View
	// PreviousView is the list view CloseDetails returns to
	PreviousView View
	Items        []media.Item
	Selected     *media.Detail
	IsLoading    bool
	LastError    string
	// Generation counts triggering actions; the newest one owns IsLoading
	Generation uint64
}

func initialState() ViewState {
	return ViewState{
		CurrentView:  ViewRecommendations,
		PreviousView: ViewRecommendations,
	}
}

// showList switches to a list view, dropping any open detail
func (s *ViewState) showList(view View, items []media.Item) {
	s.CurrentView = view
	s.Items = items
	s.Selected = nil
}

// showDetail opens detail, remembering the list view to return to. Opening
// a detail from within a detail keeps the original list view.
func (s *ViewState) showDetail(detail *media.Detail) {
	if s.CurrentView.IsList() {
		s.PreviousView = s.CurrentView
	}
	s.CurrentView = ViewDetails
	s.Selected = detail
}

// clone returns a snapshot that shares no mutable memory with s
func (s ViewState) clone() ViewState {
	s.Items = media.CloneItems(s.Items)
	if s.Selected != nil {
		d := s.Selected.Clone()
		s.Selected = &d
	}
	return s
}
