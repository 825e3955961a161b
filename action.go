package catalog

// ActionType tags a query state transition.
type ActionType string

// ActionType constants.
const (
	ActionSetText  ActionType = "SET_TEXT"
	ActionSetFacet ActionType = "SET_FACET"
	ActionSetPage  ActionType = "SET_PAGE"
	ActionSetView  ActionType = "SET_VIEW"
)

// Action is a single user interaction applied to a SearchQuery.
type Action struct {
	Type  ActionType
	Value string // text, facet or view mode
	Page  int
}

// SetText returns an action replacing the search text.
func SetText(text string) Action {
	return Action{Type: ActionSetText, Value: text}
}

// SetFacet returns an action selecting a facet. An empty facet clears it.
func SetFacet(facet string) Action {
	return Action{Type: ActionSetFacet, Value: facet}
}

// SetPage returns an action moving to the given page.
func SetPage(page int) Action {
	return Action{Type: ActionSetPage, Page: page}
}

// SetView returns an action switching the view mode.
func SetView(view ViewMode) Action {
	return Action{Type: ActionSetView, Value: string(view)}
}

// Reduce applies a to q and returns the resulting normalized query.
// Changing the text or the facet restarts paging at the first page.
// Unknown action types leave q unchanged.
func Reduce(q SearchQuery, a Action) SearchQuery {
	switch a.Type {
	case ActionSetText:
		if a.Value != q.Text {
			q.Text = a.Value
			q.Page = 1
		}
	case ActionSetFacet:
		if a.Value != q.Facet {
			q.Facet = a.Value
			q.Page = 1
		}
	case ActionSetPage:
		q.Page = a.Page
	case ActionSetView:
		q.View = ViewMode(a.Value)
	}
	return q.Normalize()
}
