package catalog

import "sort"

// AllTags is the click value of the "All" control. Tags are never empty, so
// the empty string cannot collide with a real tag.
const AllTags = ""

// FilterState is the currently selected tag. The zero value is unfiltered.
type FilterState struct {
	Selected string `json:"selected,omitempty"`
}

// Unfiltered returns the initial state of every session.
func Unfiltered() FilterState { return FilterState{} }

// Active reports whether a tag is selected.
func (s FilterState) Active() bool { return s.Selected != "" }

// Is reports whether tag is the selected tag.
func (s FilterState) Is(tag string) bool { return s.Active() && s.Selected == tag }

// ParseFilter builds a state from a request value. The value is kept exactly
// as given, so " React" and "react" never match "React".
func ParseFilter(tag string) FilterState {
	return FilterState{Selected: tag}
}

// TagUniverse returns every distinct tag in the catalog, sorted ascending by
// byte order.
func TagUniverse(c Catalog) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, p := range c {
		for _, t := range p.Tech {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}

// VisibleProjects returns the projects matching state, in catalog order. An
// unfiltered state yields the whole catalog; a tag nobody uses yields an
// empty slice.
func VisibleProjects(c Catalog, state FilterState) []Project {
	if !state.Active() {
		out := make([]Project, len(c))
		copy(out, c)
		return out
	}
	out := make([]Project, 0, len(c))
	for _, p := range c {
		if p.HasTag(state.Selected) {
			out = append(out, p)
		}
	}
	return out
}

// ToggleTag is the only transition of the filter state machine. Clicking
// "All" or the active tag clears the filter; any other tag replaces the
// current selection.
func ToggleTag(current FilterState, clicked string) FilterState {
	if clicked == AllTags || clicked == current.Selected {
		return Unfiltered()
	}
	return FilterState{Selected: clicked}
}
