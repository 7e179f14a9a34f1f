package web

import (
	"net/url"

	"github.com/albertaizhang/portfolio/internal/catalog"
)

// tagBadge is one clickable control in the filter bar. Its links carry the
// state the click leads to, so the request itself holds the filter state.
type tagBadge struct {
	Label    string
	Active   bool
	PageURL  string
	PartsURL string
}

type galleryView struct {
	All      tagBadge
	Tags     []tagBadge
	Selected string
	Projects []catalog.Project
	Empty    string
}

func stateQuery(state catalog.FilterState) string {
	if !state.Active() {
		return ""
	}
	return "?" + url.Values{"tag": {state.Selected}}.Encode()
}

func newBadge(label string, current catalog.FilterState, clicked string, active bool) tagBadge {
	next := stateQuery(catalog.ToggleTag(current, clicked))
	return tagBadge{
		Label:    label,
		Active:   active,
		PageURL:  "/" + next,
		PartsURL: "/projects" + next,
	}
}

func buildGallery(c catalog.Catalog, tags []string, state catalog.FilterState) galleryView {
	view := galleryView{
		All:      newBadge("All", state, catalog.AllTags, !state.Active()),
		Tags:     make([]tagBadge, 0, len(tags)),
		Selected: state.Selected,
		Projects: catalog.VisibleProjects(c, state),
	}
	for _, tag := range tags {
		view.Tags = append(view.Tags, newBadge(tag, state, tag, state.Is(tag)))
	}
	if len(view.Projects) == 0 {
		view.Empty = emptyGallery
	}
	return view
}
