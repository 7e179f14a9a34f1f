// Package catalog holds the portfolio content and the tag filter that drives
// the project gallery.
package catalog

// Project is one entry in the project gallery. Title is the stable key and is
// expected to be unique within a catalog.
type Project struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Tech        []string `yaml:"tech" json:"tech"`
	Href        string   `yaml:"href,omitempty" json:"href,omitempty"`
	Highlights  []string `yaml:"highlights,omitempty" json:"highlights,omitempty"`
	Media       string   `yaml:"media,omitempty" json:"media,omitempty"`
}

// HasLink reports whether the project has a live link.
func (p Project) HasLink() bool { return p.Href != "" }

// HasMedia reports whether the project has a demo asset.
func (p Project) HasMedia() bool { return p.Media != "" }

// HasTag reports whether tag appears in the project's tech list. Matching is
// exact and case-sensitive.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tech {
		if t == tag {
			return true
		}
	}
	return false
}

// Catalog is the ordered, read-only list of projects shown on the page.
type Catalog []Project
