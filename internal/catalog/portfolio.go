package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var portfolioYAML []byte

// Profile is the hero section content.
type Profile struct {
	Name      string `yaml:"name" json:"name"`
	Title     string `yaml:"title" json:"title"`
	Location  string `yaml:"location" json:"location"`
	Summary   string `yaml:"summary" json:"summary"`
	Email     string `yaml:"email" json:"email"`
	ResumeURL string `yaml:"resume_url" json:"resume_url"`
}

// Links are outbound profile links, passed through unchanged.
type Links struct {
	GitHub   string `yaml:"github" json:"github"`
	LinkedIn string `yaml:"linkedin" json:"linkedin"`
	Email    string `yaml:"email" json:"email"`
}

// SkillGroup is one card of the skills grid.
type SkillGroup struct {
	Category string   `yaml:"category" json:"category"`
	Items    []string `yaml:"items" json:"items"`
}

// Job is one entry of the experience timeline.
type Job struct {
	Company string   `yaml:"company" json:"company"`
	Role    string   `yaml:"role" json:"role"`
	Period  string   `yaml:"period" json:"period"`
	Points  []string `yaml:"points" json:"points"`
}

// Portfolio is everything the page renders.
type Portfolio struct {
	Profile    Profile      `yaml:"profile" json:"profile"`
	Links      Links        `yaml:"links" json:"links"`
	Projects   Catalog      `yaml:"projects" json:"projects"`
	Skills     []SkillGroup `yaml:"skills" json:"skills"`
	Experience []Job        `yaml:"experience" json:"experience"`
}

// Load decodes the portfolio bundled with the binary.
func Load() (*Portfolio, error) {
	return Parse(portfolioYAML)
}

// Parse decodes a portfolio document. A missing mailto link is derived from
// the profile email.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode portfolio: %w", err)
	}
	if p.Links.Email == "" && p.Profile.Email != "" {
		p.Links.Email = "mailto:" + p.Profile.Email
	}
	return &p, nil
}

// Validate reports authoring mistakes in the project list. It never blocks
// rendering; callers decide what to do with the findings.
func (p *Portfolio) Validate() []error {
	var problems []error
	seen := make(map[string]int, len(p.Projects))
	for i, proj := range p.Projects {
		title := strings.TrimSpace(proj.Title)
		if title == "" {
			problems = append(problems, fmt.Errorf("project %d: empty title", i))
		} else if first, dup := seen[proj.Title]; dup {
			problems = append(problems, fmt.Errorf("project %d: title %q already used by project %d", i, proj.Title, first))
		} else {
			seen[proj.Title] = i
		}
		if len(proj.Tech) == 0 {
			problems = append(problems, fmt.Errorf("project %d (%q): no tech tags, unreachable through filtering", i, proj.Title))
		}
		for _, t := range proj.Tech {
			if t == "" {
				problems = append(problems, fmt.Errorf("project %d (%q): empty tech tag", i, proj.Title))
			}
		}
	}
	return problems
}
