package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/albertaizhang/portfolio/internal/catalog"
)

type toggleRequest struct {
	Current string `json:"current"`
	Clicked string `json:"clicked"`
}

type projectsResponse struct {
	Selected string            `json:"selected"`
	Count    int               `json:"count"`
	Projects []catalog.Project `json:"projects"`
}

func (s *Server) setupPageRoutes(r *gin.Engine) {
	r.GET("/", s.handleIndex)
	r.GET("/projects", s.handleProjectsFragment)
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":     "Privacy Policy",
			"profile":   s.portfolio.Profile,
			"retention": retentionLabel(s.retention),
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "projects": len(s.portfolio.Projects)})
	})

	api := r.Group("/api")
	api.GET("/tags", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tags": s.tags})
	})
	api.GET("/projects", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.projectsResponse(catalog.ParseFilter(c.Query("tag"))))
	})
	api.POST("/filter/toggle", s.handleToggle)
}

func (s *Server) handleIndex(c *gin.Context) {
	state := catalog.ParseFilter(c.Query("tag"))
	p := s.portfolio
	c.HTML(http.StatusOK, "index.html", gin.H{
		"profile":    p.Profile,
		"links":      p.Links,
		"skills":     p.Skills,
		"experience": p.Experience,
		"gallery":    buildGallery(p.Projects, s.tags, state),
		"projects":   projectsSection,
		"jobs":       experienceSection,
		"skillsSec":  skillsSection,
		"contactSec": contactSection,
		"hasContact": s.mailer != nil,
		"year":       time.Now().Year(),
	})
}

// handleProjectsFragment answers HTMX badge clicks with the filter bar and
// gallery for the requested state.
func (s *Server) handleProjectsFragment(c *gin.Context) {
	state := catalog.ParseFilter(c.Query("tag"))
	s.recordSelection(state)
	c.HTML(http.StatusOK, "projects.html", buildGallery(s.portfolio.Projects, s.tags, state))
}

func (s *Server) handleToggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	next := catalog.ToggleTag(catalog.ParseFilter(req.Current), req.Clicked)
	s.recordSelection(next)
	c.JSON(http.StatusOK, s.projectsResponse(next))
}

func (s *Server) projectsResponse(state catalog.FilterState) projectsResponse {
	visible := catalog.VisibleProjects(s.portfolio.Projects, state)
	return projectsResponse{Selected: state.Selected, Count: len(visible), Projects: visible}
}

// recordSelection counts a tag pick. Only tags from the catalog are counted
// so arbitrary query values cannot grow the table.
func (s *Server) recordSelection(state catalog.FilterState) {
	if s.analytics == nil || !state.Active() || !s.knownTag(state.Selected) {
		return
	}
	tag := state.Selected
	s.background("record tag selection", func(ctx context.Context) error {
		return s.analytics.RecordTagSelection(ctx, tag)
	})
}

func retentionLabel(d time.Duration) string {
	days := int(d.Hours() / 24)
	switch {
	case days <= 0:
		return "until manually removed"
	case days%365 == 0:
		return strconv.Itoa(days/365*12) + " months"
	default:
		return strconv.Itoa(days) + " days"
	}
}
