// Package web serves the portfolio page, its HTMX fragments and JSON API, the
// contact form and the admin dashboard.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/albertaizhang/portfolio/internal/analytics"
	"github.com/albertaizhang/portfolio/internal/catalog"
	"github.com/albertaizhang/portfolio/internal/contact"
)

//go:embed templates/*.html
var templatesFS embed.FS

const backgroundTimeout = 5 * time.Second

// Analytics is the subset of the analytics store the site uses.
type Analytics interface {
	RecordVisit(ctx context.Context, hashedIP, userAgent, path string) error
	RecordTagSelection(ctx context.Context, tag string) error
	Stats(ctx context.Context) (*analytics.Stats, error)
	RecentVisits(ctx context.Context, limit int) ([]analytics.Visit, error)
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)
}

// AdminCredentials guard the dashboard. An empty password leaves the admin
// routes unregistered.
type AdminCredentials struct {
	Username string
	Password string
}

// Options wires a Server. Portfolio and Logger are required; a nil
// Analytics disables tracking, a nil Mailer disables the contact form.
type Options struct {
	Portfolio *catalog.Portfolio
	Logger    *zap.Logger
	Analytics Analytics
	Hasher    *analytics.Hasher
	Mailer    contact.Mailer
	Admin     AdminCredentials
	Retention time.Duration
	StaticDir string
}

// Server owns the gin engine and the background analytics writes.
type Server struct {
	portfolio  *catalog.Portfolio
	tags       []string
	logger     *zap.Logger
	analytics  Analytics
	hasher     *analytics.Hasher
	mailer     contact.Mailer
	admin      AdminCredentials
	adminToken string
	retention  time.Duration
	staticDir  string

	engine *gin.Engine
	bg     conc.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// New builds the server and registers every route.
func New(opts Options) (*Server, error) {
	s := &Server{
		portfolio: opts.Portfolio,
		tags:      catalog.TagUniverse(opts.Portfolio.Projects),
		logger:    opts.Logger,
		analytics: opts.Analytics,
		hasher:    opts.Hasher,
		mailer:    opts.Mailer,
		admin:     opts.Admin,
		retention: opts.Retention,
		staticDir: opts.StaticDir,
	}
	if s.hasher == nil {
		h, err := analytics.NewHasher()
		if err != nil {
			return nil, err
		}
		s.hasher = h
	}
	if s.admin.Password != "" {
		token, err := analytics.RandomToken()
		if err != nil {
			return nil, err
		}
		s.adminToken = token
	}

	tmpl, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(requestIDMiddleware(), loggingMiddleware(s.logger), gin.Recovery())
	if s.analytics != nil {
		r.Use(s.visitorTrackingMiddleware())
	}
	if s.staticDir != "" {
		r.Static("/static", s.staticDir)
	}

	s.engine = r
	s.setupPageRoutes(r)
	s.setupContactRoutes(r)
	s.setupAdminRoutes(r)
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Wait blocks until pending background writes finish.
func (s *Server) Wait() { s.bg.Wait() }

// Close stops accepting background writes and waits for pending ones.
// Requests still in flight after Close are served without recording.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.bg.Wait()
}

// background runs fn detached from the request so a finished response does
// not cancel the write.
func (s *Server) background(name string, fn func(ctx context.Context) error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.logger.Debug("Background task skipped after close", zap.String("task", name))
		return
	}
	s.bg.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.logger.Warn("Background task failed", zap.String("task", name), zap.Error(err))
		}
	})
}

// knownTag reports whether tag is in the tag universe.
func (s *Server) knownTag(tag string) bool {
	return slices.Contains(s.tags, tag)
}
