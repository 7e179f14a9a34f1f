package web

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const adminCookieMaxAge = 3600 * 24

func (s *Server) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	return userOK && passOK
}

// setupAdminRoutes registers the dashboard behind a session cookie. Nothing
// is registered without an admin password.
func (s *Server) setupAdminRoutes(r *gin.Engine) {
	if s.adminToken == "" {
		return
	}

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		client := s.clientID(c)
		if !s.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			s.logger.Warn("Failed admin login attempt", zap.String("client", client))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, s.adminToken, adminCookieMaxAge, "/admin", "", c.Request.TLS != nil, true)
		s.logger.Info("Admin login successful", zap.String("client", client))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", c.Request.TLS != nil, true)
		s.logger.Info("Admin logout", zap.String("client", s.clientID(c)))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		if s.analytics == nil {
			c.HTML(http.StatusServiceUnavailable, "admin-error.html", gin.H{"error": "Analytics are disabled"})
			return
		}
		stats, err := s.analytics.Stats(c.Request.Context())
		if err != nil {
			s.logger.Error("Loading admin stats failed", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":    stats,
			"tagCount": len(s.tags),
			"projects": len(s.portfolio.Projects),
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		if s.analytics == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analytics disabled"})
			return
		}
		stats, err := s.analytics.Stats(c.Request.Context())
		if err != nil {
			s.logger.Error("Loading admin stats failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		if s.analytics == nil {
			c.HTML(http.StatusServiceUnavailable, "admin-error.html", gin.H{"error": "Analytics are disabled"})
			return
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "200"))
		if err != nil || limit <= 0 || limit > 1000 {
			limit = 200
		}
		visits, err := s.analytics.RecentVisits(c.Request.Context(), limit)
		if err != nil {
			s.logger.Error("Loading visitors failed", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visits})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		if s.analytics == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analytics disabled"})
			return
		}
		stats, err := s.analytics.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.logger.Info("Admin stats exported", zap.String("client", s.clientID(c)))
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		if s.analytics == nil || s.retention <= 0 {
			c.JSON(http.StatusOK, gin.H{"message": "Nothing to clean up", "removed": 0})
			return
		}
		removed, err := s.analytics.Cleanup(c.Request.Context(), s.retention)
		if err != nil {
			s.logger.Error("Privacy cleanup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
			return
		}
		s.logger.Info("Privacy cleanup finished", zap.Int64("removed", removed))
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup finished", "removed": removed})
	})
}

// clientID is what logs see instead of the raw address.
func (s *Server) clientID(c *gin.Context) string {
	return s.hasher.Hash(c.ClientIP())
}
