package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/albertaizhang/portfolio/internal/contact"
)

// setupContactRoutes registers the HTMX contact form. Error fragments are
// sent with 200 so HTMX swaps them in.
func (s *Server) setupContactRoutes(r *gin.Engine) {
	if s.mailer == nil {
		return
	}

	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})

	r.POST("/contact", func(c *gin.Context) {
		msg := contact.Message{
			Name:  c.PostForm("fullName"),
			Email: c.PostForm("email"),
			Body:  c.PostForm("message"),
		}.Normalize()

		if err := msg.Validate(); err != nil {
			reason := contactFailure
			var verr *contact.ValidationError
			if errors.As(err, &verr) {
				reason = verr.Reason
			}
			c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": reason})
			return
		}

		if err := s.mailer.Send(c.Request.Context(), msg); err != nil {
			s.logger.Error("Contact form delivery failed", zap.Error(err), zap.String("request_id", c.GetString("request_id")))
			c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": contactFailure})
			return
		}

		c.HTML(http.StatusOK, "contact-success.html", gin.H{"success": contactSuccess})
	})
}
