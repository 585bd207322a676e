package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// SecureHeaders sets the standard security response headers. HTTPS redirects
// and HSTS apply only in production.
func SecureHeaders(production bool) gin.HandlerFunc {
	sm := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; frame-ancestors 'none'",
		SSLRedirect:           production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
		IsDevelopment:         !production,
	})

	return func(c *gin.Context) {
		if err := sm.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		// Process already wrote a redirect.
		if status := c.Writer.Status(); status > 300 && status < 399 {
			c.Abort()
			return
		}
		c.Next()
	}
}
