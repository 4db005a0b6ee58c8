package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CORSConfig holds the cross-origin policy. The admin SPA and the storefront
// run on their own hosts, so the whitelist comes from config; preview
// deployments are admitted by suffix instead of enumerating every build URL.
type CORSConfig struct {
	AllowOrigins []string
	// AllowOriginSuffixes admits any origin ending with one of these
	// suffixes (e.g. ".vercel.app" for preview deployments).
	AllowOriginSuffixes []string
	AllowMethods        []string
	AllowHeaders        []string
	ExposeHeaders       []string
	AllowCredentials    bool
	MaxAge              time.Duration
}

func (cfg CORSConfig) originAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, o := range cfg.AllowOrigins {
		if o == origin {
			return true
		}
	}
	for _, suffix := range cfg.AllowOriginSuffixes {
		if strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}

// CORSWithConfig answers cross-origin requests per the configured policy.
// Preflights always get 204 so a disallowed origin fails CORS in the
// browser rather than hitting a 404. An empty whitelist allows nothing.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	allowAll := false
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			allowAll = true
			break
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := ""
		switch {
		case allowAll:
			allowed = "*"
		case cfg.originAllowed(origin):
			allowed = origin
		}

		if allowed != "" {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", allowed)
			if cfg.AllowCredentials && allowed != "*" {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
			h.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
			if len(cfg.ExposeHeaders) > 0 {
				h.Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
			}
			if cfg.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestID tags every request with a correlation ID, honoring one supplied
// by the caller. The ID is echoed in the response header and flows into
// request logs, SQL trace logs and error envelopes.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// SecurityConfig controls the response security headers.
type SecurityConfig struct {
	// HSTS is off by default; it only makes sense once the deployment
	// terminates TLS itself.
	HSTSEnabled bool
	HSTSMaxAge  int
	CSP         string
}

// DefaultSecurityConfig locks responses down for a JSON-only API: nothing
// the backend returns should ever be framed or executed as a document.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSEnabled: false,
		HSTSMaxAge:  31536000,
		CSP:         "default-src 'none'; frame-ancestors 'none'",
	}
}

// Secure applies the default security headers.
func Secure() gin.HandlerFunc {
	return SecureWithConfig(DefaultSecurityConfig())
}

// SecureWithConfig applies security headers with a custom configuration.
func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	hsts := ""
	if cfg.HSTSEnabled {
		hsts = fmt.Sprintf("max-age=%d; includeSubDomains", cfg.HSTSMaxAge)
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if cfg.CSP != "" {
			h.Set("Content-Security-Policy", cfg.CSP)
		}
		if hsts != "" {
			h.Set("Strict-Transport-Security", hsts)
		}
		c.Next()
	}
}
