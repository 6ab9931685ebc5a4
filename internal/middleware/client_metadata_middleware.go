package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	contextKeyClientIP        = "clientIP"
	contextKeyClientUserAgent = "clientUserAgent"
)

// ClientMetadata captures the caller's IP and user agent into the request
// context. Both end up on recorded results, where the fraud detector reads
// them.
func ClientMetadata() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKeyClientIP, c.ClientIP())
		c.Set(contextKeyClientUserAgent, c.Request.UserAgent())
		c.Next()
	}
}

// ClientIP returns the captured client IP, falling back to gin's resolution
// when the middleware did not run.
func ClientIP(c *gin.Context) string {
	if ip, ok := c.Get(contextKeyClientIP); ok {
		if s, ok := ip.(string); ok {
			return s
		}
	}
	return c.ClientIP()
}

// ClientUserAgent returns the captured user agent string.
func ClientUserAgent(c *gin.Context) string {
	if ua, ok := c.Get(contextKeyClientUserAgent); ok {
		if s, ok := ua.(string); ok {
			return s
		}
	}
	return c.Request.UserAgent()
}
