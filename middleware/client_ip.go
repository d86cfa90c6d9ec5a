package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIP picks the address requests are rate limited by. Forwarded headers
// only count when they carry a parseable IP, so junk values share the
// connection's bucket instead of minting a fresh one per request.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(c.GetHeader("X-Real-IP"))); ip != nil {
		return ip.String()
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
