package middleware

import (
	"os"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware adds CORS headers so the landing page can call the API from
// its own origin. The funnel is a public endpoint, but the origin list stays
// explicit: the production site plus localhost in development.
func CORSMiddleware() gin.HandlerFunc {
	isProduction := os.Getenv("GIN_MODE") == "release"

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := map[string]bool{
			"https://www.serenityspang.com": true,
			"https://serenityspang.com":     true,
		}
		if !isProduction {
			allowed["http://localhost:3000"] = true
			allowed["http://127.0.0.1:3000"] = true
		}

		// Same-origin requests carry no Origin header.
		isAllowed := origin == "" || allowed[origin]

		if isAllowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
		}
		c.Header("Vary", "Origin")

		if c.Request.Method == "OPTIONS" {
			if isAllowed {
				c.AbortWithStatus(204)
			} else {
				c.AbortWithStatus(403)
			}
			return
		}

		c.Next()
	}
}
