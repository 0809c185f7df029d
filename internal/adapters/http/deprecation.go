package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DeprecatedRoute marks an endpoint scheduled for removal. The legacy
// /v1/smoking-areas alias is kept alive for older map clients until its
// sunset date.
type DeprecatedRoute struct {
	Path        string
	SunsetDate  time.Time
	Alternative string
}

// DeprecationMiddleware adds RFC 8594 Deprecation and Sunset headers, plus a
// successor-version Link, to responses on deprecated paths.
func DeprecationMiddleware(deprecated []DeprecatedRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, d := range deprecated {
			if !pathMatches(c.Path(), d.Path) {
				continue
			}
			c.Set("Deprecation", "true")
			c.Set("Sunset", d.SunsetDate.UTC().Format(time.RFC1123))
			if d.Alternative != "" {
				c.Set("Link", fmt.Sprintf(`<%s>; rel="successor-version"`, d.Alternative))
			}
			days := time.Until(d.SunsetDate).Hours() / 24
			c.Set("Warning", fmt.Sprintf(`299 - "Deprecated API, will sunset in %.0f days"`, days))
			break
		}
		return c.Next()
	}
}

// pathMatches reports whether the request path is the deprecated path itself
// or a subpath of it.
func pathMatches(path, pattern string) bool {
	return path == pattern || strings.HasPrefix(path, pattern+"/")
}
