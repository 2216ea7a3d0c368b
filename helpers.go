// helpers.go
package cardpress

import (
	"strings"
)

// --- Pointer Default Helpers ---

// Helper to get value from pointer or default
func getString(ptr *string, def string) string {
	if ptr != nil {
		return *ptr
	}
	return def
}

func getFloat64(ptr *float64, def float64) float64 {
	if ptr != nil {
		return *ptr
	}
	return def
}

// --- Numeric Helpers ---

// clamp keeps v within [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampPosition keeps both axes within the 0-100 percent range.
func clampPosition(p Position) Position {
	return Position{X: clamp(p.X, 0, 100), Y: clamp(p.Y, 0, 100)}
}

// --- Markup Escaping ---

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// escapeHTML makes a string safe for element content and attribute values.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// escapeCSS strips characters that would break out of a CSS declaration.
// Catalog values are trusted, but user text can reach font sizes etc.
func escapeCSS(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>':
			return -1
		}
		return r
	}, s)
}

// --- Filenames ---

// DefaultExportName is used when the recipient name is blank or sanitizes
// down to nothing.
const DefaultExportName = "greeting-card"

// sanitizeFilename reduces a recipient name to a safe filename stem:
// letters, digits and dashes, lowercased, runs of other characters
// collapsed to a single dash.
func sanitizeFilename(name string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return DefaultExportName
	}
	return out
}

// ExportFilename derives the download filename for an export from the
// recipient's name and the image format extension.
func ExportFilename(recipient, format string) string {
	ext := strings.ToLower(format)
	if ext == "jpeg" {
		ext = "jpg"
	}
	return sanitizeFilename(recipient) + "." + ext
}
