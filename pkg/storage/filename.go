package storage

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const maxBaseNameLength = 50

var whitespaceRun = regexp.MustCompile(`\s+`)

// GenerateFilename builds the stored name for an upload:
// "<unix millis>_<sanitized base><lowercased extension>".
// Whitespace runs in the base become "_" and the base is cut to 50 characters.
func GenerateFilename(original string, now time.Time) string {
	original = filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(original, filepath.Ext(original))
	base = whitespaceRun.ReplaceAllString(base, "_")
	base = strings.ReplaceAll(base, "/", "_")

	if runes := []rune(base); len(runes) > maxBaseNameLength {
		base = string(runes[:maxBaseNameLength])
	}

	return fmt.Sprintf("%d_%s%s", now.UnixMilli(), base, ext)
}
