package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	nonSlugChars = regexp.MustCompile("[^a-z0-9-]")
	hyphenRuns   = regexp.MustCompile("-+")
)

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NewMaterialID builds a stable id for a custom material from its first name
func NewMaterialID(name string) string {
	suffix := uuid.New().String()[:8]
	if slug := Slugify(name); slug != "" {
		return slug + "-" + suffix
	}
	return "custom-" + suffix
}
