// Package parser extracts naming hints and structure from prompt documents.
package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/harrison/pagegen/internal/models"
)

// Recognized front-matter keys
const (
	KeyPageClass    = "pageClass"
	KeyStepsClass   = "stepsClass"
	KeyFeatureName  = "featureName"
	KeyPackagePages = "packagePages"
	KeyPackageSteps = "packageSteps"
)

var (
	// frontMatterBlock matches a leading ---/--- block; group 1 is the body.
	frontMatterBlock = regexp.MustCompile(`(?s)^\s*---[ \t]*\r?\n(?:(.*?)\r?\n)?[ \t]*---[ \t]*(?:\r?\n|$)`)
	frontMatterLine  = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9_]*)\s*:\s*(.+?)\s*$`)
	lineBreak        = regexp.MustCompile(`\r?\n`)
)

// FrontMatter holds the key/value pairs of a prompt's front-matter block.
// Keys that are not recognized are kept but never consulted.
type FrontMatter map[string]string

// ParseFrontMatter extracts the leading front-matter block from text.
// A missing block yields an empty FrontMatter; lines that are not
// "key: value" pairs, or whose value is blank, are skipped.
func ParseFrontMatter(text string) FrontMatter {
	fm := FrontMatter{}

	m := frontMatterBlock.FindStringSubmatch(text)
	if m == nil {
		return fm
	}

	for _, line := range lineBreak.Split(m[1], -1) {
		kv := frontMatterLine.FindStringSubmatch(line)
		if kv == nil {
			continue
		}
		value := strings.TrimSpace(kv[2])
		if value == "" {
			continue
		}
		fm[kv[1]] = value
	}
	return fm
}

// Hints copies the recognized keys into a NameHints record.
func (fm FrontMatter) Hints() models.NameHints {
	return models.NameHints{
		PageClass:    fm[KeyPageClass],
		StepsClass:   fm[KeyStepsClass],
		FeatureName:  fm[KeyFeatureName],
		PackagePages: fm[KeyPackagePages],
		PackageSteps: fm[KeyPackageSteps],
	}
}

// Unrecognized returns the keys that Hints ignores, sorted.
func (fm FrontMatter) Unrecognized() []string {
	var keys []string
	for k := range fm {
		switch k {
		case KeyPageClass, KeyStepsClass, KeyFeatureName, KeyPackagePages, KeyPackageSteps:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
