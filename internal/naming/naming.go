// Package naming resolves the identifiers used for generated artifacts.
//
// Each identifier is chosen from the first source that provides it, in this
// order: explicit caller override, prompt front-matter, inference from the
// prompt body (feature name only), project defaults, hard-coded default. Class and feature
// names are then reduced to word characters; package paths are used as given.
package naming

import (
	"regexp"
	"strings"

	"github.com/harrison/pagegen/internal/models"
)

// Hard-coded defaults used when no source provides a value
const (
	DefaultPageClass    = "MobileWikiHomePage"
	DefaultStepsClass   = "WikiHomePageStepDefinitions"
	DefaultFeatureName  = "WikiHomeButtons"
	DefaultPackagePages = "pages"
	DefaultPackageSteps = "cucumber.stepdefinitions"
)

var (
	nonWordChar = regexp.MustCompile(`[^A-Za-z0-9_]`)
	nonWordRun  = regexp.MustCompile(`[^A-Za-z0-9_]+`)
)

// Sanitize deletes every character that is not a letter, digit or underscore.
// Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	return nonWordChar.ReplaceAllString(s, "")
}

// Readable collapses each run of non-word characters to a single space and
// trims the result. It returns fallback when nothing is left.
func Readable(s, fallback string) string {
	core := strings.TrimSpace(nonWordRun.ReplaceAllString(strings.TrimSpace(s), " "))
	if core == "" {
		return fallback
	}
	return core
}

// Resolve merges the hint sources by precedence and returns the final
// identifiers. Only the FeatureName slot of inferred is consulted; project
// holds configured defaults that rank just above the hard-coded ones.
func Resolve(overrides, frontMatter, inferred, project models.NameHints) models.ResolvedIdentifiers {
	title := first(overrides.FeatureName, frontMatter.FeatureName, inferred.FeatureName, project.FeatureName, DefaultFeatureName)

	return models.ResolvedIdentifiers{
		PageClass:    identifier(DefaultPageClass, overrides.PageClass, frontMatter.PageClass, project.PageClass),
		StepsClass:   identifier(DefaultStepsClass, overrides.StepsClass, frontMatter.StepsClass, project.StepsClass),
		FeatureName:  identifier(DefaultFeatureName, title),
		FeatureTitle: title,
		PackagePages: first(overrides.PackagePages, frontMatter.PackagePages, project.PackagePages, DefaultPackagePages),
		PackageSteps: first(overrides.PackageSteps, frontMatter.PackageSteps, project.PackageSteps, DefaultPackageSteps),
	}
}

// identifier picks the first non-empty candidate and sanitizes it.
// A candidate that sanitizes to nothing yields def.
func identifier(def string, candidates ...string) string {
	if name := Sanitize(first(candidates...)); name != "" {
		return name
	}
	return def
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
