package parser

import (
	"regexp"

	"github.com/harrison/pagegen/internal/models"
	"github.com/harrison/pagegen/internal/naming"
)

// featureFallback replaces a Feature: header with no word characters
const featureFallback = "Feature"

var featureLine = regexp.MustCompile(`(?m)^[ \t]*Feature:[ \t]*(.+?)[ \t\r]*$`)

// InferHints derives hints from the prompt body. Only the feature name is
// inferred, from the first "Feature: <text>" line.
func InferHints(text string) models.NameHints {
	m := featureLine.FindStringSubmatch(text)
	if m == nil {
		return models.NameHints{}
	}
	return models.NameHints{FeatureName: naming.Readable(m[1], featureFallback)}
}
