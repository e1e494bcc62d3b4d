package display

import (
	"fmt"
	"strings"
)

// WarnUnrecognizedKeys reports front-matter keys that do not feed naming
func WarnUnrecognizedKeys(prompt string, keys []string) Warning {
	return Warning{
		Title:      fmt.Sprintf("Unrecognized front-matter keys: %s", strings.Join(keys, ", ")),
		Files:      []string{prompt},
		Suggestion: "Recognized keys are pageClass, stepsClass, featureName, packagePages and packageSteps (case-sensitive)",
	}
}

// WarnNoNamingHints reports a prompt whose identifiers all come from defaults
func WarnNoNamingHints(prompt string) Warning {
	return Warning{
		Title:      "No naming hints found",
		Message:    "Every class and file name falls back to its default, so generating from this prompt overwrites the default artifacts",
		Files:      []string{prompt},
		Suggestion: "Add a front-matter block with pageClass/stepsClass/featureName or a \"Feature: <name>\" line",
	}
}

// WarnScanErrors reports paths that could not be read while scanning dir
func WarnScanErrors(dir string, errs []error) Warning {
	files := make([]string, 0, len(errs))
	for _, err := range errs {
		files = append(files, err.Error())
	}
	return Warning{
		Title: fmt.Sprintf("Skipped unreadable paths while scanning %s", dir),
		Files: files,
	}
}
