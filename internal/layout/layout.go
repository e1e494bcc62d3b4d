// Package layout maps resolved identifiers to output directories and files.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/pagegen/internal/models"
)

// Fixed names and extensions of the output tree
const (
	FeaturesDir      = "features"
	JavaExtension    = ".java"
	FeatureExtension = ".feature"
)

// Plan computes the output directories and files for one run.
// Page and steps directories get one level per dot-separated package segment
// under projectRoot/javaRoot; features go to projectRoot/resRoot/features.
// The returned paths are absolute when projectRoot is.
func Plan(projectRoot, javaRoot, resRoot string, ids models.ResolvedIdentifiers) models.OutputPlan {
	pageDir := packageDir(projectRoot, javaRoot, ids.PackagePages)
	stepsDir := packageDir(projectRoot, javaRoot, ids.PackageSteps)
	featureDir := filepath.Join(projectRoot, resRoot, FeaturesDir)

	return models.OutputPlan{
		PageDir:     pageDir,
		StepsDir:    stepsDir,
		FeatureDir:  featureDir,
		PageFile:    filepath.Join(pageDir, ids.PageClass+JavaExtension),
		StepsFile:   filepath.Join(stepsDir, ids.StepsClass+JavaExtension),
		FeatureFile: filepath.Join(featureDir, ids.FeatureName+FeatureExtension),
	}
}

// packageDir joins root, sourceRoot and each non-empty segment of pkg.
func packageDir(root, sourceRoot, pkg string) string {
	parts := []string{root, sourceRoot}
	for _, seg := range strings.Split(pkg, ".") {
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return filepath.Join(parts...)
}

// Ensure creates every directory of plan, including parents.
// Directories that already exist are left untouched.
func Ensure(plan models.OutputPlan) error {
	for _, dir := range plan.Dirs() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
