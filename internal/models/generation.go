package models

import "strings"

// Platform identifies the mobile platform the generated page object targets.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// ParsePlatform maps a user-supplied platform string to a Platform.
// Matching is case-insensitive; "ios" selects iOS and anything else,
// including the empty string, selects Android.
func ParsePlatform(s string) Platform {
	if strings.EqualFold(strings.TrimSpace(s), string(PlatformIOS)) {
		return PlatformIOS
	}
	return PlatformAndroid
}

// String returns the lowercase platform name.
func (p Platform) String() string {
	return string(p)
}

// Status values reported in a GenerationResult
const (
	StatusSuccess = "success"
)

// GenerationOptions holds everything a caller supplies for one generation run.
// Empty strings mean "not supplied" for every optional field.
type GenerationOptions struct {
	PromptPath string   // Prompt document path, absolute or relative to WorkDir
	Platform   Platform // Target platform
	JavaRoot   string   // Page/steps source root relative to ProjectRoot
	ResRoot    string   // Resource root relative to ProjectRoot

	WorkDir     string // Directory relative prompt paths are resolved from
	ProjectRoot string // Directory all outputs are written under

	Overrides NameHints // Explicit caller overrides, highest precedence
	Defaults  NameHints // Project defaults, consulted just before the built-in ones
}

// NameHints is one source of naming hints. Each recognized key has its own
// slot; an empty slot means the source did not provide a value.
type NameHints struct {
	PageClass    string
	StepsClass   string
	FeatureName  string
	PackagePages string
	PackageSteps string
}

// IsEmpty reports whether no slot is set.
func (h NameHints) IsEmpty() bool {
	return h == NameHints{}
}

// ResolvedIdentifiers are the final names chosen for one run.
// PageClass, StepsClass and FeatureName contain only word characters.
// FeatureTitle is the human-facing form of the feature name before the
// file-safe pass and may contain single spaces.
type ResolvedIdentifiers struct {
	PageClass    string
	StepsClass   string
	FeatureName  string
	FeatureTitle string
	PackagePages string
	PackageSteps string
}

// PageFQN returns the fully qualified page-object class name.
func (r ResolvedIdentifiers) PageFQN() string {
	if r.PackagePages == "" {
		return r.PageClass
	}
	return r.PackagePages + "." + r.PageClass
}

// OutputPlan holds the absolute directories and files of one run.
type OutputPlan struct {
	PageDir    string
	StepsDir   string
	FeatureDir string

	PageFile    string
	StepsFile   string
	FeatureFile string
}

// Dirs returns the three output directories in creation order.
func (p OutputPlan) Dirs() []string {
	return []string{p.PageDir, p.StepsDir, p.FeatureDir}
}

// GeneratedFiles lists the absolute paths written by a run.
type GeneratedFiles struct {
	PageFile    string `json:"pageFile"`
	StepsFile   string `json:"stepsFile"`
	FeatureFile string `json:"featureFile"`
}

// GenerationResult is returned to the caller after a successful run.
// It is never persisted by the generator.
type GenerationResult struct {
	Status        string         `json:"status"`
	Platform      Platform       `json:"platform"`
	PromptPreview string         `json:"promptPreview"`
	Files         GeneratedFiles `json:"files"`
}
