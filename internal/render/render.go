// Package render fills the embedded artifact templates with resolved
// identifiers and writes the results into the output tree.
//
// Writes replace existing files unconditionally: the last generation wins and
// nothing is merged, diffed or backed up.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/harrison/pagegen/internal/filelock"
	"github.com/harrison/pagegen/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Kind names one of the generated artifacts.
type Kind string

const (
	KindPage    Kind = "page"
	KindSteps   Kind = "steps"
	KindFeature Kind = "feature"
)

// Kinds lists the artifacts in write order.
var Kinds = []Kind{KindPage, KindSteps, KindFeature}

var templateFiles = map[Kind]string{
	KindPage:    "templates/page.java.tmpl",
	KindSteps:   "templates/steps.java.tmpl",
	KindFeature: "templates/feature.tmpl",
}

// Data is the substitution context shared by all templates.
type Data struct {
	PackagePages  string
	PackageSteps  string
	PageClass     string
	PageFQN       string
	StepsClass    string
	FeatureName   string
	FeatureTitle  string
	Platform      string
	PlatformUpper string
}

// NewData builds template data from resolved identifiers and a platform.
func NewData(ids models.ResolvedIdentifiers, platform models.Platform) Data {
	return Data{
		PackagePages:  ids.PackagePages,
		PackageSteps:  ids.PackageSteps,
		PageClass:     ids.PageClass,
		PageFQN:       ids.PageFQN(),
		StepsClass:    ids.StepsClass,
		FeatureName:   ids.FeatureName,
		FeatureTitle:  ids.FeatureTitle,
		Platform:      platform.String(),
		PlatformUpper: strings.ToUpper(platform.String()),
	}
}

// ArtifactError reports which artifact could not be rendered or written.
type ArtifactError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("%s artifact %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// Renderer holds the parsed artifact templates. It is safe for concurrent use.
type Renderer struct {
	templates map[Kind]*template.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[Kind]*template.Template, len(templateFiles))}
	for kind, path := range templateFiles {
		content, err := templateFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", path, err)
		}
		tmpl, err := template.New(string(kind)).Option("missingkey=error").Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
		}
		r.templates[kind] = tmpl
	}
	return r, nil
}

// Render executes the template for kind.
func (r *Renderer) Render(kind Kind, data Data) ([]byte, error) {
	tmpl, ok := r.templates[kind]
	if !ok {
		return nil, fmt.Errorf("unknown artifact kind %q", kind)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute %s template: %w", kind, err)
	}
	return buf.Bytes(), nil
}

// Target returns the file plan assigns to kind.
func Target(plan models.OutputPlan, kind Kind) string {
	switch kind {
	case KindPage:
		return plan.PageFile
	case KindSteps:
		return plan.StepsFile
	case KindFeature:
		return plan.FeatureFile
	}
	return ""
}

// WriteHooks observe WriteAll. Nil hooks are skipped.
type WriteHooks struct {
	// OnWait is called when another writer holds the lock on path
	OnWait func(kind Kind, path string)

	// OnWritten is called after each file is replaced
	OnWritten func(kind Kind, path string)
}

// WriteAll renders and writes every artifact in Kinds order. The directories
// of plan must exist. The first failure is returned as an *ArtifactError;
// files written before it stay on disk.
func (r *Renderer) WriteAll(plan models.OutputPlan, data Data, hooks WriteHooks) error {
	for _, kind := range Kinds {
		path := Target(plan, kind)

		content, err := r.Render(kind, data)
		if err != nil {
			return &ArtifactError{Kind: kind, Path: path, Err: err}
		}

		var onWait func()
		if hooks.OnWait != nil {
			onWait = func() { hooks.OnWait(kind, path) }
		}
		if err := filelock.LockAndWrite(path, content, onWait); err != nil {
			return &ArtifactError{Kind: kind, Path: path, Err: err}
		}
		if hooks.OnWritten != nil {
			hooks.OnWritten(kind, path)
		}
	}
	return nil
}
