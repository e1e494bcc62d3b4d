// Package generator runs the scaffolding pipeline: read a prompt, resolve
// names, lay out the output tree and write the three artifacts.
package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/harrison/pagegen/internal/fileutil"
	"github.com/harrison/pagegen/internal/layout"
	"github.com/harrison/pagegen/internal/logger"
	"github.com/harrison/pagegen/internal/models"
	"github.com/harrison/pagegen/internal/naming"
	"github.com/harrison/pagegen/internal/parser"
	"github.com/harrison/pagegen/internal/render"
)

// PreviewLength is the number of characters of the prompt echoed in results
const PreviewLength = 160

// Default output roots, relative to the project root
const (
	DefaultJavaRoot = "src/test/java"
	DefaultResRoot  = "src/test/resources"
)

// Generator runs generation passes. It keeps no state between calls and is
// safe for concurrent use, but concurrent runs that target the same files
// race: the last write wins.
type Generator struct {
	renderer *render.Renderer
	logger   logger.Logger
}

// New creates a Generator. A nil log discards diagnostics.
func New(log logger.Logger) (*Generator, error) {
	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("creating template renderer: %w", err)
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Generator{renderer: renderer, logger: log}, nil
}

// Prepared is the outcome of the read and resolve steps of a run.
type Prepared struct {
	PromptPath  string
	Prompt      string
	FrontMatter parser.FrontMatter
	Identifiers models.ResolvedIdentifiers
	Plan        models.OutputPlan
}

// Prepare reads the prompt and computes identifiers and the output plan
// without touching the output tree.
func (g *Generator) Prepare(opts models.GenerationOptions) (*Prepared, error) {
	opts = withDefaults(opts)

	promptPath := fileutil.ResolvePromptPath(opts.PromptPath, opts.WorkDir)
	g.logger.LogInfo(fmt.Sprintf("Reading prompt: %s", promptPath))

	data, err := os.ReadFile(promptPath)
	if err != nil {
		return nil, newError(PhaseRead, promptPath, err)
	}
	prompt := string(data)

	fm := parser.ParseFrontMatter(prompt)
	inferred := parser.InferHints(prompt)
	g.logger.LogTrace(fmt.Sprintf("front matter hints: %+v", fm.Hints()))
	if keys := fm.Unrecognized(); len(keys) > 0 {
		g.logger.LogTrace(fmt.Sprintf("ignored front matter keys: %s", strings.Join(keys, ", ")))
	}
	g.logger.LogTrace(fmt.Sprintf("inferred hints: %+v", inferred))

	ids := naming.Resolve(opts.Overrides, fm.Hints(), inferred, opts.Defaults)
	g.logger.LogTrace(fmt.Sprintf("resolved identifiers: %+v", ids))

	return &Prepared{
		PromptPath:  promptPath,
		Prompt:      prompt,
		FrontMatter: fm,
		Identifiers: ids,
		Plan:        layout.Plan(opts.ProjectRoot, opts.JavaRoot, opts.ResRoot, ids),
	}, nil
}

// Generate runs the whole pipeline once. Any failure aborts the run; artifacts
// written before the failure are left in place.
func (g *Generator) Generate(opts models.GenerationOptions) (*models.GenerationResult, error) {
	runID := uuid.NewString()
	opts = withDefaults(opts)
	g.logger.LogDebug(fmt.Sprintf("generation %s: platform=%s projectRoot=%s", runID, opts.Platform, opts.ProjectRoot))

	prepared, err := g.Prepare(opts)
	if err != nil {
		return nil, withRun(err, runID)
	}
	plan := prepared.Plan

	if err := layout.Ensure(plan); err != nil {
		path := plan.PageDir
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			path = pathErr.Path
		}
		return nil, withRun(newError(PhaseLayout, path, err), runID)
	}

	data := render.NewData(prepared.Identifiers, opts.Platform)
	err = g.renderer.WriteAll(plan, data, render.WriteHooks{
		OnWait: func(kind render.Kind, path string) {
			g.logger.LogWarn(fmt.Sprintf("Waiting for another writer to release %s", path))
		},
		OnWritten: func(kind render.Kind, path string) {
			g.logger.LogArtifact(string(kind), path)
		},
	})
	if err != nil {
		path := ""
		var artifactErr *render.ArtifactError
		if errors.As(err, &artifactErr) {
			path = artifactErr.Path
		}
		return nil, withRun(newError(PhaseWrite, path, err), runID)
	}

	g.logger.LogDebug(fmt.Sprintf("generation %s: complete", runID))

	return &models.GenerationResult{
		Status:        models.StatusSuccess,
		Platform:      opts.Platform,
		PromptPreview: Preview(prepared.Prompt, PreviewLength),
		Files: models.GeneratedFiles{
			PageFile:    plan.PageFile,
			StepsFile:   plan.StepsFile,
			FeatureFile: plan.FeatureFile,
		},
	}, nil
}

// Preview returns at most n characters of s without splitting a character.
func Preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// withDefaults fills unset roots and directories and makes both directories
// absolute. The project root defaults to the parent of the working directory.
func withDefaults(opts models.GenerationOptions) models.GenerationOptions {
	if opts.Platform == "" {
		opts.Platform = models.PlatformAndroid
	}
	if opts.JavaRoot == "" {
		opts.JavaRoot = DefaultJavaRoot
	}
	if opts.ResRoot == "" {
		opts.ResRoot = DefaultResRoot
	}
	if opts.WorkDir == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.WorkDir = wd
		}
	}
	if abs, err := filepath.Abs(opts.WorkDir); err == nil {
		opts.WorkDir = abs
	}
	if opts.ProjectRoot == "" {
		opts.ProjectRoot = filepath.Dir(opts.WorkDir)
	}
	if abs, err := filepath.Abs(opts.ProjectRoot); err == nil {
		opts.ProjectRoot = abs
	}
	return opts
}
