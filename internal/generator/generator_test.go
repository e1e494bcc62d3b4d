package generator

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/pagegen/internal/logger"
	"github.com/harrison/pagegen/internal/models"
	"github.com/harrison/pagegen/internal/naming"
)

// project creates <root>/tool as the working directory and returns both.
func project(t *testing.T) (root, workDir string) {
	t.Helper()
	root = t.TempDir()
	workDir = filepath.Join(root, "tool")
	require.NoError(t, os.MkdirAll(workDir, 0755))
	return root, workDir
}

func writePrompt(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := New(nil)
	require.NoError(t, err)
	return g
}

func TestGenerate_FrontMatterAndInference(t *testing.T) {
	root, workDir := project(t)
	writePrompt(t, filepath.Join(root, "prompts", "login.prompt.md"),
		"---\npageClass: LoginPage\n---\nFeature: Checkout Flow")

	g := newGenerator(t)
	opts := models.GenerationOptions{
		PromptPath: "prompts/login.prompt.md",
		Platform:   models.PlatformAndroid,
		WorkDir:    workDir,
	}

	prepared, err := g.Prepare(opts)
	require.NoError(t, err)
	assert.Equal(t, "LoginPage", prepared.Identifiers.PageClass)
	assert.Equal(t, "Checkout Flow", prepared.Identifiers.FeatureTitle)
	assert.Equal(t, "CheckoutFlow", prepared.Identifiers.FeatureName)
	assert.Equal(t, naming.DefaultStepsClass, prepared.Identifiers.StepsClass)

	result, err := g.Generate(opts)
	require.NoError(t, err)

	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.Equal(t, models.PlatformAndroid, result.Platform)
	assert.Equal(t, filepath.Join(root, "src", "test", "java", "pages", "LoginPage.java"), result.Files.PageFile)
	assert.Equal(t, filepath.Join(root, "src", "test", "java", "cucumber", "stepdefinitions", "WikiHomePageStepDefinitions.java"), result.Files.StepsFile)
	assert.Equal(t, filepath.Join(root, "src", "test", "resources", "features", "CheckoutFlow.feature"), result.Files.FeatureFile)

	for _, f := range []string{result.Files.PageFile, result.Files.StepsFile, result.Files.FeatureFile} {
		assert.FileExists(t, f)
		assert.False(t, strings.HasPrefix(f, workDir+string(filepath.Separator)), "outputs must not land in the tool directory")
	}
}

func TestGenerate_EmptyPromptUsesDefaults(t *testing.T) {
	root, workDir := project(t)
	writePrompt(t, filepath.Join(workDir, "empty.md"), "")

	result, err := newGenerator(t).Generate(models.GenerationOptions{
		PromptPath: "empty.md",
		WorkDir:    workDir,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PlatformAndroid, result.Platform)
	assert.Equal(t, "", result.PromptPreview)
	assert.Equal(t, filepath.Join(root, "src", "test", "java", "pages", naming.DefaultPageClass+".java"), result.Files.PageFile)
	assert.Equal(t, filepath.Join(root, "src", "test", "resources", "features", naming.DefaultFeatureName+".feature"), result.Files.FeatureFile)
	assert.FileExists(t, result.Files.PageFile)
	assert.FileExists(t, result.Files.StepsFile)
	assert.FileExists(t, result.Files.FeatureFile)
}

func TestGenerate_OverridesWin(t *testing.T) {
	root, workDir := project(t)
	writePrompt(t, filepath.Join(workDir, "p.md"),
		"---\npageClass: FmPage\nstepsClass: FmSteps\nfeatureName: FmFeature\npackagePages: fm.pages\npackageSteps: fm.steps\n---\nFeature: Ignored")

	result, err := newGenerator(t).Generate(models.GenerationOptions{
		PromptPath:  "p.md",
		Platform:    models.PlatformIOS,
		WorkDir:     workDir,
		ProjectRoot: root,
		JavaRoot:    "java",
		ResRoot:     "res",
		Overrides: models.NameHints{
			PageClass:    "Cli Page",
			PackageSteps: "cli.steps",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.PlatformIOS, result.Platform)
	assert.Equal(t, filepath.Join(root, "java", "fm", "pages", "CliPage.java"), result.Files.PageFile)
	assert.Equal(t, filepath.Join(root, "java", "cli", "steps", "FmSteps.java"), result.Files.StepsFile)
	assert.Equal(t, filepath.Join(root, "res", "features", "FmFeature.feature"), result.Files.FeatureFile)

	page, err := os.ReadFile(result.Files.PageFile)
	require.NoError(t, err)
	assert.Contains(t, string(page), "package fm.pages;")
	assert.Contains(t, string(page), "IOS locators")

	steps, err := os.ReadFile(result.Files.StepsFile)
	require.NoError(t, err)
	assert.Contains(t, string(steps), "import fm.pages.CliPage;")
}

func TestGenerate_Idempotent(t *testing.T) {
	_, workDir := project(t)
	writePrompt(t, filepath.Join(workDir, "p.md"), "Feature: Search")

	g := newGenerator(t)
	opts := models.GenerationOptions{PromptPath: "p.md", WorkDir: workDir}

	first, err := g.Generate(opts)
	require.NoError(t, err)
	before := snapshot(t, first)

	second, err := g.Generate(opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, snapshot(t, second))
}

func TestGenerate_PromptPreview(t *testing.T) {
	_, workDir := project(t)
	long := strings.Repeat("é", PreviewLength+40)
	writePrompt(t, filepath.Join(workDir, "long.md"), long)

	result, err := newGenerator(t).Generate(models.GenerationOptions{PromptPath: "long.md", WorkDir: workDir})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", PreviewLength), result.PromptPreview)
}

func TestGenerate_PromptNotFound(t *testing.T) {
	root, workDir := project(t)

	_, err := newGenerator(t).Generate(models.GenerationOptions{PromptPath: "missing.md", WorkDir: workDir})
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrPromptNotFound))
	assert.False(t, errors.Is(err, ErrWriteFailed))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, PhaseRead, genErr.Phase)
	assert.Equal(t, filepath.Join(root, "missing.md"), genErr.Path)

	_, statErr := os.Stat(filepath.Join(root, "src"))
	assert.True(t, os.IsNotExist(statErr), "nothing is created when the prompt is missing")
}

func TestGenerate_DirectoryCreateFailed(t *testing.T) {
	root, workDir := project(t)
	writePrompt(t, filepath.Join(workDir, "p.md"), "")
	require.NoError(t, os.WriteFile(filepath.Join(root, "src"), []byte("not a dir"), 0644))

	_, err := newGenerator(t).Generate(models.GenerationOptions{PromptPath: "p.md", WorkDir: workDir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDirectoryCreateFailed))

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, PhaseLayout, genErr.Phase)
}

func TestGenerate_WriteFailedKeepsEarlierArtifacts(t *testing.T) {
	root, workDir := project(t)
	writePrompt(t, filepath.Join(workDir, "p.md"), "")

	stepsFile := filepath.Join(root, "src", "test", "java", "cucumber", "stepdefinitions", naming.DefaultStepsClass+".java")
	require.NoError(t, os.MkdirAll(stepsFile, 0755))

	_, err := newGenerator(t).Generate(models.GenerationOptions{PromptPath: "p.md", WorkDir: workDir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWriteFailed))

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, PhaseWrite, genErr.Phase)
	assert.Equal(t, stepsFile, genErr.Path)

	assert.FileExists(t, filepath.Join(root, "src", "test", "java", "pages", naming.DefaultPageClass+".java"))
	assert.NoFileExists(t, filepath.Join(root, "src", "test", "resources", "features", naming.DefaultFeatureName+".feature"))
}

func TestGenerate_LogsDiagnostics(t *testing.T) {
	_, workDir := project(t)
	promptPath := filepath.Join(workDir, "p.md")
	writePrompt(t, promptPath, "")

	buf := &bytes.Buffer{}
	g, err := New(logger.NewConsoleLogger(buf, "info"))
	require.NoError(t, err)

	result, err := g.Generate(models.GenerationOptions{PromptPath: promptPath, WorkDir: workDir})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Reading prompt: "+promptPath)
	assert.Contains(t, out, "wrote page: "+result.Files.PageFile)
	assert.Contains(t, out, "wrote steps: "+result.Files.StepsFile)
	assert.Contains(t, out, "wrote feature: "+result.Files.FeatureFile)
	assert.NotContains(t, out, "[DEBUG]")
}

func TestGenerate_BlankFrontMatterFallsThrough(t *testing.T) {
	_, workDir := project(t)
	writePrompt(t, filepath.Join(workDir, "p.md"), "---\nfeatureName:   \npageClass: \n---\nFeature: Checkout Flow")

	prepared, err := newGenerator(t).Prepare(models.GenerationOptions{PromptPath: "p.md", WorkDir: workDir})
	require.NoError(t, err)
	assert.Empty(t, prepared.FrontMatter)
	assert.Equal(t, "CheckoutFlow", prepared.Identifiers.FeatureName)
	assert.Equal(t, naming.DefaultPageClass, prepared.Identifiers.PageClass)
}

func TestGenerate_TraceLogsNameResolution(t *testing.T) {
	_, workDir := project(t)
	writePrompt(t, filepath.Join(workDir, "p.md"), "---\npageClass: LoginPage\nauthor: qa\n---\nFeature: Checkout Flow")

	buf := &bytes.Buffer{}
	g, err := New(logger.NewConsoleLogger(buf, "trace"))
	require.NoError(t, err)

	_, err = g.Prepare(models.GenerationOptions{PromptPath: "p.md", WorkDir: workDir})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[TRACE] front matter hints: {PageClass:LoginPage")
	assert.Contains(t, out, "[TRACE] ignored front matter keys: author")
	assert.Contains(t, out, "[TRACE] inferred hints: {PageClass: StepsClass: FeatureName:Checkout Flow")
	assert.Contains(t, out, "[TRACE] resolved identifiers:")

	buf.Reset()
	g, err = New(logger.NewConsoleLogger(buf, "debug"))
	require.NoError(t, err)
	_, err = g.Prepare(models.GenerationOptions{PromptPath: "p.md", WorkDir: workDir})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "[TRACE]")
}

func TestGenerate_ErrorCarriesRunID(t *testing.T) {
	_, workDir := project(t)

	buf := &bytes.Buffer{}
	g, err := New(logger.NewConsoleLogger(buf, "debug"))
	require.NoError(t, err)

	_, err = g.Generate(models.GenerationOptions{PromptPath: "missing.md", WorkDir: workDir})
	require.Error(t, err)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	require.NotEmpty(t, genErr.RunID)
	assert.True(t, strings.HasSuffix(err.Error(), " (run "+genErr.RunID+")"))
	assert.Contains(t, buf.String(), "generation "+genErr.RunID+": platform=")

	_, prepErr := g.Prepare(models.GenerationOptions{PromptPath: "missing.md", WorkDir: workDir})
	require.True(t, errors.As(prepErr, &genErr))
	assert.Empty(t, genErr.RunID)
	assert.NotContains(t, prepErr.Error(), "(run ")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "abc", Preview("abc", 5))
	assert.Equal(t, "ab", Preview("abc", 2))
	assert.Equal(t, "日本", Preview("日本語", 2))
	assert.Equal(t, "", Preview("abc", 0))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "read", PhaseRead.String())
	assert.Equal(t, "layout", PhaseLayout.String())
	assert.Equal(t, "write", PhaseWrite.String())
	assert.Equal(t, "unknown", Phase(42).String())
}

func snapshot(t *testing.T, result *models.GenerationResult) []string {
	t.Helper()
	var out []string
	for _, f := range []string{result.Files.PageFile, result.Files.StepsFile, result.Files.FeatureFile} {
		data, err := os.ReadFile(f)
		require.NoError(t, err)
		out = append(out, string(data))
	}
	return out
}

func TestGenerate_ProjectDefaultPackages(t *testing.T) {
	root, workDir := project(t)
	writePrompt(t, filepath.Join(workDir, "p.md"), "---\npackageSteps: fm.steps\n---\n")

	g := newGenerator(t)
	result, err := g.Generate(models.GenerationOptions{
		PromptPath: "p.md",
		WorkDir:    workDir,
		Defaults:   models.NameHints{PackagePages: "proj.pages", PackageSteps: "proj.steps"},
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "src", "test", "java", "proj", "pages", naming.DefaultPageClass+".java"), result.Files.PageFile)
	assert.Equal(t, filepath.Join(root, "src", "test", "java", "fm", "steps", naming.DefaultStepsClass+".java"), result.Files.StepsFile)
}
