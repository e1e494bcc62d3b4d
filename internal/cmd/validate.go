package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/pagegen/internal/display"
	"github.com/harrison/pagegen/internal/fileutil"
	"github.com/harrison/pagegen/internal/generator"
	"github.com/harrison/pagegen/internal/models"
	"github.com/harrison/pagegen/internal/parser"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [prompt-file-or-directory]...",
		Short: "Show what generate would write for one or more prompts",
		Long: `Resolve names and output paths for each prompt without creating
directories or writing files, and print the prompt's outline (markdown
headings and fenced gherkin blocks).

Supports multiple input modes:
  - No arguments: the configured default prompt
  - Single file: pagegen validate login.prompt.md
  - Directory: pagegen validate prompts/ (scans *.prompt.md and *.md recursively)
  - Multiple files: pagegen validate a.prompt.md b.prompt.md

Directory scans skip hidden directories and any named with --exclude.
--max-depth 1 limits a scan to the directory itself.

Exit code: 0 if every prompt resolved, 1 otherwise`,
		Args: cobra.ArbitraryArgs,
		RunE: validateCommand,
	}

	addEnvironmentFlags(cmd)
	cmd.Flags().Bool("recursive", true, "Descend into subdirectories when scanning a directory")
	cmd.Flags().Int("max-depth", 0, "Maximum directory depth to scan (0 = unlimited, 1 = directory itself only)")
	cmd.Flags().StringSlice("exclude", nil, "Directory names to skip while scanning (repeatable)")
	cmd.Flags().StringSlice("suffix", nil, "Prompt file suffixes to match (default .prompt.md,.md)")

	return cmd
}

func scanOptions(cmd *cobra.Command) (fileutil.ScanOptions, error) {
	recursive, err := cmd.Flags().GetBool("recursive")
	if err != nil {
		return fileutil.ScanOptions{}, err
	}
	maxDepth, err := cmd.Flags().GetInt("max-depth")
	if err != nil {
		return fileutil.ScanOptions{}, err
	}
	if maxDepth < 0 {
		return fileutil.ScanOptions{}, fmt.Errorf("--max-depth must not be negative, got %d", maxDepth)
	}
	exclude, err := cmd.Flags().GetStringSlice("exclude")
	if err != nil {
		return fileutil.ScanOptions{}, err
	}
	suffixes, err := cmd.Flags().GetStringSlice("suffix")
	if err != nil {
		return fileutil.ScanOptions{}, err
	}

	return fileutil.ScanOptions{
		Suffixes:    suffixes,
		Recursive:   recursive,
		ExcludeDirs: exclude,
		MaxDepth:    maxDepth,
	}, nil
}

func validateCommand(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{env.cfg.Prompt}
	}

	scan, err := scanOptions(cmd)
	if err != nil {
		return err
	}

	prompts, err := collectPrompts(args, env.workDir, scan, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if len(prompts) == 0 {
		return fmt.Errorf("no prompt documents found")
	}

	gen, err := generator.New(env.log)
	if err != nil {
		return err
	}

	outline := parser.NewOutlineParser()
	out := cmd.OutOrStdout()
	failed := 0

	for _, prompt := range prompts {
		prepared, err := gen.Prepare(env.options(prompt, models.NameHints{}))
		if err != nil {
			fmt.Fprintf(out, "✗ %s: %v\n\n", prompt, err)
			failed++
			continue
		}

		o, err := outline.Parse(prepared.Prompt)
		if err != nil {
			fmt.Fprintf(out, "✗ %s: failed to parse markdown: %v\n\n", prepared.PromptPath, err)
			failed++
			continue
		}

		printPrepared(out, prepared, o)
		warnPrepared(out, prepared)
	}

	if failed > 0 {
		return fmt.Errorf("validation failed: %d of %d prompt(s) could not be resolved", failed, len(prompts))
	}

	fmt.Fprintf(out, "✓ %d prompt(s) resolved\n", len(prompts))
	return nil
}

// collectPrompts expands the arguments into prompt file paths. Directories
// are scanned with scan; files are passed through as given.
func collectPrompts(args []string, workDir string, scan fileutil.ScanOptions, output io.Writer) ([]string, error) {
	var prompts []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			prompts = append(prompts, path)
		}
	}

	for _, arg := range args {
		resolved := fileutil.ResolvePromptPath(arg, workDir)
		info, err := os.Stat(resolved)
		if err != nil || !info.IsDir() {
			// Missing files are reported by the prepare step
			add(arg)
			continue
		}

		result, err := fileutil.ScanPrompts(resolved, scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", resolved, err)
		}
		if len(result.Errors) > 0 {
			display.WarnScanErrors(resolved, result.Errors).Display(output)
		}
		for _, f := range result.Files {
			add(f)
		}
	}

	return prompts, nil
}

func printPrepared(w io.Writer, p *generator.Prepared, o *parser.Outline) {
	ids := p.Identifiers

	fmt.Fprintf(w, "Prompt: %s\n", p.PromptPath)
	fmt.Fprintf(w, "  Page:    %s -> %s\n", ids.PageFQN(), p.Plan.PageFile)
	fmt.Fprintf(w, "  Steps:   %s.%s -> %s\n", ids.PackageSteps, ids.StepsClass, p.Plan.StepsFile)
	fmt.Fprintf(w, "  Feature: %s -> %s\n", ids.FeatureTitle, p.Plan.FeatureFile)

	if len(p.FrontMatter) > 0 {
		keys := make([]string, 0, len(p.FrontMatter))
		for k := range p.FrontMatter {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(w, "  Front-matter: %s\n", strings.Join(keys, ", "))
	}

	fmt.Fprintf(w, "  Outline: %d heading(s), %d scenario block(s)\n", len(o.Headings), len(o.Scenarios))
	for _, h := range o.Headings {
		fmt.Fprintf(w, "    %s%s %s\n", strings.Repeat("  ", h.Level-1), strings.Repeat("#", h.Level), h.Text)
	}
	fmt.Fprintln(w)
}

// warnPrepared flags prompts whose naming input is likely a mistake
func warnPrepared(w io.Writer, p *generator.Prepared) {
	if keys := p.FrontMatter.Unrecognized(); len(keys) > 0 {
		display.WarnUnrecognizedKeys(p.PromptPath, keys).Display(w)
	}
	if p.FrontMatter.Hints().IsEmpty() && parser.InferHints(p.Prompt).IsEmpty() {
		display.WarnNoNamingHints(p.PromptPath).Display(w)
	}
}
