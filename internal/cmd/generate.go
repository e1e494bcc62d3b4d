package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrison/pagegen/internal/fileutil"
	"github.com/harrison/pagegen/internal/generator"
	"github.com/harrison/pagegen/internal/models"
	"github.com/harrison/pagegen/internal/watch"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate page object, step definitions and feature file from a prompt",
		Long: `Read a prompt document and write three artifacts into the project:

  <javaRoot>/<packagePages>/<PageClass>.java
  <javaRoot>/<packageSteps>/<StepsClass>.java
  <resRoot>/features/<FeatureName>.feature

Relative prompt paths are tried against the working directory, then its
parent. Existing files are replaced.

Configuration is loaded from <project-root>/.pagegen/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  pagegen generate
  pagegen generate --prompt prompts/login.prompt.md --platform ios
  pagegen generate --pageClass LoginPage --packagePages com.acme.pages
  pagegen generate --watch   # regenerate whenever the prompt is saved`,
		Args: cobra.NoArgs,
		RunE: generateCommand,
	}

	addEnvironmentFlags(cmd)
	cmd.Flags().String("prompt", "", "Prompt document path (default: src/test/resources/utilities/mcp/login.prompt.md)")
	cmd.Flags().String("pageClass", "", "Page-object class name")
	cmd.Flags().String("stepsClass", "", "Step-definitions class name")
	cmd.Flags().String("featureName", "", "Feature file name")
	cmd.Flags().String("packagePages", "", "Page-object package")
	cmd.Flags().String("packageSteps", "", "Step-definitions package")
	cmd.Flags().Bool("watch", false, "Keep running and regenerate when the prompt changes")

	return cmd
}

func generateCommand(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	gen, err := generator.New(env.log)
	if err != nil {
		return err
	}

	overrides := models.NameHints{}
	overrides.PageClass, _ = cmd.Flags().GetString("pageClass")
	overrides.StepsClass, _ = cmd.Flags().GetString("stepsClass")
	overrides.FeatureName, _ = cmd.Flags().GetString("featureName")
	overrides.PackagePages, _ = cmd.Flags().GetString("packagePages")
	overrides.PackageSteps, _ = cmd.Flags().GetString("packageSteps")

	opts := env.options(env.cfg.Prompt, overrides)
	result, err := gen.Generate(opts)
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), result)

	if watchMode, _ := cmd.Flags().GetBool("watch"); watchMode {
		return watchPrompt(cmd, env, gen, opts)
	}
	return nil
}

// watchPrompt regenerates on every prompt change until interrupted.
// Failed runs are logged and watching continues.
func watchPrompt(cmd *cobra.Command, env *environment, gen *generator.Generator, opts models.GenerationOptions) error {
	target := fileutil.ResolvePromptPath(opts.PromptPath, env.workDir)
	w, err := watch.New(target)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env.log.LogInfo(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", w.Target()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-w.Events():
			if event.Op == watch.Removed {
				env.log.LogWarn(fmt.Sprintf("Prompt %s was removed; waiting for it to reappear", event.Path))
				continue
			}
			result, err := gen.Generate(opts)
			if err != nil {
				env.log.LogError(err.Error())
				continue
			}
			printResult(cmd.OutOrStdout(), result)
		case err := <-w.Errors():
			env.log.LogWarn(fmt.Sprintf("watch error: %v", err))
		}
	}
}

func printResult(w io.Writer, result *models.GenerationResult) {
	fmt.Fprintln(w, "Generated:")
	fmt.Fprintf(w, "  Page:    %s\n", result.Files.PageFile)
	fmt.Fprintf(w, "  Steps:   %s\n", result.Files.StepsFile)
	fmt.Fprintf(w, "  Feature: %s\n", result.Files.FeatureFile)
	fmt.Fprintf(w, "\nStatus: %s | Platform: %s\n", result.Status, result.Platform)
}
