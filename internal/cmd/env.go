package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/pagegen/internal/config"
	"github.com/harrison/pagegen/internal/logger"
	"github.com/harrison/pagegen/internal/models"
)

// environment is the resolved context of one command invocation
type environment struct {
	workDir     string
	projectRoot string
	cfg         *config.Config
	log         *logger.ConsoleLogger
}

// addEnvironmentFlags registers the flags every generating command shares
func addEnvironmentFlags(cmd *cobra.Command) {
	cmd.Flags().String("project-root", "", "Project directory outputs are written under (default: parent of the working directory)")
	cmd.Flags().String("config", "", "Path to config file (default: <project-root>/.pagegen/config.yaml)")
	cmd.Flags().String("platform", string(models.PlatformAndroid), "Target platform: android or ios")
	cmd.Flags().String("javaRoot", "", "Source root for page and step classes (default: src/test/java)")
	cmd.Flags().String("resRoot", "", "Resource root for feature files (default: src/test/resources)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error (default: info)")
}

// loadEnvironment captures the working directory, loads configuration and
// merges explicitly set flags over it. Logs go to the command's stderr.
func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	projectRoot := filepath.Dir(workDir)
	if v := changedString(cmd, "project-root"); v != nil && *v != "" {
		projectRoot, err = filepath.Abs(*v)
		if err != nil {
			return nil, fmt.Errorf("invalid project root %q: %w", *v, err)
		}
	}

	var cfg *config.Config
	if configPath := changedString(cmd, "config"); configPath != nil && *configPath != "" {
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", *configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(projectRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.MergeWithFlags(config.Flags{
		Prompt:   nonEmpty(changedString(cmd, "prompt")),
		Platform: changedString(cmd, "platform"),
		JavaRoot: nonEmpty(changedString(cmd, "javaRoot")),
		ResRoot:  nonEmpty(changedString(cmd, "resRoot")),
		LogLevel: nonEmpty(changedString(cmd, "log-level")),
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &environment{
		workDir:     workDir,
		projectRoot: projectRoot,
		cfg:         cfg,
		log:         logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel),
	}, nil
}

// options builds the generation options for prompt from the environment
func (e *environment) options(prompt string, overrides models.NameHints) models.GenerationOptions {
	return models.GenerationOptions{
		PromptPath:  prompt,
		Platform:    e.cfg.PlatformValue(),
		JavaRoot:    e.cfg.JavaRoot,
		ResRoot:     e.cfg.ResRoot,
		WorkDir:     e.workDir,
		ProjectRoot: e.projectRoot,
		Overrides:   overrides,
		Defaults:    e.cfg.ProjectDefaults(),
	}
}

// changedString returns the flag's value if it exists and was set, else nil
func changedString(cmd *cobra.Command, name string) *string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil || !flag.Changed {
		return nil
	}
	v := flag.Value.String()
	return &v
}

func nonEmpty(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
