package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrison/pagegen/internal/generator"
	"github.com/harrison/pagegen/internal/mcpserver"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve artifact generation as a protocol tool over stdio",
		Long: `Read line-delimited JSON-RPC 2.0 requests from stdin and write replies
to stdout. Logs go to stderr.

Methods:
  tools/generate_artifacts   params: promptPath, platform, javaRoot, resRoot
  initialize, ping, tools/list, tools/call (tool "generate_artifacts")

Unset parameters take the same defaults as the generate command.`,
		Args: cobra.NoArgs,
		RunE: serveCommand,
	}

	addEnvironmentFlags(cmd)
	cmd.Flags().String("prompt", "", "Default prompt document path")

	return cmd
}

func serveCommand(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	gen, err := generator.New(env.log)
	if err != nil {
		return err
	}

	srv := mcpserver.New(gen, env.log, mcpserver.Options{
		Version:     Version,
		WorkDir:     env.workDir,
		ProjectRoot: env.projectRoot,
		Prompt:      env.cfg.Prompt,
		Platform:    env.cfg.Platform,
		JavaRoot:    env.cfg.JavaRoot,
		ResRoot:     env.cfg.ResRoot,
		Defaults:    env.cfg.ProjectDefaults(),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env.log.LogInfo(fmt.Sprintf("Serving %s on stdio (project root: %s)", mcpserver.ToolName, env.projectRoot))
	if err := srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	env.log.LogInfo("Server stopped")
	return nil
}
