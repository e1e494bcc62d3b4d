package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for pagegen
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagegen",
		Short: "Scaffold mobile test automation artifacts from prompt documents",
		Long: `pagegen reads a prompt document and writes a page-object class, a
step-definitions class and a Gherkin feature file into a Java test project.

Names come from explicit flags, the prompt's front-matter block, a
"Feature:" line in the prompt body, or built-in defaults, in that order.

The serve subcommand exposes the same generation as a protocol tool over
stdio for editor and agent integrations.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewServeCommand())

	return cmd
}
