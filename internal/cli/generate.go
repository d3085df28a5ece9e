package cli

import (
	"fmt"
	"io"

	"github.com/pyskel/pyskel/internal/config"
	"github.com/pyskel/pyskel/internal/metadata"
	"github.com/pyskel/pyskel/internal/prompt"
	"github.com/pyskel/pyskel/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	generateOutputDir string
	generateNoInput   bool
	generateReplay    string
)

func init() {
	generateCmd.Flags().StringVarP(&generateOutputDir, "output-dir", "o", ".", "Directory the project folder is created in")
	generateCmd.Flags().BoolVar(&generateNoInput, "no-input", false, "Do not prompt; use default values")
	generateCmd.Flags().StringVar(&generateReplay, "replay", "", "Reuse the answers stored in a replay file instead of prompting")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Prompt for project metadata and render the Python skeleton",
	Long: `Prompt for project metadata the way cookiecutter does and render the built-in
Python project skeleton into <output-dir>/<repo_name>.

The answers are saved to ~/.pyskel/replay/skeleton.yaml so the same project can
be regenerated later with --replay.

Examples:
  pyskel generate
  pyskel generate --no-input --output-dir /tmp
  pyskel generate --replay ~/.pyskel/replay/skeleton.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var p metadata.Project
		if generateReplay != "" {
			var err error
			p, err = metadata.LoadReplay(generateReplay)
			if err != nil {
				return err
			}
		} else {
			answers, err := prompt.Run(metadata.Variables(), cmd.InOrStdin(), cmd.OutOrStdout(), generateNoInput)
			if err != nil {
				return err
			}
			p, err = metadata.Resolve(answers)
			if err != nil {
				return err
			}
		}

		if err := metadata.Validate(p); err != nil {
			return err
		}
		if err := metadata.SaveReplay(config.ReplayDir(), scaffold.TemplateName, p); err != nil {
			logger.Warn("could not save replay", "error", err)
		}

		result, err := scaffold.Generate(cmd.Context(), p, generateOutputDir, scaffold.Options{})
		if err != nil {
			return err
		}
		logger.Debug("rendered skeleton", "dir", result.OutputDir, "files", len(result.Files))

		printResult(cmd.OutOrStdout(), result)
		return nil
	},
}

func printResult(w io.Writer, result *scaffold.Result) {
	fmt.Fprintf(w, "Created project at %s/\n", result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
}
