package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/pyskel/pyskel/internal/config"
	"github.com/pyskel/pyskel/internal/driver"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	driveScript     string
	driveNoPTY      bool
	driveNoInteract bool
	driveEcho       bool
)

func init() {
	addDriveFlags(driveCmd)
	rootCmd.AddCommand(driveCmd)
}

// addDriveFlags registers the driver flags on cmd. The root command and
// "drive" share them, so both write to the same variables.
func addDriveFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("engine", "", `Template engine command line (config key "engine")`)
	f.String("timeout", "", `Wait budget per prompt, e.g. 30s (config key "timeout")`)
	f.StringVar(&driveScript, "script", "", "YAML file with steps to play instead of the built-in script")
	f.BoolVar(&driveNoPTY, "no-pty", false, "Talk to the engine over plain pipes instead of a pseudo-terminal")
	f.BoolVar(&driveNoInteract, "no-interact", false, "Wait for the engine to exit instead of handing over the terminal")
	f.BoolVar(&driveEcho, "echo", false, "Copy engine output to stdout while the script runs")
}

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Answer the template engine's prompts, then hand over the terminal",
	Long: `Spawn the template engine and answer its prompts in order:

  full_name                         Brookhaven National Lab
  email                             dallan@bnl.gov
  github_username                   danielballan
  project_name                      Example
  package_dist_name                 (default)
  package_dir_name                  (default)
  repo_name                         (default)
  project_short_description         (default)
  minimum_supported_python_version  (default)

If a prompt does not appear within the timeout the run stops without sending
anything further and exits non-zero.

Examples:
  pyskel drive
  pyskel drive --engine "cookiecutter gh:org/template" --timeout 10s
  pyskel drive --engine "pyskel generate --output-dir /tmp" --no-interact`,
	Args: cobra.NoArgs,
	RunE: runDrive,
}

func runDrive(cmd *cobra.Command, args []string) error {
	for flag, key := range map[string]string{"engine": config.KeyEngine, "timeout": config.KeyTimeout} {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}

	argv, err := config.Engine()
	if err != nil {
		return err
	}
	timeout, err := config.Timeout()
	if err != nil {
		return err
	}

	script := driver.ExampleScript()
	if driveScript != "" {
		script, err = driver.LoadScript(driveScript)
		if err != nil {
			return err
		}
	}

	opts := driver.Options{
		StartOptions: driver.StartOptions{
			UsePTY: config.UsePTY() && !driveNoPTY,
			Logger: logger,
		},
		Timeout:  timeout,
		Interact: !driveNoInteract,
		Stdin:    cmd.InOrStdin(),
		Stdout:   cmd.OutOrStdout(),
	}
	if driveEcho {
		opts.Transcript = cmd.OutOrStdout()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("driving template engine", "argv", argv, "steps", len(script.Steps), "pty", opts.UsePTY)
	return driver.Run(ctx, argv, script, opts)
}
