package cli

import (
	"context"

	"github.com/pyskel/pyskel/internal/branding"
	"github.com/pyskel/pyskel/internal/config"
	"github.com/pyskel/pyskel/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose bool
	logger  = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds Python project skeletons. Run without a command it drives the
configured template engine (default "` + branding.DefaultEngine() + `") through its prompts with a
fixed set of answers, then hands the terminal over until the engine exits.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()

		level := config.Get(config.KeyLogLevel)
		if verbose {
			level = "debug"
		}
		l, err := logging.New(level, config.Get(config.KeyLogFormat))
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	RunE: runDrive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every prompt and response")
	addDriveFlags(rootCmd)
}

// Execute runs the root command with build info injected via ldflags.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.ExecuteContext(ctx)
}
