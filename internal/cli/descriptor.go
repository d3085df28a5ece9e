package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pyskel/pyskel/internal/config"
	"github.com/pyskel/pyskel/internal/descriptor"
	"github.com/pyskel/pyskel/internal/metadata"
	"github.com/pyskel/pyskel/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	descPython        string
	descPythonVersion string
	descMetadata      string
	descFormat        string
	descOutput        string
)

func init() {
	f := descriptorCmd.Flags()
	f.StringVar(&descPython, "python", descriptor.DefaultPython, "Interpreter whose version the runtime guard checks")
	f.StringVar(&descPythonVersion, "python-version", "", "Check this interpreter version instead of asking --python")
	f.StringVar(&descMetadata, "metadata", "", "Project metadata YAML (default: the last generate replay)")
	f.StringVarP(&descFormat, "format", "f", descriptor.FormatYAML, "Output format: "+strings.Join(descriptor.Formats, ", "))
	f.StringVarP(&descOutput, "output", "o", "", "Write to this file instead of stdout")
	rootCmd.AddCommand(descriptorCmd)
}

var descriptorCmd = &cobra.Command{
	Use:   "descriptor [dir]",
	Short: "Evaluate the packaging descriptor of a generated project",
	Long: `Evaluate the packaging descriptor (setup.py metadata) of a project rendered by
"pyskel generate": check the interpreter version, read README.rst and
requirements.txt, find packages, detect the version from git, then print the
result as YAML, JSON or PKG-INFO.

Examples:
  pyskel descriptor ./example
  pyskel descriptor ./example --python-version 3.8 --format pkg-info
  pyskel descriptor --metadata answers.yaml --format json -o setup.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		metaPath := descMetadata
		if metaPath == "" {
			metaPath = metadata.ReplayPath(config.ReplayDir(), scaffold.TemplateName)
		}
		p, err := metadata.LoadReplay(metaPath)
		if err != nil {
			return err
		}

		var runtime *semver.Version
		if descPythonVersion != "" {
			runtime, err = descriptor.ParseRuntime(descPythonVersion)
		} else {
			runtime, err = descriptor.DetectRuntime(cmd.Context(), descPython)
		}
		if err != nil {
			return err
		}
		logger.Debug("evaluating descriptor", "dir", dir, "python", runtime.String())

		d, err := descriptor.Build(cmd.Context(), dir, p, descriptor.Options{Runtime: runtime})
		if err != nil {
			return err
		}

		res, err := descriptor.Validate(d)
		if err != nil {
			return err
		}
		for _, issue := range res.Issues {
			logger.Warn("descriptor issue", "issue", issue.String())
		}

		out := cmd.OutOrStdout()
		if descOutput != "" {
			if err := os.MkdirAll(filepath.Dir(descOutput), 0755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			f, err := os.Create(descOutput)
			if err != nil {
				return fmt.Errorf("creating %s: %w", descOutput, err)
			}
			defer f.Close()
			out = f
		}
		return descriptor.Encode(out, d, descFormat)
	},
}
