package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/halvard/gitprep/internal/config"
	"github.com/halvard/gitprep/internal/git"
	"github.com/halvard/gitprep/internal/logx"
	"github.com/halvard/gitprep/internal/output"
	"github.com/halvard/gitprep/internal/prepare"
)

var (
	configFlag   string
	urlFlag      string
	refFlag      string
	cleanFlag    bool
	recreateFlag bool
	formatFlag   string
	outputFlag   string
	colorFlag    string
	logLevelFlag string
)

var prepareCmd = &cobra.Command{
	Use:   "prepare [path]",
	Short: "Reconcile an existing working copy with a remote and ref",
	Long: `Prepare the working copy at [path] (or the configured path) so that a
subsequent checkout of the target ref can proceed safely.

The directory must already contain a clone of the expected repository;
gitprep never clones. On identity mismatch the directory is left
untouched. On any other failure the directory should be discarded and
recreated; pass --recreate to have gitprep empty it for you.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrepare,
}

func init() {
	rootCmd.AddCommand(prepareCmd)

	prepareCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Path to .gitprep.hcl config file")
	prepareCmd.Flags().StringVar(&urlFlag, "url", "", "Expected remote.origin.url of the working copy")
	prepareCmd.Flags().StringVar(&refFlag, "ref", "", "Ref a later checkout step will use (bare names mean refs/heads/<name>)")
	prepareCmd.Flags().BoolVar(&cleanFlag, "clean", true, "Remove untracked files and reset tracked files to HEAD")
	prepareCmd.Flags().BoolVar(&recreateFlag, "recreate", false, "Empty the directory contents when it cannot be prepared in place")
	prepareCmd.Flags().StringVar(&formatFlag, "format", "", "Output format: text, json")
	prepareCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write output to file instead of stdout")
	prepareCmd.Flags().StringVar(&colorFlag, "color", "", "Color mode: auto, always, never")
	prepareCmd.Flags().StringVar(&logLevelFlag, "log-level", "", "Diagnostic log level: trace, debug, info, warn, error")
}

func runPrepare(cmd *cobra.Command, args []string) error {
	var pathArg string
	if len(args) == 1 {
		pathArg = args[0]
	}

	cfg, err := config.Load(configFlag, pathArg)
	if err != nil {
		return err
	}

	opts, err := mergeOptions(cmd, cfg, pathArg)
	if err != nil {
		return err
	}

	if err := git.CheckMinVersion(); err != nil {
		return err
	}

	level := cfg.Log.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	opts.Diagnostics = logx.New("gitprep", level, os.Stderr)

	cli := git.NewCLI(opts.Path)
	report, prepErr := prepare.Prepare(cli, opts)

	result := &output.Result{
		Path:   opts.Path,
		URL:    opts.URL,
		Ref:    opts.Ref,
		Report: report,
	}

	switch {
	case prepErr == nil:
		result.Outcome = output.OutcomeReady
		if head, err := cli.Head(); err == nil {
			result.Head = head
		}
	case isIdentityError(prepErr):
		result.Outcome = output.OutcomeRejected
		result.Reason = prepErr.Error()
	default:
		result.Outcome = output.OutcomeRecreate
		result.Reason = prepErr.Error()
	}

	if recreateFlag && shouldRecreate(prepErr) {
		if err := removeContents(opts.Path); err != nil {
			return fmt.Errorf("failed to empty %q: %w", opts.Path, err)
		}
		report.Recreated = true
		result.Outcome = output.OutcomeRecreate
	}

	if err := renderResult(cfg, result); err != nil {
		return err
	}

	// A failure that was recreated leaves the caller ready to clone fresh.
	if prepErr != nil && !report.Recreated {
		os.Exit(1)
	}
	return nil
}

// mergeOptions combines flags and config into the prepare options.
// Flags take precedence over the config file.
func mergeOptions(cmd *cobra.Command, cfg *config.Config, pathArg string) (prepare.Options, error) {
	opts := prepare.Options{
		Path:          pathArg,
		URL:           urlFlag,
		Ref:           refFlag,
		CleanExcludes: cfg.CleanExcludes(),
	}

	if cfg.Repository != nil {
		if opts.Path == "" {
			opts.Path = cfg.Repository.Path
		}
		if opts.URL == "" {
			opts.URL = cfg.Repository.URL
		}
		if opts.Ref == "" {
			opts.Ref = cfg.Repository.Ref
		}
	}

	if opts.Path == "" {
		return opts, fmt.Errorf("repository path required: pass it as an argument or set repository.path in %s", config.FileName)
	}
	if opts.URL == "" {
		return opts, fmt.Errorf("repository url required: pass --url or set repository.url in %s", config.FileName)
	}

	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return opts, fmt.Errorf("failed to resolve path %q: %w", opts.Path, err)
	}
	opts.Path = abs

	if cmd.Flags().Changed("clean") {
		opts.Clean = cleanFlag
	} else {
		opts.Clean = cfg.IsCleanEnabled()
	}

	return opts, nil
}

// isIdentityError reports whether err is one of the identity-check
// failures that leave the directory untouched.
func isIdentityError(err error) bool {
	var notGit *prepare.NotGitDirError
	var mismatch *prepare.URLMismatchError
	return errors.As(err, &notGit) || errors.As(err, &mismatch)
}

// shouldRecreate reports whether a failed run may empty the directory.
// Identity rejections never qualify: the directory may belong to an
// unrelated repository and its contents must survive.
func shouldRecreate(err error) bool {
	return err != nil && !isIdentityError(err)
}

func renderResult(cfg *config.Config, result *output.Result) error {
	format := cfg.Output.Format
	if formatFlag != "" {
		format = formatFlag
	}
	colorMode := cfg.Output.Color
	if colorFlag != "" {
		colorMode = colorFlag
	}

	var writer *os.File
	if outputFlag != "" {
		f, err := os.Create(outputFlag)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	} else {
		writer = os.Stdout
	}

	renderer := output.NewRenderer(output.Format(format), shouldUseColor(writer, colorMode))
	if err := renderer.Render(writer, result); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	return nil
}

func shouldUseColor(f *os.File, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // auto
		// Check if the writer is a terminal
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
}

// removeContents deletes everything inside dir without deleting dir
// itself, which might be the current working directory of the process.
func removeContents(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
