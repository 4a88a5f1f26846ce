package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/wyclef-go/wyclef/internal/clef"
	"github.com/wyclef-go/wyclef/internal/config"
	"github.com/wyclef-go/wyclef/internal/logging"
	"github.com/wyclef-go/wyclef/internal/tui"
)

// ErrArgument is returned when wyclef is started without a log file path.
//
//nolint:staticcheck // the message is shown to the user verbatim.
var ErrArgument = errors.New("Please provide a path to a log file!")

// Global flag values accessible to all subcommands.
var (
	flagVerbose       bool
	flagQuiet         bool
	flagConfig        string
	flagNoColor       bool
	flagPrint         bool
	flagSkipMalformed bool
	flagTickRate      string
	flagPageStep      int
	flagLogFile       string
)

// rootCmd is the base command for wyclef.
var rootCmd = &cobra.Command{
	Use:   "wyclef [flags] <file>",
	Short: "Terminal viewer for CLEF log files",
	Long: `wyclef is a terminal viewer for log files in Compact Log Event Format
(CLEF): newline-delimited JSON objects such as those written by Serilog's
compact JSON formatter.

Each event is shown on one line as "<timestamp>: [<LEVEL>] <message>", with
message templates rendered from the event's properties and lines coloured by
level. Navigate with the arrow keys (Shift moves by a page), clear the
selection with Enter and quit with q.`,
	Example: `  wyclef app.clef
  wyclef --print app.clef | grep ERROR
  wyclef --skip-malformed --tick-rate 100ms app.clef`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          requireLogFile,
	RunE:          runViewer,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Check env vars for flags not explicitly set on command line.
		if !cmd.Flags().Changed("verbose") && os.Getenv("WYCLEF_VERBOSE") != "" {
			flagVerbose = true
		}
		if !cmd.Flags().Changed("quiet") && os.Getenv("WYCLEF_QUIET") != "" {
			flagQuiet = true
		}
		if !cmd.Flags().Changed("no-color") && (os.Getenv("NO_COLOR") != "" || os.Getenv("WYCLEF_NO_COLOR") != "") {
			flagNoColor = true
		}

		// Initialize logging.
		jsonFormat := os.Getenv("WYCLEF_LOG_FORMAT") == "json"
		logging.Setup(flagVerbose, flagQuiet, jsonFormat)

		// Handle --no-color: disable colored output.
		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: WYCLEF_VERBOSE)")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "Suppress all output except errors (env: WYCLEF_QUIET)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to wyclef.toml config file")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output (env: WYCLEF_NO_COLOR, NO_COLOR)")
	rootCmd.PersistentFlags().BoolVar(&flagSkipMalformed, "skip-malformed", false, "Skip lines that are not valid CLEF instead of failing (env: WYCLEF_SKIP_MALFORMED)")
	rootCmd.PersistentFlags().StringVar(&flagTickRate, "tick-rate", "", "Interval between viewer ticks, e.g. 250ms (env: WYCLEF_TICK_RATE)")
	rootCmd.PersistentFlags().IntVar(&flagPageStep, "page-step", 0, "Events moved by Shift+Up/Shift+Down (env: WYCLEF_PAGE_STEP)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file while the viewer runs (env: WYCLEF_LOG_FILE)")

	rootCmd.Flags().BoolVarP(&flagPrint, "print", "p", false, "Print all events to stdout and exit")
}

// requireLogFile validates the positional arguments of the root command.
func requireLogFile(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return ErrArgument
	case len(args) > 1:
		return fmt.Errorf("accepts one log file, received %d arguments", len(args))
	}
	return nil
}

// cliOverrides collects the configuration flags that were set explicitly.
func cliOverrides(cmd *cobra.Command) *config.CLIOverrides {
	o := &config.CLIOverrides{}
	flags := cmd.Flags()
	if flags.Changed("tick-rate") {
		o.TickRate = &flagTickRate
	}
	if flags.Changed("page-step") {
		o.PageStep = &flagPageStep
	}
	if flags.Changed("skip-malformed") {
		o.SkipMalformed = &flagSkipMalformed
	}
	if flags.Changed("log-file") {
		o.LogFile = &flagLogFile
	}
	return o
}

// runViewer loads the log named by args[0] and either prints it or opens the
// viewer on it.
func runViewer(cmd *cobra.Command, args []string) error {
	logger := logging.New("cli")

	resolved, meta, err := loadAndResolveConfig(cliOverrides(cmd))
	if err != nil {
		return err
	}
	for _, msg := range resolved.Ignored {
		logger.Warn("ignoring environment variable", "reason", msg)
	}
	result := config.Validate(resolved.Config, meta)
	for _, issue := range result.Warnings() {
		logger.Warn("configuration", "issue", issue.String())
	}
	if err := result.Err(); err != nil {
		return err
	}

	var opts []clef.LoadOption
	if resolved.Config.Load.SkipMalformed {
		opts = append(opts, clef.WithSkipMalformed())
	}
	lg, err := clef.Load(args[0], opts...)
	if err != nil {
		return err
	}
	logger.Debug("log loaded", "path", lg.Path(), "events", lg.Len(), "skipped", len(lg.Skipped()))

	if flagPrint {
		return lg.Print(cmd.OutOrStdout(), tui.DefaultTheme())
	}

	tick, err := resolved.Config.Viewer.TickDuration()
	if err != nil {
		return err
	}
	return runTUI(cmd.Context(), tui.AppConfig{
		Path:     lg.Path(),
		Events:   lg.Events(),
		TickRate: tick,
		PageStep: resolved.Config.Viewer.PageStep,
	}, resolved.Config.Logging.File)
}

// runTUI redirects logging away from the terminal for the lifetime of the
// viewer. Logs go to logFile when set and are discarded otherwise.
func runTUI(ctx context.Context, cfg tui.AppConfig, logFile string) error {
	if logFile != "" {
		f, err := logging.OpenFile(logFile)
		if err != nil {
			return err
		}
		defer func() {
			logging.SetOutput(os.Stderr)
			_ = f.Close()
		}()
	} else {
		logging.Silence()
		defer logging.SetOutput(os.Stderr)
	}

	return tui.Run(ctx, cfg)
}

// Execute runs the root command and returns the exit code. SIGINT and
// SIGTERM cancel the command's context.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// NewRootCmd returns a new instance of the root command for use in external
// tools such as the shell completion generator and man page generator. It
// initialises a fresh cobra command tree with the same flags and
// PersistentPreRunE as the global rootCmd so that generated docs and
// completions include all flags.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               rootCmd.Use,
		Short:             rootCmd.Short,
		Long:              rootCmd.Long,
		Example:           rootCmd.Example,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              rootCmd.Args,
		PersistentPreRunE: rootCmd.PersistentPreRunE,
	}

	// Register the same flags that the global rootCmd carries. These use
	// local variables (not the package-level flags) so the exported command
	// is safe for concurrent use by generators.
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose (debug) output (env: WYCLEF_VERBOSE)")
	cmd.PersistentFlags().Bool("quiet", false, "Suppress all output except errors (env: WYCLEF_QUIET)")
	cmd.PersistentFlags().String("config", "", "Path to wyclef.toml config file")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output (env: WYCLEF_NO_COLOR, NO_COLOR)")
	cmd.PersistentFlags().Bool("skip-malformed", false, "Skip lines that are not valid CLEF instead of failing (env: WYCLEF_SKIP_MALFORMED)")
	cmd.PersistentFlags().String("tick-rate", "", "Interval between viewer ticks, e.g. 250ms (env: WYCLEF_TICK_RATE)")
	cmd.PersistentFlags().Int("page-step", 0, "Events moved by Shift+Up/Shift+Down (env: WYCLEF_PAGE_STEP)")
	cmd.PersistentFlags().String("log-file", "", "Append logs to this file while the viewer runs (env: WYCLEF_LOG_FILE)")
	cmd.Flags().BoolP("print", "p", false, "Print all events to stdout and exit")

	// Attach all registered subcommands from the global tree.
	for _, child := range rootCmd.Commands() {
		cmd.AddCommand(child)
	}
	return cmd
}
