package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/pflag"

	"github.com/lexandro/includenorm/config"
	"github.com/lexandro/includenorm/ignore"
	"github.com/lexandro/includenorm/normalize"
	"github.com/lexandro/includenorm/report"
	"github.com/lexandro/includenorm/server"
	"github.com/lexandro/includenorm/tools"
)

// Exit codes.
const (
	exitOK    = 0
	exitFatal = 1 // Fatal error, or pending changes in check mode.
	exitUsage = 2
)

// options holds the parsed command line.
type options struct {
	rootDir    string
	configFile string
	logFile    string
	verbose    bool
	check      bool
	diff       bool
	watch      bool
	noColor    bool
	jobs       int
	mcpMode    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout io.Writer, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	printer := report.NewPrinter(stdout, stderr, opts.noColor)
	cfg, err := loadConfig(opts)
	if err != nil {
		printer.Fatal(err)
		return exitFatal
	}
	logger, closeLog := setupLogger(cfg.Verbose, opts.logFile, stderr)
	defer closeLog()

	matcher := ignore.NewMatcher(ignore.MatcherOptions{
		RootDir:       cfg.ProjectDir,
		SourceDir:     cfg.SourceDir,
		ExcludedNames: cfg.ExcludedNames,
		Patterns:      cfg.ExcludePatterns,
	})
	runner := normalize.NewRunner(cfg, matcher, logger)

	logger.Debug("configuration loaded",
		"root", cfg.ProjectDir,
		"sourceDir", cfg.SourceDir,
		"namespace", cfg.Namespace,
		"jobs", cfg.Jobs,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.mcpMode {
		if err := serveMCP(ctx, cfg, runner, logger); err != nil {
			logger.Error("MCP server error", "error", err)
			return exitFatal
		}
		return exitOK
	}

	start := time.Now()
	results, summary, err := runner.Run(ctx, normalize.RunOptions{DryRun: opts.check})
	if opts.diff {
		if diffErr := printer.Diffs(results); diffErr != nil {
			logger.Warn("cannot print diff", "error", diffErr)
		}
	}
	if err != nil {
		printer.Fatal(err)
		return exitFatal
	}
	logger.Debug("run complete", "files", summary.Files, "duration", time.Since(start))
	printer.Summary(summary, opts.check)

	if opts.check {
		if len(summary.Pending) > 0 {
			return exitFatal
		}
		return exitOK
	}

	if opts.watch {
		if err := watchTree(ctx, cfg, runner, matcher, logger); err != nil {
			printer.Fatal(err)
			return exitFatal
		}
	}
	return exitOK
}

// parseFlags parses the command line. A leading "mcp" argument selects the
// MCP server mode.
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	name := "includenorm"
	if len(args) > 0 && args[0] == "mcp" {
		opts.mcpMode = true
		name = "includenorm mcp"
		args = args[1:]
	}

	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&opts.rootDir, "root", "", "Project root directory (default: current working directory)")
	flags.StringVar(&opts.configFile, "config", "", "Config file (default: <root>/"+config.DefaultFileName+" if present)")
	flags.StringVar(&opts.logFile, "log-file", "", "Log file path (default: stderr)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Show per-file progress and every change.")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "Files planned in parallel (default: from config, 1)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output.")
	if !opts.mcpMode {
		flags.BoolVar(&opts.check, "check", false, "Only report files that would change; exit status 1 if any.")
		flags.BoolVar(&opts.diff, "diff", false, "Print a unified diff for every changed file.")
		flags.BoolVarP(&opts.watch, "watch", "w", false, "Keep running and normalize files when they change.")
	}
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags]\n\n", name)
		fmt.Fprintf(stderr, "Sorts and groups the leading #include block of every C++ file below <root>/src/<namespace>.\n\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", flags.Arg(0))
	}
	if opts.check && opts.watch {
		return nil, errors.New("--check and --watch cannot be combined")
	}
	if opts.jobs < 0 {
		return nil, fmt.Errorf("--jobs must not be negative, got %d", opts.jobs)
	}
	return opts, nil
}

// loadConfig builds the configuration from the defaults, the config file and
// the command line, in this order.
func loadConfig(opts *options) (*config.Config, error) {
	rootDir := opts.rootDir
	if rootDir == "" {
		var err error
		rootDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
	}

	cfg := config.Default()
	if opts.configFile != "" {
		if err := config.LoadFile(&cfg, opts.configFile); err != nil {
			return nil, err
		}
	} else if _, err := config.LoadDefaultFile(&cfg, rootDir); err != nil {
		return nil, err
	}
	if opts.verbose {
		cfg.Verbose = true
	}
	if opts.jobs > 0 {
		cfg.Jobs = opts.jobs
	}
	if pattern, ok := ignore.ValidatePatterns(cfg.ExcludePatterns); !ok {
		return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
	}
	if err := cfg.Resolve(rootDir); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// serveMCP runs the MCP tools on stdio until the client disconnects or ctx
// is done.
func serveMCP(ctx context.Context, cfg *config.Config, runner *normalize.Runner, logger *slog.Logger) error {
	runFunc := func(ctx context.Context, pattern string, apply bool) ([]normalize.FileResult, normalize.Summary, error) {
		return runner.Run(ctx, normalize.RunOptions{DryRun: !apply, Pattern: pattern})
	}

	mcpServer := server.Setup(
		&tools.CheckHandler{Run: runFunc, Logger: logger},
		&tools.NormalizeHandler{Run: runFunc, Logger: logger},
		&tools.InspectHandler{Inspect: runner.Inspect, Logger: logger},
		&tools.StatusHandler{Config: cfg, StartTime: time.Now(), Logger: logger},
	)

	logger.Info("MCP server starting on stdio", "sourceDir", cfg.SourceDir)
	return mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// setupLogger creates an slog.Logger writing to stderr or a file. The
// returned function closes the log file.
func setupLogger(verbose bool, logFile string, stderr io.Writer) (*slog.Logger, func()) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	writer := stderr
	closeFn := func() {}
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err == nil {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				fmt.Fprintf(stderr, "Warning: cannot open log file %s: %v, falling back to stderr\n", logFile, err)
			} else {
				writer = f
				closeFn = func() { f.Close() }
			}
		}
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler), closeFn
}
