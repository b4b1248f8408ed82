package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"

	"tscolor/internal/engine"
	"tscolor/internal/lang"
	"tscolor/internal/metrics"
	"tscolor/internal/readfile"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

// app carries what every command shares once flags and config are resolved.
type app struct {
	configPath string
	cfg        settings
	metrics    *metrics.Metrics
	closers    []io.Closer
}

func run() error {
	return execute(context.Background(), &app{}, os.Args[1:])
}

// execute runs the command line in args. Resources opened during setup are
// released here since cobra skips post-run hooks when a command fails.
func execute(ctx context.Context, a *app, args []string) error {
	defer a.teardown()

	rootCmd := newRootCommand(a)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}
	return nil
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "tscolor",
		Short:             "Semantic token coloring on tree-sitter syntax trees",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath(), "config file (yaml)")
	addSettingsFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newViewCommand(a),
		newDumpCommand(a),
		newReplayCommand(a),
		newBenchCommand(a),
		newThemesCommand(),
		newLanguagesCommand(),
	)
	return rootCmd
}

func addSettingsFlags(flags *pflag.FlagSet) {
	def := defaultSettings()
	flags.String("theme", def.Theme, "color theme (for example: nord, dracula, monokai, github, solarized-dark)")
	flags.Int("visible-margin", def.VisibleMargin, "rows of slack around the viewport when classifying")
	flags.String("editor-cmd", def.EditorCmd, "override open command, supports {file} {line} {col} {target}")
	flags.String("log-file", def.LogFile, "write logs to this file")
	flags.String("log-level", def.LogLevel, "log level (trace, debug, info, warn, error)")
	flags.String("metrics-addr", def.MetricsAddr, "serve prometheus metrics on this address")
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(a.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if err := overrideFromFlags(&cfg, cmd.Flags()); err != nil {
		return err
	}
	a.cfg = cfg

	if err := SetTheme(cfg.Theme); err != nil {
		return errors.Errorf("invalid --theme: %w", err)
	}

	logger, closer, err := newLogger(cfg.LogFile, cfg.LogLevel, cmd.Name() == "view")
	if err != nil {
		return err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	a.metrics = metrics.New()
	if cfg.MetricsAddr != "" {
		a.serveMetrics(ctx, cfg.MetricsAddr)
	}
	return nil
}

func (a *app) serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	zerolog.Ctx(ctx).Info().Str("addr", addr).Msg("serving metrics")
	a.closers = append(a.closers, srv)
}

func (a *app) teardown() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

func (a *app) engineOptions() []engine.Option {
	return []engine.Option{
		engine.WithMargin(a.cfg.VisibleMargin),
		engine.WithMetrics(a.metrics),
	}
}

// loadDocument reads path and picks its language, honoring an explicit
// --lang override.
func loadDocument(path string, override string) (string, lang.ID, error) {
	text, err := readfile.ReadNormalized(path)
	if err != nil {
		return "", "", err
	}
	if override != "" {
		id, ok := lang.Parse(override)
		if !ok {
			return "", "", errors.Errorf("unknown language %q", override)
		}
		return text, id, nil
	}
	firstLine, _, _ := strings.Cut(text, "\n")
	return text, lang.DetectWithShebang(path, firstLine), nil
}
