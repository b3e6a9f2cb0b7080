package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"pngsafe/internal/config"
	"pngsafe/internal/logging"
	"pngsafe/internal/normalize"
)

type normalizeFlags struct {
	source string
	dest   string
	strict bool
}

func (f *normalizeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "Image to read (default from config)")
	cmd.Flags().StringVarP(&f.dest, "dest", "d", "", "PNG to write (default from config)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Exit non-zero when the conversion fails")
}

// reportedError is a failure already printed as a status line.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	flags := &normalizeFlags{}
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Convert the source image to an uncompressed RGBA PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, ctx, flags)
		},
	}
	flags.bind(cmd)
	return cmd
}

func runNormalize(cmd *cobra.Command, ctx *commandContext, flags *normalizeFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	req, err := buildRequest(cfg, flags)
	if err != nil {
		return err
	}
	opts, err := normalize.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	logger, closer := openRunLogger(cfg)
	defer closer.Close()

	options := []normalize.Option{
		normalize.WithLogger(logger),
		normalize.WithReporter(normalize.WriterReporter(cmd.OutOrStdout())),
	}
	if err := cfg.EnsureDirectories(); err != nil {
		logger.Warn("state directory unavailable; run will not be locked or recorded", logging.Error(err))
		opts.LockDir = ""
	} else {
		store, err := ctx.openJournal()
		if err != nil {
			logger.Warn("journal unavailable; run will not be recorded", logging.Error(err))
		} else if store != nil {
			defer store.Close()
			options = append(options, normalize.WithJournal(store))
		}
	}

	logStart(logger, req, opts)
	_, runErr := normalize.New(opts, options...).Run(cmd.Context(), req)
	if runErr != nil && flags.strict {
		return &reportedError{err: runErr}
	}
	return nil
}

// openRunLogger falls back to stderr when the log file cannot be opened.
func openRunLogger(cfg *config.Config) (*slog.Logger, io.Closer) {
	logger, closer, err := logging.NewFromConfig(cfg)
	if err == nil {
		return logger, closer
	}
	fallback, fallbackCloser, fallbackErr := logging.New(logging.Options{Level: cfg.Logging.Level})
	if fallbackErr != nil {
		return logging.NewNop(), io.NopCloser(nil)
	}
	fallback.Warn("log file unavailable; logging to stderr", logging.Error(err))
	return fallback, fallbackCloser
}

func buildRequest(cfg *config.Config, flags *normalizeFlags) (normalize.Request, error) {
	req := normalize.Request{
		Source:      cfg.Normalize.Source,
		Destination: cfg.Normalize.Destination,
	}
	if value := strings.TrimSpace(flags.source); value != "" {
		expanded, err := config.ExpandUserPath(value)
		if err != nil {
			return req, fmt.Errorf("resolve --source: %w", err)
		}
		req.Source = expanded
	}
	if value := strings.TrimSpace(flags.dest); value != "" {
		expanded, err := config.ExpandUserPath(value)
		if err != nil {
			return req, fmt.Errorf("resolve --dest: %w", err)
		}
		req.Destination = expanded
	}
	if config.SamePath(req.Source, req.Destination) {
		return req, errors.New("source and destination must be different files")
	}
	return req, nil
}

func logStart(logger *slog.Logger, req normalize.Request, opts normalize.Options) {
	logger.Info("normalize requested",
		logging.String(logging.FieldEventType, "normalize_requested"),
		logging.String("source", req.Source),
		logging.String("destination", req.Destination),
		logging.String("compression", opts.Compression.String()),
	)
}
