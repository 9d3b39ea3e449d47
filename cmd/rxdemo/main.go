// Command rxdemo builds a small stream pipeline from rxdemo.yaml and flags,
// prints every value it produces and logs the stream events.
//
// Usage:
//
//	rxdemo [-config file] [-source values|interval|sqlite] [-values 1,2,3]
//	       [-period n] [-unit 100ms] [-skip n] [-take n] [-filter even|odd]
//	       [-multiply n] [-level debug|info|warn|error]
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/AnatoleLucet/rx"
	"github.com/AnatoleLucet/rx/cmd/rxdemo/internal/config"
	"github.com/AnatoleLucet/rx/rxsql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("rxdemo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath = fs.String("config", "", "config file (default: ./"+config.FileName+" if present)")
		source     = fs.String("source", "", "source kind: values, interval or sqlite")
		values     = fs.String("values", "", "comma separated values for the values source")
		period     = fs.Int64("period", 0, "interval period, also the number of values")
		unit       = fs.String("unit", "", "interval time unit")
		skip       = fs.Int("skip", 0, "values to skip")
		take       = fs.Int("take", 0, "values to take")
		filter     = fs.String("filter", "", "keep even or odd values")
		multiply   = fs.Int64("multiply", 0, "multiply every value")
		level      = fs.String("level", "", "log level")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.LoadOptional(".")
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source.Kind = *source
		case "values":
			parsed, perr := parseValues(*values)
			if perr != nil {
				flagErr = perr
				return
			}
			cfg.Source.Values = parsed
		case "period":
			cfg.Source.Period = *period
		case "unit":
			cfg.Source.Unit = *unit
		case "skip":
			cfg.Pipeline.Skip = *skip
		case "take":
			cfg.Pipeline.Take = take
		case "filter":
			cfg.Pipeline.Filter = *filter
		case "multiply":
			cfg.Pipeline.Multiply = *multiply
		case "level":
			cfg.LogLevel = *level
		}
	})
	if flagErr != nil {
		return flagErr
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.LogLevel)

	src, closeSource, err := buildSource(cfg.Source)
	if err != nil {
		return err
	}
	defer closeSource()

	stream := buildPipeline(src, cfg.Pipeline).DoOnNext(func(v int64) {
		fmt.Fprintln(stdout, v)
	})

	var streamErr error
	events := rx.NewLoggingObserver[int64](logger, cfg.Source.Kind)
	sub := stream.SubscribeContext(ctx, rx.NewObserver(
		events.Next,
		func(err error) {
			streamErr = err
			events.Error(err)
		},
		events.Complete,
	))
	<-sub.Done()

	if streamErr != nil {
		return fmt.Errorf("stream failed: %w", streamErr)
	}
	return nil
}

func buildSource(cfg config.SourceConfig) (rx.Observable[int64], func(), error) {
	noop := func() {}

	switch cfg.Kind {
	case config.SourceInterval:
		unit, err := cfg.UnitDuration()
		if err != nil {
			return rx.Observable[int64]{}, noop, err
		}
		return rx.Interval(cfg.Period, rx.WithUnit(unit)), noop, nil

	case config.SourceSQLite:
		db, err := sql.Open("sqlite", cfg.DSN)
		if err != nil {
			return rx.Observable[int64]{}, noop, fmt.Errorf("failed to open %s: %w", cfg.DSN, err)
		}
		db.SetMaxOpenConns(1)
		return rxsql.Query(db, cfg.Query, rxsql.Column[int64]), func() { db.Close() }, nil

	default:
		return rx.From(cfg.Values), noop, nil
	}
}

func buildPipeline(src rx.Observable[int64], cfg config.PipelineConfig) rx.Observable[int64] {
	stream := src
	if len(cfg.StartWith) > 0 {
		stream = stream.StartWith(cfg.StartWith...)
	}
	if cfg.Skip > 0 {
		stream = stream.Skip(cfg.Skip)
	}

	switch cfg.Filter {
	case config.FilterEven:
		stream = stream.Filter(func(v int64) bool { return v%2 == 0 })
	case config.FilterOdd:
		stream = stream.Filter(func(v int64) bool { return v%2 != 0 })
	}

	if cfg.Multiply != 1 {
		factor := cfg.Multiply
		stream = rx.Map(stream, func(v int64) int64 { return v * factor })
	}
	if cfg.Take != nil {
		stream = stream.Take(*cfg.Take)
	}
	return stream
}

func parseValues(s string) ([]int64, error) {
	var out []int64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", field, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
