package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/nsdom/internal/config"
	"github.com/vango-dev/nsdom/internal/scenario"
)

type replayOptions struct {
	dir    string
	bucket string
	prefix string
	json   bool
}

func replayCmd(flags *globalFlags) *cobra.Command {
	opts := &replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay [scenario...]",
		Short: "Run render scenarios",
		Long: `Run render scenarios and check the DOM they produce.

Scenarios are JSON files read from the scenario directory, or from S3
when a bucket is configured. With no arguments every scenario runs.

Examples:
  nsdom replay
  nsdom replay svg-height-cycle class-list
  nsdom replay --dir ./cases --json
  nsdom replay --bucket render-scenarios --prefix svg/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			opts.apply(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runReplay(ctx, cfg, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Scenario directory (default from nsdom.json)")
	cmd.Flags().StringVar(&opts.bucket, "bucket", "", "Read scenarios from this S3 bucket")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "S3 key prefix")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print results as JSON")

	return cmd
}

// apply copies command-line overrides into cfg.
func (o *replayOptions) apply(cfg *config.Config) {
	if o.dir != "" {
		cfg.Scenarios.Dir = o.dir
		cfg.Scenarios.S3.Bucket = ""
	}
	if o.bucket != "" {
		cfg.Scenarios.S3.Bucket = o.bucket
	}
	if o.prefix != "" {
		cfg.Scenarios.S3.Prefix = o.prefix
	}
}

func scenarioSource(cfg *config.Config) scenario.Source {
	if cfg.UsesS3() {
		s3cfg := cfg.Scenarios.S3
		return scenario.NewS3Source(scenario.NewS3Client(s3cfg), s3cfg.Bucket, s3cfg.Prefix)
	}
	return scenario.NewFileSource(cfg.ScenarioDir())
}

func runReplay(ctx context.Context, cfg *config.Config, opts *replayOptions, names []string) error {
	runner := scenario.NewRunner(scenario.RunnerConfig{
		Logger:     newLogger(cfg),
		Middleware: renderMiddleware(cfg, prometheus.NewRegistry()),
	})

	results, err := runner.RunAll(ctx, scenarioSource(cfg), names...)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if !res.Passed() {
			failed++
		}
	}

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		printResults(results)
	}

	if len(results) == 0 {
		warn("No scenarios found")
		return nil
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
	}
	return nil
}

func printResults(results []*scenario.Result) {
	for _, res := range results {
		if res.Passed() {
			success("%s (%d renders, %d checks, %s)", res.Name, res.Renders, res.Checks, res.Duration.Round(time.Microsecond))
			continue
		}
		errorMsg("%s", res.Name)
		if res.RenderErr != nil {
			info("render failed: %v", res.RenderErr)
		}
		for _, f := range res.Failures {
			info("%s", f.String())
		}
	}
}
