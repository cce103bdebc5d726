// Package bot runs one invocation: scrape both pages, compose a headline and post it.
// An invocation keeps no state once it returns.
package bot

import (
	"context"
	"log/slog"

	"bolsa-bot/internal/components/chrono"
	"bolsa-bot/internal/components/entropy"
	"bolsa-bot/internal/components/telemetry"
	"bolsa-bot/internal/config"
	"bolsa-bot/internal/headline"
	"bolsa-bot/internal/scrapers/infomoney"
	"bolsa-bot/internal/scrapers/jornal"
	"bolsa-bot/internal/twitter"

	"github.com/google/uuid"
)

const (
	report_bot_run = "bot.run"
)

type Endpoints struct {
	QuotePage    string
	NewsPage     string
	StatusUpdate string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		QuotePage:    infomoney.DefaultUrl,
		NewsPage:     jornal.DefaultUrl,
		StatusUpdate: twitter.DefaultStatusUpdateUrl,
	}
}

// Options replace the parts of a run that touch the outside world, zero values
// fall back to the real implementations.
type Options struct {
	Endpoints Endpoints
	Time      chrono.TimeAPI
	Rand      entropy.API
	Tel       telemetry.API
}

func (o Options) withDefaults(runID string) Options {
	defaults := DefaultEndpoints()
	if o.Endpoints.QuotePage == "" {
		o.Endpoints.QuotePage = defaults.QuotePage
	}
	if o.Endpoints.NewsPage == "" {
		o.Endpoints.NewsPage = defaults.NewsPage
	}
	if o.Endpoints.StatusUpdate == "" {
		o.Endpoints.StatusUpdate = defaults.StatusUpdate
	}
	if o.Time == nil {
		o.Time = chrono.NewStandardTime()
	}
	if o.Rand == nil {
		o.Rand = entropy.NewStandardRandom()
	}
	if o.Tel == nil {
		o.Tel = telemetry.NewSlogAPI(slog.Default().With("run_id", runID))
	}
	return o
}

type Result struct {
	RunID    string
	Message  headline.Message
	Response twitter.Response
}

func newGenerator(opts Options) headline.Generator {
	return headline.NewGenerator(
		infomoney.NewClient(opts.Endpoints.QuotePage, opts.Tel),
		jornal.NewClient(opts.Endpoints.NewsPage, opts.Tel),
		opts.Rand,
		opts.Tel,
	)
}

// Preview composes a message without posting it, it needs no credentials.
func Preview(ctx context.Context, opts Options) (headline.Message, error) {
	opts = opts.withDefaults(uuid.NewString())
	return newGenerator(opts).Generate(ctx)
}

// Run composes a message and posts it. The configuration is validated before any
// request is made, and nothing is posted unless the message was fully composed.
func Run(ctx context.Context, cfg config.Config, opts Options) (Result, error) {
	result := Result{RunID: uuid.NewString()}
	opts = opts.withDefaults(result.RunID)
	tel := telemetry.NewScopedAPI("bot", opts.Tel)

	err := cfg.Validate()
	if err != nil {
		tel.ReportBroken(report_bot_run, err)
		return result, err
	}

	tel.ReportDebug("run started", opts.Time.Now().Format("2006-01-02"))

	msg, err := newGenerator(opts).Generate(ctx)
	if err != nil {
		return result, err
	}
	result.Message = msg

	publisher := twitter.NewClient(
		opts.Endpoints.StatusUpdate,
		cfg.Twitter,
		opts.Time,
		opts.Rand,
		opts.Tel,
	)
	res, err := publisher.UpdateStatus(ctx, msg.String())
	if err != nil {
		return result, err
	}
	result.Response = res

	slog.InfoContext(
		ctx, "posted headline",
		"run_id", result.RunID,
		"status", res.Status,
		"body", res.Body,
		"message", msg.String(),
	)
	return result, nil
}
