package events

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/thebenkogan/ufcstats/internal/extract"
	"github.com/thebenkogan/ufcstats/internal/fetch"
	"github.com/thebenkogan/ufcstats/internal/model"
	"github.com/thebenkogan/ufcstats/internal/util/logs"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBaseURL     = "http://ufcstats.com"
	DefaultConcurrency = 4
)

type EventScraper interface {
	ScrapeEvents(ctx context.Context) ([]model.EventSummary, error)
	ScrapeEvent(ctx context.Context, url string) (*model.EventReport, error)
}

type UFCStatsScraper struct {
	fetcher     fetch.Fetcher
	baseURL     string
	concurrency int
	now         func() time.Time
}

type Option func(*UFCStatsScraper)

// WithConcurrency bounds the number of fight pages fetched at once.
func WithConcurrency(n int) Option {
	return func(s *UFCStatsScraper) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithBaseURL(url string) Option {
	return func(s *UFCStatsScraper) {
		if url != "" {
			s.baseURL = strings.TrimRight(url, "/")
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *UFCStatsScraper) {
		s.now = now
	}
}

func NewUFCStatsScraper(fetcher fetch.Fetcher, opts ...Option) *UFCStatsScraper {
	s := &UFCStatsScraper{
		fetcher:     fetcher,
		baseURL:     DefaultBaseURL,
		concurrency: DefaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// all completed events are requested on one page
func (s *UFCStatsScraper) eventListURL() string {
	return s.baseURL + "/statistics/events/completed?page=all"
}

func (s *UFCStatsScraper) ScrapeEvents(ctx context.Context) ([]model.EventSummary, error) {
	markup, err := s.fetcher.Fetch(ctx, s.eventListURL())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event list: %w", err)
	}
	events, err := extract.ParseEventList(markup)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event list: %w", err)
	}
	return events, nil
}

// ScrapeEvent reads an event page and the detail page of each of its fights.
// Only a failure on the event page itself is returned as an error; fights
// whose detail could not be read keep their listing values and are reported
// in the failures of the returned report.
func (s *UFCStatsScraper) ScrapeEvent(ctx context.Context, url string) (*model.EventReport, error) {
	ctx, span := tracer.Start(ctx, "events.ScrapeEvent", trace.WithAttributes(attribute.String("event.url", url)))
	defer span.End()

	log := logs.Logger(ctx)

	markup, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to fetch event page: %w", err)
	}
	page, err := extract.ParseEventPage(markup)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to parse event page: %w", err)
	}
	log.Info("parsed event page", "event", page.Name, "fights", len(page.Fights))

	results := s.scrapeFights(ctx, page.Fights)

	report := &model.EventReport{
		Event: model.EventRecord{
			Name:     page.Name,
			Date:     page.Date,
			Location: page.Location,
			Fights:   make([]model.Fight, 0, len(page.Fights)),
		},
		Failures:  make([]model.FightFailure, 0),
		Missing:   make([]model.FieldGap, 0),
		ScrapedAt: s.now().UTC(),
	}

	for _, summary := range page.Fights {
		result, ok := results[summary.FightURL]
		if !ok {
			result = fightResult{err: fmt.Errorf("fight row has no detail link")}
		}
		if result.err != nil {
			log.Warn("fight detail unavailable", "bout", summary.Bout(), "fight_url", summary.FightURL, "error", result.err)
			report.Event.Fights = append(report.Event.Fights, summary.WithoutDetail())
			report.Failures = append(report.Failures, model.FightFailure{
				FightURL: summary.FightURL,
				Bout:     summary.Bout(),
				Reason:   result.err.Error(),
			})
			continue
		}

		report.Event.Fights = append(report.Event.Fights, summary.WithDetail(result.detail))
		if missing := extract.MissingFields(result.detail); len(missing) > 0 {
			log.Debug("fight detail incomplete", "bout", summary.Bout(), "fields", missing)
			report.Missing = append(report.Missing, model.FieldGap{
				FightURL: summary.FightURL,
				Bout:     summary.Bout(),
				Fields:   missing,
			})
		}
	}

	span.SetAttributes(
		attribute.Int("event.fights", len(report.Event.Fights)),
		attribute.Int("event.failures", len(report.Failures)),
	)
	return report, nil
}

type fightResult struct {
	detail model.FightDetail
	err    error
}

// scrapeFights fetches every distinct fight URL with at most s.concurrency
// requests in flight. Tasks never fail the group; each outcome is kept under
// its URL so callers can match it back to the listing row.
func (s *UFCStatsScraper) scrapeFights(ctx context.Context, fights []model.FightSummary) map[string]fightResult {
	results := make(map[string]fightResult, len(fights))
	var resultsMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	queued := make(map[string]struct{}, len(fights))
	for _, fight := range fights {
		url := fight.FightURL
		if url == "" {
			continue
		}
		if _, ok := queued[url]; ok {
			continue
		}
		queued[url] = struct{}{}

		g.Go(func() error {
			detail, err := s.scrapeFight(gctx, url)
			resultsMu.Lock()
			results[url] = fightResult{detail: detail, err: err}
			resultsMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *UFCStatsScraper) scrapeFight(ctx context.Context, url string) (model.FightDetail, error) {
	ctx, span := tracer.Start(ctx, "events.scrapeFight", trace.WithAttributes(attribute.String("fight.url", url)))
	defer span.End()

	fail := func(err error) (model.FightDetail, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.FightDetail{}, err
	}

	if err := ctx.Err(); err != nil {
		return fail(fmt.Errorf("fight not fetched: %w", err))
	}
	markup, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return fail(fmt.Errorf("failed to fetch fight page: %w", err))
	}
	detail, err := extract.ParseFightDetail(markup)
	if err != nil {
		return fail(fmt.Errorf("failed to parse fight page: %w", err))
	}
	return detail, nil
}
