package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thebenkogan/ufcstats/internal/cache"
	"github.com/thebenkogan/ufcstats/internal/model"
	"github.com/thebenkogan/ufcstats/internal/util/logs"
)

const numSuggestions = 5

var ErrEventNotFound = errors.New("event not found")

// EventNotFoundError carries the closest listed events when a name did not
// resolve. It matches ErrEventNotFound with errors.Is.
type EventNotFoundError struct {
	Name        string
	Suggestions []model.EventSummary
}

func (e *EventNotFoundError) Error() string {
	return fmt.Sprintf("%v: %q", ErrEventNotFound, e.Name)
}

func (e *EventNotFoundError) Is(target error) bool {
	return target == ErrEventNotFound
}

func GetEventsWithCache(ctx context.Context, eventScraper EventScraper, eventCache cache.EventCacheRepository) ([]model.EventSummary, error) {
	log := logs.Logger(ctx)

	cached, err := eventCache.GetEvents(ctx)
	if err != nil {
		log.Warn("failed to get event list from cache", "error", err)
	}
	if cached != nil {
		log.Info("event list cache hit")
		return cached, nil
	}

	log.Info("event list cache miss, scraping...")
	events, err := eventScraper.ScrapeEvents(ctx)
	if err != nil {
		return nil, err
	}
	if err := eventCache.SetEvents(ctx, events, eventListFreshTime); err != nil {
		log.Warn("failed to cache event list", "error", err)
	}
	return events, nil
}

// ResolveEventURL turns an event name or URL into the event's URL. Names are
// matched against the completed events listing.
func ResolveEventURL(ctx context.Context, eventScraper EventScraper, eventCache cache.EventCacheRepository, nameOrURL string) (string, error) {
	if strings.HasPrefix(nameOrURL, "http://") || strings.HasPrefix(nameOrURL, "https://") {
		return nameOrURL, nil
	}

	events, err := GetEventsWithCache(ctx, eventScraper, eventCache)
	if err != nil {
		return "", err
	}
	url, ok := Resolve(nameOrURL, events)
	if !ok {
		return "", &EventNotFoundError{Name: nameOrURL, Suggestions: Suggest(nameOrURL, events, numSuggestions)}
	}
	return url, nil
}

func GetReportWithCache(ctx context.Context, eventScraper EventScraper, eventCache cache.EventCacheRepository, url string) (*model.EventReport, error) {
	log := logs.Logger(ctx)
	log.Info(fmt.Sprintf("Getting event report, URL: %s", url))

	cached, err := eventCache.GetReport(ctx, url)
	if err != nil {
		log.Warn("failed to get event report from cache", "error", err)
	}

	if cached != nil {
		log.Info("cache hit")
		return cached, nil
	}

	log.Info("cache miss, scraping event...")

	report, err := eventScraper.ScrapeEvent(ctx, url)
	if err != nil {
		return nil, err
	}

	log.Info("scraped event, storing to cache", "fights", len(report.Event.Fights), "failures", len(report.Failures))

	if err := eventCache.SetReport(ctx, url, report, freshTime(report, time.Now())); err != nil {
		log.Warn("failed to cache event report", "error", err)
	}

	return report, nil
}

const (
	eventListFreshTime = time.Hour
	failedFreshTime    = 10 * time.Minute
	recentFreshTime    = time.Hour
	recentEventWindow  = 48 * time.Hour
)

// Returns how long this report should remain in the cache
// a report with failed fights is retried after failedFreshTime
// a recent or undated event may still be updated, fresh for recentFreshTime
// an older complete event is fresh forever (0)
func freshTime(report *model.EventReport, now time.Time) time.Duration {
	if !report.Complete() {
		return failedFreshTime
	}

	date := report.Event.Date
	if date == nil || now.Sub(*date) < recentEventWindow {
		return recentFreshTime
	}

	return 0
}
