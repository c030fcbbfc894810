package events

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/thebenkogan/ufcstats/internal/cache"
	"github.com/thebenkogan/ufcstats/internal/export"
	"github.com/thebenkogan/ufcstats/internal/model"
	"github.com/thebenkogan/ufcstats/internal/util"
)

type notFoundResponse struct {
	Error       string               `json:"error"`
	Suggestions []model.EventSummary `json:"suggestions"`
}

func HandleGetEvents(eventScraper EventScraper, eventCache cache.EventCacheRepository) util.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		events, err := GetEventsWithCache(r.Context(), eventScraper, eventCache)
		if err != nil {
			return err
		}
		util.Encode(w, http.StatusOK, events)
		return nil
	}
}

// reportFor resolves the {name} path value and loads its report. A false
// return means the response has already been written.
func reportFor(w http.ResponseWriter, r *http.Request, eventScraper EventScraper, eventCache cache.EventCacheRepository) (*model.EventReport, bool, error) {
	name := r.PathValue("name")
	url, err := ResolveEventURL(r.Context(), eventScraper, eventCache, name)
	if err != nil {
		var notFound *EventNotFoundError
		if errors.As(err, &notFound) {
			util.Encode(w, http.StatusNotFound, notFoundResponse{
				Error:       notFound.Error(),
				Suggestions: notFound.Suggestions,
			})
			return nil, false, nil
		}
		return nil, false, err
	}

	report, err := GetReportWithCache(r.Context(), eventScraper, eventCache, url)
	if err != nil {
		return nil, false, err
	}
	return report, true, nil
}

func HandleGetEvent(eventScraper EventScraper, eventCache cache.EventCacheRepository) util.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		report, ok, err := reportFor(w, r, eventScraper, eventCache)
		if !ok {
			return err
		}
		util.Encode(w, http.StatusOK, report)
		return nil
	}
}

func HandleGetFightsCSV(eventScraper EventScraper, eventCache cache.EventCacheRepository) util.Handler {
	return handleCSV(eventScraper, eventCache, "fights.csv", export.WriteFights)
}

func HandleGetFightStatsCSV(eventScraper EventScraper, eventCache cache.EventCacheRepository) util.Handler {
	return handleCSV(eventScraper, eventCache, "fight_stats.csv", export.WriteFightStats)
}

func handleCSV(eventScraper EventScraper, eventCache cache.EventCacheRepository, filename string, write func(io.Writer, model.EventRecord) error) util.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		report, ok, err := reportFor(w, r, eventScraper, eventCache)
		if !ok {
			return err
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := write(w, report.Event); err != nil {
			return fmt.Errorf("error writing %s: %w", filename, err)
		}
		return nil
	}
}
