package server

import (
	"net/http"

	"github.com/thebenkogan/ufcstats/internal/cache"
	"github.com/thebenkogan/ufcstats/internal/events"
)

func addRoutes(
	mux *http.ServeMux,
	eventScraper events.EventScraper,
	eventCache cache.EventCacheRepository,
) {
	mux.Handle("GET /events", events.HandleGetEvents(eventScraper, eventCache))
	mux.Handle("GET /events/{name}", events.HandleGetEvent(eventScraper, eventCache))
	mux.Handle("GET /events/{name}/fights.csv", events.HandleGetFightsCSV(eventScraper, eventCache))
	mux.Handle("GET /events/{name}/fight_stats.csv", events.HandleGetFightStatsCSV(eventScraper, eventCache))
	mux.Handle("/", http.NotFoundHandler())
}
