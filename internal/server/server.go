package server

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/thebenkogan/ufcstats/internal/cache"
	"github.com/thebenkogan/ufcstats/internal/events"
)

func NewServer(eventScraper events.EventScraper, eventCache cache.EventCacheRepository) http.Handler {
	mux := http.NewServeMux()
	addRoutes(mux, eventScraper, eventCache)
	return cors.Default().Handler(mux)
}
