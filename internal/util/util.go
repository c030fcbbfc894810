package util

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/thebenkogan/ufcstats/internal/util/logs"
)

type Handler func(w http.ResponseWriter, r *http.Request) error

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r = r.WithContext(logs.WithRequestLogger(r))
	if err := h(w, r); err != nil {
		logs.Logger(r.Context()).Error("request failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func Encode[T any](w http.ResponseWriter, status int, v T) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error(err.Error())
	}
}
