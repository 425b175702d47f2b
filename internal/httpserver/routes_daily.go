// internal/httpserver/routes_daily.go
//
// GET /daily/leaderboard?date=YYYY-MM-DD&limit=N → top results for a day
// (today in the puzzle zone when date is omitted).

package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/stevenpuente/six-words/internal/daily"
)

func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

type leaderboardRes struct {
	Date   string        `json:"date"`
	Number int           `json:"number,omitempty"`
	Rows   []daily.LBRow `json:"rows"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	number := 0
	if date == "" {
		if s.clock == nil {
			writeError(w, http.StatusServiceUnavailable, "reload_required")
			return
		}
		now := s.clock.Now()
		date = s.clock.DateKey(now)
		number = s.clock.PuzzleNumber(now)
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > 100 {
		limit = 100
	}

	rows, err := s.results.Leaderboard(r.Context(), date, limit)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, leaderboardRes{Date: date, Number: number, Rows: rows})
}
