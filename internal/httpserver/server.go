// internal/httpserver/server.go
//
// HTTP server wiring for the Six Words backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, request log).
//   - Public endpoints: "/", "/health".
//   - Puzzle endpoints (optional auth): /puzzle/new, /puzzle/{id}, /puzzle/{id}/actions,
//     and the /puzzle/{id}/ws state stream.
//   - Daily leaderboard under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me.
//
// Notes:
//   - When the dictionaries failed to load the server still starts; puzzle
//     routes answer 503 {"error":"reload_required"} and /health reports it.
//   - The websocket route sits outside the request timeout.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/stevenpuente/six-words/internal/daily"
	"github.com/stevenpuente/six-words/internal/store"
	"github.com/stevenpuente/six-words/internal/words"
)

const maxBodyBytes = 64 << 10

// Deps are the collaborators a Server needs.
type Deps struct {
	Store store.Store
	DB    *sql.DB
	Words *words.Pair // nil when loading failed
	Clock *daily.Clock
}

// Server bundles router, session store, and DB-backed stores.
type Server struct {
	r       *chi.Mux
	cfg     Config
	store   store.Store
	db      *sql.DB
	words   *words.Pair
	clock   *daily.Clock
	snaps   *store.SnapshotStore
	results *daily.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config, d Deps) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg.withDefaults(),
		store:   d.Store,
		db:      d.DB,
		words:   d.Words,
		clock:   d.Clock,
		snaps:   store.NewSnapshotStore(d.DB),
		results: daily.NewStore(d.DB),
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)
	s.r.Use(cors(s.cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "six-words",
			"endpoints": []string{"/health", "POST /puzzle/new", "GET /puzzle/{id}",
				"POST /puzzle/{id}/actions", "GET /puzzle/{id}/ws", "GET /daily/leaderboard", "/auth/*"},
		})
	})
	s.r.Get("/health", s.handleHealth)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(s.withOptionalAuth())
		s.mountPuzzle(r)
		s.mountDaily(r)
		if s.cfg.DebugRoutes {
			r.With(s.requireReady).Get("/debug/puzzle", s.handleDebugPuzzle)
		}
	})
	s.r.With(s.withOptionalAuth(), s.requireReady).Get("/puzzle/{id}/ws", s.handleWS)

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) ready() bool {
	return s.words != nil && s.words.Valid != nil && s.words.Generate != nil && s.clock != nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	res := map[string]any{"ok": true, "ready": s.ready()}
	if s.ready() {
		res["validWords"] = s.words.Valid.Len()
		res["generateWords"] = s.words.Generate.Len()
	}
	writeJSON(w, http.StatusOK, res)
}

// decodeBody reads a bounded JSON body into v.
func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
}
