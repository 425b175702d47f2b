package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stevenpuente/six-words/assets"
	"github.com/stevenpuente/six-words/internal/daily"
	"github.com/stevenpuente/six-words/internal/httpserver"
	"github.com/stevenpuente/six-words/internal/sqldb"
	"github.com/stevenpuente/six-words/internal/store"
	"github.com/stevenpuente/six-words/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	clock, err := daily.NewClock(os.Getenv("PUZZLE_TZ"), os.Getenv("PUZZLE_START"))
	if err != nil {
		log.Fatal().Err(err).Msg("puzzle calendar")
	}

	db, err := sqldb.Open(getEnv("DB_DRIVER", sqldb.DriverCgo), getEnv("DB_PATH", "./data/sixwords.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := sqldb.Migrate(db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	// Without dictionaries the server still starts and asks clients to reload.
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	dicts, err := words.LoadPair(ctx, os.Getenv("WORDS_VALID_SOURCE"), os.Getenv("WORDS_GENERATE_SOURCE"))
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("failed to load word lists; serving reload_required")
	} else {
		log.Info().Int("valid", dicts.Valid.Len()).Int("generate", dicts.Generate.Len()).Msg("word lists loaded")
	}

	now := clock.Now()
	log.Info().Str("date", clock.DateKey(now)).Int("number", clock.PuzzleNumber(now)).Msg("puzzle calendar")

	srv := httpserver.New(httpserver.ConfigFromEnv(), httpserver.Deps{
		Store: store.NewMemoryStore(),
		DB:    db,
		Words: dicts,
		Clock: clock,
	})
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting six-words server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
