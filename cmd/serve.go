// cmd/serve.go
//
// The serve command wires the whole backend together: env config, logging,
// round history, board factory, session manager, websocket adapter, HTTP
// server. Configuration is env-driven (PORT, LOG_LEVEL, CLIENT_ORIGIN,
// COUNTDOWN_SECONDS), with a .env file honored in development.

package cmd

import (
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ItamarSasson/queens-game-backend/internal/history"
	"github.com/ItamarSasson/queens-game-backend/internal/httpserver"
	"github.com/ItamarSasson/queens-game-backend/internal/puzzle"
	"github.com/ItamarSasson/queens-game-backend/internal/session"
	"github.com/ItamarSasson/queens-game-backend/internal/ws"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the game server",
		RunE:  runServe,
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	hist, err := history.Open()
	if err != nil {
		return err
	}
	defer hist.Close()

	countdown := session.DefaultCountdown
	if v := os.Getenv("COUNTDOWN_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			countdown = time.Duration(n) * time.Second
		}
	}

	factory := puzzle.NewFactory(rand.New(rand.NewSource(time.Now().UnixNano())))
	relay := ws.NewHandler()
	relay.Manager = session.NewManager(relay, factory, session.Config{
		Countdown: countdown,
		History:   hist,
	})

	srv := httpserver.New(relay.Manager, hist, relay.Handle)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Dur("countdown", countdown).Msg("starting queens-server")
	return srv.Start(":" + port)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
