package main

import (
	_ "github.com/joho/godotenv/autoload"

	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"team-maker/api"
	"team-maker/api/apiutil"
	"team-maker/api/roster"
	"team-maker/api/teams"
	"team-maker/migrations"
	"team-maker/utils/env"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func getNetListener(port int) net.Listener {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		panic(fmt.Sprintf("failed to listen: %v", err))
	}

	return lis
}

func setupLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if pretty, _ := env.GetBool("LOG_PRETTY"); pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	ctx := context.Background()
	setupLogger()

	err := migrations.RunMigrations(ctx)
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	roster.RegisterPlayerRoutes(mux)
	roster.RegisterSkillRoutes(mux)
	roster.RegisterRatingRoutes(mux)
	teams.RegisterRoutes(mux)

	port, err := env.GetInt("HTTP_PORT")
	if err != nil {
		port = 9080
	}

	server := &http.Server{
		Handler: api.ChainMiddleware(mux,
			api.WithRecovery,
			api.WithLogging,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c

		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown com erro")
		}
	}()

	log.Info().Int("port", port).Msg("servidor no ar")

	err = server.Serve(getNetListener(port))
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("servidor encerrou com erro")
	}
}
