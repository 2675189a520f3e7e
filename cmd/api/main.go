package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/api"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/auth"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/config"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/notify"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/outbox"
	persistence "github.com/Ahmed-Chaabane/backend-gorun/internal/persistence/postgres"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/recommend"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/spotify"
	httptransport "github.com/Ahmed-Chaabane/backend-gorun/internal/transport/http"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "backend").Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := persistence.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	hub := notify.NewHub(log)

	sinks := []outbox.Sink{outbox.NewHubSink(hub, notify.TopicNotifications)}
	if len(cfg.KafkaBrokers) > 0 {
		producer := outbox.NewKafkaProducer(cfg.KafkaBrokers)
		defer producer.Close()
		sinks = append(sinks, outbox.NewKafkaSink(producer))
	}
	dispatcher := outbox.NewDispatcher(pool, log, cfg.OutboxPoll, 100, sinks...)
	go dispatcher.Start(ctx)

	users := persistence.NewUserRepository(pool)
	participations := persistence.NewParticipationRepository(pool)
	catalog := persistence.NewGoalCatalog(pool)

	authCfg := auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, TTL: cfg.SessionTTL}

	handler := api.New(api.Deps{
		Log: log,

		Users:          users,
		Activities:     persistence.NewActivityRepository(pool),
		Details:        persistence.NewActivityDetailRepository(pool),
		Foods:          persistence.NewFoodRepository(pool),
		Habits:         persistence.NewEatingHabitRepository(pool),
		Challenges:     persistence.NewChallengeRepository(pool),
		Interactions:   persistence.NewInteractionRepository(pool),
		Events:         persistence.NewEventRepository(pool),
		SportGoals:     persistence.NewSportGoalRepository(pool),
		HydrationGoals: persistence.NewHydrationGoalRepository(pool),
		NutritionGoals: persistence.NewNutritionGoalRepository(pool),
		SleepGoals:     persistence.NewSleepGoalRepository(pool),
		GoalProgress:   persistence.NewGoalProgressRepository(pool),
		Participations: participations,
		Injuries:       persistence.NewInjuryRepository(pool),
		TrainingRecs:   persistence.NewTrainingRecommendationRepository(pool),
		RecoveryRecs:   persistence.NewRecoveryRecommendationRepository(pool),
		Benefits:       persistence.NewBenefitRepository(pool),
		MusicAccounts:  persistence.NewMusicAccountRepository(pool),

		ParticipationSvc: domain.NewParticipationService(participations, catalog, users),

		Spotify: spotify.NewClient(spotify.Config{
			ClientID:     cfg.SpotifyClientID,
			ClientSecret: cfg.SpotifyClientSecret,
			RedirectURL:  cfg.SpotifyRedirectURL,
		}, nil),
		Recommend: recommend.NewClient(cfg.RecommendationURL, cfg.RecommendationToken, nil),
		Hub:       hub,
		AuthCfg:   authCfg,
	})

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	authMiddleware := auth.NewMiddleware(authCfg, api.AuthSkipper)
	root := api.MetricsMiddleware(requestLogger(log, authMiddleware.Wrap(mux)))

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address: cfg.HTTPAddress,
	}, root)

	go func() {
		log.Info().Str("address", cfg.HTTPAddress).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	cancel()
	dispatcher.Wait()
}

func requestLogger(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
