package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"squarebuzz/internal/app"
	"squarebuzz/internal/clients"
	"squarebuzz/internal/config"
	"squarebuzz/internal/domain"
	"squarebuzz/internal/infra/authstore"
	"squarebuzz/internal/infra/memory"
	pgarchive "squarebuzz/internal/infra/postgres"
	redisinfra "squarebuzz/internal/infra/redis"
	transport "squarebuzz/internal/transport/http"
	"squarebuzz/internal/verify"
)

// NewStartCmd builds the CLI subcommand to start the game server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	tokenProvider := func() string {
		creds, err := store.Load()
		if err != nil {
			return ""
		}
		return creds.Token
	}

	var identity app.Identity = openIdentity{}
	if cfg.Auth.URL != "" {
		authClient := clients.NewAuthClient(cfg.Auth.URL, tokenProvider)
		identity = clients.NewIdentityGate(store, authClient, time.Now)
	}

	var source app.QuestionSource = memory.NewStaticSource(demoQuestions())
	if cfg.Questions.URL != "" {
		source = clients.NewQuestionClient(cfg.Questions.URL, tokenProvider, logger)
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		source = pgarchive.NewArchivingSource(source, pgarchive.NewArchive(pool), cfg.Postgres.Replay, logger)
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		source = redisinfra.NewQuestionCache(redisClient, source, questionTTL)
	} else {
		source = memory.NewQuestionCache(source, questionTTL)
	}

	var judge verify.Judge
	if cfg.Judge.URL != "" {
		judge = clients.NewJudgeClient(cfg.Judge.URL, tokenProvider)
	}
	verifier := verify.New(judge, logger)

	settings := app.Settings{
		TimePerQuestion:   cfg.Game.TimePerQuestion,
		QuestionsPerRound: cfg.Game.QuestionsPerRound,
	}
	service := app.NewGameService(source, verifier, identity, clockwork.NewRealClock(), settings, logger)
	wsHandler := transport.NewWSHandler(service, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info().Str("port", finalPort).Msg("starting game server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info().Msg("shutting down server")
	case <-ctx.Done():
		logger.Info().Msg("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openStore(cfg config.Config) (*authstore.Store, error) {
	path := cfg.Auth.StorePath
	if path == "" {
		defaultPath, err := authstore.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	return authstore.New(path), nil
}

// openIdentity waves everyone through when no identity service is
// configured, for offline play.
type openIdentity struct{}

func (openIdentity) CheckAccess(context.Context) error { return nil }

// demoQuestions is a minimal built-in set so the game runs with no
// generation service configured.
func demoQuestions() map[string][]domain.Question {
	return map[string][]domain.Question{
		memory.Key("demo", "english", "medium"): {
			{
				Prompt:       "Which planet is known as the Red Planet?",
				Answer:       "Mars",
				WrongAnswers: []string{"Venus", "Jupiter", "Mercury"},
				FunFact:      "Mars hosts Olympus Mons, the tallest volcano in the solar system.",
			},
			{
				Prompt:       "What is the largest ocean on Earth?",
				Answer:       "The Pacific Ocean",
				WrongAnswers: []string{"The Atlantic Ocean", "The Indian Ocean", "The Arctic Ocean"},
				FunFact:      "The Pacific covers more area than all land on Earth combined.",
			},
			{
				Prompt:       "Who painted the Mona Lisa?",
				Answer:       "Leonardo da Vinci",
				WrongAnswers: []string{"Michelangelo", "Raphael", "Donatello"},
				FunFact:      "The Mona Lisa has no eyebrows; they were fashionable to shave at the time.",
			},
			{
				Prompt:       "What is the chemical symbol for gold?",
				Answer:       "Au",
				WrongAnswers: []string{"Ag", "Gd", "Go"},
				FunFact:      "Au comes from aurum, Latin for shining dawn.",
			},
		},
	}
}
