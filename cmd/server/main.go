package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"integrationhub/internal/health"
	"integrationhub/internal/platform/config"
	"integrationhub/internal/platform/httpserver"
	"integrationhub/internal/platform/logger"
	"integrationhub/internal/platform/metrics"
	"integrationhub/internal/platform/postgres"
	"integrationhub/internal/platform/redis"
	"integrationhub/internal/ratelimit"
	"integrationhub/internal/translog"
	translogHandler "integrationhub/internal/translog/handler"
	httptransport "integrationhub/internal/transport/http"
	"integrationhub/internal/verification/extraction"
	verificationHandler "integrationhub/internal/verification/handler"
	verificationMetrics "integrationhub/internal/verification/metrics"
	"integrationhub/internal/verification/orchestrator"
	"integrationhub/internal/verification/providers"
	"integrationhub/internal/verification/providers/digitap"
	"integrationhub/internal/verification/providers/finanalyz"
	"integrationhub/internal/verification/providers/vision"
	"integrationhub/internal/verification/providers/zoop"
	"integrationhub/internal/verification/service"
	"integrationhub/internal/verification/tokencache"
	"integrationhub/pkg/platform/circuit"
	"integrationhub/pkg/platform/middleware/apikey"
)

const shutdownTimeout = 10 * time.Second

// main wires the backing services, the verification core and the HTTP
// surface, then runs the server and the transaction log worker until a
// signal arrives.
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel, cfg.Server.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("integrationhub stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var healthOpts []health.Option

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	tokenOpts := []tokencache.Option{tokencache.WithLogger(log)}
	if redisClient != nil {
		defer redisClient.Close()
		tokenOpts = append(tokenOpts, tokencache.WithStore(tokencache.NewRedisStore(redisClient.Client)))
		healthOpts = append(healthOpts, health.WithCheck("redis", redisClient.Health))
		log.Info("token cache backed by redis")
	}
	tokens := tokencache.New(tokenOpts...)

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Requests > 0 {
		var limitStore ratelimit.Store = ratelimit.NewMemoryStore()
		if redisClient != nil {
			limitStore = ratelimit.NewRedisStore(redisClient.Client)
		}
		limiter = ratelimit.New(limitStore, cfg.RateLimit.Requests, cfg.RateLimit.Window, log)
	}

	store, closeStore, err := openTransactionStore(ctx, cfg.Postgres, log)
	if err != nil {
		return err
	}
	defer closeStore()
	if hc, ok := store.(interface{ Health(context.Context) error }); ok {
		healthOpts = append(healthOpts, health.WithCheck("database", hc.Health))
	}

	logOpts := []translog.Option{translog.WithLogger(log)}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := translog.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return fmt.Errorf("create kafka publisher: %w", err)
		}
		defer publisher.Close()
		if err := publisher.EnsureTopic(ctx, 3, 1); err != nil {
			log.Warn("could not ensure transaction log topic", "topic", cfg.Kafka.Topic, "error", err)
		}
		logOpts = append(logOpts, translog.WithPublisher(publisher))
		healthOpts = append(healthOpts, health.WithCheck("kafka", publisher.Health))
	}
	transactions := translog.NewService(store, logOpts...)

	verifier, orch, err := buildVerification(ctx, cfg, log, tokens, reg)
	if err != nil {
		return err
	}
	healthOpts = append(healthOpts,
		health.WithProviders(verifier.ProviderStatus),
		health.WithBreakers(orch.BreakerStates),
		health.WithLogger(log),
	)

	keys := apikey.NewVerifier(cfg.Server.APIKeys, cfg.Server.APIKeyHashes)
	if keys.Open() {
		log.Warn("no API keys configured; any non-empty X-API-Key is accepted")
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		APIKeys:  keys,
		TransLog: transactions,
		Limiter:  limiter,
		Health:   health.NewHandler(health.New(healthOpts...)),
		Schemas:  verificationHandler.SchemaModels,
		Routes: []httptransport.Registrar{
			verificationHandler.New(verifier, log),
			translogHandler.New(transactions, log),
		},
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := transactions.Worker().Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		log.Info("starting integrationhub", "addr", cfg.Server.Addr, "env", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// openTransactionStore returns the Postgres store when a database is
// configured and the in-memory store otherwise.
func openTransactionStore(ctx context.Context, cfg config.PostgresConfig, log *slog.Logger) (translog.Store, func(), error) {
	db, err := postgres.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if db == nil {
		log.Info("no database configured; transaction log kept in memory")
		return translog.NewInMemoryStore(), func() {}, nil
	}
	if cfg.RunMigrations {
		if err := postgres.Migrate(ctx, db.Pool, log); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return &healthyStore{PostgresStore: translog.NewPostgresStore(db.Pool), db: db}, db.Close, nil
}

type healthyStore struct {
	*translog.PostgresStore
	db *postgres.DB
}

func (s *healthyStore) Health(ctx context.Context) error {
	return s.db.Health(ctx)
}

func buildVerification(ctx context.Context, cfg config.Config, log *slog.Logger, tokens *tokencache.Cache, reg prometheus.Registerer) (*service.Service, *orchestrator.Orchestrator, error) {
	p := cfg.Providers

	var extractor *vision.TextExtractor
	if p.VisionCredentialsFile != "" {
		svc, err := vision.NewService(ctx, p.VisionCredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		extractor = vision.NewTextExtractor(svc, vision.WithLogger(log))
	}

	zoopCreds := zoop.Credentials{APIKey: p.ZoopAPIKey, AppID: p.ZoopAppID}
	digitapCreds := digitap.Credentials{ClientID: p.DigitapClientID, ClientSecret: p.DigitapClientSecret}

	registry := providers.NewRegistry()
	for _, a := range []providers.Adapter{
		finanalyz.NewVerifier(p.FinanalyzPANURL, p.FinanalyzAPIKey, finanalyz.WithLogger(log)),
		zoop.NewVerifier(p.ZoopPANURL, zoopCreds, zoop.WithLogger(log)),
		finanalyz.NewOCR(p.FinanalyzOCRURL, p.FinanalyzAPIKey, finanalyz.WithLogger(log)),
		vision.NewPANAdapter(extractor, extraction.NewDefault()),
		digitap.NewCheque(p.DigitapBaseURL, digitapCreds, digitap.WithLogger(log)),
		zoop.NewGST(p.ZoopGSTURL, zoopCreds, zoop.WithLogger(log)),
	} {
		if err := registry.Register(a); err != nil {
			return nil, nil, err
		}
	}
	log.Info("verification providers registered", "providers", registry.IDs())

	claimChain, err := registry.Chain(finanalyz.VerifierID, zoop.VerifierID)
	if err != nil {
		return nil, nil, err
	}
	imageChain, err := registry.Chain(p.OCROrder...)
	if err != nil {
		return nil, nil, fmt.Errorf("OCR_PROVIDER_ORDER: %w", err)
	}
	cheque, _ := registry.Get(digitap.ChequeID)
	gst, _ := registry.Get(zoop.GSTID)

	var aadhaarTokens digitap.TokenSource
	if digitapCreds.ClientID != "" && digitapCreds.ClientSecret != "" {
		aadhaarTokens = tokens
	}
	aadhaar := digitap.NewAadhaar(p.DigitapBaseURL, p.AadhaarRedirectURL, digitapCreds, aadhaarTokens, digitap.WithLogger(log))
	tokens.Register(digitap.AadhaarID, &tokencache.ClientCredentialsExchanger{
		ProviderID:   digitap.AadhaarID,
		URL:          aadhaar.TokenURL(),
		ClientID:     digitapCreds.ClientID,
		ClientSecret: digitapCreds.ClientSecret,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	})

	// The Vision cheque fallback shares the GOOGLE_VISION id with the PAN
	// adapter, so it stays outside the registry.
	chains := service.Chains{
		Claim:  claimChain,
		Image:  imageChain,
		Cheque: service.ChequeRoute(cheque, vision.NewChequeAdapter(extractor)),
		GST:    gst,
	}

	vm := verificationMetrics.New(reg)
	orchOpts := []orchestrator.Option{
		orchestrator.WithLogger(log),
		orchestrator.WithMetrics(vm),
	}
	if cfg.Breaker.Enabled {
		orchOpts = append(orchOpts, orchestrator.WithBreakers(
			circuit.WithFailureThreshold(cfg.Breaker.FailureThreshold),
			circuit.WithSuccessThreshold(cfg.Breaker.SuccessThreshold),
			circuit.WithCooldown(cfg.Breaker.Cooldown),
		))
	}

	orch := orchestrator.New(orchOpts...)
	return service.New(orch, chains,
		service.WithAadhaar(aadhaar),
		service.WithMetrics(vm),
		service.WithLogger(log),
	), orch, nil
}
