package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"google.golang.org/grpc"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/config"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/handler"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/model"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/payload"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/repository"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/usecase"
	"github.com/vasapolrittideah/portfolio-api/shared/auth"
	"github.com/vasapolrittideah/portfolio-api/shared/database"
	"github.com/vasapolrittideah/portfolio-api/shared/discovery"
	"github.com/vasapolrittideah/portfolio-api/shared/health"
	"github.com/vasapolrittideah/portfolio-api/shared/logger"
	"github.com/vasapolrittideah/portfolio-api/shared/mailer"
	"github.com/vasapolrittideah/portfolio-api/shared/metrics"
	"github.com/vasapolrittideah/portfolio-api/shared/provider"
	"github.com/vasapolrittideah/portfolio-api/shared/security"
	"github.com/vasapolrittideah/portfolio-api/shared/validation"
)

const (
	healthProbeTimeout  = 2 * time.Second
	healthProbeInterval = 15 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootLogger := logger.New("portfolio-service", os.Getenv("ENVIRONMENT"), os.Getenv("LOG_LEVEL"))
	cfg := config.NewPortfolioServiceConfig(bootLogger)
	log := logger.New(cfg.ServiceName, cfg.Environment, cfg.LogLevel)

	client, db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer disconnect(client, log)

	jwtAuth, err := auth.NewJWTAuthenticator(
		cfg.Token.Secret,
		cfg.Token.Audience,
		cfg.Token.Issuer,
		auth.WithTTL(cfg.Token.ExpiresIn),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create jwt authenticator")
	}

	hasher, err := security.NewHasher(cfg.PasswordHashAlgorithm)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create password hasher")
	}

	validator, err := validation.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	var notifier usecase.Notifier
	if cfg.SMTP.Enabled() {
		notifier = mailer.NewMailer(cfg.SMTP)
	}

	var google usecase.GoogleVerifier
	if cfg.GoogleClientID != "" {
		google = provider.NewGoogleOAuthProvider(cfg.GoogleClientID)
	}

	customerRepo := repository.NewCustomerMongoRepository(ctx, log, db)
	experienceRepo := repository.NewResourceMongoRepository[model.Experience, payload.ExperienceInput](
		ctx, log, db, repository.ExperienceSchema)
	projectRepo := repository.NewResourceMongoRepository[model.Project, payload.ProjectInput](
		ctx, log, db, repository.ProjectSchema)
	skillRepo := repository.NewResourceMongoRepository[model.Skill, payload.SkillInput](
		ctx, log, db, repository.SkillSchema)
	socialRepo := repository.NewResourceMongoRepository[model.Social, payload.SocialInput](
		ctx, log, db, repository.SocialSchema)

	checker := health.NewChecker(database.Pinger(client), healthProbeTimeout, log)
	go checker.Run(ctx, healthProbeInterval)

	router := handler.NewRouter(handler.Dependencies{
		Logger:      log,
		Validator:   validator,
		Metrics:     metrics.NewHTTPMetrics(cfg.ServiceName),
		Health:      checker,
		Identity:    usecase.NewIdentityUsecase(customerRepo, jwtAuth),
		Auth:        usecase.NewAuthUsecase(customerRepo, jwtAuth, hasher, notifier, google, log),
		Customers:   usecase.NewCustomerUsecase(customerRepo),
		Experiences: usecase.NewResourceUsecase(experienceRepo, customerRepo),
		Projects:    usecase.NewResourceUsecase(projectRepo, customerRepo),
		Skills:      usecase.NewResourceUsecase(skillRepo, customerRepo),
		Socials:     usecase.NewResourceUsecase(socialRepo, customerRepo),
	})

	if cfg.GRPCHealthPort > 0 {
		go serveGRPCHealth(ctx, cfg.GRPCHealthPort, checker, log)
	}

	if cfg.Consul.Enabled() {
		deregister := registerService(cfg, log)
		defer deregister()
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("http server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down http server")
	}
}

func serveGRPCHealth(ctx context.Context, port int, checker *health.Checker, log *zerolog.Logger) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		log.Fatal().Err(err).Int("port", port).Msg("failed to listen for grpc health")
	}

	grpcServer := grpc.NewServer()
	checker.RegisterGRPC(grpcServer)

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()

	log.Info().Int("port", port).Msg("grpc health server started")
	if err := grpcServer.Serve(lis); err != nil {
		log.Error().Err(err).Msg("grpc health server stopped")
	}
}

// registerService announces the HTTP server to Consul and returns the matching deregistration.
func registerService(cfg *config.PortfolioServiceConfig, log *zerolog.Logger) func() {
	registrar, err := discovery.NewRegistrar(cfg.Consul)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create consul registrar")
	}

	host := cfg.HTTP.Host
	if host == "" || host == "0.0.0.0" {
		if host, err = os.Hostname(); err != nil {
			log.Fatal().Err(err).Msg("failed to resolve hostname")
		}
	}

	reg := discovery.Registration{
		ID:        cfg.Consul.ServiceID,
		Name:      cfg.ServiceName,
		Host:      host,
		Port:      cfg.HTTP.Port,
		HealthURL: "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.HTTP.Port)) + "/healthz",
		Tags:      []string{"http", cfg.Environment},
	}
	registration := discovery.NewServiceRegistration(reg)

	if err := registrar.Register(reg); err != nil {
		log.Fatal().Err(err).Msg("failed to register with consul")
	}
	log.Info().Str("service_id", registration.ID).Msg("registered with consul")

	return func() {
		if err := registrar.Deregister(registration.ID); err != nil {
			log.Error().Err(err).Msg("failed to deregister from consul")
		}
	}
}

func disconnect(client *mongo.Client, log *zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("failed to disconnect from database")
	}
}
