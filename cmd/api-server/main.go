package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Radpid/radGPT/pkg/audit"
	"github.com/Radpid/radGPT/pkg/chat"
	"github.com/Radpid/radGPT/pkg/common/config"
	"github.com/Radpid/radGPT/pkg/common/database"
	"github.com/Radpid/radGPT/pkg/common/kafka"
	"github.com/Radpid/radGPT/pkg/common/logger"
	gatewayauth "github.com/Radpid/radGPT/pkg/gateway/auth"
	"github.com/Radpid/radGPT/pkg/gateway/middleware"
	"github.com/Radpid/radGPT/pkg/gateway/routes"
	"github.com/Radpid/radGPT/pkg/identity"
	"github.com/Radpid/radGPT/pkg/llm"
	"github.com/Radpid/radGPT/pkg/patients"
	"github.com/gorilla/mux"
)

func main() {
	logger.Init()
	cfg := config.Load()

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}

	identityRepo := identity.NewRepository(db)
	patientRepo := patients.NewRepository(db)
	chatRepo := chat.NewRepository(db)
	auditRepo := audit.NewRepository(db)
	for _, migrate := range []func() error{
		identityRepo.AutoMigrate,
		patientRepo.AutoMigrate,
		chatRepo.AutoMigrate,
		auditRepo.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			logger.Log.WithError(err).Fatal("failed to migrate tables")
		}
	}

	identityService := identity.NewService(identityRepo)
	patientService := patients.NewService(patientRepo, database.GetRedis(), cfg.StatsCacheTTL)

	if cfg.SeedSampleData {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := identityService.SeedDefaultUsers(ctx); err != nil {
			logger.Log.WithError(err).Warn("failed to seed users")
		}
		if err := patients.SeedSampleData(ctx, db); err != nil {
			logger.Log.WithError(err).Warn("failed to seed sample data")
		}
		cancel()
	}

	rules, err := chat.LoadRules(cfg.ChatRulesPath)
	if err != nil {
		logger.Log.WithError(err).Warn("failed to load chat rules, using defaults")
	}
	classifier := chat.NewClassifier(rules)
	dispatcher := chat.NewDispatcher(llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel))

	var events chat.EventPublisher
	var producer *kafka.Producer
	if cfg.AuditEnabled {
		producer = kafka.NewProducer(cfg.KafkaBrokers, cfg.AuditTopic)
		events = producer
	}

	chatService := chat.NewService(patientService, chatRepo, classifier, dispatcher, events)

	tokenSigner, err := gatewayauth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to configure token signer")
	}

	var sso *gatewayauth.OIDCAuthenticator
	if cfg.OIDCIssuer != "" {
		sso, err = gatewayauth.NewOIDCAuthenticator(cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret)
		if err != nil {
			logger.Log.WithError(err).Warn("single sign-on disabled")
		} else {
			logger.Log.WithField("issuer", sso.Issuer()).Info("single sign-on enabled")
		}
	}

	router := mux.NewRouter()
	router.Use(middleware.Recovery, middleware.Logging, middleware.CORS(cfg.CORSOrigins), middleware.MaxBody(cfg.MaxRequestBody))

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"RadGPT API is running"}`))
	}).Methods(http.MethodGet)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)
	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)
	routes.RegisterMetrics(router)

	authRouter := router.PathPrefix("/auth").Subrouter()
	routes.NewAuthHandler(identityService, tokenSigner, sso).Register(authRouter)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authenticate(tokenSigner))
	patients.NewHandler(patientService).Register(api.PathPrefix("/patients").Subrouter())
	chat.NewHandler(chatService).Register(api.PathPrefix("/chat").Subrouter())
	audit.NewHandler(auditRepo).Register(api.PathPrefix("/audit").Subrouter())

	address := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithField("addr", address).Info("RadGPT API listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start api server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down RadGPT API...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("API server forced to shutdown")
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Log.WithError(err).Error("failed to close audit producer")
		}
	}
	if err := database.CloseRedis(); err != nil {
		logger.Log.WithError(err).Error("failed to close redis")
	}
	if err := database.ClosePostgres(); err != nil {
		logger.Log.WithError(err).Error("failed to close postgres")
	}
	logger.Log.Info("RadGPT API stopped")
}
