package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"noteful-server/internal/config"
	"noteful-server/internal/handler"
	"noteful-server/internal/logger"
	"noteful-server/internal/middleware"
	"noteful-server/internal/repository"
	"noteful-server/internal/service"
	"noteful-server/internal/websocket"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Logging.Level, cfg.Logging.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		zlog.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			zlog.Error("failed to disconnect from MongoDB", zap.Error(err))
		}
	}()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelPing()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		zlog.Fatal("MongoDB ping failed", zap.Error(err))
	}

	db := client.Database(cfg.Database.Name)

	idxCtx, cancelIdx := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIdx()
	if err := repository.EnsureIndexes(idxCtx, db); err != nil {
		zlog.Fatal("failed to ensure indexes", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	tagRepo := repository.NewTagRepository(db)

	var txn repository.TxnRunner
	if cfg.Database.UseTransactions {
		txn = repository.NewTxnRunner(client)
	}

	wsManager := websocket.NewManager(
		cfg.WebSocket.MaxConnPerUser,
		cfg.WebSocket.WriteWait,
		cfg.WebSocket.PongWait,
		cfg.WebSocket.PingPeriod,
		zlog,
	)
	go wsManager.Run()

	events := service.NewEventService(wsManager, zlog)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshTokenExpiration)
	userService := service.NewUserService(userRepo)
	noteService := service.NewNoteService(noteRepo, folderRepo, tagRepo, events)
	folderService := service.NewFolderService(folderRepo, noteRepo, txn, events, zlog)
	tagService := service.NewTagService(tagRepo, noteRepo, txn, events, zlog)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	noteHandler := handler.NewNoteHandler(noteService)
	folderHandler := handler.NewFolderHandler(folderService)
	tagHandler := handler.NewTagHandler(tagService)
	wsHandler := handler.NewWebSocketHandler(wsManager, cfg.JWT.Secret, zlog)

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware(zlog))
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret))

	protected.HandleFunc("/users/me", userHandler.GetMe).Methods("GET", "OPTIONS")

	protected.HandleFunc("/notes", noteHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes", noteHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Update).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Delete).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/folders", folderHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/folders", folderHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/folders/{id}", folderHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/folders/{id}", folderHandler.Update).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/folders/{id}", folderHandler.Delete).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/tags", tagHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/tags", tagHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/tags/{id}", tagHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/tags/{id}", tagHandler.Update).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/tags/{id}", tagHandler.Delete).Methods("DELETE", "OPTIONS")

	r.HandleFunc("/ws", wsHandler.HandleConnection)

	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/", rootHandler).Methods("GET")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("starting Noteful server",
			zap.String("addr", addr),
			zap.String("env", cfg.Server.Env),
			zap.String("database", cfg.Database.Name),
			zap.Bool("transactions", cfg.Database.UseTransactions),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server stopped gracefully")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"noteful-server"}`))
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"Noteful API","version":"1.0.0","endpoints":{"/api/v1/auth/register":"POST","/api/v1/auth/login":"POST","/api/v1/notes":"GET, POST (protected)","/api/v1/folders":"GET, POST (protected)","/api/v1/tags":"GET, POST (protected)"}}`))
}
