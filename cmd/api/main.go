package main

import (
	"context"

	"github.com/TanushreeSarkar/InterVista/internal/cache"
	"github.com/TanushreeSarkar/InterVista/internal/config"
	"github.com/TanushreeSarkar/InterVista/internal/database"
	"github.com/TanushreeSarkar/InterVista/internal/evaluator"
	"github.com/TanushreeSarkar/InterVista/internal/handler"
	"github.com/TanushreeSarkar/InterVista/internal/logger"
	"github.com/TanushreeSarkar/InterVista/internal/openai"
	"github.com/TanushreeSarkar/InterVista/internal/repository"
	"github.com/TanushreeSarkar/InterVista/internal/storage"
	_ "github.com/joho/godotenv/autoload"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type application struct {
	DB      *mongo.Client
	Logger  *zap.Logger
	Config  *config.Config
	Store   repository.Store
	Handler *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s", cfg.Env)

	client, err := database.Connect(ctx, cfg.DB.URI, cfg.DB.Timeout)
	if err != nil {
		sugar.Fatal(err)
	}
	defer client.Disconnect(ctx)

	primary := repository.NewMongo(client.Database(cfg.DB.Name))
	if err := primary.EnsureIndexes(ctx); err != nil {
		sugar.Warnw("failed to ensure indexes", "err", err)
	}
	store := repository.NewFailover(primary, log)

	var sessionCache *cache.Sessions
	if cfg.Redis.Addr != "" {
		redisClient := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := cache.Ping(ctx, redisClient); err != nil {
			sugar.Warnw("redis unreachable, session cache disabled", "err", err)
		} else {
			sessionCache = cache.NewSessions(redisClient, cfg.Redis.TTL)
		}
	}

	var uploader storage.Uploader
	if cfg.Storage.Endpoint != "" {
		u, err := storage.NewMinioUploader(cfg.Storage)
		if err != nil {
			sugar.Warnw("object storage unavailable, audio uploads disabled", "err", err)
		} else {
			uploader = u
		}
	} else {
		sugar.Warn("no storage endpoint configured, audio uploads disabled")
	}

	openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Timeout)
	if !openaiClient.Configured() {
		sugar.Warn("OPENAI_API_KEY not set, running with mock evaluations and no transcription")
	}

	var transcriber handler.Transcriber
	if openaiClient.Configured() {
		transcriber = openaiClient
	}

	handlerApp := &handler.Handler{
		Logger:       log,
		Store:        store,
		TokenMaker:   newTokenMaker(cfg),
		Evaluator:    evaluator.New(openaiClient, cfg.OpenAI.Model, log),
		Transcriber:  transcriber,
		STTModel:     cfg.OpenAI.STTModel,
		Uploader:     uploader,
		SessionCache: sessionCache,
	}

	app := &application{
		DB:      client,
		Logger:  log,
		Config:  cfg,
		Store:   store,
		Handler: handlerApp,
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
