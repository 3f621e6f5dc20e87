package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sabor-go/internal/config"
	"sabor-go/internal/infra/database"
	infraES "sabor-go/internal/infra/elasticsearch"
	infraKafka "sabor-go/internal/infra/kafka"
	"sabor-go/internal/repository"
	"sabor-go/internal/service"
	"sabor-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// 索引同步 worker：消费菜谱变更事件，将菜谱写入/移出 Elasticsearch
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	if err := infraES.InitIndexes(); err != nil {
		logger.Fatal("Failed to init elasticsearch indexes", zap.Error(err))
	}

	db := database.Get()
	recipeRepo := repository.NewRecipeRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	relationRepo := repository.NewRelationRepository(db)
	shoppingListRepo := repository.NewShoppingListRepository(db)

	// 索引同步只读菜谱，无需 Redis 缓存
	shoppingListService := service.NewShoppingListService(shoppingListRepo, nil)
	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, relationRepo, shoppingListService)
	searchService := service.NewSearchService(recipeRepo, recipeService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	topic := cfg.Kafka.Topics["recipe_events"]
	groupID := "sabor-go-index-worker"

	logger.Info("Index worker started",
		zap.String("topic", topic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("Index worker stopped")
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var event infraKafka.RecipeEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("Failed to unmarshal recipe event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		logger.Info("Processing recipe event",
			zap.Int64("recipe_id", event.RecipeID),
			zap.String("action", event.Action),
		)

		if err := searchService.HandleRecipeEvent(&event); err != nil {
			logger.Error("Recipe event failed",
				zap.Int64("recipe_id", event.RecipeID),
				zap.Error(err),
			)
		} else {
			logger.Info("Recipe event completed",
				zap.Int64("recipe_id", event.RecipeID),
			)
		}
	}
}
