package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hoopsquares/squares/internal/common/clock"
	"github.com/hoopsquares/squares/internal/common/uuid"
	"github.com/hoopsquares/squares/internal/digits"
	gameRepo "github.com/hoopsquares/squares/internal/repositories/game"
	payoutRepo "github.com/hoopsquares/squares/internal/repositories/payoutlog"
	propRepo "github.com/hoopsquares/squares/internal/repositories/propbet"
	gameService "github.com/hoopsquares/squares/internal/services/game"
	propsService "github.com/hoopsquares/squares/internal/services/props"
)

// core holds the wired services a transport gets handed
type core struct {
	games gameService.Service
	props propsService.Service
}

func main() {
	// Load a local .env if present; real deployments set the environment
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	games, err := gameRepo.NewRedis(&gameRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create game repository: %v", err)
	}

	payouts, err := payoutRepo.NewRedis(&payoutRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create payout log repository: %v", err)
	}

	propBets, err := propRepo.NewRedis(&propRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create prop bet repository: %v", err)
	}

	// Initialize services
	gameSvc, err := gameService.NewService(&gameService.Config{
		GameRepo:      games,
		PayoutLogRepo: payouts,
		Shuffler:      digits.New(&digits.Config{}),
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create game service: %v", err)
	}

	propsSvc, err := propsService.NewService(&propsService.Config{
		PropRepo:      propBets,
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create props service: %v", err)
	}

	c := &core{
		games: gameSvc,
		props: propsSvc,
	}

	// Startup probe: a read through the service stack proves the wiring
	openGames, err := c.games.ListOpenGames(context.Background(), &gameService.ListOpenGamesInput{})
	if err != nil {
		log.Fatalf("Failed to list open games: %v", err)
	}

	log.Printf("squares core is up with %d open games; waiting for a transport to be attached", len(openGames.Games))

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("squares core has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
