package main

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/qlap/traingate/adapters/events"
	"github.com/qlap/traingate/adapters/store"
	"github.com/qlap/traingate/adapters/tokenizer"
	"github.com/qlap/traingate/adapters/users"
	"github.com/qlap/traingate/config"
	"github.com/qlap/traingate/ports"
	"github.com/qlap/traingate/service"
	"github.com/qlap/traingate/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	userRepo, err := users.NewGormRepository(db)
	if err != nil {
		log.Fatalf("Failed to initialize user repository: %v", err)
	}

	var (
		denyList ports.DenyList
		eventPub ports.EventPublisher
	)

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)

		logger := watermill.NewStdLogger(false, false)
		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client: redisClient,
			},
			logger,
		)
		if err != nil {
			log.Fatalf("Failed to create Redis publisher: %v", err)
		}

		denyList = store.NewRedisDenyList(redisClient)
		eventPub = events.NewWatermillPublisher(publisher)
	} else {
		// Single-instance development mode: revocations are not shared
		// across processes and audit events are not published.
		log.Println("REDIS_URL not set, using in-memory deny-list")
		denyList = store.NewMemoryDenyList()
	}

	jwtTokenizer := tokenizer.NewJWTTokenizer([]byte(cfg.JWTSecret))

	authService := service.NewAuthService(userRepo, jwtTokenizer, denyList, eventPub, cfg.AccessTTL, cfg.RefreshTTL)
	userService := service.NewUserService(userRepo, bcrypt.DefaultCost)

	router := http.SetupRouter(authService, userService, int64(cfg.AccessTTL.Seconds()), cfg.CORSOrigins)

	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
