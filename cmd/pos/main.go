package main

import (
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"foodiq/internal/config"
	"foodiq/internal/pos/api"
	"foodiq/internal/pos/repository"
	"foodiq/internal/pos/service"
	"foodiq/migrations"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	db, err := config.ConnectDB()
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigratePOS(3, db); err != nil {
		log.Fatalf("Failed to migrate POS tables: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: config.RedisAddr(),
	})

	kafkaWriter := config.NewKafkaWriter("order-topic")

	posRepo := repository.NewPOSRepository(db)
	posService := service.NewPOSService(posRepo, kafkaWriter, rdb)
	posHandler := api.NewPOSHandler(posService)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     40,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	e.GET("/api/menu", posHandler.GetMenu)
	e.POST("/api/checkout", posHandler.Checkout)
	e.GET("/api/orders/:id", posHandler.GetOrder)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "pos",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":8080"))
}
