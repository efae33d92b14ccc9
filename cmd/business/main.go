package main

import (
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"foodiq/internal/business/api"
	"foodiq/internal/business/consumer"
	"foodiq/internal/business/repository"
	"foodiq/internal/business/service"
	"foodiq/internal/config"
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

	if err := migrations.AutoMigrateBusiness(3, db); err != nil {
		log.Fatalf("Failed to migrate business tables: %v", err)
	}

	businessRepo := repository.NewBusinessRepository(db)
	businessService := service.NewBusinessService(businessRepo)
	businessHandler := api.NewBusinessHandler(businessService)

	// Record POS sales as transaction rows as they happen.
	orderReader := config.NewKafkaReader("order-topic", "business-stats-group")
	orderConsumer := consumer.NewConsumer(orderReader, businessRepo)
	go orderConsumer.Start()

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/api/business_stats", businessHandler.Stats)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "business-stats",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":8082"))
}
