package main

import (
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"foodiq/internal/config"
	"foodiq/internal/surplus/api"
	"foodiq/internal/surplus/repository"
	"foodiq/internal/surplus/service"
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

	if err := migrations.AutoMigrateSurplus(3, db); err != nil {
		log.Fatalf("Failed to migrate surplus tables: %v", err)
	}

	kafkaWriter := config.NewKafkaWriter("surplus-topic")

	surplusRepo := repository.NewSurplusRepository(db)
	surplusService := service.NewSurplusService(surplusRepo, kafkaWriter)
	surplusHandler := api.NewSurplusHandler(surplusService)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.POST("/api/surplus", surplusHandler.CreateListing)
	e.GET("/api/surplus", surplusHandler.ListAvailable)
	e.POST("/api/surplus/:id/claim", surplusHandler.Claim)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "surplus",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":8083"))
}
