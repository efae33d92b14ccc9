package main

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"foodiq/internal/canteen/api"
	"foodiq/internal/canteen/repository"
	"foodiq/internal/canteen/service"
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

	if err := migrations.AutoMigrateCanteen(3, db); err != nil {
		log.Fatalf("Failed to migrate canteen tables: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: config.RedisAddr(),
	})

	recordRepo := repository.NewRecordRepository(db)

	// The dataset is loaded once; a load failure is fatal here, not on
	// report calls.
	canteenService, err := service.NewCanteenService(context.Background(), recordRepo, rdb)
	if err != nil {
		log.Fatalf("Failed to initialize canteen service: %v", err)
	}
	canteenHandler := api.NewCanteenHandler(canteenService)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/api/overall", canteenHandler.Overall)
	e.GET("/api/daily", canteenHandler.Daily)
	e.GET("/api/dishes", canteenHandler.Dishes)
	e.GET("/api/weekday", canteenHandler.Weekday)
	e.GET("/api/threshold", canteenHandler.Threshold)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":       "ok",
			"service":      "canteen-stats",
			"dropped_rows": canteenService.DroppedRows(),
			"time":         time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":8081"))
}
