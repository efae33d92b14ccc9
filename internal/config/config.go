package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"
)

// Getenv returns the value of the environment variable or a fallback.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// RedisAddr returns the Redis address from the environment.
func RedisAddr() string {
	return Getenv("REDIS_ADDR", "localhost:6379")
}

// ConnectDB opens a MySQL connection from env vars and retries until the
// database is reachable.
func ConnectDB() (*sql.DB, error) {
	host := Getenv("DB_HOST", "localhost")
	port := Getenv("DB_PORT", "3306")
	user := Getenv("DB_USER", "root")
	pass := os.Getenv("DB_PASS")
	dbname := Getenv("DB_NAME", "foodiq")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB %s", dbname)
				return db, nil
			}
		}
		log.Printf("Retry %d: Failed to connect to DB %s (%s:%s): %v", i+1, dbname, host, port, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", dbname, host, port, err)
}
