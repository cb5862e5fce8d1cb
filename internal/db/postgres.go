package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// USERS
	// -------------------------------
	userTableSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'DINER',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, userTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// SEARCH RECORDS
	// -------------------------------
	searchRecordsSQL := `
		CREATE TABLE IF NOT EXISTS search_records (
			id SERIAL PRIMARY KEY,
			search_id VARCHAR(64) UNIQUE NOT NULL,
			mealtime VARCHAR(50) NOT NULL,
			cuisine VARCHAR(100) NOT NULL,
			location VARCHAR(200) NOT NULL,
			latitude DOUBLE PRECISION NULL,
			longitude DOUBLE PRECISION NULL,
			source VARCHAR(20) NOT NULL DEFAULT 'live',
			restaurant_count INT NOT NULL DEFAULT 0,
			raw_response TEXT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, searchRecordsSQL); err != nil {
		return err
	}

	// -------------------------------
	// RESTAURANTS
	// -------------------------------
	restaurantsSQL := `
		CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			search_id VARCHAR(64) NOT NULL REFERENCES search_records(search_id),
			name VARCHAR(200) NOT NULL,
			address VARCHAR(500),
			rating DOUBLE PRECISION NULL,
			total_reviews INT NULL,
			price_level VARCHAR(10) NULL,
			phone VARCHAR(50) NULL,
			website VARCHAR(500) NULL,
			hours VARCHAR(200) NULL,
			cuisine_type VARCHAR(100),
			mealtime VARCHAR(50),
			source_url VARCHAR(1000) NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, restaurantsSQL); err != nil {
		return err
	}

	// -------------------------------
	// DISHES (ranked engine output)
	// -------------------------------
	dishesSQL := `
		CREATE TABLE IF NOT EXISTS dishes (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id),
			name VARCHAR(200) NOT NULL,
			mention_count INT NOT NULL DEFAULT 1,
			sentiment_score DOUBLE PRECISION NOT NULL DEFAULT 0.5,
			sample_review TEXT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, dishesSQL); err != nil {
		return err
	}

	// -------------------------------
	// SEARCH RESULT CACHE
	// -------------------------------
	cacheSQL := `
		CREATE TABLE IF NOT EXISTS cache_entries (
			id SERIAL PRIMARY KEY,
			cache_key VARCHAR(256) UNIQUE NOT NULL,
			search_id VARCHAR(64) NOT NULL REFERENCES search_records(search_id),
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, cacheSQL); err != nil {
		return err
	}

	indexSQL := `
		CREATE INDEX IF NOT EXISTS idx_restaurants_search_id ON restaurants (search_id);
		CREATE INDEX IF NOT EXISTS idx_dishes_restaurant_id ON dishes (restaurant_id);
		CREATE INDEX IF NOT EXISTS idx_cache_entries_expires_at ON cache_entries (expires_at);
	`
	if _, err := db.Exec(ctx, indexSQL); err != nil {
		log.Println("Note: indexes may already exist")
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
