package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/yash-kalathiya/food-spotz/internal/auth"
	"github.com/yash-kalathiya/food-spotz/internal/db"
	"github.com/yash-kalathiya/food-spotz/internal/dishes"
	"github.com/yash-kalathiya/food-spotz/internal/geocode"
	"github.com/yash-kalathiya/food-spotz/internal/middleware"
	"github.com/yash-kalathiya/food-spotz/internal/places"
	"github.com/yash-kalathiya/food-spotz/internal/search"
	"github.com/yash-kalathiya/food-spotz/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"PLACES_API_KEY",
		"PLACES_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}
	if r2Client == nil {
		log.Println("R2 archive disabled (R2_ENDPOINT not set)")
	}

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── DISH ENGINE ─────────────────────────
	vocab, err := dishes.DefaultVocabulary()
	if err != nil {
		log.Fatal("❌ Vocabulary load failed:", err)
	}
	engine, err := dishes.NewEngine(vocab)
	if err != nil {
		log.Fatal("❌ Engine init failed:", err)
	}

	// ───────────────────────── SEARCH ─────────────────────────
	searchRepo := search.NewPostgresRepository(pgDB)
	provider := places.NewClient()
	geocoder := geocode.NewClient()

	searchService := search.NewService(
		searchRepo,
		provider,
		geocoder,
		engine,
		r2Client,
	)
	searchHandler := search.NewHandler(searchService)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/search", searchHandler.Search)
		v1.POST("/search/stream", searchHandler.SearchStream)
		v1.GET("/search/:id", searchHandler.GetSearch)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/history", searchHandler.History)
		}
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		admin.POST("/cache/purge", searchHandler.PurgeCache)
	}

	// ───────────────────────── CACHE SWEEPER ─────────────────────────
	sweepCtx, cancelSweeper := context.WithCancel(context.Background())
	defer cancelSweeper()
	search.StartSweeper(sweepCtx, searchRepo, 10*time.Minute)

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	r.Run(":8000")
}
