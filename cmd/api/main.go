package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"sugartrack/db"
	"sugartrack/internal/handler"
	"sugartrack/internal/repository"
	"sugartrack/pkg/news"
	"sugartrack/pkg/price"
	"sugartrack/pkg/translate"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// The admin fetch route can serve a preview without a database, so a
	// failed ping is not fatal here.
	if err := db.Connect(); err != nil {
		slog.Warn("database unavailable, continuing", "error", err)
	}
	defer db.Close()

	var cache handler.Cache
	if os.Getenv("REDIS_URL") != "" {
		if err := db.ConnectRedis(); err != nil {
			slog.Warn("redis unavailable, price cache disabled", "error", err)
		} else {
			cache = db.NewPriceCache()
			defer db.CloseRedis()
		}
	}

	repo := repository.NewArticleRepository(db.DB)

	sources := news.DefaultSources()
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		sources = append(sources, news.NewFinnhubClient(key))
	}
	aggregator := news.NewAggregator(sources, news.DefaultItemLimit)

	priceHandler := handler.NewPriceHandler(price.NewClient(), cache)
	newsHandler := handler.NewNewsHandler(repo, translate.FromEnv())
	fetchHandler := handler.NewFetchHandler(aggregator, repo,
		os.Getenv("ADMIN_KEY"), os.Getenv("CRON_SECRET"))

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/prices/current", priceHandler.GetCurrentPrice)
	r.GET("/prices/history", priceHandler.GetPriceHistory)
	r.GET("/news", newsHandler.GetNews)
	r.GET("/news/:id", newsHandler.GetArticle)
	r.POST("/news/translate", newsHandler.TranslateArticle)
	r.GET("/admin/fetch-news", fetchHandler.AdminFetch)
	r.POST("/admin/init-db", fetchHandler.InitDB)
	r.GET("/cron/fetch-news", fetchHandler.CronFetch)
	r.POST("/cron/fetch-news", fetchHandler.CronFetch)
	r.GET("/health", newsHandler.GetHealth)

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
