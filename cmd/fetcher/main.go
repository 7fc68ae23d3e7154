package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"sugartrack/db"
	"sugartrack/internal/repository"
	"sugartrack/pkg/news"
)

const fetchDeadline = 2 * time.Minute

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := db.Connect(); err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	sources := news.DefaultSources()
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		sources = append(sources, news.NewFinnhubClient(key))
	}

	aggregator := news.NewAggregator(sources, news.DefaultItemLimit)
	repo := repository.NewArticleRepository(db.DB)

	ctx, cancel := context.WithTimeout(context.Background(), fetchDeadline)
	defer cancel()

	articles := aggregator.FetchAll(ctx)

	var saved, skipped, errors int

	for _, fetched := range articles {
		exists, err := repo.ExistsByTitle(fetched.Title)
		if err != nil {
			slog.Error("error checking article", "title", fetched.Title, "error", err)
			errors++
			continue
		}
		if exists {
			skipped++
			continue
		}

		article := news.ToNewsArticle(fetched)
		inserted, err := repo.Save(&article)
		if err != nil {
			slog.Error("error saving article", "title", fetched.Title, "error", err)
			errors++
			continue
		}
		if !inserted {
			slog.Info("duplicate article skipped", "title", fetched.Title)
			skipped++
			continue
		}

		saved++
	}

	slog.Info("fetch complete", "processed", len(articles), "saved", saved, "skipped", skipped, "errors", errors)
}
