package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jpatelved/tradeboard/internal/feed"
	"github.com/jpatelved/tradeboard/internal/logger"
	"github.com/jpatelved/tradeboard/internal/models"
)

// Terminal rendition of the insight feed: refreshes every minute and
// prints whatever the API returns, newest first.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	zlog, loggerSync, err := logger.NewZapLogger(logger.Info)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer loggerSync()

	baseURL := os.Getenv("API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	token := os.Getenv("API_TOKEN")
	if token == "" {
		zlog.Fatalf("API_TOKEN is required to read the insight feed")
	}

	client := feed.NewClient(baseURL, token)
	poller := feed.NewPoller(client, 10, time.Minute)
	poller.OnUpdate = func(insights []models.TradeInsight) {
		if len(insights) == 0 {
			zlog.Infof("No trade insights available yet")
			return
		}
		for _, in := range insights {
			if in.HTMLContent != "" {
				zlog.Infof("📰 [%s] rendered insight", in.CreatedAt.Format(time.RFC822))
				continue
			}
			zlog.Infof("📈 [%s] %s %s @ %.2f (%s): %s",
				in.CreatedAt.Format(time.RFC822), strings.ToUpper(in.Action),
				in.Symbol, in.Price, in.Confidence, in.Reasoning)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	zlog.Infof("📊 Watching insight feed at %s", baseURL)
	poller.Start(ctx)

	<-ctx.Done()
	poller.Stop()
}
