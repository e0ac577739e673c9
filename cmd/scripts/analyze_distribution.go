package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/contesthq/contest-backend/internal/config"
	"github.com/contesthq/contest-backend/internal/repositories/mongodb"
	"github.com/contesthq/contest-backend/internal/services"
	mongoclient "github.com/contesthq/contest-backend/pkg/mongodb"
	"github.com/joho/godotenv"
)

// analysisInstant picks the instant a -date argument is analyzed at: the
// end of that day, capped at now while the day is still in progress. The
// date is read in now's location so the day window lines up with the zone
// the server records win timestamps in.
func analysisInstant(dateStr string, now time.Time) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	at := date.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	if at.After(now) && date.Before(now) {
		at = now
	}
	return at, nil
}

// Prints per-prize distribution reports for a contest: today's hourly
// table against the slot plan, pacing status, and tomorrow's allocation.
func main() {
	contestCode := flag.String("contest", "", "Code of the contest to analyze")
	dateStr := flag.String("date", "", "Date to analyze (YYYY-MM-DD, default today)")
	format := flag.String("format", "text", "Output format (text or json)")
	flag.Parse()

	if *contestCode == "" {
		log.Fatal("-contest is required")
	}

	at := time.Now()
	if *dateStr != "" {
		var err error
		at, err = analysisInstant(*dateStr, time.Now())
		if err != nil {
			log.Fatalf("Invalid date %q, expected YYYY-MM-DD", *dateStr)
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	mongoURI := config.GetEnv("MONGODB_URI", "mongodb://localhost:27017")
	dbName := config.GetEnv("MONGODB_DATABASE", "contests")

	client, err := mongoclient.NewClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(dbName)
	statsService := services.NewStatsService(
		mongodb.NewContestRepository(db),
		mongodb.NewPrizeRepository(db),
		mongodb.NewWinRepository(db),
	)

	reports, err := statsService.ContestReport(context.Background(), *contestCode, at)
	if err != nil {
		log.Fatalf("Failed to build reports: %v", err)
	}
	if len(reports) == 0 {
		log.Printf("No prizes found for contest %s", *contestCode)
		return
	}

	if *format == "json" {
		out, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode reports: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Printf("Analyzing prize distribution for contest: %s\n\n", *contestCode)
	for _, report := range reports {
		fmt.Println(report.RenderText())
	}
}
