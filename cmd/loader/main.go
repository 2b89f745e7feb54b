// Command loader reads a videos.json fixture and inserts its videos and
// snapshots into Postgres, skipping rows that already exist.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/vidstats/vidstats/internal/adapter/store"
	"github.com/vidstats/vidstats/internal/domain"
	"github.com/vidstats/vidstats/pkg/config"

	_ "github.com/lib/pq"
)

type videoRecord struct {
	domain.Video
	Snapshots []domain.VideoSnapshot `json:"snapshots"`
}

func main() {
	path := flag.String("file", "data/videos.json", "path to the videos JSON fixture")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	slog.Info("loading fixture", "path", *path)

	raw, err := os.ReadFile(*path)
	if err != nil {
		slog.Error("failed to read fixture", "error", err)
		os.Exit(1)
	}

	records, err := parseFixture(raw)
	if err != nil {
		slog.Error("failed to parse fixture", "error", err)
		os.Exit(1)
	}

	videos := make([]domain.Video, 0, len(records))
	var snapshots []domain.VideoSnapshot
	for _, rec := range records {
		videos = append(videos, rec.Video)
		for _, snap := range rec.Snapshots {
			snap.VideoID = rec.Video.ID
			if snap.ID == "" {
				snap.ID = uuid.NewString()
			}
			snapshots = append(snapshots, snap)
		}
	}

	pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()

	if err := store.RunMigrations(pgStore.DB()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := pgStore.IngestVideos(context.Background(), videos, snapshots); err != nil {
		slog.Error("failed to ingest fixture", "error", err)
		os.Exit(1)
	}

	slog.Info("fixture loaded", "videos", len(videos), "snapshots", len(snapshots))
}

// parseFixture accepts either {"videos": [...]} or a bare top-level array.
func parseFixture(raw []byte) ([]videoRecord, error) {
	var wrapper struct {
		Videos []videoRecord `json:"videos"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && len(wrapper.Videos) > 0 {
		return wrapper.Videos, nil
	}

	var list []videoRecord
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}
