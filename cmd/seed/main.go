package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/soundem/soundem/config"
	"github.com/soundem/soundem/internal/application"
	pginfra "github.com/soundem/soundem/internal/infrastructure/postgres"
	"github.com/soundem/soundem/pkg/helpers"
)

// Seeds a demo user and a small catalog, then reindexes songs into
// Elasticsearch when it is configured.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	email := "demo@soundem.io"
	password := "password123"
	digest, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID int64
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, password_digest)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, digest).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s password=%s\n", userID, email, password)

	catalog := []struct {
		artist string
		bio    string
		album  string
		songs  []struct {
			name     string
			duration int
		}
	}{
		{
			artist: "The Midnight Sequence",
			bio:    "Synthwave trio from Leeds.",
			album:  "Neon Wires",
			songs: []struct {
				name     string
				duration int
			}{
				{"Afterglow", 241},
				{"Vapor Trails", 198},
				{"Terminal Drift", 305},
			},
		},
		{
			artist: "Ada Reyes",
			bio:    "Singer-songwriter, two-time Latin Grammy nominee.",
			album:  "Paper Lanterns",
			songs: []struct {
				name     string
				duration int
			}{
				{"Cartography", 224},
				{"Smoke and Salt", 187},
			},
		},
	}

	for _, entry := range catalog {
		var artistID int64
		err = pool.QueryRow(ctx, `
			INSERT INTO artists (name, bio) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET bio = EXCLUDED.bio
			RETURNING id
		`, entry.artist, entry.bio).Scan(&artistID)
		if err != nil {
			log.Fatalf("failed to seed artist %q: %v", entry.artist, err)
		}

		var albumID int64
		err = pool.QueryRow(ctx, `
			INSERT INTO albums (name, artist_id) VALUES ($1, $2)
			RETURNING id
		`, entry.album, artistID).Scan(&albumID)
		if err != nil {
			log.Fatalf("failed to seed album %q: %v", entry.album, err)
		}

		for _, song := range entry.songs {
			if _, err := pool.Exec(ctx, `
				INSERT INTO songs (name, duration, album_id) VALUES ($1, $2, $3)
			`, song.name, song.duration, albumID); err != nil {
				log.Fatalf("failed to seed song %q: %v", song.name, err)
			}
		}
		fmt.Printf("seeded %q by %q (%d songs)\n", entry.album, entry.artist, len(entry.songs))
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to init elasticsearch client: %v", err)
		}
		repo := pginfra.NewCatalogRepository(pool)
		svc := application.NewCatalogService(repo, nil, nil, es, cfg.ESSongsIndex, nil, "", 0)
		songs, err := repo.ListSongs(ctx)
		if err != nil {
			log.Fatalf("failed to list songs for indexing: %v", err)
		}
		for i := range songs {
			if err := svc.IndexSong(ctx, &songs[i]); err != nil {
				log.Printf("index song %d: %v", songs[i].ID, err)
			}
		}
		fmt.Printf("indexed %d songs into %s\n", len(songs), cfg.ESSongsIndex)
	}
}
