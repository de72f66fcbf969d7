package main

import (
	"context"
	"database/sql"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"pousada_manicaca/internal/adapters/bucket"
	"pousada_manicaca/internal/adapters/observability"
	"pousada_manicaca/internal/shared"
	mysqlrepo "pousada_manicaca/internal/storage/mysql"
)

// Seeds an empty database with the compiled-in default content and, when
// SEED_ASSETS_DIR is set, pushes the bundled site images to the bucket
// through a bounded worker pool.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().Int("workers", cfg.SeedWorkers).Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	rooms, err := repo.ListRooms(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listing rooms failed")
	}
	if len(rooms) > 0 {
		log.Info().Int("rooms", len(rooms)).Msg("database already has content; skipping seed")
	} else {
		for _, r := range shared.DefaultRooms() {
			id, err := repo.CreateRoom(ctx, r)
			if err != nil {
				log.Fatal().Err(err).Str("room", r.Name).Msg("seed room failed")
			}
			log.Info().Int64("id", id).Str("room", r.Name).Msg("room seeded")
		}
		for _, a := range shared.DefaultAmenities() {
			if _, err := repo.CreateAmenity(ctx, a); err != nil {
				log.Fatal().Err(err).Str("amenity", a.Name).Msg("seed amenity failed")
			}
		}
		for _, g := range shared.DefaultGallery() {
			if _, err := repo.CreateGalleryImage(ctx, g); err != nil {
				log.Fatal().Err(err).Str("image", g.ImagePath).Msg("seed gallery image failed")
			}
		}
		log.Info().Msg("default content seeded")
	}

	assetsDir := os.Getenv("SEED_ASSETS_DIR")
	if assetsDir == "" {
		log.Info().Msg("SEED_ASSETS_DIR not set; skipping asset upload")
		return
	}

	store, err := bucket.New(cfg.StorageBaseURL, cfg.StorageBucket, cfg.StorageKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("storage client init failed")
	}

	ents, err := os.ReadDir(assetsDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", assetsDir).Msg("reading assets dir failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, ent := range ents {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
			continue
		}

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(name, ext string) {
			defer wg.Done()
			defer sem.Release(1)

			f, err := os.Open(filepath.Join(assetsDir, name))
			if err != nil {
				log.Warn().Err(err).Str("asset", name).Msg("open failed")
				return
			}
			defer f.Close()

			ct := mime.TypeByExtension(ext)
			if ct == "" {
				ct = "application/octet-stream"
			}
			if err := store.Upload(ctx, "assets/"+name, ct, f); err != nil {
				log.Warn().Err(err).Str("asset", name).Msg("upload failed")
				return
			}
			log.Info().Str("asset", name).Msg("upload ok")
		}(name, ext)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
