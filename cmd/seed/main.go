package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/semiekhin/rizalta-bot-dev/internal/config"
	"github.com/semiekhin/rizalta-bot-dev/internal/logging"
	"github.com/semiekhin/rizalta-bot-dev/internal/lots"
)

// seed загружает каталог лотов из JSON в базу (существующие коды обновляются)
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	logger := logging.Setup(cfg.LogLevel, "rizalta-seed")

	file := flag.String("file", "lots.json", "JSON-массив лотов")
	dsn := flag.String("dsn", cfg.DBDSN, "DSN базы каталога")
	flag.Parse()

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal().Err(err).Msg("open catalogue")
	}
	defer f.Close()

	catalogue, err := lots.ReadCatalogue(f)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *file).Msg("read catalogue")
	}

	db, err := lots.Open(*dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	if err := lots.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}

	repo := lots.NewRepository(db)
	if err := repo.Upsert(context.Background(), catalogue...); err != nil {
		logger.Fatal().Err(err).Msg("upsert")
	}

	stats, err := repo.Stats(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("stats")
	}
	logger.Info().
		Int("imported", len(catalogue)).
		Int64("total_lots", stats.TotalLots).
		Int64("unique_areas", stats.UniqueAreas).
		Msg("catalogue imported")
}
