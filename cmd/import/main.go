package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/Vovarama1992/ambiance/internal/infra"
	"github.com/Vovarama1992/ambiance/internal/ingest"
	"github.com/Vovarama1992/go-utils/logger"
	"go.uber.org/zap"
)

func main() {
	dir := flag.String("dir", "data", "directory holding <year>-data.json files")
	baseURL := flag.String("base-url", ingest.DefaultBaseURL, "prefix for photo paths")
	flag.Parse()

	zcore, _ := zap.NewProduction()
	zl := logger.NewZapLogger(zcore.Sugar())

	dsn := os.Getenv("AMBIANCE_DATABASE_URL")
	if dsn == "" {
		panic("AMBIANCE_DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := infra.NewPgxPool(ctx, dsn)
	if err != nil {
		panic(err.Error())
	}
	defer pool.Close()

	if err := infra.EnsureSchema(ctx, pool); err != nil {
		panic(err.Error())
	}
	repo := infra.NewPostgresMediaRepo(pool)

	dirEntries, err := os.ReadDir(*dir)
	if err != nil {
		panic("read dir: " + err.Error())
	}
	names := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		names = append(names, de.Name())
	}

	for _, name := range ingest.SortedDataFiles(names) {
		year, err := ingest.YearFromFilename(name)
		if err != nil {
			zl.Log(logger.LogEntry{Level: "warn", Message: "skip file", Error: err})
			continue
		}

		f, err := os.Open(filepath.Join(*dir, name))
		if err != nil {
			panic("open " + name + ": " + err.Error())
		}
		items, err := ingest.Parse(f, year, *baseURL)
		f.Close()
		if err != nil {
			panic(err.Error())
		}

		for i := range items {
			if _, err := repo.InsertMedia(ctx, &items[i]); err != nil {
				panic(err.Error())
			}
		}

		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "file imported",
			Fields:  map[string]any{"file": name, "year": year, "items": len(items)},
		})
	}
}
