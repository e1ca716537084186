package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	staticcatalog "lotusadvisor/internal/adapter/catalog/static"
	httpadapter "lotusadvisor/internal/adapter/http"
	metricsinmem "lotusadvisor/internal/adapter/metrics/inmemory"
	gormrepo "lotusadvisor/internal/adapter/repo/gorm"
	memrepo "lotusadvisor/internal/adapter/repo/memory"
	"lotusadvisor/internal/app/advise"
	"lotusadvisor/internal/app/catalog"
	"lotusadvisor/internal/app/history"
	"lotusadvisor/internal/app/nightmare"
	"lotusadvisor/internal/app/pick"
	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/app/status"
	"lotusadvisor/internal/app/weights"
	"lotusadvisor/internal/domain/garden"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	catalogProvider := &staticcatalog.Provider{
		Path: strEnv("LOTUS_CATALOG_PATH", "./catalog/lotuses.yaml"),
	}
	if _, err := catalogProvider.All(context.Background()); err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	visionRepo, weightsRepo, pickRepo, eventRepo, txManager := buildRepos(catalogProvider)
	kpiRecorder := metricsinmem.NewRecorder()
	engine := buildEngineFromEnv()

	h := httpadapter.Handler{
		AdviseUC: advise.UseCase{
			VisionRepo:  visionRepo,
			WeightsRepo: weightsRepo,
			Catalog:     catalogProvider,
			Metrics:     kpiRecorder,
			Engine:      engine,
		},
		PickUC: pick.UseCase{
			TxManager:  txManager,
			VisionRepo: visionRepo,
			PickRepo:   pickRepo,
			EventRepo:  eventRepo,
			Catalog:    catalogProvider,
			Metrics:    kpiRecorder,
			Engine:     engine,
		},
		NightmareUC: nightmare.UseCase{
			TxManager:  txManager,
			VisionRepo: visionRepo,
			EventRepo:  eventRepo,
			Engine:     engine,
		},
		StatusUC:  status.UseCase{VisionRepo: visionRepo, WeightsRepo: weightsRepo},
		WeightsUC: weights.UseCase{WeightsRepo: weightsRepo},
		CatalogUC: catalog.UseCase{Provider: catalogProvider},
		HistoryUC: history.UseCase{Events: eventRepo},
		KPI:       kpiRecorder,
	}

	addr := strEnv("LOTUS_HTTP_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("lotus advisor listening on %s", addr)
	s.Spin()
}

func buildRepos(catalogProvider ports.CatalogProvider) (ports.VisionRepository, ports.WeightsRepository, ports.PickExecutionRepository, ports.EventRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("LOTUS_DB_DSN"))
	if dsn == "" {
		log.Println("LOTUS_DB_DSN not set, using in-memory storage")
		store := memrepo.NewStore()
		return memrepo.NewVisionRepo(store),
			memrepo.NewWeightsRepo(store),
			memrepo.NewPickExecutionRepo(store),
			memrepo.NewEventRepo(store),
			memrepo.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	migrations := strEnv("LOTUS_MIGRATIONS_DIR", "./migrations")
	if err := gormrepo.ApplyMigrations(context.Background(), db, migrations); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	return gormrepo.NewVisionRepo(db, catalogProvider),
		gormrepo.NewWeightsRepo(db),
		gormrepo.NewPickExecutionRepo(db),
		gormrepo.NewEventRepo(db),
		gormrepo.NewTxManager(db)
}

func buildEngineFromEnv() garden.Engine {
	e := garden.Engine{NewID: garden.NewSequentialIDs("bubble")}
	if seed := intEnv("LOTUS_RNG_SEED", 0); seed > 0 {
		e.RNG = garden.NewSeededSource(uint64(seed))
	}
	return e
}

func strEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
