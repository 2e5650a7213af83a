package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/jhoicas/retail-inventario/internal/application/inventory"
	"github.com/jhoicas/retail-inventario/internal/application/sku"
	"github.com/jhoicas/retail-inventario/internal/application/usecase"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
	"github.com/jhoicas/retail-inventario/internal/infrastructure/audit"
	"github.com/jhoicas/retail-inventario/internal/infrastructure/memory"
	"github.com/jhoicas/retail-inventario/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/retail-inventario/internal/interfaces/http"
	"github.com/jhoicas/retail-inventario/pkg/config"
	"github.com/jhoicas/retail-inventario/pkg/logger"
)

// backend agrupa los repositorios del driver elegido (postgres o memory).
type backend struct {
	txRunner      inventory.TxRunner
	articles      repository.ArticleRepository
	stores        repository.StoreRepository
	stocks        repository.StoreStockRepository
	movements     repository.StockMovementRepository
	catalog       repository.CatalogRepository
	replenishment repository.ReplenishmentRepository
	close         func()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store_driver", cfg.Ledger.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store_driver", cfg.Ledger.StoreDriver).Msg("abrir almacenamiento")
	}
	defer be.close()

	sink, closers := buildSinks(ctx, cfg.Audit, log)
	dispatcher := audit.NewAsyncDispatcher(sink, cfg.Audit.Buffer, log)

	ledgerUC := inventory.NewLedgerUseCase(be.txRunner, be.articles, be.stores, be.stocks, be.movements, dispatcher, log)
	priceUC := inventory.NewPriceUseCase(be.txRunner, dispatcher, log)
	replenishmentUC := inventory.NewReplenishmentUseCase(be.replenishment, be.stores)
	generator := sku.NewGenerator(be.articles, be.catalog)
	articleUC := usecase.NewArticleUseCase(be.articles, generator, dispatcher, log, cfg.Ledger.MaxClaimAttempts)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Retail Inventario API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:        ledgerUC,
		PriceUC:         priceUC,
		ReplenishmentUC: replenishmentUC,
		ArticleUC:       articleUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Int64("descartados", dispatcher.Dropped()).Msg("cola de eventos sin vaciar")
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar sink de eventos")
		}
	}

	log.Info().Msg("aplicación detenida")
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.Ledger.StoreDriver == "memory" {
		st := memory.New()
		for _, id := range cfg.Ledger.MemoryStores {
			st.AddStore(entity.Store{ID: id, Name: id, Code: id, Active: true, CreatedAt: time.Now()})
		}
		log.Warn().Strs("tiendas", cfg.Ledger.MemoryStores).Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &backend{
			txRunner:      st.TxRunner(),
			articles:      st.Articles(),
			stores:        st.Stores(),
			stocks:        st.Stocks(),
			movements:     st.Movements(),
			catalog:       st.Catalog(),
			replenishment: st.Replenishment(),
			close:         func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &backend{
		txRunner:      postgres.NewTxRunner(pool),
		articles:      postgres.NewArticleRepository(pool),
		stores:        postgres.NewStoreRepository(pool),
		stocks:        postgres.NewStoreStockRepository(pool),
		movements:     postgres.NewStockMovementRepository(pool),
		catalog:       postgres.NewCatalogRepository(pool),
		replenishment: postgres.NewReplenishmentRepository(pool),
		close:         pool.Close,
	}, nil
}

// buildSinks arma los destinos de eventos habilitados en AUDIT_SINKS.
// Un broker inalcanzable al arrancar solo se registra; el motor no depende de él.
func buildSinks(ctx context.Context, cfg config.AuditConfig, log *logger.Logger) (inventory.EventSink, []io.Closer) {
	var sinks audit.MultiSink
	var closers []io.Closer
	if cfg.Has("log") {
		sinks = append(sinks, audit.NewLogSink(log))
	}
	if cfg.Has("redis") {
		rs := audit.NewRedisSink(cfg.RedisAddr, cfg.RedisChannel)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rs.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis no disponible al arrancar")
		}
		cancel()
		sinks = append(sinks, rs)
		closers = append(closers, rs)
	}
	if cfg.Has("kafka") {
		ks := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		sinks = append(sinks, ks)
		closers = append(closers, ks)
	}
	log.Info().Strs("sinks", cfg.Sinks).Msg("destinos de eventos configurados")
	return sinks, closers
}
