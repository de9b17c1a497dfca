package sync

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Conciliador-api/internal/application/ports"
	"github.com/jhoicas/Conciliador-api/internal/domain"
	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
	"github.com/jhoicas/Conciliador-api/internal/domain/repository"
	"github.com/jhoicas/Conciliador-api/internal/domain/warehouse"
	"github.com/jhoicas/Conciliador-api/pkg/logger"
)

// Projector puerto hacia el motor de proyección tabular (lado consumidor).
type Projector interface {
	Project(ctx context.Context, inventories []entity.ProductInventory) error
}

// UseCase orquesta una corrida de sincronización: feeds → normalización →
// agregación → conciliación → proyección. Pipeline secuencial por lotes; solo
// la descarga de los feeds independientes (stock de plataforma y pedidos) es
// concurrente, y la proyección arranca únicamente con el conjunto completo de
// productos conciliado, porque el layout de columnas depende de haber visto
// todas las bodegas.
type UseCase struct {
	platformFeed ports.PlatformStockFeed
	sellerFeed   ports.SellerStockFeed
	ordersFeed   ports.OrdersFeed
	catalogRepo  repository.WarehouseCatalogRepository
	runRepo      repository.SyncRunRepository
	projector    Projector
	lookbackDays int
	log          *logger.Logger

	mu      sync.Mutex
	running bool
}

// NewUseCase construye el caso de uso de sincronización.
func NewUseCase(
	platformFeed ports.PlatformStockFeed,
	sellerFeed ports.SellerStockFeed,
	ordersFeed ports.OrdersFeed,
	catalogRepo repository.WarehouseCatalogRepository,
	runRepo repository.SyncRunRepository,
	projector Projector,
	lookbackDays int,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		platformFeed: platformFeed,
		sellerFeed:   sellerFeed,
		ordersFeed:   ordersFeed,
		catalogRepo:  catalogRepo,
		runRepo:      runRepo,
		projector:    projector,
		lookbackDays: lookbackDays,
		log:          log.Component("sync"),
	}
}

// Run ejecuta una corrida completa y devuelve su resultado.
// La serialización entre corridas concurrentes del mismo destino es responsabilidad
// del orquestador; el mutex local es solo la red de seguridad dentro del proceso.
func (uc *UseCase) Run(ctx context.Context) (*entity.SyncRun, error) {
	if !uc.tryAcquire() {
		return nil, domain.ErrSyncInProgress
	}
	defer uc.release()

	run := uc.newRun()
	err := uc.perform(ctx, run)
	return run, err
}

// Start dispara una corrida en segundo plano y devuelve su estado inicial.
// El resultado se consulta después por ID; la corrida sigue viva aunque la
// petición HTTP que la disparó termine.
func (uc *UseCase) Start() (*entity.SyncRun, error) {
	if !uc.tryAcquire() {
		return nil, domain.ErrSyncInProgress
	}
	run := uc.newRun()
	snapshot := *run
	go func() {
		defer uc.release()
		_ = uc.perform(context.Background(), run)
	}()
	return &snapshot, nil
}

func (uc *UseCase) tryAcquire() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.running {
		return false
	}
	uc.running = true
	return true
}

func (uc *UseCase) release() {
	uc.mu.Lock()
	uc.running = false
	uc.mu.Unlock()
}

func (uc *UseCase) newRun() *entity.SyncRun {
	return &entity.SyncRun{
		ID:        uuid.NewString(),
		Status:    entity.SyncRunning,
		Stage:     entity.StageFetch,
		StartedAt: time.Now(),
	}
}

// perform corre el pipeline y cierra el registro histórico de la corrida.
func (uc *UseCase) perform(ctx context.Context, run *entity.SyncRun) error {
	if err := uc.runRepo.Create(ctx, run); err != nil {
		// El historial no debe impedir la corrida
		uc.log.Error().Err(err).Msg("crear registro de corrida")
	}

	err := uc.execute(ctx, run)

	now := time.Now()
	run.FinishedAt = &now
	if err != nil {
		run.Status = entity.SyncFailed
		run.Error = err.Error()
		uc.log.Error().Err(err).Str("stage", string(run.Stage)).Str("run_id", run.ID).Msg("sincronización fallida")
	} else {
		run.Status = entity.SyncSuccess
		uc.log.Info().
			Str("run_id", run.ID).
			Int("products", run.Products).
			Int("warnings", run.Warnings).
			Msg("sincronización completada")
	}
	if ferr := uc.runRepo.Finish(ctx, run); ferr != nil {
		uc.log.Error().Err(ferr).Msg("cerrar registro de corrida")
	}
	return err
}

// execute corre el pipeline y deja en run la etapa alcanzada y los conteos.
func (uc *UseCase) execute(ctx context.Context, run *entity.SyncRun) error {
	normalizer, err := uc.loadNormalizer(ctx)
	if err != nil {
		return err
	}

	// Etapa fetch: los dos feeds independientes en paralelo. La conciliación no
	// puede avanzar con una sola fuente, así que cualquier fallo aborta aquí.
	run.Stage = entity.StageFetch
	var (
		wg            sync.WaitGroup
		platformStock []entity.RawStockRecord
		rawOrders     []entity.RawOrderRecord
		stockErr      error
		ordersErr     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		platformStock, stockErr = uc.platformFeed.FetchStocks(ctx)
	}()
	go func() {
		defer wg.Done()
		rawOrders, ordersErr = uc.ordersFeed.FetchOrders(ctx, uc.lookbackDays)
	}()
	wg.Wait()
	if stockErr != nil {
		return fmt.Errorf("feed de stock de plataforma: %w", stockErr)
	}
	if ordersErr != nil {
		return fmt.Errorf("feed de pedidos: %w", ordersErr)
	}

	// El feed del vendedor se consulta dentro del agregador: necesita el conjunto
	// de códigos de barras que sale del feed de plataforma.
	aggregator := NewStockAggregator(uc.sellerFeed, normalizer, uc.log)
	aggregated, err := aggregator.Aggregate(ctx, platformStock, "")
	if err != nil {
		return err
	}

	run.Stage = entity.StageReconcile
	ledger := NewOrderLedger(rawOrders, normalizer, uc.log)
	reconciler := NewReconciler(normalizer, uc.lookbackDays, uc.log)

	keys := make([]string, 0, len(aggregated))
	for k := range aggregated {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	inventories := make([]entity.ProductInventory, 0, len(keys))
	for _, key := range keys {
		agg := aggregated[key]
		orders := ledger.Attribute(key, agg.StockByWarehouse)
		inventories = append(inventories, reconciler.Reconcile(agg, orders))
	}

	run.Products = len(inventories)
	run.Warnings = aggregator.Warnings() + ledger.Warnings() + reconciler.Warnings()

	run.Stage = entity.StageProject
	if err := uc.projector.Project(ctx, inventories); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProjectionFailed, err)
	}
	return nil
}

// loadNormalizer arma la tabla inmutable del normalizador desde el catálogo en BD;
// con catálogo vacío (primer arranque, tests) usa la tabla embebida por defecto.
func (uc *UseCase) loadNormalizer(ctx context.Context) (*warehouse.Normalizer, error) {
	warehouses, err := uc.catalogRepo.ListWarehouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar catálogo de bodegas: %w", err)
	}
	if len(warehouses) == 0 {
		uc.log.Info().Msg("catálogo de bodegas vacío; usando tabla por defecto")
		return warehouse.NewNormalizer(warehouse.DefaultTable(), uc.log), nil
	}
	aliases, err := uc.catalogRepo.ListAliases(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar alias de bodegas: %w", err)
	}
	return warehouse.NewNormalizer(warehouse.NewTable(warehouses, aliases), uc.log), nil
}
