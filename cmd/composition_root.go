package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/redis/stockledger"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns every long-lived dependency of the process.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	gormDB      *gorm.DB
	redisClient redis.UniversalClient
	uowFactory  *postgres.GormUnitOfWorkFactory
	publisher   ports.EventPublisher

	clock   kernel.Clock
	stores  *memory.StoreRepository
	workers *memory.WorkerRegistry
	journal *commands.Journal
}

// NewCompositionRoot wires the application. redisClient may be nil, in which
// case stock is kept in process memory.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient redis.UniversalClient,
	publisher ports.EventPublisher,
	clock kernel.Clock,
	logger *slog.Logger,
) *CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	return &CompositionRoot{
		config:      config,
		logger:      logger,
		gormDB:      gormDB,
		redisClient: redisClient,
		uowFactory:  uowFactory,
		publisher:   publisher,
		clock:       clock,
		stores:      memory.NewStoreRepository(),
		workers:     memory.NewWorkerRegistry(),
		journal:     commands.NewJournal(uowFactory, publisher, logger),
	}
}

func (c *CompositionRoot) Timings() services.Timings {
	return c.config.Timings
}

func (c *CompositionRoot) Stores() ports.StoreRepository {
	return c.stores
}

// NewLedger returns a stock ledger isolated under namespace.
func (c *CompositionRoot) NewLedger(namespace string) inventory.Ledger {
	if c.redisClient == nil {
		return inventory.NewInMemoryLedger()
	}
	return stockledger.NewRedisLedger(c.redisClient, namespace)
}

// NewStore builds a store on its own ledger with the configured timings.
func (c *CompositionRoot) NewStore(id kernel.UUID, name string, location kernel.Location) (*store.Store, error) {
	return store.NewStore(id, name, location, c.NewLedger("store:"+id.String()), c.clock, c.config.Timings)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.stores, c.journal, c.logger)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.stores, c.journal, c.logger)
}

func (c *CompositionRoot) CreateAdvancePendingOrdersCommandHandler() commands.AdvancePendingOrdersCommandHandler {
	return commands.NewAdvancePendingOrdersCommandHandler(c.stores, c.journal, c.logger)
}

func (c *CompositionRoot) CreateCreateWorkerCommandHandler() commands.CreateWorkerCommandHandler {
	return commands.NewCreateWorkerCommandHandler(c.workers, c.uowFactory)
}

func (c *CompositionRoot) CreateStartShiftCommandHandler() commands.StartShiftCommandHandler {
	return commands.NewStartShiftCommandHandler(c.stores, c.workers)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.stores)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllWorkersQueryHandler() queries.GetAllWorkersQueryHandler {
	return queries.NewGetAllWorkersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		SubmitOrder:          c.CreateSubmitOrderCommandHandler(),
		AdvanceOrder:         c.CreateAdvanceOrderCommandHandler(),
		CreateWorker:         c.CreateCreateWorkerCommandHandler(),
		StartShift:           c.CreateStartShiftCommandHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		GetOrderHistory:      c.CreateGetOrderHistoryQueryHandler(),
		GetUncompletedOrders: c.CreateGetUncompletedOrdersQueryHandler(),
		GetAllWorkers:        c.CreateGetAllWorkersQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAdvancePendingOrdersCommandHandler(), c.config.OrderAdvanceSchedule, c.logger)
}
