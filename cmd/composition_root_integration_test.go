package cmd_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/cmd"
	postgresadapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type CompositionRootTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *CompositionRootTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background(), postgresadapter.Migrate)
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *CompositionRootTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *CompositionRootTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CompositionRootTestSuite) newRoot(clock kernel.Clock) *cmd.CompositionRoot {
	config := cmd.Config{
		Timings:              services.DefaultTimings(),
		OrderAdvanceSchedule: jobs.EverySecond,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return cmd.NewCompositionRoot(config, suite.db, nil, rabbitmq.NopPublisher{}, clock, logger)
}

func (suite *CompositionRootTestSuite) findStore(root *cmd.CompositionRoot, name string) *store.Store {
	all, err := root.Stores().GetAll(suite.T().Context())
	suite.Require().NoError(err)
	for _, s := range all {
		if s.Name() == name {
			return s
		}
	}
	suite.FailNow("store not seeded", name)
	return nil
}

func (suite *CompositionRootTestSuite) TestSeedDemo_RegistersNetwork() {
	ctx := suite.T().Context()
	root := suite.newRoot(kernel.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))

	suite.Require().NoError(root.SeedDemo(ctx))

	all, err := root.Stores().GetAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)

	stock, err := suite.findStore(root, "store2").Stock(ctx)
	suite.Require().NoError(err)
	suite.Equal(map[string]int{"pen": 0, "pencil": 0}, stock)

	workers, err := root.CreateGetAllWorkersQueryHandler().Handle(ctx, queries.NewGetAllWorkersQuery())
	suite.Require().NoError(err)
	suite.Len(workers, 3)
}

func (suite *CompositionRootTestSuite) TestOrderIsDrivenToCompletionAndJournaled() {
	ctx := suite.T().Context()
	clock := kernel.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	root := suite.newRoot(clock)
	suite.Require().NoError(root.SeedDemo(ctx))
	store1 := suite.findStore(root, "store1")

	submit, err := commands.NewSubmitOrderCommand(store1.ID(), kernel.NewUUID(), 0, 0, map[string]int{"pen": 2})
	suite.Require().NoError(err)
	orderID, outcome, err := root.CreateSubmitOrderCommandHandler().Handle(ctx, submit)
	suite.Require().NoError(err)
	suite.Equal(order.Assembling, outcome.Status)

	sweep := root.CreateAdvancePendingOrdersCommandHandler()
	for range 10 {
		clock.Advance(30 * time.Minute)
		_, err := sweep.Handle(ctx, commands.NewAdvancePendingOrdersCommand())
		suite.Require().NoError(err)
	}

	view, err := store1.GetOrder(orderID)
	suite.Require().NoError(err)
	suite.Equal(order.Complete, view.Status)

	historyQuery, err := queries.NewGetOrderHistoryQuery(orderID)
	suite.Require().NoError(err)
	history, err := root.CreateGetOrderHistoryQueryHandler().Handle(ctx, historyQuery)
	suite.Require().NoError(err)
	suite.Require().Len(history, 5)
	suite.Equal(order.Complete, history[4].To)

	uncompleted, err := root.CreateGetUncompletedOrdersQueryHandler().Handle(ctx, queries.NewGetUncompletedOrdersQuery())
	suite.Require().NoError(err)
	suite.Empty(uncompleted)

	workers, err := root.CreateGetAllWorkersQueryHandler().Handle(ctx, queries.NewGetAllWorkersQuery())
	suite.Require().NoError(err)
	for _, w := range workers {
		suite.False(w.Busy, w.Name)
		if w.Name == "assembler" {
			// 2 units × 45s × 300
			suite.True(decimal.NewFromInt(27000).Equal(w.Earnings), w.Earnings.String())
		}
	}
}

func TestCompositionRootTestSuite(t *testing.T) {
	suite.Run(t, new(CompositionRootTestSuite))
}
