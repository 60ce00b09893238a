package workerrepo_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/adapters/out/postgres/workerrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type WorkerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *workerrepo.GormWorkerRepository
}

func (suite *WorkerRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background(), postgresadapter.Migrate)
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *WorkerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.repository = workerrepo.NewGormWorkerRepository(suite.db)
}

func (suite *WorkerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *WorkerRepositoryIntegrationTestSuite) TestSave_TracksEarningsAcrossJobs() {
	ctx := suite.T().Context()
	storeID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	courier, err := worker.NewCourier(kernel.NewUUID(), "bob")
	suite.Require().NoError(err)
	suite.Require().NoError(courier.GetShift(storeID, now, 8*time.Hour))
	suite.Require().NoError(suite.repository.Save(ctx, courier))

	taken, err := courier.TryTake(storeID, orderID, now, 90*time.Second)
	suite.Require().NoError(err)
	suite.Require().True(taken)
	suite.Require().NoError(suite.repository.Save(ctx, courier))

	held := suite.load(courier.ID())
	suite.Require().NotNil(held.HeldOrder)
	suite.Equal(orderID.Bytes(), *held.HeldOrder)

	_, err = courier.Release(orderID, now.Add(91*time.Second), decimal.NewFromInt(300))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, courier))

	released := suite.load(courier.ID())
	suite.Nil(released.HeldOrder)
	suite.Equal(int(worker.Courier), released.Role)
	suite.True(decimal.NewFromInt(27000).Equal(released.Earnings), "got %s", released.Earnings)

	var count int64
	suite.Require().NoError(suite.db.Model(&workerrepo.WorkerDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *WorkerRepositoryIntegrationTestSuite) TestSave_UnconstructedWorker_Rejected() {
	suite.Require().ErrorIs(
		suite.repository.Save(suite.T().Context(), &worker.Worker{}),
		worker.ErrWorkerIsNotConstructed,
	)
}

func (suite *WorkerRepositoryIntegrationTestSuite) load(id kernel.UUID) workerrepo.WorkerDTO {
	var dto workerrepo.WorkerDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", id.Bytes()).Error)
	return dto
}

func TestWorkerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(WorkerRepositoryIntegrationTestSuite))
}
