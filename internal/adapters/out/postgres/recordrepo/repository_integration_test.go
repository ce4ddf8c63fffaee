package recordrepo_test

import (
	"context"
	"testing"

	"logistics/internal/adapters/out/postgres/recordrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/record"
	"logistics/internal/pkg/errs"
	"logistics/internal/testutil/pgtest"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var company = kernel.MustNewAddress("0xc0ffee")

type DeliveryRecordsRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *recordrepo.GormDeliveryRecordsRepository
}

func (suite *DeliveryRecordsRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *DeliveryRecordsRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.repository = recordrepo.NewGormDeliveryRecordsRepository(suite.db)
}

func (suite *DeliveryRecordsRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRecordsRepositoryIntegrationTestSuite) TestAdd_StoresHeaderAndEntries() {
	ctx := context.Background()
	records := suite.newRecords()
	first := suite.newRecord("first")
	suite.Require().NoError(records.Record(first))

	suite.Require().NoError(suite.repository.Add(ctx, records))

	stored, err := suite.repository.GetByCompany(ctx, company)
	suite.Require().NoError(err)
	suite.Equal(records.ID(), stored.ID())
	suite.Equal(1, stored.Len())

	entry, ok := stored.Get(first.DeliveryID())
	suite.Require().True(ok)
	suite.Equal([]byte("first"), entry.Proof())
	suite.Empty(stored.Added(), "Restored collection has nothing pending")
}

func (suite *DeliveryRecordsRepositoryIntegrationTestSuite) TestUpdate_AppendsOnlyNewEntries() {
	ctx := context.Background()
	records := suite.newRecords()
	suite.Require().NoError(records.Record(suite.newRecord("first")))
	suite.Require().NoError(suite.repository.Add(ctx, records))

	loaded, err := suite.repository.GetByCompany(ctx, company)
	suite.Require().NoError(err)
	second := suite.newRecord("second")
	suite.Require().NoError(loaded.Record(second))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	stored, err := suite.repository.GetByCompany(ctx, company)
	suite.Require().NoError(err)
	suite.Equal(2, stored.Len())
	_, ok := stored.Get(second.DeliveryID())
	suite.True(ok)
}

func (suite *DeliveryRecordsRepositoryIntegrationTestSuite) TestUpdate_DuplicateDelivery_ReturnsDuplicateRecord() {
	ctx := context.Background()
	original := suite.newRecord("original")
	records := suite.newRecords()
	suite.Require().NoError(records.Record(original))
	suite.Require().NoError(suite.repository.Add(ctx, records))

	// A second loader that has not seen the stored entry tries to file it again.
	stale, err := record.NewDeliveryRecords(records.ID(), company)
	suite.Require().NoError(err)
	replay, err := record.NewDeliveryRecord(original.DeliveryID(), company, []byte("replay"))
	suite.Require().NoError(err)
	suite.Require().NoError(stale.Record(replay))

	err = suite.repository.Update(ctx, stale)
	suite.ErrorIs(err, errs.ErrDuplicateRecord)

	stored, err := suite.repository.GetByCompany(ctx, company)
	suite.Require().NoError(err)
	entry, ok := stored.Get(original.DeliveryID())
	suite.Require().True(ok)
	suite.Equal([]byte("original"), entry.Proof(), "First record must stay intact")
}

func (suite *DeliveryRecordsRepositoryIntegrationTestSuite) TestAdd_SecondCollectionForCompany_ReturnsDuplicateRecord() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newRecords()))

	err := suite.repository.Add(ctx, suite.newRecords())
	suite.ErrorIs(err, errs.ErrDuplicateRecord)
}

func (suite *DeliveryRecordsRepositoryIntegrationTestSuite) TestGetByCompany_Unknown_ReturnsNotFound() {
	_, err := suite.repository.GetByCompany(context.Background(), kernel.MustNewAddress("0xbeef"))
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRecordsRepositoryIntegrationTestSuite) newRecords() *record.DeliveryRecords {
	records, err := record.NewDeliveryRecords(kernel.NewUUID(), company)
	suite.Require().NoError(err)
	return records
}

func (suite *DeliveryRecordsRepositoryIntegrationTestSuite) newRecord(proof string) record.DeliveryRecord {
	r, err := record.NewDeliveryRecord(kernel.NewUUID(), company, []byte(proof))
	suite.Require().NoError(err)
	return r
}

func TestDeliveryRecordsRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRecordsRepositoryIntegrationTestSuite))
}
