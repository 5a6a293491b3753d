package financialconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"saccoledger/internal/pkg/store/models"
)

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
	args := m.Called(ctx, document)
	if args.Get(0) != nil {
		return args.Get(0).(*mongo.InsertOneResult), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockDocumentStore) FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.FinancialConfig, error) {
	args := m.Called(ctx, filter, opt)
	return args.Get(0).(models.FinancialConfig), args.Error(1)
}
func (m *MockDocumentStore) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FinancialConfig, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) != nil {
		return args.Get(0).([]models.FinancialConfig), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockDocumentStore) FindAllPaged(ctx context.Context, filter bson.M) ([]models.FinancialConfig, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) != nil {
		return args.Get(0).([]models.FinancialConfig), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockDocumentStore) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	args := m.Called(ctx, filter, update)
	return args.Error(0)
}
func (m *MockDocumentStore) Delete(ctx context.Context, filter interface{}) error {
	args := m.Called(ctx, filter)
	return args.Error(0)
}
func (m *MockDocumentStore) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockDocumentStore) AggregateAll(ctx context.Context, pipeline interface{}, results interface{}) error {
	args := m.Called(ctx, pipeline, results)
	return args.Error(0)
}

func TestGetOrCreateDefaultSeedsOnFirstRead(t *testing.T) {
	store := &MockDocumentStore{}
	repo := NewFinancialConfigRepositoryWithInterface(store)

	store.On("FindOne", mock.Anything, bson.M{}, mock.Anything).
		Return(models.FinancialConfig{}, mongo.ErrNoDocuments)
	store.On("Create", mock.Anything, mock.MatchedBy(func(doc interface{}) bool {
		cfg, ok := doc.(*models.FinancialConfig)
		return ok &&
			cfg.LoanInterestRate == 2 &&
			cfg.LoanEligibilityPercentage == 80 &&
			cfg.DefaultBankCharge == 5000 &&
			cfg.EarlyRepaymentPenalty == 1 &&
			cfg.MaxLoanDuration == 6 &&
			cfg.MinLoanAmount == 10000 &&
			cfg.MaxLoanAmount == 5000000
	})).Return(&mongo.InsertOneResult{}, nil)

	cfg, err := repo.GetOrCreateDefault(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, float64(2), cfg.LoanInterestRate)
	store.AssertExpectations(t)
}

func TestGetOrCreateDefaultReturnsExisting(t *testing.T) {
	store := &MockDocumentStore{}
	repo := NewFinancialConfigRepositoryWithInterface(store)

	store.On("FindOne", mock.Anything, bson.M{}, mock.Anything).
		Return(models.FinancialConfig{LoanInterestRate: 3, MaxLoanDuration: 12}, nil)

	cfg, err := repo.GetOrCreateDefault(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, float64(3), cfg.LoanInterestRate)
	assert.Equal(t, 12, cfg.MaxLoanDuration)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
