package savings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"saccoledger/internal/pkg/consts"
	"saccoledger/internal/pkg/models"
	storemodels "saccoledger/internal/pkg/store/models"
)

type MockSavingsStore struct {
	mock.Mock
}

func (m *MockSavingsStore) TotalByMember(ctx context.Context, memberID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockSavingsStore) ListByMonth(ctx context.Context, month string) ([]storemodels.Saving, error) {
	args := m.Called(ctx, month)
	if args.Get(0) != nil {
		return args.Get(0).([]storemodels.Saving), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockSavingsStore) Create(ctx context.Context, saving *storemodels.Saving) (primitive.ObjectID, error) {
	args := m.Called(ctx, saving)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

type MockMembersStore struct {
	mock.Mock
}

func (m *MockMembersStore) ListAll(ctx context.Context) ([]storemodels.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]storemodels.Member), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMembersStore) GetByID(ctx context.Context, memberID primitive.ObjectID) (*storemodels.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) != nil {
		return args.Get(0).(*storemodels.Member), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMembersStore) Create(ctx context.Context, member *storemodels.Member) (primitive.ObjectID, error) {
	args := m.Called(ctx, member)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockMembersStore) FindByAuthUserID(ctx context.Context, authUserID string) (*storemodels.Member, error) {
	args := m.Called(ctx, authUserID)
	if args.Get(0) != nil {
		return args.Get(0).(*storemodels.Member), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMembersStore) FindByEmail(ctx context.Context, email string) (*storemodels.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) != nil {
		return args.Get(0).(*storemodels.Member), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMembersStore) BackfillAuthUserID(ctx context.Context, memberID primitive.ObjectID, authUserID string) error {
	args := m.Called(ctx, memberID, authUserID)
	return args.Error(0)
}

type MockLedgerPoster struct {
	mock.Mock
}

func (m *MockLedgerPoster) Post(ctx context.Context, entry storemodels.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func newFixture() (*MockSavingsStore, *MockMembersStore, *MockLedgerPoster, *SavingsService) {
	savingsStore := &MockSavingsStore{}
	membersStore := &MockMembersStore{}
	poster := &MockLedgerPoster{}
	return savingsStore, membersStore, poster, NewSavingsService(savingsStore, membersStore, poster)
}

func TestRecordContributionPostsLedgerEntry(t *testing.T) {
	savingsStore, membersStore, poster, service := newFixture()
	memberID := primitive.NewObjectID()
	savingID := primitive.NewObjectID()

	membersStore.On("GetByID", mock.Anything, memberID).
		Return(&storemodels.Member{ID: memberID, Status: consts.MemberActive}, nil)
	savingsStore.On("Create", mock.Anything, mock.MatchedBy(func(s *storemodels.Saving) bool {
		return s.Amount == 50000 && s.Month == "2025-06"
	})).Return(savingID, nil)
	poster.On("Post", mock.Anything, mock.MatchedBy(func(entry storemodels.LedgerEntry) bool {
		return entry.Type == consts.LedgerSavings && entry.Amount == 50000 &&
			entry.Month == "2025-06" && entry.Year == 2025
	})).Return(nil)

	saving, err := service.RecordContribution(context.Background(), RecordContributionRequest{
		MemberID: memberID.Hex(),
		Amount:   50000,
		Month:    "2025-06",
	})

	assert.NoError(t, err)
	assert.Equal(t, savingID, saving.ID)
	poster.AssertExpectations(t)
}

func TestRecordContributionNegativeRequiresReversal(t *testing.T) {
	_, _, _, service := newFixture()
	memberID := primitive.NewObjectID()

	_, err := service.RecordContribution(context.Background(), RecordContributionRequest{
		MemberID: memberID.Hex(),
		Amount:   -20000,
		Month:    "2025-06",
	})

	assert.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
}

func TestRecordContributionReversal(t *testing.T) {
	savingsStore, membersStore, poster, service := newFixture()
	memberID := primitive.NewObjectID()
	savingID := primitive.NewObjectID()

	membersStore.On("GetByID", mock.Anything, memberID).
		Return(&storemodels.Member{ID: memberID, Status: consts.MemberActive}, nil)
	savingsStore.On("Create", mock.Anything, mock.Anything).Return(savingID, nil)
	poster.On("Post", mock.Anything, mock.MatchedBy(func(entry storemodels.LedgerEntry) bool {
		return entry.Amount == -20000
	})).Return(nil)

	saving, err := service.RecordContribution(context.Background(), RecordContributionRequest{
		MemberID: memberID.Hex(),
		Amount:   -20000,
		Month:    "2025-06",
		Reversal: true,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(-20000), saving.Amount)
	poster.AssertExpectations(t)
}

func TestRecordContributionInvalidMonth(t *testing.T) {
	_, _, _, service := newFixture()

	_, err := service.RecordContribution(context.Background(), RecordContributionRequest{
		MemberID: primitive.NewObjectID().Hex(),
		Amount:   50000,
		Month:    "June",
	})

	assert.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
}

func TestRecordContributionInactiveMember(t *testing.T) {
	_, membersStore, _, service := newFixture()
	memberID := primitive.NewObjectID()

	membersStore.On("GetByID", mock.Anything, memberID).
		Return(&storemodels.Member{ID: memberID, Status: "suspended"}, nil)

	_, err := service.RecordContribution(context.Background(), RecordContributionRequest{
		MemberID: memberID.Hex(),
		Amount:   50000,
		Month:    "2025-06",
	})

	assert.Error(t, err)
	assert.Equal(t, models.CodeInvalidState, models.ErrorCode(err))
}
