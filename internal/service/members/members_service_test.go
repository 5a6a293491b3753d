package members

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"saccoledger/internal/pkg/consts"
	"saccoledger/internal/pkg/models"
	storemodels "saccoledger/internal/pkg/store/models"
)

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

type MockAuthAccounts struct {
	mock.Mock
}

func (m *MockAuthAccounts) CreateAccount(ctx context.Context, email, name, phone string) (string, error) {
	args := m.Called(ctx, email, name, phone)
	return args.String(0), args.Error(1)
}
func (m *MockAuthAccounts) DeleteAccount(ctx context.Context, authUserID string) error {
	args := m.Called(ctx, authUserID)
	return args.Error(0)
}

func TestCreateMemberSuccess(t *testing.T) {
	store := &MockMembersStore{}
	authMock := &MockAuthAccounts{}
	service := NewMembersService(store, authMock)
	memberID := primitive.NewObjectID()

	store.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, mongo.ErrNoDocuments)
	authMock.On("CreateAccount", mock.Anything, "jane@example.com", "Jane", "0700000000").Return("auth-123", nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(m *storemodels.Member) bool {
		return m.Email == "jane@example.com" && m.AuthUserID == "auth-123" && m.Status == consts.MemberActive
	})).Return(memberID, nil)

	member, err := service.CreateMember(context.Background(), CreateMemberRequest{
		Name:  "Jane",
		Email: "Jane@Example.com",
		Phone: "0700000000",
	})

	assert.NoError(t, err)
	assert.Equal(t, memberID, member.ID)
	assert.Equal(t, "auth-123", member.AuthUserID)
	authMock.AssertNotCalled(t, "DeleteAccount", mock.Anything, mock.Anything)
}

func TestCreateMemberCompensatesOrphanedAccount(t *testing.T) {
	store := &MockMembersStore{}
	authMock := &MockAuthAccounts{}
	service := NewMembersService(store, authMock)

	store.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, mongo.ErrNoDocuments)
	authMock.On("CreateAccount", mock.Anything, "jane@example.com", "Jane", "").Return("auth-123", nil)
	store.On("Create", mock.Anything, mock.Anything).Return(primitive.NilObjectID, errors.New("write failed"))
	authMock.On("DeleteAccount", mock.Anything, "auth-123").Return(nil)

	_, err := service.CreateMember(context.Background(), CreateMemberRequest{
		Name:  "Jane",
		Email: "jane@example.com",
	})

	assert.Error(t, err)
	authMock.AssertCalled(t, "DeleteAccount", mock.Anything, "auth-123")
}

func TestCreateMemberDuplicateEmail(t *testing.T) {
	store := &MockMembersStore{}
	authMock := &MockAuthAccounts{}
	service := NewMembersService(store, authMock)

	store.On("FindByEmail", mock.Anything, "jane@example.com").
		Return(&storemodels.Member{Email: "jane@example.com"}, nil)

	_, err := service.CreateMember(context.Background(), CreateMemberRequest{
		Name:  "Jane",
		Email: "jane@example.com",
	})

	assert.Error(t, err)
	assert.Equal(t, models.CodeConflict, models.ErrorCode(err))
	authMock.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFindMemberForAuthUserDirectMatch(t *testing.T) {
	store := &MockMembersStore{}
	service := NewMembersService(store, &MockAuthAccounts{})
	member := &storemodels.Member{ID: primitive.NewObjectID(), AuthUserID: "auth-123"}

	store.On("FindByAuthUserID", mock.Anything, "auth-123").Return(member, nil)

	found, err := service.FindMemberForAuthUser(context.Background(), "auth-123", "jane@example.com")

	assert.NoError(t, err)
	assert.Equal(t, member.ID, found.ID)
	store.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestFindMemberForAuthUserEmailFallbackBackfills(t *testing.T) {
	store := &MockMembersStore{}
	service := NewMembersService(store, &MockAuthAccounts{})
	member := &storemodels.Member{ID: primitive.NewObjectID(), Email: "jane@example.com"}

	store.On("FindByAuthUserID", mock.Anything, "auth-123").Return(nil, mongo.ErrNoDocuments)
	store.On("FindByEmail", mock.Anything, "jane@example.com").Return(member, nil)
	store.On("BackfillAuthUserID", mock.Anything, member.ID, "auth-123").Return(nil)

	found, err := service.FindMemberForAuthUser(context.Background(), "auth-123", "Jane@Example.com")

	assert.NoError(t, err)
	assert.Equal(t, "auth-123", found.AuthUserID)
	store.AssertExpectations(t)
}

func TestFindMemberForAuthUserNotFound(t *testing.T) {
	store := &MockMembersStore{}
	service := NewMembersService(store, &MockAuthAccounts{})

	store.On("FindByAuthUserID", mock.Anything, "auth-123").Return(nil, mongo.ErrNoDocuments)
	store.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, mongo.ErrNoDocuments)

	_, err := service.FindMemberForAuthUser(context.Background(), "auth-123", "jane@example.com")

	assert.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}
