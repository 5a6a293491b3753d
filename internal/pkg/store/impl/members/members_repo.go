package members

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongodb "saccoledger/internal/pkg/db/mongo"
	"saccoledger/internal/pkg/logger"
	"saccoledger/internal/pkg/store/models"
	"saccoledger/internal/pkg/store/repository"
	"saccoledger/internal/service/interfaces"
)

type MembersRepository struct {
	repo interfaces.DocumentStore[models.Member]
}

func NewMembersRepository(client *mongodb.MongoClient, collection string) *MembersRepository {
	repo := repository.NewMongoRepository[models.Member](client.Database.Collection(collection))
	return &MembersRepository{repo: repo}
}

func NewMembersRepositoryWithInterface(repo interfaces.DocumentStore[models.Member]) *MembersRepository {
	return &MembersRepository{repo: repo}
}

// ListAll enumerates every member in creation order. The accrual batch
// depends on this order being stable for remainder distribution.
func (mr *MembersRepository) ListAll(ctx context.Context) ([]models.Member, error) {
	members, err := mr.repo.FindAllPaged(ctx, bson.M{})
	if err != nil {
		logger.CtxError(ctx, "Error listing members", err)
		return nil, err
	}
	return members, nil
}

func (mr *MembersRepository) GetByID(ctx context.Context, memberID primitive.ObjectID) (*models.Member, error) {
	member, err := mr.repo.FindOne(ctx, bson.M{"_id": memberID}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "Member not found", slog.String("member_id", memberID.Hex()))
			return nil, err
		}
		logger.CtxError(ctx, "Error fetching member", err, slog.String("member_id", memberID.Hex()))
		return nil, err
	}
	return &member, nil
}

func (mr *MembersRepository) Create(ctx context.Context, member *models.Member) (primitive.ObjectID, error) {
	result, err := mr.repo.Create(ctx, member)
	if err != nil {
		logger.CtxError(ctx, "Error creating member document", err, slog.String("email", member.Email))
		return primitive.NilObjectID, err
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	logger.CtxInfo(ctx, "Member document created", slog.String("member_id", id.Hex()))
	return id, nil
}

func (mr *MembersRepository) FindByAuthUserID(ctx context.Context, authUserID string) (*models.Member, error) {
	member, err := mr.repo.FindOne(ctx, bson.M{"authUserId": authUserID}, options.FindOne())
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (mr *MembersRepository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	member, err := mr.repo.FindOne(ctx, bson.M{"email": email}, options.FindOne())
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// BackfillAuthUserID links a legacy member document to its auth account.
func (mr *MembersRepository) BackfillAuthUserID(ctx context.Context, memberID primitive.ObjectID, authUserID string) error {
	err := mr.repo.UpdateOne(ctx, bson.M{"_id": memberID}, bson.M{"authUserId": authUserID})
	if err != nil {
		logger.CtxError(ctx, "Error backfilling authUserId", err, slog.String("member_id", memberID.Hex()))
		return err
	}
	return nil
}
