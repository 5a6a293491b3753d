package financialconfig

import (
	"context"
	"errors"

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

// Fallbacks applied the first time the config document is read.
const (
	DefaultLoanInterestRate          = 2.0
	DefaultLoanEligibilityPercentage = 80.0
	DefaultBankCharge                = 5000
	DefaultEarlyRepaymentPenalty     = 1.0
	DefaultMaxLoanDuration           = 6
	DefaultMinLoanAmount             = 10000
	DefaultMaxLoanAmount             = 5000000
)

type FinancialConfigRepository struct {
	repo interfaces.DocumentStore[models.FinancialConfig]
}

func NewFinancialConfigRepository(client *mongodb.MongoClient, collection string) *FinancialConfigRepository {
	repo := repository.NewMongoRepository[models.FinancialConfig](client.Database.Collection(collection))
	return &FinancialConfigRepository{repo: repo}
}

func NewFinancialConfigRepositoryWithInterface(repo interfaces.DocumentStore[models.FinancialConfig]) *FinancialConfigRepository {
	return &FinancialConfigRepository{repo: repo}
}

func defaultFinancialConfig() *models.FinancialConfig {
	return &models.FinancialConfig{
		LoanInterestRate:          DefaultLoanInterestRate,
		LoanEligibilityPercentage: DefaultLoanEligibilityPercentage,
		DefaultBankCharge:         DefaultBankCharge,
		EarlyRepaymentPenalty:     DefaultEarlyRepaymentPenalty,
		MaxLoanDuration:           DefaultMaxLoanDuration,
		MinLoanAmount:             DefaultMinLoanAmount,
		MaxLoanAmount:             DefaultMaxLoanAmount,
	}
}

// GetOrCreateDefault returns the singleton financial config, lazily seeding
// the defaults on first read.
func (fr *FinancialConfigRepository) GetOrCreateDefault(ctx context.Context) (*models.FinancialConfig, error) {
	cfg, err := fr.repo.FindOne(ctx, bson.M{}, options.FindOne())
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		logger.CtxError(ctx, "Error reading financial config", err)
		return nil, err
	}

	seeded := defaultFinancialConfig()
	result, err := fr.repo.Create(ctx, seeded)
	if err != nil {
		logger.CtxError(ctx, "Error seeding default financial config", err)
		return nil, err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		seeded.ID = id
	}
	logger.CtxInfo(ctx, "Seeded default financial config")
	return seeded, nil
}

// Save overwrites the mutable fields of the singleton document.
func (fr *FinancialConfigRepository) Save(ctx context.Context, cfg *models.FinancialConfig) error {
	if cfg.ID.IsZero() {
		current, err := fr.GetOrCreateDefault(ctx)
		if err != nil {
			return err
		}
		cfg.ID = current.ID
	}

	update := bson.M{
		"loanInterestRate":          cfg.LoanInterestRate,
		"loanEligibilityPercentage": cfg.LoanEligibilityPercentage,
		"defaultBankCharge":         cfg.DefaultBankCharge,
		"earlyRepaymentPenalty":     cfg.EarlyRepaymentPenalty,
		"maxLoanDuration":           cfg.MaxLoanDuration,
		"minLoanAmount":             cfg.MinLoanAmount,
		"maxLoanAmount":             cfg.MaxLoanAmount,
	}
	if err := fr.repo.UpdateOne(ctx, bson.M{"_id": cfg.ID}, update); err != nil {
		logger.CtxError(ctx, "Error saving financial config", err)
		return err
	}
	return nil
}
