package members

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"saccoledger/internal/pkg/consts"
	"saccoledger/internal/pkg/logger"
	"saccoledger/internal/pkg/models"
	storemodels "saccoledger/internal/pkg/store/models"
	"saccoledger/internal/service/interfaces"
)

// MembersService onboards members and resolves auth users to member
// documents. Onboarding is a two-step sequence (auth account, then member
// document) with a compensating account delete when the second step fails.
type MembersService struct {
	members interfaces.MembersStore
	auth    interfaces.AuthAccounts
}

func NewMembersService(members interfaces.MembersStore, auth interfaces.AuthAccounts) *MembersService {
	return &MembersService{members: members, auth: auth}
}

type CreateMemberRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	MembershipNumber string `json:"membershipNumber"`
}

func (s *MembersService) CreateMember(ctx context.Context, req CreateMemberRequest) (*storemodels.Member, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" {
		return nil, models.NewValidationError("name and email are required")
	}

	if existing, err := s.members.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, models.NewConflictError(fmt.Sprintf("member with email %s already exists", req.Email))
	} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	authUserID, err := s.auth.CreateAccount(ctx, req.Email, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}

	member := &storemodels.Member{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		MembershipNumber: req.MembershipNumber,
		AuthUserID:       authUserID,
		JoinDate:         time.Now().UTC(),
		Status:           consts.MemberActive,
	}
	memberID, err := s.members.Create(ctx, member)
	if err != nil {
		// Compensate: do not leave an orphaned login account behind.
		if delErr := s.auth.DeleteAccount(ctx, authUserID); delErr != nil {
			logger.CtxError(ctx, "Failed to compensate orphaned auth account", delErr,
				slog.String("auth_user_id", authUserID),
				slog.Bool("reconciliation_required", true),
			)
		}
		return nil, err
	}

	member.ID = memberID
	logger.CtxInfo(ctx, "Member onboarded",
		slog.String("member_id", memberID.Hex()),
		slog.String("email", req.Email),
	)
	return member, nil
}

// FindMemberForAuthUser resolves an auth user to their member document. A
// legacy document matched by email gets its authUserId backfilled.
func (s *MembersService) FindMemberForAuthUser(ctx context.Context, authUserID, email string) (*storemodels.Member, error) {
	member, err := s.members.FindByAuthUserID(ctx, authUserID)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, models.NewNotFoundError("no member linked to this account")
	}
	member, err = s.members.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("no member linked to this account")
		}
		return nil, err
	}

	if backfillErr := s.members.BackfillAuthUserID(ctx, member.ID, authUserID); backfillErr != nil {
		logger.CtxWarn(ctx, "Member matched by email but backfill failed",
			slog.String("member_id", member.ID.Hex()),
		)
	} else {
		member.AuthUserID = authUserID
	}
	return member, nil
}
