package handlers

import (
	"github.com/gin-gonic/gin"

	"saccoledger/internal/pkg/models"
	"saccoledger/internal/service/members"
)

type MemberHandler struct {
	service *members.MembersService
}

func NewMemberHandler(service *members.MembersService) *MemberHandler {
	return &MemberHandler{service: service}
}

func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req members.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, models.NewValidationError("invalid JSON payload"))
		return
	}

	member, err := h.service.CreateMember(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, gin.H{
		"memberId":   member.ID.Hex(),
		"authUserId": member.AuthUserID,
		"status":     member.Status,
	})
}

type resolveMemberRequest struct {
	AuthUserID string `json:"authUserId"`
	Email      string `json:"email"`
}

// ResolveMember maps an auth user to their member document, backfilling the
// link on a legacy email match.
func (h *MemberHandler) ResolveMember(c *gin.Context) {
	var req resolveMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, models.NewValidationError("invalid JSON payload"))
		return
	}
	if req.AuthUserID == "" {
		respondError(c, models.NewValidationError("authUserId is required"))
		return
	}

	member, err := h.service.FindMemberForAuthUser(c.Request.Context(), req.AuthUserID, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, gin.H{
		"memberId": member.ID.Hex(),
		"name":     member.Name,
		"email":    member.Email,
		"status":   member.Status,
	})
}
