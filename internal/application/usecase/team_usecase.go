package usecase

import (
	"github.com/nexvolt/evretail-api/internal/application/dto"
	"github.com/nexvolt/evretail-api/internal/domain"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

// TeamUseCase reads the referral hierarchy: direct referrals and the full downline.
type TeamUseCase struct {
	repo repository.UserRepository
}

// NewTeamUseCase builds the use case.
func NewTeamUseCase(repo repository.UserRepository) *TeamUseCase {
	return &TeamUseCase{repo: repo}
}

// DirectReferrals returns the users sponsored directly by userID.
func (uc *TeamUseCase) DirectReferrals(userID string) (*dto.TeamResponse, error) {
	if err := uc.ensureExists(userID); err != nil {
		return nil, err
	}
	members, err := uc.repo.ListByReferrer(userID)
	if err != nil {
		return nil, err
	}
	return toTeamResponse(members), nil
}

// Downline returns the whole referral subtree under userID, the user excluded.
func (uc *TeamUseCase) Downline(userID string) (*dto.TeamResponse, error) {
	if err := uc.ensureExists(userID); err != nil {
		return nil, err
	}
	members, err := uc.repo.Downline(userID)
	if err != nil {
		return nil, err
	}
	return toTeamResponse(members), nil
}

func (uc *TeamUseCase) ensureExists(userID string) error {
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return nil
}

func toTeamResponse(members []*entity.User) *dto.TeamResponse {
	out := make([]dto.TeamMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, dto.TeamMemberResponse{
			ID:         m.ID,
			Name:       m.Name,
			Email:      m.Email,
			Role:       m.Role,
			ReferrerID: m.ReferrerID,
			Status:     m.Status,
		})
	}
	return &dto.TeamResponse{Total: len(out), Members: out}
}
