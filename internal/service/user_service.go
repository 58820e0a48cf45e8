package service

import (
	"context"

	"tribuna/internal/cache"
	"tribuna/internal/models"
	"tribuna/internal/repository"

	"gorm.io/datatypes"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID          uint
	FullName        string
	Bio             string
	ProfileImageURL string
	Candidate       *UpdateCandidateProfileInput
}

// UpdateCandidateProfileInput carries the campaign fields only candidates may
// edit.
type UpdateCandidateProfileInput struct {
	Faculty     string
	Position    string
	Proposal    string
	Experience  []models.Experience
	SocialLinks *models.SocialLinks
}

type ListCandidatesInput struct {
	Faculty  string
	Position string
	Limit    int
	Offset   int
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxNameLen = 120

	if in.FullName != "" {
		if len(in.FullName) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 120 characters)")
		}
		user.FullName = in.FullName
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.ProfileImageURL != "" {
		user.ProfileImageURL = in.ProfileImageURL
	}

	if in.Candidate != nil {
		if !user.IsCandidate() {
			return nil, models.NewForbiddenError("Only candidates have a campaign profile")
		}
		if err := applyCandidateProfile(user, in.Candidate); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func applyCandidateProfile(user *models.User, in *UpdateCandidateProfileInput) error {
	if in.Faculty != "" {
		if !models.ValidFaculty(in.Faculty) {
			return models.NewValidationError("Unknown faculty")
		}
		user.Candidate.Faculty = in.Faculty
	}
	if in.Position != "" {
		if !models.ValidPosition(in.Position) {
			return models.NewValidationError("Unknown position")
		}
		user.Candidate.Position = in.Position
	}
	if in.Proposal != "" {
		user.Candidate.Proposal = in.Proposal
	}
	if in.Experience != nil {
		user.Candidate.Experience = datatypes.NewJSONSlice(in.Experience)
	}
	if in.SocialLinks != nil {
		user.Candidate.Social = datatypes.NewJSONType(*in.SocialLinks)
	}
	return nil
}

// ListCandidates serves the candidate directory.  The unfiltered first page
// is the hot path and is cached.
func (s *UserService) ListCandidates(ctx context.Context, in ListCandidatesInput) ([]*models.User, error) {
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}
	if in.Offset < 0 {
		in.Offset = 0
	}
	if in.Faculty != "" && !models.ValidFaculty(in.Faculty) {
		return nil, models.NewValidationError("Unknown faculty")
	}
	if in.Position != "" && !models.ValidPosition(in.Position) {
		return nil, models.NewValidationError("Unknown position")
	}

	if in.Faculty == "" && in.Position == "" && in.Offset == 0 {
		var candidates []*models.User
		err := cache.Aside(ctx, cache.CandidatesKey, &candidates, cache.CandidatesTTL, func() error {
			var err error
			candidates, err = s.userRepo.ListCandidates(ctx, "", "", in.Limit, 0)
			return err
		})
		return candidates, err
	}

	return s.userRepo.ListCandidates(ctx, in.Faculty, in.Position, in.Limit, in.Offset)
}
