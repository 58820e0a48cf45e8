package service

import (
	"context"

	"tribuna/internal/models"
	"tribuna/internal/repository"
)

type ReactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	userRepo     repository.UserRepository
	engagement   Engagement
}

type ReactInput struct {
	UserID     uint
	TargetType string
	TargetID   uint
	Type       string
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	engagement Engagement,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
		engagement:   engagement,
	}
}

// React creates a reaction.  A second reaction by the same user on the same
// target is rejected with a conflict; the caller must remove the existing one
// first.
func (s *ReactionService) React(ctx context.Context, in ReactInput) (*models.Reaction, error) {
	targetType := models.TargetType(in.TargetType)
	if !targetType.Valid() {
		return nil, models.NewValidationError("Invalid target type")
	}

	reactionType := models.ReactionType(in.Type)
	if in.Type == "" {
		reactionType = models.ReactionLike
	}
	if !reactionType.Valid() {
		return nil, models.NewValidationError("Invalid reaction type")
	}

	if err := s.targetExists(ctx, targetType, in.TargetID); err != nil {
		return nil, err
	}

	actor, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	reaction := &models.Reaction{
		UserID:     in.UserID,
		TargetType: targetType,
		TargetID:   in.TargetID,
		Type:       reactionType,
	}
	if err := s.reactionRepo.Create(ctx, reaction); err != nil {
		return nil, err
	}

	s.engagement.ReactionCreated(ctx, actor, reaction)
	return reaction, nil
}

func (s *ReactionService) Unreact(ctx context.Context, userID uint, targetType string, targetID uint) error {
	tt := models.TargetType(targetType)
	if !tt.Valid() {
		return models.NewValidationError("Invalid target type")
	}

	reaction, err := s.reactionRepo.GetByUserAndTarget(ctx, userID, tt, targetID)
	if err != nil {
		return err
	}
	if reaction == nil {
		return models.NewNotFoundError("Reaction", targetID)
	}

	if err := s.reactionRepo.Delete(ctx, reaction.ID); err != nil {
		return err
	}

	s.engagement.ReactionDeleted(ctx, reaction)
	return nil
}

// UnreactByID removes a reaction addressed by its row ID.  Only the user who
// reacted may remove it.
func (s *ReactionService) UnreactByID(ctx context.Context, userID, reactionID uint) error {
	reaction, err := s.reactionRepo.GetByID(ctx, reactionID)
	if err != nil {
		return err
	}
	if reaction.UserID != userID {
		return models.NewForbiddenError("You can only remove your own reactions")
	}

	if err := s.reactionRepo.Delete(ctx, reaction.ID); err != nil {
		return err
	}

	s.engagement.ReactionDeleted(ctx, reaction)
	return nil
}

func (s *ReactionService) ListReactions(ctx context.Context, targetType string, targetID uint) ([]*models.Reaction, error) {
	tt := models.TargetType(targetType)
	if !tt.Valid() {
		return nil, models.NewValidationError("Invalid target type")
	}
	if err := s.targetExists(ctx, tt, targetID); err != nil {
		return nil, err
	}
	return s.reactionRepo.ListByTarget(ctx, tt, targetID)
}

func (s *ReactionService) targetExists(ctx context.Context, targetType models.TargetType, targetID uint) error {
	switch targetType {
	case models.TargetTypePost:
		_, err := s.postRepo.GetByID(ctx, targetID)
		return err
	case models.TargetTypeComment:
		_, err := s.commentRepo.GetByID(ctx, targetID)
		return err
	}
	return nil
}
