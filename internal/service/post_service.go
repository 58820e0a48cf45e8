package service

import (
	"context"
	"strings"
	"time"

	"tribuna/internal/middleware"
	"tribuna/internal/models"
	"tribuna/internal/repository"

	"gorm.io/datatypes"
)

type PostService struct {
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
}

type CreatePostInput struct {
	UserID           uint
	Title            string
	Content          string
	Excerpt          string
	Type             string
	Status           string
	FeaturedImageURL string
	Gallery          []models.GalleryItem
	CategoryIDs      []uint
	Tags             []string
	AllowComments    *bool
}

type ListPostsInput struct {
	Status       string
	Type         string
	AuthorID     uint
	CategorySlug string
	Limit        int
	Offset       int
}

type UpdatePostInput struct {
	UserID           uint
	PostID           uint
	Title            string
	Content          string
	Excerpt          string
	Status           string
	FeaturedImageURL string
	Gallery          []models.GalleryItem
	CategoryIDs      *[]uint
	Tags             *[]string
	AllowComments    *bool
	IsPinned         *bool
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
	}
}

const (
	maxTitleLen     = 300
	maxContentLen   = 50000
	derivedTitleLen = 50
)

// deriveTitle builds a title from the first characters of the content.  It
// runs once, at creation, and is never recomputed on later edits.
func deriveTitle(content string) string {
	plain := strings.Join(strings.Fields(content), " ")
	runes := []rune(plain)
	if len(runes) <= derivedTitleLen {
		return plain
	}
	return string(runes[:derivedTitleLen]) + "..."
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsCandidate() {
		return nil, models.NewForbiddenError("Only candidates can create posts")
	}

	postType := models.PostType(in.Type)
	if in.Type == "" {
		postType = models.PostTypeLong
	}
	if !postType.Valid() {
		return nil, models.NewValidationError("Invalid post type")
	}

	status := models.PostStatus(in.Status)
	if in.Status == "" {
		status = models.PostStatusDraft
	}
	if !status.Valid() {
		return nil, models.NewValidationError("Invalid post status")
	}

	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	title := in.Title
	if title == "" {
		if postType == models.PostTypeLong {
			return nil, models.NewValidationError("Title is required")
		}
		title = deriveTitle(in.Content)
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}

	categories, err := s.resolveCategories(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:            title,
		Content:          in.Content,
		Excerpt:          in.Excerpt,
		FeaturedImageURL: in.FeaturedImageURL,
		Gallery:          datatypes.NewJSONSlice(in.Gallery),
		AuthorID:         in.UserID,
		Categories:       categories,
		Tags:             datatypes.NewJSONSlice(in.Tags),
		Type:             postType,
		Status:           status,
		AllowComments:    true,
	}
	if in.AllowComments != nil {
		post.AllowComments = *in.AllowComments
	}
	if status == models.PostStatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	s.syncCategoryCounts(ctx, post.Categories)
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// RecordView bumps the view counter.  Views are the one counter that is
// incremented rather than recounted; there is no underlying row set to
// recount from.
func (s *PostService) RecordView(ctx context.Context, id uint) error {
	return s.postRepo.IncrementViews(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}
	if in.Offset < 0 {
		in.Offset = 0
	}

	filters := repository.PostFilters{
		Status:       models.PostStatus(in.Status),
		Type:         models.PostType(in.Type),
		AuthorID:     in.AuthorID,
		CategorySlug: in.CategorySlug,
	}
	if in.Status != "" && !filters.Status.Valid() {
		return nil, models.NewValidationError("Invalid post status")
	}
	if in.Type != "" && !filters.Type.Valid() {
		return nil, models.NewValidationError("Invalid post type")
	}

	return s.postRepo.List(ctx, filters, in.Limit, in.Offset)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}
	// Categories attached before the edit still need a recount when the set
	// or the publication status changes.
	touched := append([]models.Category(nil), post.Categories...)

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = in.Title
	}
	if in.Content != "" {
		if len(in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		post.Content = in.Content
	}
	if in.Excerpt != "" {
		post.Excerpt = in.Excerpt
	}
	if in.FeaturedImageURL != "" {
		post.FeaturedImageURL = in.FeaturedImageURL
	}
	if in.Gallery != nil {
		post.Gallery = datatypes.NewJSONSlice(in.Gallery)
	}
	if in.Tags != nil {
		post.Tags = datatypes.NewJSONSlice(*in.Tags)
	}
	if in.AllowComments != nil {
		post.AllowComments = *in.AllowComments
	}
	if in.IsPinned != nil {
		post.IsPinned = *in.IsPinned
	}

	if in.Status != "" {
		status := models.PostStatus(in.Status)
		if !status.Valid() {
			return nil, models.NewValidationError("Invalid post status")
		}
		post.Status = status
		// The publication timestamp is stamped on the first transition to
		// published and never overwritten afterwards.
		if status == models.PostStatusPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}

	if in.CategoryIDs != nil {
		categories, err := s.resolveCategories(ctx, *in.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if err := s.postRepo.ReplaceCategories(ctx, post, categories); err != nil {
			return nil, err
		}
		post.Categories = categories
		touched = append(touched, categories...)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	s.syncCategoryCounts(ctx, touched)
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	s.syncCategoryCounts(ctx, post.Categories)
	return nil
}

// syncCategoryCounts recounts posts_count for each touched category after the
// post write commits.  A failure only leaves a stale counter until the next
// recount, so it is logged and swallowed.
func (s *PostService) syncCategoryCounts(ctx context.Context, categories []models.Category) {
	seen := make(map[uint]bool, len(categories))
	for _, c := range categories {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		n, err := s.categoryRepo.CountPosts(ctx, c.ID)
		if err == nil {
			err = s.categoryRepo.SetPostsCount(ctx, c.ID, int(n))
		}
		if err != nil {
			middleware.Logger.WarnContext(ctx, "category posts_count sync failed",
				"category_id", c.ID, "error", err)
		}
	}
}

func (s *PostService) resolveCategories(ctx context.Context, ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	categories := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		category, err := s.categoryRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, nil
}
