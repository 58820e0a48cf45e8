// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"tribuna/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng, nextID: 1000}
}

// AsCandidate is a CreateUser override that turns the generated account into
// a candidate running for the given position in the given faculty.
func AsCandidate(faculty, position string) func(*models.User) {
	return func(u *models.User) {
		u.UserType = models.UserTypeCandidate
		u.Candidate.Faculty = faculty
		u.Candidate.Position = position
		u.Candidate.Proposal = gofakeit.Paragraph(1, 3, 8, "\n")
		u.Candidate.Experience = []models.Experience{
			{
				Title:        gofakeit.JobTitle(),
				Organization: gofakeit.Company(),
				Period:       fmt.Sprintf("%d - %d", gofakeit.Number(2019, 2023), gofakeit.Number(2024, 2026)),
			},
		}
	}
}

// CreateUser constructs and persists a sample voter account.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		FullName:        gofakeit.Name(),
		Email:           gofakeit.Email(),
		UserType:        models.UserTypeVoter,
		Bio:             gofakeit.Sentence(10),
		ProfileImageURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		IsActive:        true,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s> (%s)", user.FullName, user.Email, user.UserType)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post authored by the given candidate without
// persisting it. Useful for batching.
func (f *Factory) BuildPost(author *models.User, postType models.PostType, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:         strings.TrimSuffix(gofakeit.Sentence(6), "."),
		Type:          postType,
		AuthorID:      author.ID,
		Status:        models.PostStatusPublished,
		AllowComments: true,
		Tags:          []string{gofakeit.BuzzWord(), gofakeit.BuzzWord()},
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	switch postType {
	case models.PostTypeLong:
		post.Content = gofakeit.Paragraph(4, 5, 12, "\n\n")
		post.Excerpt = gofakeit.Sentence(18)
		post.FeaturedImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID())
		post.Gallery = []models.GalleryItem{
			{ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()), Caption: gofakeit.Sentence(5)},
			{ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())},
		}
	default:
		post.Content = gofakeit.Paragraph(1, 2, 8, "\n")
	}

	if post.Status == models.PostStatusPublished {
		publishedAt := post.CreatedAt.Add(time.Duration(f.rng.Intn(120)) * time.Minute)
		post.PublishedAt = &publishedAt
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	batchSize := f.opts.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	return f.db.CreateInBatches(&posts, batchSize).Error
}

// CreateComment constructs and persists a sample comment on the provided
// post authored by the provided user.
func (f *Factory) CreateComment(author *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  gofakeit.Sentence(12),
		AuthorID: author.ID,
		PostID:   post.ID,
		Status:   models.CommentStatusPublic,
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReaction persists a reaction from user on the given target. The
// unique user/target constraint means repeat calls for the same pair fail.
func (f *Factory) CreateReaction(user *models.User, targetType models.TargetType, targetID uint, reactionType models.ReactionType) error {
	reaction := &models.Reaction{
		Type:       reactionType,
		UserID:     user.ID,
		TargetType: targetType,
		TargetID:   targetID,
	}
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(reaction).Error
}

// CreateNotification persists a notification for the recipient.
func (f *Factory) CreateNotification(recipient *models.User, notifType models.NotificationType, message string, overrides ...func(*models.Notification)) (*models.Notification, error) {
	notification := &models.Notification{
		Type:        notifType,
		RecipientID: recipient.ID,
		Message:     message,
	}

	for _, override := range overrides {
		override(notification)
	}

	if f.opts.DryRun {
		f.nextID++
		notification.ID = f.nextID
		return notification, nil
	}

	if err := f.db.Create(notification).Error; err != nil {
		return nil, err
	}
	return notification, nil
}

// randomReactionType picks a reaction type weighted toward plain likes.
func (f *Factory) randomReactionType() models.ReactionType {
	types := []models.ReactionType{
		models.ReactionLike, models.ReactionLike, models.ReactionLike,
		models.ReactionLove, models.ReactionSupport,
		models.ReactionCelebrate, models.ReactionInsightful,
	}
	return types[f.rng.Intn(len(types))]
}
