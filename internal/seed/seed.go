// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"tribuna/internal/models"

	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	// SkipBcrypt stores plaintext passwords, useful for large dev seeds.
	SkipBcrypt bool
	// DryRun builds entities with synthetic IDs without touching the DB.
	DryRun bool
	// BatchSize controls insert chunking for bulk writes.
	BatchSize int
	// MaxDays bounds how far back generated timestamps spread.
	MaxDays int
}

// Seeder populates the database with realistic campaign data.
type Seeder struct {
	db   *gorm.DB
	f    *Factory
	opts Options
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, f: NewFactory(db, opts), opts: opts}
}

// distribution splits a candidate's posts between short updates and long
// articles, in percent.
type distribution struct {
	Short int
	Long  int
}

var defaultDistribution = distribution{Short: 70, Long: 30}

// PositionDistributions tweaks the post mix per contested position. Rector
// races lean on long-form proposals, student representatives on quick updates.
var PositionDistributions = map[string]distribution{
	models.PositionRector:                {Short: 40, Long: 60},
	models.PositionAcademicViceRector:    {Short: 50, Long: 50},
	models.PositionStudentRepresentative: {Short: 85, Long: 15},
}

func computeCounts(total int, d distribution) (short, long int) {
	short = total * d.Short / 100
	long = total - short
	return short, long
}

var seedFaculties = []string{
	models.FacultyProductionEngineering,
	models.FacultyCivilEngineering,
	models.FacultyMedicine,
	models.FacultyLaw,
	models.FacultyEducation,
	models.FacultyAdministration,
	models.FacultyPsychology,
	models.FacultyArchitecture,
}

var seedPositions = []string{
	models.PositionRector,
	models.PositionAcademicViceRector,
	models.PositionDean,
	models.PositionViceDean,
	models.PositionSchoolDirector,
	models.PositionStudentRepresentative,
}

// ClearAll removes all seeded data and resets identity sequences.
// Postgres only.
func (s *Seeder) ClearAll() error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE notifications, reactions, comments, post_categories, posts, categories, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedElectorate creates count accounts: a few fixed well-known logins plus
// randomly generated voters and candidates. Roughly one in four generated
// accounts is a candidate with a faculty and position assigned.
func (s *Seeder) SeedElectorate(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Fixed accounts so dev tooling always has known logins.
	if count >= 3 {
		admin, err := s.f.CreateUser(func(u *models.User) {
			u.FullName = "Admin de Pruebas"
			u.Email = "admin@example.com"
		})
		if err == nil {
			users = append(users, admin)
		}

		candidate, err := s.f.CreateUser(
			AsCandidate(models.FacultyCivilEngineering, models.PositionDean),
			func(u *models.User) {
				u.FullName = "María Quispe"
				u.Email = "candidata@example.com"
			},
		)
		if err == nil {
			users = append(users, candidate)
		}

		voter, err := s.f.CreateUser(func(u *models.User) {
			u.FullName = "Jorge Mamani"
			u.Email = "votante@example.com"
		})
		if err == nil {
			users = append(users, voter)
		}
	}

	for i := len(users); i < count; i++ {
		var overrides []func(*models.User)
		if i%4 == 0 {
			faculty := seedFaculties[s.f.rng.Intn(len(seedFaculties))]
			position := seedPositions[s.f.rng.Intn(len(seedPositions))]
			overrides = append(overrides, AsCandidate(faculty, position))
		}

		user, err := s.f.CreateUser(overrides...)
		if err != nil {
			log.Printf("Failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// SeedCampaign generates posts for every candidate in users, then layers
// comments, reactions, and notifications on top and reconciles the
// denormalized counters. Returns the number of posts created.
func (s *Seeder) SeedCampaign(users []*models.User, numPosts int) (int, error) {
	var candidates []*models.User
	for _, u := range users {
		if u.IsCandidate() {
			candidates = append(candidates, u)
		}
	}
	if len(candidates) == 0 {
		return 0, fmt.Errorf("no candidates among %d users", len(users))
	}

	var categories []models.Category
	if !s.opts.DryRun {
		if err := s.db.Where("is_active = ?", true).Find(&categories).Error; err != nil {
			return 0, fmt.Errorf("load categories: %w", err)
		}
	}

	posts, err := s.seedPosts(candidates, numPosts)
	if err != nil {
		return 0, err
	}
	log.Printf("✓ %d posts created", len(posts))

	if s.opts.DryRun {
		return len(posts), nil
	}

	if err := s.attachCategories(posts, categories); err != nil {
		return 0, fmt.Errorf("attach categories: %w", err)
	}

	if err := s.seedEngagement(users, posts); err != nil {
		return 0, fmt.Errorf("seed engagement: %w", err)
	}

	if err := s.syncCounters(); err != nil {
		return 0, fmt.Errorf("sync counters: %w", err)
	}
	log.Println("✓ Denormalized counters reconciled")

	return len(posts), nil
}

func (s *Seeder) seedPosts(candidates []*models.User, numPosts int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, numPosts)
	perCandidate := numPosts / len(candidates)
	remainder := numPosts % len(candidates)

	for i, candidate := range candidates {
		count := perCandidate
		if i < remainder {
			count++
		}

		d, ok := PositionDistributions[candidate.Candidate.Position]
		if !ok {
			d = defaultDistribution
		}
		short, long := computeCounts(count, d)

		for j := 0; j < short+long; j++ {
			postType := models.PostTypeShort
			if j >= short {
				postType = models.PostTypeLong
			}

			var overrides []func(*models.Post)
			// keep a few drafts around so the draft/publish flow has data
			if s.f.rng.Intn(10) == 0 {
				overrides = append(overrides, func(p *models.Post) {
					p.Status = models.PostStatusDraft
					p.PublishedAt = nil
				})
			}

			posts = append(posts, s.f.BuildPost(candidate, postType, overrides...))
		}
	}

	if err := s.f.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}
	return posts, nil
}

func (s *Seeder) attachCategories(posts []*models.Post, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	for _, post := range posts {
		n := 1 + s.f.rng.Intn(2)
		picked := make(map[int]struct{}, n)
		for len(picked) < n {
			picked[s.f.rng.Intn(len(categories))] = struct{}{}
		}
		link := make([]models.Category, 0, n)
		for idx := range picked {
			link = append(link, categories[idx])
		}
		if err := s.db.Model(post).Association("Categories").Append(&link); err != nil {
			return err
		}
	}
	return nil
}

// seedEngagement adds comments, reactions, and the notifications the
// engagement engine would have produced for them.
func (s *Seeder) seedEngagement(users []*models.User, posts []*models.Post) error {
	commentCount := 0
	reactionCount := 0
	notifCount := 0

	for _, post := range posts {
		if post.Status != models.PostStatusPublished {
			continue
		}

		// comments, with the occasional reply thread
		numComments := s.f.rng.Intn(5)
		var lastComment *models.Comment
		for i := 0; i < numComments; i++ {
			author := users[s.f.rng.Intn(len(users))]

			var overrides []func(*models.Comment)
			if lastComment != nil && s.f.rng.Intn(3) == 0 {
				parentID := lastComment.ID
				overrides = append(overrides, func(c *models.Comment) {
					c.ParentCommentID = &parentID
				})
			}

			comment, err := s.f.CreateComment(author, post, overrides...)
			if err != nil {
				return err
			}
			commentCount++
			if comment.ParentCommentID == nil {
				lastComment = comment
			}

			if author.ID != post.AuthorID {
				senderID := author.ID
				postID := post.ID
				_, err := s.f.CreateNotification(
					&models.User{ID: post.AuthorID},
					models.NotificationNewCommentOnPost,
					fmt.Sprintf("%s comentó tu publicación «%s»", author.FullName, post.Title),
					func(n *models.Notification) {
						n.SenderID = &senderID
						n.RelatedPostID = &postID
						commentID := comment.ID
						n.RelatedCommentID = &commentID
						n.Read = s.f.rng.Intn(2) == 0
					},
				)
				if err != nil {
					return err
				}
				notifCount++
			}
		}

		// distinct reactors per post to respect the user/target unique index
		numReactions := s.f.rng.Intn(len(users)/2 + 1)
		order := s.f.rng.Perm(len(users))
		for i := 0; i < numReactions; i++ {
			reactor := users[order[i]]
			if err := s.f.CreateReaction(reactor, models.TargetTypePost, post.ID, s.f.randomReactionType()); err != nil {
				return err
			}
			reactionCount++
		}
	}

	log.Printf("✓ %d comments, %d reactions, %d notifications created", commentCount, reactionCount, notifCount)
	return nil
}

// syncCounters recomputes every denormalized counter from the live rows,
// mirroring what the engagement engine maintains incrementally.
func (s *Seeder) syncCounters() error {
	statements := []string{
		`UPDATE posts SET likes_count = (
			SELECT COUNT(*) FROM reactions
			WHERE reactions.target_type = 'post' AND reactions.target_id = posts.id
		)`,
		`UPDATE posts SET comments_count = (
			SELECT COUNT(*) FROM comments
			WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL
		)`,
		`UPDATE comments SET likes_count = (
			SELECT COUNT(*) FROM reactions
			WHERE reactions.target_type = 'comment' AND reactions.target_id = comments.id
		)`,
		`UPDATE comments SET replies_count = (
			SELECT COUNT(*) FROM comments AS replies
			WHERE replies.parent_comment_id = comments.id AND replies.deleted_at IS NULL
		)`,
		`UPDATE categories SET posts_count = (
			SELECT COUNT(*) FROM post_categories
			JOIN posts ON posts.id = post_categories.post_id
			WHERE post_categories.category_id = categories.id
			AND posts.status = 'published' AND posts.deleted_at IS NULL
		)`,
	}
	for _, stmt := range statements {
		if err := s.db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// Preset bundles a named seeding profile.
type Preset struct {
	Users int
	Posts int
}

// Presets are the named seeding profiles accepted by ApplyPreset.
var Presets = map[string]Preset{
	"ElectionWeek": {Users: 150, Posts: 900},
	"QuietCampus":  {Users: 25, Posts: 80},
}

// ApplyPreset runs a full electorate plus campaign seed with a named profile.
func (s *Seeder) ApplyPreset(name string) error {
	preset, ok := Presets[name]
	if !ok {
		names := make([]string, 0, len(Presets))
		for n := range Presets {
			names = append(names, n)
		}
		return fmt.Errorf("unknown preset %q (available: %v)", name, names)
	}

	log.Printf("🌱 Applying preset %s: %d users, %d posts", name, preset.Users, preset.Posts)
	users, err := s.SeedElectorate(preset.Users)
	if err != nil {
		return fmt.Errorf("seed electorate: %w", err)
	}
	if _, err := s.SeedCampaign(users, preset.Posts); err != nil {
		return fmt.Errorf("seed campaign: %w", err)
	}
	return nil
}
