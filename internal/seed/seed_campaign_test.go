package seed

import (
	"testing"

	"tribuna/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSeedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedElectorate_MixesVotersAndCandidates(t *testing.T) {
	t.Parallel()

	db := openSeedDB(t)
	seeder := NewSeeder(db, Options{SkipBcrypt: true})

	users, err := seeder.SeedElectorate(12)
	if err != nil {
		t.Fatalf("seed electorate: %v", err)
	}
	if len(users) != 12 {
		t.Fatalf("expected 12 users, got %d", len(users))
	}

	var candidates, voters int
	for _, u := range users {
		if u.IsCandidate() {
			candidates++
			if !models.ValidFaculty(u.Candidate.Faculty) {
				t.Fatalf("candidate %d has invalid faculty %q", u.ID, u.Candidate.Faculty)
			}
			if !models.ValidPosition(u.Candidate.Position) {
				t.Fatalf("candidate %d has invalid position %q", u.ID, u.Candidate.Position)
			}
		} else {
			voters++
		}
	}
	if candidates == 0 {
		t.Fatal("expected at least one candidate")
	}
	if voters == 0 {
		t.Fatal("expected at least one voter")
	}

	// fixed dev logins
	for _, email := range []string{"admin@example.com", "candidata@example.com", "votante@example.com"} {
		var u models.User
		if err := db.Where("email = ?", email).First(&u).Error; err != nil {
			t.Fatalf("missing fixed account %s: %v", email, err)
		}
	}
}

func TestSeedCampaign_ReconcilesCounters(t *testing.T) {
	t.Parallel()

	db := openSeedDB(t)
	if err := Categories(db); err != nil {
		t.Fatalf("seed categories: %v", err)
	}

	seeder := NewSeeder(db, Options{SkipBcrypt: true, MaxDays: 14, BatchSize: 50})
	users, err := seeder.SeedElectorate(10)
	if err != nil {
		t.Fatalf("seed electorate: %v", err)
	}

	created, err := seeder.SeedCampaign(users, 30)
	if err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	if created != 30 {
		t.Fatalf("expected 30 posts, got %d", created)
	}

	var posts []models.Post
	if err := db.Find(&posts).Error; err != nil {
		t.Fatalf("load posts: %v", err)
	}
	if len(posts) != 30 {
		t.Fatalf("expected 30 persisted posts, got %d", len(posts))
	}

	// every counter must match the live rows after reconciliation
	for _, post := range posts {
		var reactions int64
		if err := db.Model(&models.Reaction{}).
			Where("target_type = ? AND target_id = ?", models.TargetTypePost, post.ID).
			Count(&reactions).Error; err != nil {
			t.Fatalf("count reactions: %v", err)
		}
		if int64(post.LikesCount) != reactions {
			t.Fatalf("post %d: likes_count=%d but %d reactions exist", post.ID, post.LikesCount, reactions)
		}

		var comments int64
		if err := db.Model(&models.Comment{}).
			Where("post_id = ?", post.ID).
			Count(&comments).Error; err != nil {
			t.Fatalf("count comments: %v", err)
		}
		if int64(post.CommentsCount) != comments {
			t.Fatalf("post %d: comments_count=%d but %d comments exist", post.ID, post.CommentsCount, comments)
		}

		// only candidates publish
		var author models.User
		if err := db.First(&author, post.AuthorID).Error; err != nil {
			t.Fatalf("load author: %v", err)
		}
		if !author.IsCandidate() {
			t.Fatalf("post %d authored by non-candidate %d", post.ID, author.ID)
		}
	}

	// reply counters
	var replies []models.Comment
	if err := db.Where("parent_comment_id IS NOT NULL").Find(&replies).Error; err != nil {
		t.Fatalf("load replies: %v", err)
	}
	for _, reply := range replies {
		var parent models.Comment
		if err := db.First(&parent, *reply.ParentCommentID).Error; err != nil {
			t.Fatalf("load parent comment: %v", err)
		}
		if parent.RepliesCount == 0 {
			t.Fatalf("parent comment %d has replies but replies_count=0", parent.ID)
		}
	}

	// notifications reference real posts and never notify the actor
	var notifications []models.Notification
	if err := db.Find(&notifications).Error; err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	for _, n := range notifications {
		if n.SenderID != nil && *n.SenderID == n.RecipientID {
			t.Fatalf("notification %d sent to its own actor", n.ID)
		}
		if n.RelatedPostID == nil {
			t.Fatalf("notification %d missing related post", n.ID)
		}
	}
}

func TestSeedCampaign_RequiresCandidates(t *testing.T) {
	t.Parallel()

	db := openSeedDB(t)
	seeder := NewSeeder(db, Options{SkipBcrypt: true})

	voter, err := seeder.f.CreateUser()
	if err != nil {
		t.Fatalf("create voter: %v", err)
	}

	if _, err := seeder.SeedCampaign([]*models.User{voter}, 10); err == nil {
		t.Fatal("expected error when no candidates provided")
	}
}
