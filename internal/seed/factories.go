// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"instaclone/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls factory behavior.
type Options struct {
	// SkipBcrypt stores a plaintext password for faster seeding in dev.
	SkipBcrypt bool
	// MaxDays is the spread of generated created_at timestamps.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}
	return &Factory{
		db:   db,
		opts: opts,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// pastTime returns a timestamp spread over the last MaxDays days.
func (f *Factory) pastTime() time.Time {
	minutesBack := f.rand.Intn(f.opts.MaxDays * 24 * 60)
	return time.Now().Add(-time.Duration(minutesBack) * time.Minute)
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:    gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:       gofakeit.Email(),
		Description: gofakeit.Sentence(8),
		Avatar:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a sample post by the given author.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		AuthorID:    author.ID,
		Description: gofakeit.Sentence(f.rand.Intn(12) + 3),
		Location:    gofakeit.City(),
		File:        fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		CreatedAt:   f.pastTime(),
	}

	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateStory persists a sample story with a random valid time span.
func (f *Factory) CreateStory(author *models.User) (*models.Story, error) {
	spans := []int{models.StorySpan12, models.StorySpan24, models.StorySpan48, models.StorySpan72}
	story := &models.Story{
		AuthorID: author.ID,
		TimeSpan: spans[f.rand.Intn(len(spans))],
		File:     fmt.Sprintf("https://picsum.photos/seed/story-%s/1080/1920", gofakeit.UUID()),
		// Fresh enough that most seeded stories are still visible
		CreatedAt: time.Now().Add(-time.Duration(f.rand.Intn(10)) * time.Hour),
	}
	if err := f.db.Create(story).Error; err != nil {
		return nil, err
	}
	return story, nil
}

// CreateComment persists a sample comment on the given post.
func (f *Factory) CreateComment(author *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Text:      gofakeit.Sentence(f.rand.Intn(8) + 2),
		AuthorID:  author.ID,
		PostID:    post.ID,
		CreatedAt: f.pastTime(),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like on the given post.
func (f *Factory) CreateLike(author *models.User, post *models.Post) error {
	like := &models.Like{
		AuthorID: author.ID,
		PostID:   &post.ID,
	}
	return f.db.Create(like).Error
}

// CreateFollow persists a follow edge.
func (f *Factory) CreateFollow(follower, followed *models.User) error {
	return f.db.Create(&models.Follow{
		FollowerID: follower.ID,
		FollowedID: followed.ID,
	}).Error
}

// CreateMessage persists a direct message between the two users.
func (f *Factory) CreateMessage(sender, recipient *models.User) error {
	return f.db.Create(&models.Message{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Body:        gofakeit.Sentence(f.rand.Intn(10) + 1),
		CreatedAt:   f.pastTime(),
	}).Error
}
