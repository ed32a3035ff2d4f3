package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"instaclone/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with a realistic social mesh.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rand    *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll deletes all seeded data. Order matters: dependents first.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.Notification{},
		&models.Message{},
		&models.Like{},
		&models.Bookmark{},
		&models.Report{},
		&models.Comment{},
		&models.Story{},
		&models.Post{},
		&models.Follow{},
		&models.Block{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// SeedSocialMesh creates users and a follow graph between them.
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.User, error) {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	// Every user follows roughly a quarter of the others
	follows := 0
	for _, follower := range users {
		for _, followed := range users {
			if follower.ID == followed.ID || s.rand.Intn(4) != 0 {
				continue
			}
			if err := s.factory.CreateFollow(follower, followed); err != nil {
				return nil, fmt.Errorf("creating follow: %w", err)
			}
			s.notify(follower, followed, models.NotificationFollow,
				fmt.Sprintf("%s started following you", follower.Username),
				fmt.Sprintf("/profile/%d", follower.ID))
			follows++
		}
	}
	log.Printf("Created %d follow edges", follows)
	return users, nil
}

// SeedEngagement creates posts, stories and engagement on them.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) error {
	if len(users) == 0 {
		return fmt.Errorf("no users to seed engagement for")
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.rand.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return fmt.Errorf("creating post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("Created %d posts", len(posts))

	likes, comments := 0, 0
	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.AuthorID {
				continue
			}
			if s.rand.Intn(3) == 0 {
				if err := s.factory.CreateLike(user, post); err != nil {
					return fmt.Errorf("creating like: %w", err)
				}
				s.notify(user, &models.User{ID: post.AuthorID}, models.NotificationLike,
					fmt.Sprintf("%s liked your post", user.Username),
					fmt.Sprintf("/post/%d", post.ID))
				likes++
			}
			if s.rand.Intn(6) == 0 {
				if _, err := s.factory.CreateComment(user, post); err != nil {
					return fmt.Errorf("creating comment: %w", err)
				}
				s.notify(user, &models.User{ID: post.AuthorID}, models.NotificationComment,
					fmt.Sprintf("%s commented on your post", user.Username),
					fmt.Sprintf("/post/%d", post.ID))
				comments++
			}
		}
	}
	log.Printf("Created %d likes and %d comments", likes, comments)

	stories := 0
	for _, user := range users {
		for i := 0; i < s.rand.Intn(3); i++ {
			if _, err := s.factory.CreateStory(user); err != nil {
				return fmt.Errorf("creating story: %w", err)
			}
			stories++
		}
	}
	log.Printf("Created %d stories", stories)

	messages := 0
	for _, sender := range users {
		recipient := users[s.rand.Intn(len(users))]
		if recipient.ID == sender.ID {
			continue
		}
		for i := 0; i < s.rand.Intn(5)+1; i++ {
			if err := s.factory.CreateMessage(sender, recipient); err != nil {
				return fmt.Errorf("creating message: %w", err)
			}
			messages++
		}
	}
	log.Printf("Created %d messages", messages)

	return nil
}

// notify writes a notification row the way the application's fanout would.
func (s *Seeder) notify(sender, recipient *models.User, kind models.NotificationKind, body, link string) {
	if sender.ID == recipient.ID {
		return
	}
	_ = s.db.Create(&models.Notification{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Kind:        kind,
		Body:        body,
		Link:        link,
	}).Error
}
