// Package seed provides database seeding utilities for development and
// testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"microlog/internal/auth"
	"microlog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	NumFollows  int
	ShouldClean bool
}

// Seeder populates the database with demo users, posts and follow edges.
type Seeder struct {
	db     *gorm.DB
	hasher auth.Hasher
	rng    *rand.Rand
}

// NewSeeder creates a Seeder bound to the given database. Seeded accounts
// use a low bcrypt cost since they are demo data.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:     db,
		hasher: auth.NewHasher(bcrypt.MinCost),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seedable data. Follows go first so foreign keys
// never dangle.
func (s *Seeder) ClearAll() error {
	for _, stmt := range []string{
		"DELETE FROM follows",
		"DELETE FROM posts",
		"DELETE FROM users",
	} {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("clear failed (%s): %w", stmt, err)
		}
	}
	log.Println("database cleared")
	return nil
}

// Seed runs the full seeding pass.
func (s *Seeder) Seed(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := s.SeedPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	follows, err := s.SeedFollows(users, opts.NumFollows)
	if err != nil {
		return fmt.Errorf("seeding follows: %w", err)
	}
	log.Printf("created %d follow edges", follows)

	return nil
}

// SeedUsers creates n demo accounts, all with the password "password".
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		username := strings.ToLower(fmt.Sprintf("%s%d", gofakeit.Username(), i))
		user := &models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@example.com", username),
			AboutMe:  gofakeit.Sentence(8),
			LastSeen: time.Now().Add(-time.Duration(s.rng.Intn(72)) * time.Hour),
		}
		if err := s.hasher.Set(user, "password"); err != nil {
			return nil, err
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedPosts creates n posts spread over the past 30 days, attributed to
// random seeded users.
func (s *Seeder) SeedPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		body := gofakeit.Sentence(s.rng.Intn(10) + 3)
		if len(body) > 140 {
			body = body[:140]
		}
		post := &models.Post{
			Body:      body,
			Language:  "en",
			UserID:    users[s.rng.Intn(len(users))].ID,
			CreatedAt: time.Now().Add(-time.Duration(s.rng.Intn(30*24*60)) * time.Minute),
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// SeedFollows creates up to n random follow edges. Self-edges are skipped
// and duplicate edges collapse via the composite primary key.
func (s *Seeder) SeedFollows(users []*models.User, n int) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}
	created := 0
	for i := 0; i < n; i++ {
		follower := users[s.rng.Intn(len(users))]
		followed := users[s.rng.Intn(len(users))]
		if follower.ID == followed.ID {
			continue
		}
		edge := &models.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
		result := s.db.Where(edge).FirstOrCreate(edge)
		if result.Error != nil {
			return created, result.Error
		}
		if result.RowsAffected > 0 {
			created++
		}
	}
	return created, nil
}
