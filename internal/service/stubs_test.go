package service

import (
	"context"
	"time"

	"microlog/internal/models"
)

type userRepoStub struct {
	createFn         func(context.Context, *models.User) error
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	updateFn         func(context.Context, *models.User) error
	updateLastSeenFn func(context.Context, uint, time.Time) error
	listFn           func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateLastSeen(ctx context.Context, id uint, seen time.Time) error {
	return s.updateLastSeenFn(ctx, id, seen)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:         func(context.Context, *models.User) error { return nil },
		getByIDFn:        func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:     func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn:  func(context.Context, string) (*models.User, error) { return nil, nil },
		updateFn:         func(context.Context, *models.User) error { return nil },
		updateLastSeenFn: func(context.Context, uint, time.Time) error { return nil },
		listFn:           func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

type followRepoStub struct {
	followFn         func(context.Context, uint, uint) error
	unfollowFn       func(context.Context, uint, uint) error
	isFollowingFn    func(context.Context, uint, uint) (bool, error)
	followingCountFn func(context.Context, uint) (int64, error)
	followersCountFn func(context.Context, uint) (int64, error)
	followingFn      func(context.Context, uint) ([]models.User, error)
	followersFn      func(context.Context, uint) ([]models.User, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followedID uint) error {
	return s.followFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followedID uint) error {
	return s.unfollowFn(ctx, followerID, followedID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followedID)
}
func (s *followRepoStub) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	return s.followingCountFn(ctx, userID)
}
func (s *followRepoStub) FollowersCount(ctx context.Context, userID uint) (int64, error) {
	return s.followersCountFn(ctx, userID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingFn(ctx, userID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:         func(context.Context, uint, uint) error { return nil },
		unfollowFn:       func(context.Context, uint, uint) error { return nil },
		isFollowingFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		followingCountFn: func(context.Context, uint) (int64, error) { return 0, nil },
		followersCountFn: func(context.Context, uint) (int64, error) { return 0, nil },
		followingFn:      func(context.Context, uint) ([]models.User, error) { return nil, nil },
		followersFn:      func(context.Context, uint) ([]models.User, error) { return nil, nil },
	}
}

type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint) (*models.Post, error)
	getByUserIDFn func(context.Context, uint, int, int) ([]*models.Post, error)
	feedFn        func(context.Context, uint, int, int) ([]*models.Post, error)
	exploreFn     func(context.Context, int, int) ([]*models.Post, error)
	searchFn      func(context.Context, string, int, int) ([]*models.Post, int64, error)
	deleteFn      func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.feedFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) Explore(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.exploreFn(ctx, limit, offset)
}
func (s *postRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, int64, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:      func(context.Context, *models.Post) error { return nil },
		getByIDFn:     func(context.Context, uint) (*models.Post, error) { return &models.Post{}, nil },
		getByUserIDFn: func(context.Context, uint, int, int) ([]*models.Post, error) { return nil, nil },
		feedFn:        func(context.Context, uint, int, int) ([]*models.Post, error) { return nil, nil },
		exploreFn:     func(context.Context, int, int) ([]*models.Post, error) { return nil, nil },
		searchFn:      func(context.Context, string, int, int) ([]*models.Post, int64, error) { return nil, 0, nil },
		deleteFn:      func(context.Context, uint) error { return nil },
	}
}

type mailerStub struct {
	sendFn func(context.Context, *models.User, string) error
}

func (m *mailerStub) SendPasswordReset(ctx context.Context, to *models.User, token string) error {
	return m.sendFn(ctx, to, token)
}
