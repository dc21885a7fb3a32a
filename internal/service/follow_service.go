package service

import (
	"context"

	"microlog/internal/models"
	"microlog/internal/repository"
)

// FollowService exposes the follower graph keyed by username, resolving
// profiles before touching edges.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// FollowInfo is the graph summary shown on a profile.
type FollowInfo struct {
	Followers  int64 `json:"followers"`
	Following  int64 `json:"following"`
	IsFollowed bool  `json:"is_followed"`
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow adds the edge from followerID to the user behind username.
// Following someone already followed is a no-op; following yourself is an
// invalid edge.
func (s *FollowService) Follow(ctx context.Context, followerID uint, username string) (*models.User, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.followRepo.Follow(ctx, followerID, target.ID); err != nil {
		return nil, err
	}
	return target, nil
}

// Unfollow removes the edge if present; removing an absent edge is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID uint, username string) (*models.User, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.followRepo.Unfollow(ctx, followerID, target.ID); err != nil {
		return nil, err
	}
	return target, nil
}

// Info returns follower/following counts for the user behind username, and
// whether viewerID currently follows them. viewerID 0 means no viewer.
func (s *FollowService) Info(ctx context.Context, viewerID uint, username string) (*FollowInfo, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.FollowersCount(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.FollowingCount(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	info := &FollowInfo{Followers: followers, Following: following}
	if viewerID != 0 && viewerID != target.ID {
		info.IsFollowed, err = s.followRepo.IsFollowing(ctx, viewerID, target.ID)
		if err != nil {
			return nil, err
		}
	}
	return info, nil
}

// Following lists the users followed by the user behind username.
func (s *FollowService) Following(ctx context.Context, username string) ([]models.User, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, target.ID)
}

// Followers lists the users following the user behind username.
func (s *FollowService) Followers(ctx context.Context, username string) ([]models.User, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, target.ID)
}

func (s *FollowService) resolve(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", 0)
	}
	return user, nil
}
