package repository

import (
	"context"

	"microlog/internal/models"
	"microlog/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository is the follower graph: a directed edge set between user
// identities. All mutations are idempotent.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followedID uint) error
	Unfollow(ctx context.Context, followerID, followedID uint) error
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	FollowingCount(ctx context.Context, userID uint) (int64, error)
	FollowersCount(ctx context.Context, userID uint) (int64, error)
	Following(ctx context.Context, userID uint) ([]models.User, error)
	Followers(ctx context.Context, userID uint) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the edge (follower, followed). Inserting an existing edge is
// a no-op: ON CONFLICT DO NOTHING on the composite key makes concurrent
// duplicate follows resolve cleanly instead of erroring. Self-follows are
// rejected with an InvalidEdge error.
func (r *followRepository) Follow(ctx context.Context, followerID, followedID uint) error {
	if followerID == followedID {
		observability.FollowOperations.WithLabelValues("follow", "rejected").Inc()
		return models.NewInvalidEdgeError()
	}

	edge := &models.Follow{FollowerID: followerID, FollowedID: followedID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}

	if result.RowsAffected > 0 {
		observability.FollowOperations.WithLabelValues("follow", "changed").Inc()
	} else {
		observability.FollowOperations.WithLabelValues("follow", "noop").Inc()
	}
	return nil
}

// Unfollow deletes the edge if present; deleting an absent edge is a no-op.
func (r *followRepository) Unfollow(ctx context.Context, followerID, followedID uint) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}

	if result.RowsAffected > 0 {
		observability.FollowOperations.WithLabelValues("unfollow", "changed").Inc()
	} else {
		observability.FollowOperations.WithLabelValues("unfollow", "noop").Inc()
	}
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) FollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followed_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) Following(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("users.id").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("users.id").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
