package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"microlog/internal/middleware"
	"microlog/internal/models"
	"microlog/internal/observability"
	"microlog/internal/search"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	Explore(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, int64, error)
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db    *gorm.DB
	index search.Index
}

// NewPostRepository creates a new post repository. The search index is
// consulted on create/delete and for ranked lookups; pass search.NoopIndex{}
// when no backend is configured.
func NewPostRepository(db *gorm.DB, index search.Index) PostRepository {
	return &postRepository{db: db, index: index}
}

// Create persists the post and hands it to the search index. Index failures
// degrade to an unindexed post rather than failing the write.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	observability.PostsCreated.Inc()

	ref, err := r.index.Index(ctx, post)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "search indexing failed",
			slog.Any("post_id", post.ID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if ref != "" && ref != post.SearchRef {
		post.SearchRef = ref
		if err := r.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("id = ?", post.ID).
			UpdateColumn("search_ref", ref).Error; err != nil {
			return models.NewInternalError(err)
		}
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Feed returns the user's own posts plus posts by everyone they follow, in
// one globally ordered sequence: descending creation time, descending id as
// the tiebreak so equal timestamps still have a total order. Recomputed fully
// on each call against current graph and content state.
func (r *postRepository) Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	defer func(start time.Time) {
		observability.FeedQueryDuration.Observe(time.Since(start).Seconds())
	}(time.Now())

	followed := r.db.
		Model(&models.Follow{}).
		Select("followed_id").
		Where("follower_id = ?", userID)

	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? OR user_id IN (?)", userID, followed).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Explore returns all posts, newest first.
func (r *postRepository) Explore(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Search resolves ranked post IDs through the search adapter and loads the
// matching rows, preserving the adapter's ordering. Without a configured
// backend this degrades to an empty result, never an error.
func (r *postRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, int64, error) {
	ids, total, err := r.index.Search(ctx, query, limit, offset)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "search query failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return nil, 0, nil
	}
	if len(ids) == 0 {
		return nil, total, nil
	}

	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id IN ?", ids).
		Find(&posts).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	byID := make(map[uint]*models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]*models.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, total, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.index.Remove(ctx, id); err != nil {
		middleware.Logger.WarnContext(ctx, "search removal failed",
			slog.Any("post_id", id),
			slog.String("error", err.Error()),
		)
	}
	return nil
}
