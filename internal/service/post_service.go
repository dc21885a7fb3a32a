package service

import (
	"context"
	"strings"

	"microlog/internal/models"
	"microlog/internal/repository"
)

// maxBodyLen bounds a single post body.
const maxBodyLen = 140

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	perPage  int
}

type CreatePostInput struct {
	UserID   uint
	Body     string
	Language string
}

// NewPostService returns a PostService paginating with perPage items.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, perPage int) *PostService {
	if perPage <= 0 {
		perPage = 25
	}
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		perPage:  perPage,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, models.NewValidationError("Post body is required")
	}
	if len(body) > maxBodyLen {
		return nil, models.NewValidationError("Post body too long (max 140 characters)")
	}

	post := &models.Post{
		Body:     body,
		UserID:   in.UserID,
		Language: in.Language,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// DeletePost removes a post. Only the author may delete it.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// Feed returns page `page` (1-based) of the user's aggregated feed: their own
// posts merged with posts of everyone they follow, newest first.
func (s *PostService) Feed(ctx context.Context, userID uint, page int) ([]*models.Post, error) {
	limit, offset := s.pageBounds(page)
	return s.postRepo.Feed(ctx, userID, limit, offset)
}

// Explore returns page `page` of all posts, newest first.
func (s *PostService) Explore(ctx context.Context, page int) ([]*models.Post, error) {
	limit, offset := s.pageBounds(page)
	return s.postRepo.Explore(ctx, limit, offset)
}

// UserPosts returns page `page` of the posts by the user behind username.
func (s *PostService) UserPosts(ctx context.Context, username string, page int) ([]*models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", 0)
	}
	limit, offset := s.pageBounds(page)
	return s.postRepo.GetByUserID(ctx, user.ID, limit, offset)
}

// SearchPosts runs the query through the search adapter. Returns the page of
// matches and the total match count.
func (s *PostService) SearchPosts(ctx context.Context, query string, page int) ([]*models.Post, int64, error) {
	if strings.TrimSpace(query) == "" {
		return nil, 0, models.NewValidationError("Search query is required")
	}
	limit, offset := s.pageBounds(page)
	return s.postRepo.Search(ctx, query, limit, offset)
}

func (s *PostService) pageBounds(page int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	return s.perPage, (page - 1) * s.perPage
}
