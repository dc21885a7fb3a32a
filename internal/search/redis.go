package search

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"microlog/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisIndex maintains a term-set index in Redis: one set of post IDs per
// term, and one set of terms per post so documents can be removed again.
type RedisIndex struct {
	client *redis.Client
}

// NewRedisIndex returns an Index backed by the given Redis client.
func NewRedisIndex(client *redis.Client) *RedisIndex {
	return &RedisIndex{client: client}
}

func termKey(term string) string { return "search:term:" + term }

func docKey(postID uint) string { return fmt.Sprintf("search:doc:%d", postID) }

// Index adds the post's body terms to the index. Reindexing an existing post
// first removes its previous terms, so the index never holds stale entries.
func (r *RedisIndex) Index(ctx context.Context, post *models.Post) (string, error) {
	if err := r.Remove(ctx, post.ID); err != nil {
		return "", err
	}

	terms := Tokenize(post.Body)
	if len(terms) == 0 {
		return docKey(post.ID), nil
	}

	id := strconv.FormatUint(uint64(post.ID), 10)
	pipe := r.client.TxPipeline()
	for _, term := range terms {
		pipe.SAdd(ctx, termKey(term), id)
	}
	anyTerms := make([]interface{}, len(terms))
	for i, term := range terms {
		anyTerms[i] = term
	}
	pipe.SAdd(ctx, docKey(post.ID), anyTerms...)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return docKey(post.ID), nil
}

// Remove deletes the post from every term set it was indexed under.
func (r *RedisIndex) Remove(ctx context.Context, postID uint) error {
	terms, err := r.client.SMembers(ctx, docKey(postID)).Result()
	if err != nil {
		return err
	}
	if len(terms) == 0 {
		return nil
	}

	id := strconv.FormatUint(uint64(postID), 10)
	pipe := r.client.TxPipeline()
	for _, term := range terms {
		pipe.SRem(ctx, termKey(term), id)
	}
	pipe.Del(ctx, docKey(postID))
	_, err = pipe.Exec(ctx)
	return err
}

// Search intersects the term sets of all query terms and returns matching
// post IDs, newest first (IDs are monotonically increasing), with the total
// match count before pagination.
func (r *RedisIndex) Search(ctx context.Context, query string, limit, offset int) ([]uint, int64, error) {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return nil, 0, nil
	}

	keys := make([]string, len(terms))
	for i, term := range terms {
		keys[i] = termKey(term)
	}

	members, err := r.client.SInter(ctx, keys...).Result()
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(members))
	for _, m := range members {
		id, parseErr := strconv.ParseUint(m, 10, 32)
		if parseErr != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	total := int64(len(ids))
	if offset >= len(ids) {
		return nil, total, nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids, total, nil
}
