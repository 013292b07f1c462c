package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

var _ domain.PreferencesRepository = (*RedisPreferencesRepository)(nil)

// RedisPreferencesRepository keeps each user's favorite habits and
// followed user IDs as redis sets.
type RedisPreferencesRepository struct {
	client *redis.Client
}

func NewRedisPreferencesRepository(client *redis.Client) *RedisPreferencesRepository {
	return &RedisPreferencesRepository{client: client}
}

func favoritesKey(userID string) string {
	return fmt.Sprintf("prefs:favorites:%s", userID)
}

func followingKey(userID string) string {
	return fmt.Sprintf("prefs:following:%s", userID)
}

func (r *RedisPreferencesRepository) FavoriteHabits(ctx context.Context, userID string) ([]string, error) {
	members, err := r.client.SMembers(ctx, favoritesKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("preferences: read favorites failed: %w", err)
	}
	return members, nil
}

func (r *RedisPreferencesRepository) ToggleFavorite(ctx context.Context, userID, habitName string) (bool, error) {
	return r.toggle(ctx, favoritesKey(userID), habitName)
}

func (r *RedisPreferencesRepository) FollowedUserIDs(ctx context.Context, userID string) ([]string, error) {
	members, err := r.client.SMembers(ctx, followingKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("preferences: read following failed: %w", err)
	}
	return members, nil
}

func (r *RedisPreferencesRepository) ToggleFollow(ctx context.Context, userID, followedID string) (bool, error) {
	return r.toggle(ctx, followingKey(userID), followedID)
}

// toggle flips set membership and reports the new state. SRem's return
// value distinguishes "was present" from "was absent" without a
// separate round trip.
func (r *RedisPreferencesRepository) toggle(ctx context.Context, key, member string) (bool, error) {
	removed, err := r.client.SRem(ctx, key, member).Result()
	if err != nil {
		return false, fmt.Errorf("preferences: toggle failed: %w", err)
	}
	if removed > 0 {
		return false, nil
	}

	if err := r.client.SAdd(ctx, key, member).Err(); err != nil {
		return false, fmt.Errorf("preferences: toggle failed: %w", err)
	}
	return true, nil
}
