package lexicon

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultUserWordsKey is the Redis set holding user-added words.
const DefaultUserWordsKey = "teny:user_words"

// UserWords keeps words added by users in a shared Redis set so several
// processes can merge the same additions at startup.
type UserWords struct {
	client *redis.Client
	key    string
}

// NewUserWords wraps client. An empty key uses DefaultUserWordsKey.
func NewUserWords(client *redis.Client, key string) *UserWords {
	if key == "" {
		key = DefaultUserWordsKey
	}
	return &UserWords{client: client, key: key}
}

// DialUserWords connects to the Redis server at addr and checks it answers.
func DialUserWords(ctx context.Context, addr, key string) (*UserWords, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewUserWords(client, key), nil
}

// Key returns the Redis key of the set.
func (u *UserWords) Key() string {
	return u.key
}

// Add stores word, normalized.
func (u *UserWords) Add(ctx context.Context, word string) error {
	w := Normalize(word)
	if w == "" {
		return nil
	}
	return u.client.SAdd(ctx, u.key, w).Err()
}

// Remove deletes word from the set.
func (u *UserWords) Remove(ctx context.Context, word string) error {
	return u.client.SRem(ctx, u.key, Normalize(word)).Err()
}

// All returns every stored word.
func (u *UserWords) All(ctx context.Context) ([]string, error) {
	return u.client.SMembers(ctx, u.key).Result()
}

// MergeInto adds every stored word to lex and returns how many were new.
func (u *UserWords) MergeInto(ctx context.Context, lex *Lexicon) (int, error) {
	words, err := u.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("load user words: %w", err)
	}
	return lex.Merge(FromWords(words...)), nil
}

// Close releases the Redis client.
func (u *UserWords) Close() error {
	return u.client.Close()
}
