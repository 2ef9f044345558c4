package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
)

func TestUserCacheHitsLookupOnce(t *testing.T) {
	calls := 0
	c, err := NewUserCache(time.Minute, func(_ context.Context, id int64) (*models.User, error) {
		calls++
		return &models.User{ID: id, Username: "alice"}, nil
	})
	if err != nil {
		t.Fatalf("NewUserCache: %v", err)
	}
	defer c.Close()

	if _, err := c.Get(context.Background(), 7); err != nil {
		t.Fatalf("Get: %v", err)
	}
	c.Wait()
	u, err := c.Get(context.Background(), 7)
	if err != nil || u.Username != "alice" {
		t.Fatalf("cached Get = %+v, %v", u, err)
	}
	if calls != 1 {
		t.Fatalf("lookup called %d times, want 1", calls)
	}

	c.Evict(7)
	if _, err := c.Get(context.Background(), 7); err != nil {
		t.Fatalf("Get after evict: %v", err)
	}
	if calls != 2 {
		t.Fatalf("evicted entry should be reloaded, lookup calls=%d", calls)
	}
}

func TestUserCacheDoesNotStoreMisses(t *testing.T) {
	gone := errors.New("user not found")
	calls := 0
	c, err := NewUserCache(time.Minute, func(context.Context, int64) (*models.User, error) {
		calls++
		return nil, gone
	})
	if err != nil {
		t.Fatalf("NewUserCache: %v", err)
	}
	defer c.Close()

	for i := 0; i < 2; i++ {
		if _, err := c.Get(context.Background(), 1); !errors.Is(err, gone) {
			t.Fatalf("expected lookup error, got %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("misses must not be cached, calls=%d", calls)
	}
}
