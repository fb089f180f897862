package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/TanushreeSarkar/InterVista/pkg/model"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// Sessions is a read-through cache for single-session lookups. All methods
// are best-effort: a cache miss or Redis error just means the caller goes
// to the store. A nil *Sessions is a no-op.
type Sessions struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessions(client *redis.Client, ttl time.Duration) *Sessions {
	return &Sessions{client: client, ttl: ttl}
}

func (c *Sessions) Get(ctx context.Context, id string) (*model.InterviewSession, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		return nil, false
	}
	var s model.InterviewSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return &s, true
}

func (c *Sessions) Set(ctx context.Context, s *model.InterviewSession) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	c.client.Set(ctx, sessionKeyPrefix+s.ID, raw, c.ttl)
}

func (c *Sessions) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, sessionKeyPrefix+id)
}
