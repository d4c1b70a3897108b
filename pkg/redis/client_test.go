package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/voyageyou/voyage-backend/pkg/config"
)

type stubCmdable struct {
	values map[string]string
}

func newStubCmdable() *stubCmdable {
	return &stubCmdable{values: map[string]string{}}
}

func (s *stubCmdable) Ping(ctx context.Context) *goredis.StatusCmd {
	cmd := goredis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (s *stubCmdable) Set(ctx context.Context, key string, value any, _ time.Duration) *goredis.StatusCmd {
	s.values[key] = value.(string)
	cmd := goredis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (s *stubCmdable) Get(ctx context.Context, key string) *goredis.StringCmd {
	cmd := goredis.NewStringCmd(ctx)
	if val, ok := s.values[key]; ok {
		cmd.SetVal(val)
	} else {
		cmd.SetErr(goredis.Nil)
	}
	return cmd
}

func (s *stubCmdable) SetNX(ctx context.Context, key string, value any, _ time.Duration) *goredis.BoolCmd {
	cmd := goredis.NewBoolCmd(ctx)
	if _, exists := s.values[key]; exists {
		cmd.SetVal(false)
		return cmd
	}
	s.values[key] = value.(string)
	cmd.SetVal(true)
	return cmd
}

func (s *stubCmdable) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	cmd := goredis.NewIntCmd(ctx)
	var removed int64
	for _, key := range keys {
		if _, ok := s.values[key]; ok {
			delete(s.values, key)
			removed++
		}
	}
	cmd.SetVal(removed)
	return cmd
}

func TestKeyBuilders(t *testing.T) {
	t.Parallel()

	c := &Client{}
	if got := c.SessionKey("abc"); got != "vy:checkout_session:abc" {
		t.Fatalf("unexpected session key %q", got)
	}
	if got := c.ItineraryKey("xyz"); got != "vy:itinerary:xyz" {
		t.Fatalf("unexpected itinerary key %q", got)
	}
	if got := c.IdempotencyKey("submit", "id1"); got != "vy:idempotency:submit:id1" {
		t.Fatalf("unexpected idempotency key %q", got)
	}
}

func TestSetGetDelRoundTrip(t *testing.T) {
	t.Parallel()

	c := &Client{store: newStubCmdable()}
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || got != "v" {
		t.Fatalf("get: %q %v", got, err)
	}
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !IsNil(err) {
		t.Fatalf("expected redis nil after delete, got %v", err)
	}
}

func TestSetNXOnlySetsOnce(t *testing.T) {
	t.Parallel()

	c := &Client{store: newStubCmdable()}
	ctx := context.Background()

	first, err := c.SetNX(ctx, "k", "v1", time.Minute)
	if err != nil || !first {
		t.Fatalf("first setnx: %v %v", first, err)
	}
	second, err := c.SetNX(ctx, "k", "v2", time.Minute)
	if err != nil || second {
		t.Fatalf("second setnx should not set: %v %v", second, err)
	}
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	t.Parallel()

	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}

	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", PoolSize: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.PoolSize != 5 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}
