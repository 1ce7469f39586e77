package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestSetNXOnlySetsOnce(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	ok, err := client.SetNX(ctx, "fd:lock:order:42", "1", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected first SetNX to win")
	}

	ok, err = client.SetNX(ctx, "fd:lock:order:42", "1", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected second SetNX to lose")
	}

	if err := client.Del(ctx, "fd:lock:order:42"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	ok, err = client.SetNX(ctx, "fd:lock:order:42", "1", time.Second)
	if err != nil || !ok {
		t.Fatalf("expected SetNX to win after Del, ok=%v err=%v", ok, err)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	if err := client.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := client.Get(ctx, "key")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != "value" {
		t.Fatalf("expected stored value, got %q", got)
	}

	if _, err := client.Get(ctx, "missing"); err != redis.Nil {
		t.Fatalf("expected redis.Nil for missing key, got %v", err)
	}
}

func TestLockKey(t *testing.T) {
	client := &Client{}
	if got := client.LockKey("order", "42"); got != "fd:lock:order:42" {
		t.Fatalf("unexpected lock key %s", got)
	}
	if got := client.LockKey("order", ""); got != "fd:lock:order" {
		t.Fatalf("lock key should skip empty parts, got %s", got)
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
