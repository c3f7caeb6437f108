package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/joestump/bookmarks-api/internal/logger"
)

func TestNew_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(ConnectOptions{Addr: mr.Addr()}, logger.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.CheckGet(t, "k", "v")
}

func TestNew_GivesUpAfterTimeout(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	start := time.Now()
	_, err := New(ConnectOptions{
		Addr:           addr,
		ConnectTimeout: 300 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
	}, logger.Nop())
	if err == nil {
		t.Fatal("expected error for unreachable redis")
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("gave up after %v, want close to the connect timeout", elapsed)
	}
}

func TestNew_RequiresAddr(t *testing.T) {
	if _, err := New(ConnectOptions{}, logger.Nop()); err == nil {
		t.Fatal("expected error for empty address")
	}
}
