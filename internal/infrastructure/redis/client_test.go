package redis

import (
	"context"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClient(t *testing.T) {
	t.Run("connects and responds to ping", func(t *testing.T) {
		s := miniredis.RunT(t)
		defer s.Close()

		ctx := context.Background()
		client, err := NewClient(ctx, fmt.Sprintf("redis://%s", s.Addr()))
		if err != nil {
			t.Fatalf("expected client, got error: %v", err)
		}
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			t.Fatalf("ping failed: %v", err)
		}
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		if _, err := NewClient(context.Background(), "://bad-url"); err == nil {
			t.Fatal("expected error for invalid URL")
		}
	})

	t.Run("fails when the server is unreachable", func(t *testing.T) {
		s := miniredis.RunT(t)
		url := fmt.Sprintf("redis://%s", s.Addr())
		s.Close()

		if _, err := NewClient(context.Background(), url); err == nil {
			t.Fatal("expected ping error when server is down")
		}
	})
}
