package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_SelectsDBAndServesSetNX(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := OpenRedis(mr.Addr(), 3)
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if got := c.Options().DB; got != 3 {
		t.Fatalf("DB = %d, want 3", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	first, err := c.SetNX(ctx, "idemp:post:/loans:u1:abc", "{}", time.Minute).Result()
	if err != nil || !first {
		t.Fatalf("first SETNX = %v, %v", first, err)
	}
	again, err := c.SetNX(ctx, "idemp:post:/loans:u1:abc", "{}", time.Minute).Result()
	if err != nil || again {
		t.Fatalf("second SETNX = %v, %v", again, err)
	}
	if !mr.DB(3).Exists("idemp:post:/loans:u1:abc") {
		t.Fatalf("key not written to db 3")
	}
}

func TestOpenRedis_UnreachableFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenRedis(addr, 0)
	if err == nil || !strings.Contains(err.Error(), addr) {
		t.Fatalf("want ping error naming %s, got %v", addr, err)
	}
}
