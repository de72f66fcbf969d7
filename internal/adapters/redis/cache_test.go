package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "pousada_manicaca/internal/adapters/redis"
	"pousada_manicaca/internal/domain"
)

func TestCache_SetGetDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	in := domain.GalleryImage{ID: 7, ImagePath: "praia/x.jpg", Category: "praia", DisplayOrder: 2}
	if err := c.Set(ctx, "gallery:7", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out domain.GalleryImage
	ok, err := c.Get(ctx, "gallery:7", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v", out)
	}

	if err := c.Del(ctx, "gallery:7"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, err = c.Get(ctx, "gallery:7", &out)
	if err != nil || ok {
		t.Fatalf("expected miss after del, ok=%v err=%v", ok, err)
	}
}

func TestCache_EntriesExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "img:hero.jpg", "data:image/jpeg;base64,xxx", 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var s string
	ok, err := c.Get(ctx, "img:hero.jpg", &s)
	if err != nil || ok {
		t.Fatalf("expected expired entry, ok=%v err=%v", ok, err)
	}
}
