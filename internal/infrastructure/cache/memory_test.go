package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/instadish/backend/internal/domain"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value interface{}
		want  interface{}
	}{
		{
			name:  "string round-trips unchanged",
			key:   "k1",
			value: "value",
			want:  "value",
		},
		{
			name:  "numbers come back as float64",
			key:   "k2",
			value: 42,
			want:  float64(42),
		},
		{
			name:  "structs come back as JSON maps",
			key:   "nutrition:chicken",
			value: domain.NutritionFacts{Calories: 165, Protein: 31},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cache.Set(ctx, tt.key, tt.value, time.Minute); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			got, err := cache.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}

			if tt.want != nil {
				if got != tt.want {
					t.Errorf("Get() = %v (%T), want %v", got, got, tt.want)
				}
				return
			}
			m, ok := got.(map[string]interface{})
			if !ok {
				t.Fatalf("Get() = %T, want map", got)
			}
			if m["protein"] != 31.0 {
				t.Errorf("protein = %v, want 31", m["protein"])
			}
		})
	}
}

func TestMemoryCache_SetRejectsUnencodableValues(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()

	if err := cache.Set(context.Background(), "ch", make(chan int), time.Minute); err == nil {
		t.Error("Set() error = nil, want encoding error")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Set(ctx, "short", "v", time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); err != domain.ErrCacheMiss {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
	if ok, _ := cache.Exists(ctx, "short"); ok {
		t.Error("Exists() = true after expiry")
	}
}

func TestMemoryCache_SweepRemovesExpired(t *testing.T) {
	cache := NewMemoryCacheWithSweep(5 * time.Millisecond)
	defer cache.Close()
	ctx := context.Background()

	cache.Set(ctx, "gone", "v", time.Millisecond)
	cache.Set(ctx, "kept", "v", time.Minute)

	deadline := time.Now().Add(time.Second)
	for cache.Size() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if cache.Size() != 1 {
		t.Errorf("Size() = %d, want 1 after sweep", cache.Size())
	}
}

func TestMemoryCache_DeleteExistsClear(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cache.Set(ctx, fmt.Sprintf("k%d", i), i, time.Minute)
	}

	if ok, err := cache.Exists(ctx, "k1"); err != nil || !ok {
		t.Errorf("Exists(k1) = %v, %v; want true", ok, err)
	}
	if err := cache.Delete(ctx, "k1"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if ok, _ := cache.Exists(ctx, "k1"); ok {
		t.Error("Exists(k1) = true after delete")
	}
	if cache.Size() != 2 {
		t.Errorf("Size() = %d, want 2", cache.Size())
	}

	cache.Clear()
	if cache.Size() != 0 {
		t.Errorf("Size() = %d, want 0 after clear", cache.Size())
	}
	if _, err := cache.Get(ctx, "k0"); err != domain.ErrCacheMiss {
		t.Errorf("Get(k0) error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	cache := NewMemoryCache()
	if err := cache.Close(); err != nil {
		t.Fatal(err)
	}
	if err := cache.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", id)
			if err := cache.Set(ctx, key, id, time.Minute); err != nil {
				t.Errorf("concurrent Set() error = %v", err)
			}
			if _, err := cache.Get(ctx, key); err != nil {
				t.Errorf("concurrent Get() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	if cache.Size() != 20 {
		t.Errorf("Size() = %d, want 20", cache.Size())
	}
}
