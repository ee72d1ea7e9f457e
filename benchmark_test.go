package expcache_test

import (
	"fmt"
	"testing"
	"time"

	"expcache"
)

func newBenchmarkCache(b *testing.B) *expcache.Cache[string, int] {
	b.Helper()
	c, err := expcache.New[string, int]("bench", time.Minute, 100000, expcache.WithScheduler(newManualScheduler()))
	if err != nil {
		b.Fatalf("new: %v", err)
	}
	return c
}

func BenchmarkPut(b *testing.B) {
	c := newBenchmarkCache(b)
	defer c.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(fmt.Sprintf("key-%d", i), i)
	}
}

func BenchmarkGetHit(b *testing.B) {
	c := newBenchmarkCache(b)
	defer c.Close()

	c.Put("key", 42)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("key")
	}
}

func BenchmarkGetMiss(b *testing.B) {
	c := newBenchmarkCache(b)
	defer c.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(fmt.Sprintf("miss-%d", i))
	}
}

func BenchmarkParallelGet(b *testing.B) {
	c := newBenchmarkCache(b)
	defer c.Close()

	for i := 0; i < 1000; i++ {
		c.Put(fmt.Sprintf("key-%d", i), i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Get("key-42")
		}
	})
}
