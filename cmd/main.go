// Demo wiring a small cache the way a request cache would be wired:
// capacity one, two-second expiry, events rendered through zap.
package main

import (
	"time"

	"go.uber.org/zap"

	"expcache"
	"expcache/events"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cache, err := expcache.New[int, string]("demo", 2*time.Second, 1,
		expcache.WithSink(events.NewZapSink(logger)),
		expcache.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("building cache", zap.Error(err))
	}
	defer cache.Close()

	cache.Put(1, "HI")
	cache.Put(2, "DEMO")

	// Key 1 is already gone: capacity is a single entry.
	v, ok := cache.Get(1)
	logger.Info("get", zap.Int("key", 1), zap.String("value", v), zap.Bool("ok", ok))

	v, ok = cache.Get(2)
	logger.Info("get", zap.Int("key", 2), zap.String("value", v), zap.Bool("ok", ok))

	// Concurrent misses on one key cost one computation.
	computed, err := cache.GetOrCompute(3, func() (string, error) {
		logger.Info("computing value for key 3")
		return "COMPUTED", nil
	})
	logger.Info("get-or-compute", zap.Int("key", 3), zap.String("value", computed), zap.Error(err))

	logger.Info("waiting a moment...")
	time.Sleep(3 * time.Second)

	// Expired by now.
	v, ok = cache.Get(2)
	logger.Info("get", zap.Int("key", 2), zap.String("value", v), zap.Bool("ok", ok))

	// Key 3 expired too, but Size counts it until a lookup or the sweep
	// removes it: the count is an upper bound, not a live total.
	logger.Info("final size", zap.Int("size", cache.Size()))
}
