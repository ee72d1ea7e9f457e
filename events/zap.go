package events

import (
	"time"

	"go.uber.org/zap"
)

// ZapSink renders cache events as structured debug logs.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink builds a sink that logs every event at debug level.
// A nil logger yields a silent sink.
func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger}
}

func (s *ZapSink) Hit(key any) {
	s.logger.Debug("cache hit", zap.Any("key", key))
}

func (s *ZapSink) Miss(key any) {
	s.logger.Debug("cache miss", zap.Any("key", key))
}

func (s *ZapSink) Expired(key any) {
	s.logger.Debug("entry expired", zap.Any("key", key))
}

func (s *ZapSink) Reclaimed(key any) {
	s.logger.Debug("entry reclaimed", zap.Any("key", key))
}

func (s *ZapSink) Evicted(key any) {
	s.logger.Debug("entry evicted", zap.Any("key", key))
}

func (s *ZapSink) SweepScheduled(cache string) {
	s.logger.Debug("sweep scheduled", zap.String("cache", cache))
}

func (s *ZapSink) SweepStarted(cache string) {
	s.logger.Debug("sweep started", zap.String("cache", cache))
}

func (s *ZapSink) SweepFinished(cache string, took time.Duration, cleared int) {
	s.logger.Debug("sweep finished",
		zap.String("cache", cache),
		zap.Duration("took", took),
		zap.Int("cleared", cleared))
}

func (s *ZapSink) SweepStopped(cache string) {
	s.logger.Debug("sweep stopped", zap.String("cache", cache))
}
