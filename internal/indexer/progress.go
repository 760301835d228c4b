package indexer

import (
	"time"

	"go.uber.org/zap"
)

// syncProgress measures historical sync against the chain height seen when it started.
// Heights found on re-check extend the total.
type syncProgress struct {
	total     uint64
	processed uint64
	started   time.Time
}

func newSyncProgress(resume, height uint64, now time.Time) *syncProgress {
	p := &syncProgress{started: now}
	if resume <= height {
		p.total = height - resume + 1
	}
	return p
}

func (p *syncProgress) advance(blocks uint64) {
	p.processed += blocks
}

func (p *syncProgress) extend(blocks uint64) {
	p.total += blocks
}

func (p *syncProgress) remaining() uint64 {
	if p.processed >= p.total {
		return 0
	}
	return p.total - p.processed
}

func (p *syncProgress) percent() float64 {
	if p.total == 0 {
		return 100
	}
	return float64(p.processed) / float64(p.total) * 100
}

// eta is zero until a rate can be measured or when nothing remains.
func (p *syncProgress) eta(rate float64) time.Duration {
	remaining := p.remaining()
	if rate <= 0 || remaining == 0 {
		return 0
	}
	return time.Duration(float64(remaining) / rate * float64(time.Second)).Round(time.Second)
}

func (p *syncProgress) fields(now time.Time) []zap.Field {
	rate := throughput(p.processed, now.Sub(p.started))
	return []zap.Field{
		zap.Uint64("processed", p.processed),
		zap.Uint64("total", p.total),
		zap.Float64("percent", p.percent()),
		zap.Float64("blocks_per_second", rate),
		zap.Uint64("remaining", p.remaining()),
		zap.Duration("eta", p.eta(rate)),
	}
}
