package metrics

import (
	"context"
	"time"

	"github.com/blog-platform-api/internal/repository"
	"github.com/rs/zerolog"
)

// Collector periodically refreshes table row-count gauges
type Collector struct {
	repos    *repository.Repositories
	interval time.Duration
	log      zerolog.Logger
}

// NewCollector creates a Collector
func NewCollector(repos *repository.Repositories, interval time.Duration, log zerolog.Logger) *Collector {
	return &Collector{
		repos:    repos,
		interval: interval,
		log:      log.With().Str("component", "metrics_collector").Logger(),
	}
}

// Run refreshes gauges until the context is cancelled
func (c *Collector) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.collect(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.collect(ctx)
		}
	}
}

func (c *Collector) collect(ctx context.Context) {
	counters := map[string]func(context.Context) (int, error){
		"users":    c.repos.User.Count,
		"posts":    c.repos.Post.Count,
		"comments": c.repos.Comment.Count,
	}

	for table, count := range counters {
		n, err := count(ctx)
		if err != nil {
			c.log.Error().Err(err).Str("table", table).Msg("Failed to count rows")
			continue
		}
		SetTableCount(table, n)
	}
}
