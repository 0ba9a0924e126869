package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/finaly55/opti-credit/internal/simulation"
	"github.com/finaly55/opti-credit/pkg/constants"
	"github.com/finaly55/opti-credit/pkg/expenses"
	"go.uber.org/zap"
)

// Simulator memoizes a simulation.Runner. Cache failures are logged and the
// projection is computed directly.
type Simulator struct {
	next   simulation.Runner
	cache  Cache
	logger *zap.Logger
}

// NewSimulator wraps next with cache. A nil cache disables memoization.
func NewSimulator(logger *zap.Logger, next simulation.Runner, cache Cache) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{next: next, cache: cache, logger: logger}
}

// Run returns the cached projection for the inputs, computing and storing it
// on a miss.
func (s *Simulator) Run(params simulation.Params, totals expenses.Totals) simulation.Result {
	return s.RunContext(context.Background(), params, totals)
}

// RunContext is Run with a context bounding the cache round trips. A done
// context skips the cache.
func (s *Simulator) RunContext(ctx context.Context, params simulation.Params, totals expenses.Totals) simulation.Result {
	if s.cache == nil || ctx.Err() != nil {
		return s.next.Run(params, totals)
	}

	key, err := Key(params, totals)
	if err != nil {
		s.logger.Warn("unable to derive cache key",
			zap.String("op", "cache.Simulator.Run"),
			zap.Error(err),
		)
		return s.next.Run(params, totals)
	}

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var result simulation.Result
		if err := json.Unmarshal(cached, &result); err == nil && len(result.MonthlyData) == constants.HorizonMonths {
			s.logger.Debug("simulation served from cache",
				zap.String("op", "cache.Simulator.Run"),
				zap.String("key", key),
			)
			return result
		}
		s.logger.Warn("discarding unreadable cache entry",
			zap.String("op", "cache.Simulator.Run"),
			zap.String("key", key),
		)
	} else if !errors.Is(err, ErrMiss) {
		s.logger.Warn("cache lookup failed",
			zap.String("op", "cache.Simulator.Run"),
			zap.Error(err),
		)
	}

	result := s.next.Run(params, totals)

	encoded, err := json.Marshal(result)
	if err == nil {
		err = s.cache.Set(ctx, key, encoded)
	}
	if err != nil {
		s.logger.Warn("failed to store simulation in cache",
			zap.String("op", "cache.Simulator.Run"),
			zap.Error(fmt.Errorf("key %s: %w", key, err)),
		)
	}

	return result
}
