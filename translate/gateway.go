package translate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrTranslationFailed is returned when every provider in the chain has
// been exhausted for one text. It is a per-record outcome, never fatal
// to the run: callers mark the record failed and move on.
var ErrTranslationFailed = errors.New("all translation providers failed")

// Options controls Gateway behavior. The zero value gets sane defaults.
type Options struct {
	// MaxRetries is the number of retries per provider call on top of
	// the initial attempt, with exponential backoff between attempts.
	// Default: 2.
	MaxRetries int
	// OfflineAfter is the number of consecutive all-provider failures
	// before the connectivity probe runs. 0 disables the probe.
	// Default: 3.
	OfflineAfter int
	// Probe overrides the connectivity check (tests). Default dials a
	// well-known public DNS endpoint.
	Probe func() bool
}

func (o *Options) effectiveMaxRetries() int {
	if o.MaxRetries > 0 {
		return o.MaxRetries
	}
	return 2
}

func (o *Options) effectiveOfflineAfter() int {
	if o.OfflineAfter > 0 {
		return o.OfflineAfter
	}
	return 3
}

// Gateway tries an ordered chain of providers for each request. The
// first provider returning a non-empty result wins; per-provider
// failures are logged and contained. After a streak of full failures it
// probes connectivity once and, when offline, fails remaining requests
// immediately instead of burning the full retry budget per record.
//
// Gateway is not safe for concurrent use; the batch orchestrator drives
// it sequentially.
type Gateway struct {
	providers    []Provider
	logger       *zap.Logger
	maxRetries   int
	offlineAfter int
	probe        func() bool

	failStreak int
	offline    bool
}

// NewGateway wires a provider chain. The provider order is the fallback
// priority order.
func NewGateway(providers []Provider, logger *zap.Logger, opts Options) *Gateway {
	probe := opts.Probe
	if probe == nil {
		probe = probeConnectivity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		providers:    providers,
		logger:       logger,
		maxRetries:   opts.effectiveMaxRetries(),
		offlineAfter: opts.effectiveOfflineAfter(),
		probe:        probe,
	}
}

// Offline reports whether the gateway has short-circuited into offline
// mode for the remainder of the run.
func (g *Gateway) Offline() bool { return g.offline }

// Translate converts text from one language to another through the
// provider chain. On full exhaustion the error wraps
// ErrTranslationFailed; context cancellation propagates as-is.
func (g *Gateway) Translate(ctx context.Context, text, from, to string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty text", ErrTranslationFailed)
	}
	if g.offline {
		return "", fmt.Errorf("%w: network unavailable", ErrTranslationFailed)
	}

	for _, p := range g.providers {
		result, err := g.callWithRetry(ctx, p, text, from, to)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			g.logger.Warn("translation provider failed",
				zap.String("provider", p.Name()),
				zap.Error(err))
			continue
		}
		if result != "" && result != text {
			g.failStreak = 0
			g.logger.Debug("translated",
				zap.String("provider", p.Name()),
				zap.String("original", text),
				zap.String("translated", result))
			return result, nil
		}
		g.logger.Warn("translation provider returned unusable result",
			zap.String("provider", p.Name()))
	}

	g.noteFullFailure()
	return "", fmt.Errorf("%w: %q", ErrTranslationFailed, truncate(text, 80))
}

// callWithRetry runs one provider with bounded exponential backoff
// (1s, 2s, 4s, ...) between attempts.
func (g *Gateway) callWithRetry(ctx context.Context, p Provider, text, from, to string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}

		result, err := p.Translate(ctx, text, from, to)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		g.logger.Debug("provider attempt failed",
			zap.String("provider", p.Name()),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return "", fmt.Errorf("after %d attempts: %w", g.maxRetries+1, lastErr)
}

// noteFullFailure tracks consecutive all-provider failures and flips
// into offline mode when the network itself is down, so a fully-offline
// run stays time-bounded instead of retrying every record at full cost.
func (g *Gateway) noteFullFailure() {
	g.failStreak++
	if g.offlineAfter <= 0 || g.failStreak < g.offlineAfter || g.offline {
		return
	}
	if g.probe() {
		// Network is fine, the services themselves refused; keep trying
		// but re-probe only after another full streak.
		g.failStreak = 0
		return
	}
	g.offline = true
	g.logger.Warn("network unreachable, failing remaining translations immediately",
		zap.Int("failure_streak", g.failStreak))
}

// probeConnectivity checks for a usable network path by dialing a
// well-known public DNS server.
func probeConnectivity() bool {
	conn, err := net.DialTimeout("tcp", "8.8.8.8:53", 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
