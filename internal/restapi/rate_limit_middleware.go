package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
	"gridline.opentransit.org/internal/clock"
	"gridline.opentransit.org/internal/models"
)

// rateLimitClient pairs a limiter with its last usage time so idle
// clients can be evicted without disturbing active ones.
type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // Unix nanoseconds
}

// RateLimitMiddleware enforces a per-API-key request budget.
type RateLimitMiddleware struct {
	limiters    map[string]*rateLimitClient
	mu          sync.RWMutex
	rateLimit   rate.Limit
	burstSize   int
	cleanupTick *time.Ticker
	exemptKeys  map[string]bool
	stopChan    chan struct{}
	stopOnce    sync.Once
	clock       clock.Clock
}

// NewRateLimitMiddleware creates the middleware. ratePerSecond is the
// per-key budget over interval; zero blocks everything and a negative
// value disables limiting. exemptKeys bypass the limiter entirely.
func NewRateLimitMiddleware(ratePerSecond int, interval time.Duration, exemptKeys []string, clock clock.Clock) *RateLimitMiddleware {
	var rateLimit rate.Limit
	switch {
	case ratePerSecond < 0:
		rateLimit = rate.Inf
	case ratePerSecond == 0:
		rateLimit = 0
	default:
		rateLimit = rate.Every(interval / time.Duration(ratePerSecond))
	}

	exemptMap := make(map[string]bool)
	for _, key := range exemptKeys {
		trimmedKey := strings.TrimSpace(key)
		if trimmedKey != "" {
			exemptMap[trimmedKey] = true
		}
	}

	middleware := &RateLimitMiddleware{
		limiters:    make(map[string]*rateLimitClient),
		rateLimit:   rateLimit,
		burstSize:   ratePerSecond,
		cleanupTick: time.NewTicker(5 * time.Minute),
		exemptKeys:  exemptMap,
		stopChan:    make(chan struct{}),
		clock:       clock,
	}

	go middleware.cleanup()

	return middleware
}

// Handler returns the HTTP middleware function.
func (rl *RateLimitMiddleware) Handler() func(http.Handler) http.Handler {
	return rl.rateLimitHandler
}

// getLimiter returns the limiter for the key, creating it on first
// sight, and refreshes the key's last-seen timestamp.
func (rl *RateLimitMiddleware) getLimiter(apiKey string) *rate.Limiter {
	rl.mu.RLock()
	if client, exists := rl.limiters[apiKey]; exists {
		client.lastSeen.Store(rl.clock.Now().UnixNano())
		rl.mu.RUnlock()
		return client.limiter
	}
	rl.mu.RUnlock()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Another goroutine might have created it while we waited.
	if client, exists := rl.limiters[apiKey]; exists {
		client.lastSeen.Store(rl.clock.Now().UnixNano())
		return client.limiter
	}

	limiter := rate.NewLimiter(rl.rateLimit, rl.burstSize)
	newClient := &rateLimitClient{limiter: limiter}
	newClient.lastSeen.Store(rl.clock.Now().UnixNano())
	rl.limiters[apiKey] = newClient

	return limiter
}

func (rl *RateLimitMiddleware) rateLimitHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.URL.Query().Get("key")
		if apiKey == "" {
			apiKey = "__no_key__"
		}

		if rl.exemptKeys[apiKey] {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(apiKey).Allow() {
			rl.sendRateLimitExceeded(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// sendRateLimitExceeded sends a 429 in the standard response envelope.
func (rl *RateLimitMiddleware) sendRateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	var retryAfter time.Duration
	switch rl.rateLimit {
	case 0:
		retryAfter = time.Hour
	case rate.Inf:
		retryAfter = time.Second
	default:
		retryAfter = time.Duration(1) / time.Duration(rl.rateLimit)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burstSize))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.WriteHeader(http.StatusTooManyRequests)

	errorResponse := models.ResponseModel{
		Code:        http.StatusTooManyRequests,
		CurrentTime: rl.clock.NowUnixMilli(),
		Text:        "rate limit exceeded",
		Version:     2,
		Data: models.EntryData{
			References: models.NewEmptyReferences(),
		},
	}

	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		slog.Error("failed to encode rate limit response", "error", err)
	}
}

// cleanupOnce evicts limiters idle longer than the threshold. Separated
// from the background loop so tests can trigger it synchronously.
func (rl *RateLimitMiddleware) cleanupOnce() {
	threshold := 10 * time.Minute

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()

	for key, client := range rl.limiters {
		if rl.exemptKeys[key] {
			continue
		}
		lastSeenNano := client.lastSeen.Load()
		if lastSeenNano == 0 {
			continue
		}
		if now.Sub(time.Unix(0, lastSeenNano)) > threshold {
			delete(rl.limiters, key)
		}
	}
}

func (rl *RateLimitMiddleware) cleanup() {
	for {
		select {
		case <-rl.cleanupTick.C:
			rl.cleanupOnce()
		case <-rl.stopChan:
			return
		}
	}
}

// Stop halts the background cleanup goroutine. Safe to call more than
// once; in-flight requests are unaffected.
func (rl *RateLimitMiddleware) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopChan)
		rl.cleanupTick.Stop()
	})
}
