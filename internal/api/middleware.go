package api

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jobpulse/jobpulse-api/internal/api/respond"
)

// --------------------------------------------------------------------------
// Request timing middleware
// --------------------------------------------------------------------------

// TimingMiddleware adds an X-Process-Time header to every response. Manual
// alert triggers run synchronously, so the header makes slow batches visible
// from the client side.
func TimingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)
		w.Header().Set("X-Process-Time", fmt.Sprintf("%.2fms", float64(elapsed.Microseconds())/1000.0))
	})
}

// --------------------------------------------------------------------------
// Rate limiting middleware (per-client token bucket)
// --------------------------------------------------------------------------

// maxTrackedClients bounds the limiter map; idle clients are pruned once the
// map grows past it.
const maxTrackedClients = 1024

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateGate struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rate    rate.Limit
	burst   int
	window  time.Duration
}

func newRateGate(requestsPerWindow int, window time.Duration) *rateGate {
	return &rateGate{
		clients: make(map[string]*clientLimiter),
		rate:    rate.Limit(float64(requestsPerWindow) / window.Seconds()),
		burst:   requestsPerWindow / 2,
		window:  window,
	}
}

// allow reports whether the client may proceed, creating its bucket on first
// contact.
func (g *rateGate) allow(client string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	cl, ok := g.clients[client]
	if !ok {
		if len(g.clients) >= maxTrackedClients {
			g.prune(now)
		}
		cl = &clientLimiter{limiter: rate.NewLimiter(g.rate, g.burst)}
		g.clients[client] = cl
	}
	cl.lastSeen = now
	return cl.limiter.Allow()
}

// prune drops clients idle long enough for their buckets to have refilled.
// Caller holds the lock.
func (g *rateGate) prune(now time.Time) {
	cutoff := now.Add(-2 * g.window)
	for client, cl := range g.clients {
		if cl.lastSeen.Before(cutoff) {
			delete(g.clients, client)
		}
	}
}

// clientIP extracts the client address, already rewritten by chi's RealIP
// middleware when the request came through a proxy.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || ip == "" {
		return r.RemoteAddr
	}
	return ip
}

// RateLimitMiddleware returns middleware that rate-limits by client IP.
// Limited requests get a 429 with a Retry-After of the configured window.
func RateLimitMiddleware(requestsPerWindow int, window time.Duration) func(http.Handler) http.Handler {
	gate := newRateGate(requestsPerWindow, window)
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !gate.allow(clientIP(r)) {
				w.Header().Set("Retry-After", retryAfter)
				respond.WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
