package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/horseradish/horseradish-server/internal/api/http/handler"
	"github.com/horseradish/horseradish-server/internal/logger"
)

const (
	maxLimiterBuckets = 10000
	limiterIdleAfter  = 10 * time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit throttles requests per client IP with a token bucket. The client
// is the connection peer unless that peer is a trusted proxy.
type RateLimit struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	trusted []netip.Prefix
	now     func() time.Time
	logger  *logger.Logger
}

// RateLimitOption configures a RateLimit.
type RateLimitOption func(*RateLimit)

// WithTrustedProxies honours X-Forwarded-For on requests whose peer falls
// in one of prefixes.
func WithTrustedProxies(prefixes []netip.Prefix) RateLimitOption {
	return func(l *RateLimit) {
		l.trusted = prefixes
	}
}

// NewRateLimit allows perSecond requests per client with the given burst.
func NewRateLimit(perSecond float64, burst int, logger *logger.Logger, opts ...RateLimitOption) *RateLimit {
	l := &RateLimit{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Handle answers 429 once a client exhausts its bucket.
func (l *RateLimit) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := l.clientIP(r)
		if !l.allow(ip) {
			l.logger.Warn("Rate limit: request throttled",
				"path", r.URL.Path,
				"client_ip", ip)
			w.Header().Set("Retry-After", "1")
			handler.WriteMessage(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimit) allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= maxLimiterBuckets {
			l.evictIdle(now)
		}
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (l *RateLimit) evictIdle(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > limiterIdleAfter {
			delete(l.buckets, k)
		}
	}
}

// clientIP walks X-Forwarded-For from the right while hops are trusted and
// returns the first untrusted address.
func (l *RateLimit) clientIP(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}
	if !l.isTrusted(peer) {
		return peer
	}

	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		addr, err := netip.ParseAddr(hop)
		if err != nil {
			break
		}
		if !l.isTrusted(hop) {
			return addr.Unmap().String()
		}
		peer = addr.Unmap().String()
	}
	return peer
}

func (l *RateLimit) isTrusted(ip string) bool {
	if len(l.trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range l.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
