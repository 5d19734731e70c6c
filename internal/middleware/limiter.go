package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"blogcms-be/internal/auth"
	"blogcms-be/internal/utils"

	"golang.org/x/time/rate"
)

type tier struct {
	name  string
	limit rate.Limit
	burst int
}

// retryAfter is the whole seconds until one token refills.
func (t tier) retryAfter() int {
	return int(math.Ceil(1 / float64(t.limit)))
}

// Rate limit tiers
var (
	// Login attempts: 5 per 15 minutes.
	tierAuth = tier{"auth", rate.Every(3 * time.Minute), 5}

	// Admin API: 100 per 15 minutes.
	tierAdmin = tier{"admin", rate.Every(9 * time.Second), 100}

	// Public reads.
	tierGeneral = tier{"general", rate.Limit(10), 20}

	// Trusted services presenting X-Service-Auth.
	tierInternal = tier{"internal", rate.Limit(100), 200}
)

const (
	visitorTTL      = 15 * time.Minute
	cleanupInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per client identity and tier.
type Limiter struct {
	internalKey string

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func NewLimiter(internalKey string) *Limiter {
	return &Limiter{
		internalKey: internalKey,
		visitors:    make(map[string]*visitor),
		now:         time.Now,
	}
}

// Run evicts idle visitors until ctx is cancelled.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(l.visitors, key)
		}
	}
}

func (l *Limiter) get(key string, t tier) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.limit, t.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = l.now()
	return v.limiter
}

func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := l.resolveTier(r)
		key := fmt.Sprintf("%s:%s", clientIdentity(r), t.name)

		if !l.get(key, t).Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(t.retryAfter()))
			utils.WriteJSONError(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) resolveTier(r *http.Request) tier {
	if l.internalKey != "" && r.Header.Get("X-Service-Auth") == l.internalKey {
		return tierInternal
	}

	switch {
	case r.URL.Path == "/api/auth/login":
		return tierAuth
	case strings.HasPrefix(r.URL.Path, "/api/admin/"):
		return tierAdmin
	default:
		return tierGeneral
	}
}

// clientIdentity prefers the authenticated user, then proxy-reported
// client addresses, then the socket peer.
func clientIdentity(r *http.Request) string {
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok && claims.UserID != "" {
		return "user:" + claims.UserID
	}
	if ip := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return "ip:" + ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return "ip:" + ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return "ip:" + ip
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
