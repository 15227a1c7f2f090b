package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-admin/api/responses"
	"github.com/angelmondragon/storefront-admin/api/validators"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
	"github.com/angelmondragon/storefront-admin/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// MutationRateLimitPolicy caps admin writes per client IP and per actor id.
type MutationRateLimitPolicy struct {
	window     time.Duration
	ipLimit    int
	actorLimit int
}

func NewMutationRateLimitPolicy(window time.Duration, ipLimit, actorLimit int) MutationRateLimitPolicy {
	return MutationRateLimitPolicy{window: window, ipLimit: ipLimit, actorLimit: actorLimit}
}

func (p MutationRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.actorLimit > 0)
}

// MutationRateLimit counts each request against the IP and, when the JSON
// body names an actorId, the actor. The body is restored for the handler.
// A nil store disables limiting.
func MutationRateLimit(policy MutationRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			if policy.ipLimit > 0 && ip != "" {
				if !checkLimit(ctx, logg, w, store, policy, "ip", ip, policy.ipLimit) {
					return
				}
			}

			if policy.actorLimit > 0 && r.Body != nil {
				body, err := validators.ReadBody(r)
				if err != nil {
					responses.WriteError(ctx, logg, w, err)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if actor := extractActorID(body); actor != "" {
					if !checkLimit(ctx, logg, w, store, policy, "actor", actor, policy.actorLimit) {
						return
					}
					ctx = WithActorID(ctx, actor)
					if logg != nil {
						ctx = logg.WithActorID(ctx, actor)
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func checkLimit(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, store rateLimiterStore, policy MutationRateLimitPolicy, scope, subject string, limit int) bool {
	allowed, count, err := store.FixedWindowAllow(ctx, "admin_mutation:"+scope+":"+subject, int64(limit), policy.window)
	if err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
		return false
	}
	if allowed {
		return true
	}

	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"scope":          scope,
			"subject":        subject,
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(policy.window.Seconds()),
		})
		logg.Warn(logCtx, "admin.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
	return false
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractActorID(payload []byte) string {
	var body struct {
		ActorID string `json:"actorId"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.ActorID)
}
