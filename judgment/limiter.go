package judgment

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/time/rate"
)

// RateLimited begrenzt die Anfragen an einen Service. Es wird gewartet, nicht abgelehnt.
type RateLimited struct {
	next    Service
	limiter *rate.Limiter
}

// NewRateLimited erstellt einen Limiter mit Burst floor(rps), mindestens 1.
func NewRateLimited(next Service, requestsPerSecond float64) *RateLimited {
	burst := int(math.Max(1, math.Floor(requestsPerSecond)))
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Complete wartet auf ein Token und ruft dann den eigentlichen Service auf.
func (r *RateLimited) Complete(ctx context.Context, systemInstruction, userPayload string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	return r.next.Complete(ctx, systemInstruction, userPayload)
}
