package query

import (
	"strings"
	"time"

	"github.com/alex-user-go/tourguide/internal/cache"
)

type options struct {
	policy  cache.Policy
	enabled bool
}

// Option overrides the client defaults for one read.
type Option func(*options)

// WithStaleAfter sets how long fetched data counts as fresh.
func WithStaleAfter(d time.Duration) Option {
	return func(o *options) {
		o.policy.StaleAfter = d
	}
}

// WithRetention sets how long an unobserved entry is kept.
func WithRetention(d time.Duration) Option {
	return func(o *options) {
		o.policy.Retention = d
	}
}

// WithEnabled gates the read. A disabled read never touches the store or
// the producer.
func WithEnabled(enabled bool) Option {
	return func(o *options) {
		o.enabled = enabled
	}
}

// Enabled reports whether every required parameter is non-blank.
func Enabled(required ...string) bool {
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func (c *Client) options(opts []Option) options {
	o := options{policy: c.defaults, enabled: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
