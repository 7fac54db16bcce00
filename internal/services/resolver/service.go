// Package resolver provides the advisory hostname-to-IP lookup.
package resolver

import (
	"context"
	"net"

	"github.com/rs/zerolog"
)

// UnknownAddress is reported when the forward lookup fails. The lookup
// is display-only; a failure never blocks the remote command.
const UnknownAddress = "unknown"

// Service defines the interface for host resolution.
type Service interface {
	Resolve(ctx context.Context, host string) string
}

// LookupFunc performs a forward name lookup. It matches the signature
// of net.Resolver.LookupHost so tests can substitute their own.
type LookupFunc func(ctx context.Context, host string) ([]string, error)

// Impl implements the resolver Service interface.
type Impl struct {
	lookup LookupFunc
	logger zerolog.Logger
}

// New creates a new resolver service using the system resolver.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		lookup: net.DefaultResolver.LookupHost,
		logger: logger,
	}
}

// NewWithLookup creates a new resolver service with a custom lookup (for testing).
func NewWithLookup(logger zerolog.Logger, lookup LookupFunc) *Impl {
	return &Impl{
		lookup: lookup,
		logger: logger,
	}
}

// Resolve returns the first address of host, or UnknownAddress when the
// lookup fails for any reason. The underlying error never escapes.
func (s *Impl) Resolve(ctx context.Context, host string) string {
	addrs, err := s.lookup(ctx, host)
	if err != nil || len(addrs) == 0 {
		s.logger.Debug().Err(err).Str("host", host).Msg("forward lookup failed")
		return UnknownAddress
	}
	return addrs[0]
}
