package identity

import (
	"context"
	"fmt"
	"regexp"
)

// Principal is the caller identity handed over by the identity provider.
// The service compares it and stores it, nothing more.
type Principal string

// Anonymous is the principal of a caller that did not authenticate.
const Anonymous Principal = "2vxsx-fae"

var principalPattern = regexp.MustCompile(`^[a-z0-9-]{1,63}$`)

func (p Principal) IsAnonymous() bool {
	return p == "" || p == Anonymous
}

func (p Principal) String() string {
	return string(p)
}

// Parse validates the textual form of a principal.
func Parse(text string) (Principal, error) {
	if !principalPattern.MatchString(text) {
		return "", fmt.Errorf("неверный формат principal: %q", text)
	}
	return Principal(text), nil
}

type contextKey struct{}

// WithPrincipal stores the caller in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the caller stored in ctx, Anonymous if there is none.
func FromContext(ctx context.Context) Principal {
	p, ok := ctx.Value(contextKey{}).(Principal)
	if !ok || p == "" {
		return Anonymous
	}
	return p
}
