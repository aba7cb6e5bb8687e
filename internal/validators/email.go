package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// DomainResolver is the subset of *net.Resolver used for email domain checks.
type DomainResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// EmailDomainChecker reports whether the domain of an email address can
// receive mail: it has an MX record or, failing that, resolves at all.
type EmailDomainChecker struct {
	Resolver DomainResolver
	Timeout  time.Duration
}

func NewEmailDomainChecker() *EmailDomainChecker {
	return &EmailDomainChecker{Resolver: net.DefaultResolver, Timeout: 3 * time.Second}
}

func (c *EmailDomainChecker) Valid(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	if mx, err := c.Resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := c.Resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}
