package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
)

// Resolver é o subconjunto de *net.Resolver usado na checagem de domínio.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return email[at+1:], true
}

// IsEmailFormatValid aceita apenas o endereço puro, sem nome de exibição,
// e exige um ponto no domínio.
func IsEmailFormatValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	domain, ok := emailDomain(email)
	return ok && strings.Contains(domain, ".")
}

// IsEmailDomainValid consulta MX e, na falta, A/AAAA do domínio.
func IsEmailDomainValid(ctx context.Context, r Resolver, email string) bool {
	domain, ok := emailDomain(email)
	if !ok {
		return false
	}

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	ips, err := r.LookupIPAddr(ctx, domain)
	return err == nil && len(ips) > 0
}
