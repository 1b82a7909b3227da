package tenant

import (
	"errors"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrTenantNotResolvable = errors.New("tenant_not_resolvable")

// Kind says which restaurant column a Key is expected to match.
type Kind string

const (
	KindSubdomain    Kind = "subdomain"
	KindCustomDomain Kind = "custom_domain"
)

const maxLabelLength = 63

type Key struct {
	Value string `json:"value"`
	Kind  Kind   `json:"kind"`
}

func (k Key) String() string {
	return string(k.Kind) + ":" + k.Value
}

type Config struct {
	RootDomain         string
	DevOverrideHost    string
	ReservedSubdomains []string
	ReservedPathPrefix string
}

// Resolver maps request hosts to tenant keys. It holds no per-request state.
type Resolver struct {
	rootDomain   string
	override     *Key
	reserved     map[string]struct{}
	reservedPath string
	validate     *validator.Validate
}

func NewResolver(cfg Config) *Resolver {
	r := &Resolver{
		rootDomain:   normalizeHost(cfg.RootDomain),
		reserved:     make(map[string]struct{}, len(cfg.ReservedSubdomains)),
		reservedPath: strings.TrimRight(cfg.ReservedPathPrefix, "/"),
		validate:     validator.New(),
	}
	for _, label := range cfg.ReservedSubdomains {
		r.reserved[strings.ToLower(strings.TrimSpace(label))] = struct{}{}
	}
	if cfg.DevOverrideHost != "" {
		kind := KindSubdomain
		if strings.Contains(cfg.DevOverrideHost, ".") {
			kind = KindCustomDomain
		}
		r.override = &Key{Value: cfg.DevOverrideHost, Kind: kind}
	}
	return r
}

// Resolve returns the tenant addressed by host, or nil when the host belongs
// to the root domain itself. Malformed hosts yield ErrTenantNotResolvable.
func (r *Resolver) Resolve(host string) (*Key, error) {
	if r.override != nil {
		k := *r.override
		return &k, nil
	}

	h := normalizeHost(host)
	if h == "" || r.validate.Var(h, "hostname_rfc1123") != nil {
		return nil, ErrTenantNotResolvable
	}

	if h == r.rootDomain {
		return nil, nil
	}

	if label, ok := strings.CutSuffix(h, "."+r.rootDomain); ok {
		if _, reserved := r.reserved[label]; reserved {
			return nil, nil
		}
		if strings.Contains(label, ".") || len(label) > maxLabelLength {
			return nil, ErrTenantNotResolvable
		}
		return &Key{Value: label, Kind: KindSubdomain}, nil
	}

	return &Key{Value: h, Kind: KindCustomDomain}, nil
}

// IsReservedPath reports whether path falls under the internal routing
// namespace, which is never served on any host.
func (r *Resolver) IsReservedPath(path string) bool {
	if r.reservedPath == "" {
		return false
	}
	if path == r.reservedPath {
		return true
	}
	return strings.HasPrefix(path, r.reservedPath+"/")
}

// Overridden reports whether every host resolves to the dev override.
func (r *Resolver) Overridden() bool {
	return r.override != nil
}

func (r *Resolver) RootDomain() string {
	return r.rootDomain
}

func normalizeHost(host string) string {
	h := strings.ToLower(strings.TrimSpace(host))
	if h == "" {
		return ""
	}
	if strings.Contains(h, ":") {
		hostOnly, _, err := net.SplitHostPort(h)
		if err != nil {
			// keeps the colon so the hostname check rejects it
			return h
		}
		h = hostOnly
	}
	return strings.TrimSuffix(h, ".")
}
