package validators

import (
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()
	slugRe   = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

const maxSlugLength = 100

// IsSubdomainLabel accepts one lowercase DNS label that is not reserved.
func IsSubdomainLabel(label string, reserved []string) bool {
	if label == "" || len(label) > 63 || strings.Contains(label, ".") {
		return false
	}
	if label != strings.ToLower(label) || slices.Contains(reserved, label) {
		return false
	}
	return validate.Var(label, "hostname_rfc1123") == nil
}

// IsCustomDomain accepts a lowercase multi-label hostname outside rootDomain.
func IsCustomDomain(host, rootDomain string) bool {
	if host == "" || host != strings.ToLower(host) || !strings.Contains(host, ".") {
		return false
	}
	if host == rootDomain || strings.HasSuffix(host, "."+rootDomain) {
		return false
	}
	return validate.Var(host, "fqdn") == nil
}

// IsMenuSlug accepts lowercase words joined by single hyphens.
func IsMenuSlug(slug string) bool {
	return len(slug) <= maxSlugLength && slugRe.MatchString(slug)
}
