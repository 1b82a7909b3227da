// Package web holds the embedded public site templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
)

//go:embed templates/*.tmpl
var files embed.FS

const (
	PageMenu     = "menu.tmpl"
	PageNotFound = "not_found.tmpl"
	PageError    = "error.tmpl"
)

var (
	hexColor   = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	blurDataRe = regexp.MustCompile(`^data:image/(webp|png|jpeg);base64,[A-Za-z0-9+/=]+$`)
)

// Templates parses every embedded template. It panics on a parse error,
// which can only come from a broken build.
func Templates() *template.Template {
	return template.Must(
		template.New("site").Funcs(template.FuncMap{
			"price":            menu.FormatPrice,
			"deref":            deref,
			"placeholderStyle": placeholderStyle,
		}).ParseFS(files, "templates/*.tmpl"),
	)
}

// Message is the model of the not-found and error pages.
type Message struct {
	Title    string
	Message  string
	Link     string
	LinkText string
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// placeholderStyle paints the accent color and blur placeholder behind an
// image while it loads. Values that do not look like what the upload
// pipeline produces are dropped.
func placeholderStyle(img *menu.Image) template.CSS {
	if img == nil {
		return ""
	}
	var parts []string
	if hexColor.MatchString(img.AccentColor) {
		parts = append(parts, "background-color:"+img.AccentColor)
	}
	if blurDataRe.MatchString(img.BlurPlaceholder) {
		parts = append(parts, fmt.Sprintf("background-image:url('%s')", img.BlurPlaceholder), "background-size:cover")
	}
	return template.CSS(strings.Join(parts, ";"))
}
