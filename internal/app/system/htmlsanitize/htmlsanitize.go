// Package htmlsanitize strips unsafe markup from staff-entered rich text
// before it is stored. Event descriptions are the only rich-text field.
package htmlsanitize

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "sub", "sup", "mark")
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
	return p
}

// Sanitize returns the input with disallowed elements and attributes
// removed.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

// SanitizeHTML sanitizes and marks the result safe for direct template
// interpolation.
func SanitizeHTML(s string) template.HTML {
	return template.HTML(policy.Sanitize(s))
}
