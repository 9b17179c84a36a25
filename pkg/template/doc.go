// Package template compiles a marked-up string literal containing
// `{{ name }}` placeholders into a TemplatePlan: an alternating sequence of
// static text and placeholder names. The render program builder in
// pkg/render consumes a TemplatePlan; this package has no knowledge of
// elements, hosts, or hydration.
package template
