package template

import (
	"fmt"
	"strings"

	"github.com/GhostKellz/ripple/pkg/rerr"
)

// TemplatePlan is the result of compiling a template literal: static_parts
// has length len(Placeholders)+1, and rendering interleaves them as
// StaticParts[0], values[0], StaticParts[1], values[1], ..., StaticParts[n].
type TemplatePlan struct {
	StaticParts  []string
	Placeholders []string
}

// PlaceholderCount returns the number of dynamic slots in the plan.
func (p *TemplatePlan) PlaceholderCount() int {
	return len(p.Placeholders)
}

// Compile scans src for `{{ name }}` placeholders and splits it into a
// TemplatePlan. Placeholder names are trimmed of ASCII whitespace. A lone
// "{" not starting a "{{", an unclosed "{{", or a "}" or "}}" with no
// matching "{{" is reported as InvalidMarkup.
func Compile(src string) (*TemplatePlan, error) {
	plan := &TemplatePlan{}
	rest := src

	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			if err := checkStaticBraces(src, rest, rest); err != nil {
				return nil, err
			}
			plan.StaticParts = append(plan.StaticParts, rest)
			return plan, nil
		}

		close := strings.Index(rest[open+2:], "}}")
		if close < 0 {
			offset := len(src) - len(rest) + open
			return nil, rerr.Newf(rerr.InvalidMarkup, "unclosed placeholder", fmt.Sprintf("offset %d", offset))
		}
		close += open + 2

		if err := checkStaticBraces(src, rest, rest[:open]); err != nil {
			return nil, err
		}
		plan.StaticParts = append(plan.StaticParts, rest[:open])
		name := strings.TrimSpace(rest[open+2 : close])
		if name == "" {
			offset := len(src) - len(rest) + open
			return nil, rerr.Newf(rerr.InvalidMarkup, "empty placeholder", fmt.Sprintf("offset %d", offset))
		}
		plan.Placeholders = append(plan.Placeholders, name)

		rest = rest[close+2:]
	}
}

// checkStaticBraces rejects a stray "{" or "}" in a static run of text.
// part is always a substring of src that does not contain a "{{" (the
// caller has already carved those out), so any brace left in it has no
// matching partner and can never be part of a real placeholder. part is
// offset within src by the position of rest, the not-yet-consumed
// remainder Compile is scanning.
func checkStaticBraces(src, rest, part string) error {
	if idx := strings.IndexAny(part, "{}"); idx >= 0 {
		offset := len(src) - len(rest) + idx
		return rerr.Newf(rerr.InvalidMarkup, "unmatched brace in static text", fmt.Sprintf("offset %d", offset))
	}
	return nil
}

// Render concatenates a plan's static parts and the supplied dynamic values
// in order. len(values) must equal plan.PlaceholderCount(); a mismatch
// fails with MismatchedValues.
func Render(plan *TemplatePlan, values []string) (string, error) {
	if len(values) != plan.PlaceholderCount() {
		return "", rerr.Newf(rerr.MismatchedValues, "mismatched dynamic value count", fmt.Sprintf("want %d got %d", plan.PlaceholderCount(), len(values)))
	}

	var b strings.Builder
	for i, part := range plan.StaticParts {
		b.WriteString(part)
		if i < len(values) {
			b.WriteString(values[i])
		}
	}
	return b.String(), nil
}
