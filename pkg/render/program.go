package render

import (
	"strings"

	"github.com/GhostKellz/ripple/pkg/rerr"
	"github.com/GhostKellz/ripple/pkg/template"
)

// OpKind tags a RenderOp's variant, per spec §3's RenderOp tagged union.
type OpKind int

const (
	OpOpenElement OpKind = iota
	OpCloseElement
	OpSelfElement
	OpText
	OpDynamicText
	OpIslandStart
	OpIslandEnd
	OpPortalStart
	OpPortalEnd
	OpSuspenseStart
	OpSuspenseFallback
	OpSuspenseEnd
)

// RenderOp is one instruction in a Program. Only the fields relevant to
// Kind are populated; the rest are zero.
type RenderOp struct {
	Kind OpKind

	Tag         string // open_element, close_element, self_element
	HydrationID uint32 // open_element, self_element (1-based, document order)
	Literal     string // text
	SlotIndex   int    // dynamic_text
	Name        string // island_start, suspense_start
	Target      string // portal_start
}

// Program is the immutable linear op vector a template compiles to, ready
// for either Mount or Hydrate.
type Program struct {
	Ops            []RenderOp
	MaxHydrationID uint32
}

func isTagNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == ':'
}

// Build walks plan.StaticParts in document order, parsing each part's
// markup (tags, comments, text runs) and interleaving a dynamic_text op
// between consecutive parts for the placeholder between them, per spec
// §4.K. Hydration ids are assigned from a single counter shared across all
// parts, starting at 1.
func Build(plan *template.TemplatePlan) (*Program, error) {
	var ops []RenderOp
	var hidCounter uint32
	var tagStack []string

	for i, part := range plan.StaticParts {
		partOps, err := parseStaticPart(part, &hidCounter, &tagStack)
		if err != nil {
			return nil, err
		}
		ops = append(ops, partOps...)
		if i < len(plan.Placeholders) {
			ops = append(ops, RenderOp{Kind: OpDynamicText, SlotIndex: i})
		}
	}

	if len(tagStack) != 0 {
		return nil, rerr.Newf(rerr.InvalidMarkup, "unclosed element(s) at end of template", strings.Join(tagStack, ","))
	}

	return &Program{Ops: ops, MaxHydrationID: hidCounter}, nil
}

// parseStaticPart scans one static_parts entry, emitting ops for any
// elements, comments, and text runs it contains, and threading hidCounter/
// tagStack across calls since a tag opened in one part may close in a
// later one (a placeholder can sit inside element content).
func parseStaticPart(part string, hidCounter *uint32, tagStack *[]string) ([]RenderOp, error) {
	var ops []RenderOp
	i, n := 0, len(part)

	for i < n {
		if part[i] != '<' {
			j := strings.IndexByte(part[i:], '<')
			var text string
			if j < 0 {
				text = part[i:]
				i = n
			} else {
				text = part[i : i+j]
				i += j
			}
			if text != "" {
				ops = append(ops, RenderOp{Kind: OpText, Literal: text})
			}
			continue
		}

		if strings.HasPrefix(part[i:], "<!--") {
			end := strings.Index(part[i+4:], "-->")
			if end < 0 {
				return nil, rerr.New(rerr.InvalidMarkup, "unclosed comment")
			}
			content := strings.TrimSpace(part[i+4 : i+4+end])
			i = i + 4 + end + 3

			m := parseMarker(content)
			switch m.kind {
			case markerIslandStart:
				ops = append(ops, RenderOp{Kind: OpIslandStart, Name: m.payload})
			case markerIslandEnd:
				ops = append(ops, RenderOp{Kind: OpIslandEnd})
			case markerPortalStart:
				ops = append(ops, RenderOp{Kind: OpPortalStart, Target: m.payload})
			case markerPortalEnd:
				ops = append(ops, RenderOp{Kind: OpPortalEnd})
			case markerSuspenseStart:
				ops = append(ops, RenderOp{Kind: OpSuspenseStart, Name: m.payload})
			case markerSuspenseFallback:
				ops = append(ops, RenderOp{Kind: OpSuspenseFallback})
			case markerSuspenseEnd:
				ops = append(ops, RenderOp{Kind: OpSuspenseEnd})
			}
			continue
		}

		if i+1 < n && part[i+1] == '/' {
			j := strings.IndexByte(part[i:], '>')
			if j < 0 {
				return nil, rerr.New(rerr.InvalidMarkup, "unclosed closing tag")
			}
			tag := strings.TrimSpace(part[i+2 : i+j])
			i += j + 1

			if len(*tagStack) == 0 || (*tagStack)[len(*tagStack)-1] != tag {
				return nil, rerr.Newf(rerr.InvalidMarkup, "mismatched closing tag", tag)
			}
			*tagStack = (*tagStack)[:len(*tagStack)-1]
			ops = append(ops, RenderOp{Kind: OpCloseElement, Tag: tag})
			continue
		}

		tagStart := i + 1
		k := tagStart
		for k < n && isTagNameByte(part[k]) {
			k++
		}
		if k == tagStart {
			return nil, rerr.New(rerr.InvalidMarkup, "expected tag name after '<'")
		}
		tag := part[tagStart:k]

		j := k
		var inQuote byte
		for j < n {
			c := part[j]
			if inQuote != 0 {
				if c == inQuote {
					inQuote = 0
				}
				j++
				continue
			}
			if c == '\'' || c == '"' {
				inQuote = c
				j++
				continue
			}
			if c == '>' {
				break
			}
			j++
		}
		if j >= n {
			return nil, rerr.New(rerr.InvalidMarkup, "unclosed tag")
		}
		selfClose := j > k && part[j-1] == '/'
		i = j + 1

		*hidCounter++
		hid := *hidCounter
		if selfClose {
			ops = append(ops, RenderOp{Kind: OpSelfElement, Tag: tag, HydrationID: hid})
		} else {
			ops = append(ops, RenderOp{Kind: OpOpenElement, Tag: tag, HydrationID: hid})
			*tagStack = append(*tagStack, tag)
		}
	}

	return ops, nil
}
