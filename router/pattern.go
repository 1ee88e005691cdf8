// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import (
	"fmt"
	"strings"
)

// MaxSegments and MaxParams bound a single route pattern: both the path
// segments (literal or parameter) and the parameter segments within it. A route-builder phase run once at startup rejects anything past
// these bounds, so a live dispatch never has to guard against them.
const (
	MaxSegments = 16
	MaxParams   = 16
)

type segmentKind uint8

const (
	segLiteral segmentKind = iota
	segParam
)

type pathSegment struct {
	kind  segmentKind
	value string // literal text, or the parameter name for segParam
}

// PathPattern is a parsed, bounds-checked route path: a sequence of
// literal-or-parameter segments produced once by [ParsePattern] at
// route-table construction time. Every subsequent match against it touches
// only these pre-computed slices.
type PathPattern struct {
	segments     []pathSegment
	literalCount int
	paramCount   int
}

// ParsePattern parses a route path template such as "/users/{id}/posts"
// into a [PathPattern], validating it the way a route table is validated
// once at startup rather than on every request:
//   - the pattern must be non-empty and start with '/'
//   - no segment may be empty (no "//" or trailing '/')
//   - a "{name}" segment must have a non-empty name and a closing '}'
//   - the segment and parameter counts must each stay within
//     [MaxSegments] / [MaxParams]
//
// "/" itself is the valid empty-segment pattern matching only the root.
func ParsePattern(path string) (PathPattern, error) {
	if path == "" {
		return PathPattern{}, fmt.Errorf("router: route path cannot be empty")
	}
	if path[0] != '/' {
		return PathPattern{}, fmt.Errorf("router: route path must start with '/'")
	}
	if path == "/" {
		return PathPattern{}, nil
	}

	var pat PathPattern
	for _, raw := range strings.Split(path[1:], "/") {
		if raw == "" {
			return PathPattern{}, fmt.Errorf("router: empty path segment is not allowed in %q", path)
		}
		if len(pat.segments) >= MaxSegments {
			return PathPattern{}, fmt.Errorf("router: too many path segments in %q (max %d)", path, MaxSegments)
		}

		if raw[0] == '{' {
			if raw[len(raw)-1] != '}' {
				return PathPattern{}, fmt.Errorf("router: parameter segment %q must end with '}'", raw)
			}
			name := raw[1 : len(raw)-1]
			if name == "" {
				return PathPattern{}, fmt.Errorf("router: parameter name cannot be empty in %q", path)
			}
			if pat.paramCount >= MaxParams {
				return PathPattern{}, fmt.Errorf("router: too many path parameters in %q (max %d)", path, MaxParams)
			}
			pat.segments = append(pat.segments, pathSegment{kind: segParam, value: name})
			pat.paramCount++
		} else {
			pat.segments = append(pat.segments, pathSegment{kind: segLiteral, value: raw})
			pat.literalCount++
		}
	}

	return pat, nil
}

// MustParsePattern is [ParsePattern] for route tables built from constants
// known at compile time: it panics instead of returning an error, so an
// invalid pattern fails at startup rather than at dispatch.
func MustParsePattern(path string) PathPattern {
	p, err := ParsePattern(path)
	if err != nil {
		panic(err)
	}
	return p
}

// Specificity scores a pattern for ranking competing matches: purely
// literal segments always outscore a pattern with any parameter on the
// same path shape.
func (p PathPattern) Specificity() int {
	return p.literalCount*16 + (MaxSegments - p.paramCount)
}

// splitPath breaks a path into its '/'-separated segments, ignoring
// leading/repeated slashes, and reports overflow past [MaxSegments].
func splitPath(path string) (parts []string, overflow bool) {
	parts = make([]string, 0, MaxSegments)
	pos := 0
	for pos < len(path) {
		if path[pos] == '/' {
			pos++
			continue
		}
		next := strings.IndexByte(path[pos:], '/')
		if next < 0 {
			next = len(path)
		} else {
			next += pos
		}
		if len(parts) >= MaxSegments {
			return parts, true
		}
		parts = append(parts, path[pos:next])
		pos = next
	}
	return parts, false
}

// matchSegments binds parts against p's segments, writing parameter
// bindings into out on success. A length mismatch or literal mismatch
// fails the match; a parameter segment requires a non-empty part.
func (p PathPattern) matchSegments(parts []string, out *PathParams) bool {
	if len(p.segments) == 0 && len(parts) == 0 {
		return true
	}
	if len(parts) != len(p.segments) {
		return false
	}

	for i, seg := range p.segments {
		actual := parts[i]
		if seg.kind == segLiteral {
			if seg.value != actual {
				return false
			}
			continue
		}
		if actual == "" {
			return false
		}
		out.add(seg.value, actual)
	}
	return true
}
