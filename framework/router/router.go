package router

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"
)

var paramNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

type pathSegment struct {
	name    string
	isParam bool
}

type route struct {
	pattern     string
	segments    []pathSegment
	staticCount int
	shapeKey    string
}

type Match struct {
	Pattern string
	Params  map[string]string
}

func (m Match) Param(name string) (string, bool) {
	if m.Params == nil {
		return "", false
	}

	value, ok := m.Params[name]
	return value, ok
}

// Router matches request paths against bracket patterns such as
// "/note/[id]". Static segments win over params, then longer patterns win.
type Router struct {
	routes []route
}

func New(patterns []string) (*Router, error) {
	if len(patterns) == 0 {
		return nil, errors.New("no route patterns given")
	}

	routes := make([]route, 0, len(patterns))
	seenShape := make(map[string]string, len(patterns))

	for _, pattern := range patterns {
		parsed, err := parseRoute(pattern)
		if err != nil {
			return nil, err
		}

		if existing, ok := seenShape[parsed.shapeKey]; ok {
			return nil, fmt.Errorf("route pattern conflict: %q and %q", existing, parsed.pattern)
		}
		seenShape[parsed.shapeKey] = parsed.pattern
		routes = append(routes, parsed)
	}

	sort.Slice(routes, func(i int, j int) bool {
		left := routes[i]
		right := routes[j]

		if left.staticCount != right.staticCount {
			return left.staticCount > right.staticCount
		}
		if len(left.segments) != len(right.segments) {
			return len(left.segments) > len(right.segments)
		}
		return left.pattern < right.pattern
	})

	return &Router{routes: routes}, nil
}

func parseRoute(pattern string) (route, error) {
	parts := SplitPath(pattern)
	segments := make([]pathSegment, 0, len(parts))
	shapeParts := make([]string, 0, len(parts))
	staticCount := 0

	for _, part := range parts {
		name, isParam, err := parseSegment(part)
		if err != nil {
			return route{}, fmt.Errorf("route pattern %q: %w", pattern, err)
		}

		if isParam {
			segments = append(segments, pathSegment{name: name, isParam: true})
			shapeParts = append(shapeParts, ":")
			continue
		}

		segments = append(segments, pathSegment{name: part})
		shapeParts = append(shapeParts, part)
		staticCount++
	}

	return route{
		pattern:     "/" + strings.Join(parts, "/"),
		segments:    segments,
		staticCount: staticCount,
		shapeKey:    "/" + strings.Join(shapeParts, "/"),
	}, nil
}

func parseSegment(segment string) (string, bool, error) {
	if strings.HasPrefix(segment, "[") || strings.HasSuffix(segment, "]") {
		if !strings.HasPrefix(segment, "[") || !strings.HasSuffix(segment, "]") {
			return "", false, fmt.Errorf("invalid param segment %q", segment)
		}

		name := strings.TrimSpace(segment[1 : len(segment)-1])
		if !paramNamePattern.MatchString(name) {
			return "", false, fmt.Errorf("invalid param name %q", name)
		}
		return name, true, nil
	}

	if strings.ContainsAny(segment, "[]") {
		return "", false, fmt.Errorf("invalid static segment %q", segment)
	}

	return "", false, nil
}

// Match expects an escaped path; param values come back unescaped so that
// identifiers may carry reserved characters such as "/".
func (router *Router) Match(escapedPath string) (Match, bool) {
	requestSegments := SplitPath(escapedPath)

	for _, candidate := range router.routes {
		params, ok := matchSegments(candidate.segments, requestSegments)
		if !ok {
			continue
		}
		return Match{Pattern: candidate.pattern, Params: params}, true
	}

	return Match{}, false
}

// Pattern is a single parsed route pattern, for params parsers that run on
// every request.
type Pattern struct {
	parsed route
}

func Compile(pattern string) (*Pattern, error) {
	parsed, err := parseRoute(pattern)
	if err != nil {
		return nil, err
	}
	return &Pattern{parsed: parsed}, nil
}

func MustCompile(pattern string) *Pattern {
	compiled, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return compiled
}

func (p *Pattern) String() string {
	return p.parsed.pattern
}

func (p *Pattern) Match(escapedPath string) (map[string]string, bool) {
	return matchSegments(p.parsed.segments, SplitPath(escapedPath))
}

func MatchPathPattern(pattern string, escapedPath string) (map[string]string, bool) {
	compiled, err := Compile(pattern)
	if err != nil {
		return nil, false
	}

	return compiled.Match(escapedPath)
}

func matchSegments(segments []pathSegment, requestSegments []string) (map[string]string, bool) {
	if len(segments) != len(requestSegments) {
		return nil, false
	}

	var params map[string]string
	for idx, segment := range segments {
		requestValue := requestSegments[idx]
		if !segment.isParam {
			if segment.name != requestValue {
				return nil, false
			}
			continue
		}

		value, err := url.PathUnescape(requestValue)
		if err != nil {
			return nil, false
		}
		if params == nil {
			params = make(map[string]string, 2)
		}
		params[segment.name] = value
	}

	return params, true
}

func SplitPath(raw string) []string {
	cleaned := path.Clean("/" + strings.TrimSpace(raw))
	trimmed := strings.Trim(cleaned, "/")
	if trimmed == "" {
		return []string{}
	}

	return strings.Split(trimmed, "/")
}
