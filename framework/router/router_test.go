package router

import (
	"testing"
)

func TestRouterMatch(t *testing.T) {
	router, err := New([]string{
		"/",
		"/note/[id]",
		"/note/new",
		"/author/[slug]",
		"/author/[slug]/live",
	})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}

	tests := []struct {
		name            string
		path            string
		expectedPattern string
		expectedKey     string
		expectedVal     string
	}{
		{name: "root", path: "/", expectedPattern: "/"},
		{name: "root empty", path: "", expectedPattern: "/"},
		{name: "static precedence", path: "/note/new", expectedPattern: "/note/new"},
		{
			name:            "note param",
			path:            "/note/abc123",
			expectedPattern: "/note/[id]",
			expectedKey:     "id",
			expectedVal:     "abc123",
		},
		{
			name:            "note trailing slash",
			path:            "/note/abc123/",
			expectedPattern: "/note/[id]",
			expectedKey:     "id",
			expectedVal:     "abc123",
		},
		{
			name:            "escaped slash stays in param",
			path:            "/note/journal%2F2024",
			expectedPattern: "/note/[id]",
			expectedKey:     "id",
			expectedVal:     "journal/2024",
		},
		{
			name:            "escaped unicode",
			path:            "/note/%F0%9F%A5%BA",
			expectedPattern: "/note/[id]",
			expectedKey:     "id",
			expectedVal:     "🥺",
		},
		{
			name:            "nested param",
			path:            "/author/nina/live",
			expectedPattern: "/author/[slug]/live",
			expectedKey:     "slug",
			expectedVal:     "nina",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			match, ok := router.Match(tc.path)
			if !ok {
				t.Fatalf("expected a match for %q", tc.path)
			}
			if match.Pattern != tc.expectedPattern {
				t.Fatalf("expected pattern %q, got %q", tc.expectedPattern, match.Pattern)
			}
			if tc.expectedKey == "" {
				return
			}

			value, ok := match.Param(tc.expectedKey)
			if !ok {
				t.Fatalf("expected param %q", tc.expectedKey)
			}
			if value != tc.expectedVal {
				t.Fatalf("expected param %q=%q, got %q", tc.expectedKey, tc.expectedVal, value)
			}
		})
	}

	if _, ok := router.Match("/note"); ok {
		t.Fatal("did not expect /note without id to match")
	}
	if _, ok := router.Match("/note/a/b"); ok {
		t.Fatal("did not expect unescaped nested path to match")
	}
}

func TestRouterConflict(t *testing.T) {
	_, err := New([]string{"/note/[id]", "/note/[slug]"})
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
}

func TestRouterRejectsInvalidPatterns(t *testing.T) {
	for _, pattern := range []string{"/note/[id", "/note/[1id]", "/note/a[b]c"} {
		if _, err := New([]string{pattern}); err == nil {
			t.Fatalf("expected error for pattern %q", pattern)
		}
	}
}

func TestMatchPathPattern(t *testing.T) {
	params, ok := MatchPathPattern("/author/[slug]/live", "/author/nina/live")
	if !ok {
		t.Fatal("expected wildcard pattern to match")
	}
	if params["slug"] != "nina" {
		t.Fatalf("expected slug to be %q, got %q", "nina", params["slug"])
	}

	if _, ok = MatchPathPattern("/author/[slug]/live", "/author/nina"); ok {
		t.Fatal("expected mismatch for shorter path")
	}

	params, ok = MatchPathPattern("/", "/")
	if !ok {
		t.Fatal("expected root pattern to match root path")
	}
	if params != nil {
		t.Fatalf("expected no params for root, got %v", params)
	}
}

func TestCompiledPatternMatchesLikeRouter(t *testing.T) {
	compiled, err := Compile("/note/[id]/live")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if compiled.String() != "/note/[id]/live" {
		t.Fatalf("expected normalized pattern, got %q", compiled.String())
	}

	for i := 0; i < 3; i++ {
		params, ok := compiled.Match("/note/journal%2Fmay/live")
		if !ok {
			t.Fatal("expected compiled pattern to match")
		}
		if params["id"] != "journal/may" {
			t.Fatalf("expected unescaped id %q, got %q", "journal/may", params["id"])
		}
	}

	if _, ok := compiled.Match("/note/journal/live/extra"); ok {
		t.Fatal("expected mismatch for longer path")
	}

	if _, err := Compile("/note/[id"); err == nil {
		t.Fatal("expected compile error for unterminated param")
	}
}

func TestMustCompilePanicsOnInvalidPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid pattern")
		}
	}()
	MustCompile("/note/[1id]")
}
