package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	LightStyle = "github"
	DarkStyle  = "monokai"
)

var (
	chromaCSSOnce sync.Once
	chromaCSS     template.CSS
)

// ChromaCSS returns the highlight stylesheet for LightStyle and DarkStyle,
// switched on prefers-color-scheme. It is built once.
func ChromaCSS() template.CSS {
	chromaCSSOnce.Do(func() {
		chromaCSS = template.CSS(StyleSheet(LightStyle, DarkStyle))
	})

	return chromaCSS
}

// StyleSheet builds highlight CSS for a light and a dark chroma style.
// Unknown style names fall back to chroma's default style.
func StyleSheet(light string, dark string) string {
	var out strings.Builder
	for _, scheme := range []struct{ media, style string }{
		{media: "light", style: light},
		{media: "dark", style: dark},
	} {
		css := styleCSS(scheme.style)
		if css == "" {
			continue
		}
		fmt.Fprintf(&out, "@media (prefers-color-scheme: %s) {\n%s}\n", scheme.media, css)
	}

	return out.String()
}

func styleCSS(name string) string {
	style := styles.Get(name)
	if style == nil {
		style = styles.Fallback
	}

	var buffer bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buffer, style); err != nil {
		return ""
	}

	return buffer.String()
}
