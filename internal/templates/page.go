// Package templates fills HTML page templates with rendered markdown.
package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Placeholders substituted by Fill.
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

// ErrNoTitle is returned by ExtractTitle when the document has no h1 line.
var ErrNoTitle = errors.New("no h1 title found")

// DefaultPage is used when a site has no template file.
const DefaultPage = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{ Title }}</title>
</head>
<body>
{{ Content }}
</body>
</html>
`

// Page is an HTML template with title and content placeholders.
type Page struct {
	Name string
	Body string
}

// LoadTemplate reads and validates a page template file.
func LoadTemplate(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template file: %w", err)
	}

	page := &Page{Name: filepath.Base(path), Body: string(data)}
	if err := page.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return page, nil
}

// Default returns the built-in page template.
func Default() *Page {
	return &Page{Name: "default", Body: DefaultPage}
}

// Validate checks that both placeholders are present.
func (p *Page) Validate() error {
	if strings.TrimSpace(p.Body) == "" {
		return fmt.Errorf("template %s is empty", p.Name)
	}
	for _, ph := range []string{TitlePlaceholder, ContentPlaceholder} {
		if !strings.Contains(p.Body, ph) {
			return fmt.Errorf("template %s: missing placeholder %s", p.Name, ph)
		}
	}
	return nil
}

// Fill substitutes every placeholder occurrence in a single pass, so
// placeholders inside the title or content are left alone.
func (p *Page) Fill(title, content string) string {
	r := strings.NewReplacer(TitlePlaceholder, title, ContentPlaceholder, content)
	return r.Replace(p.Body)
}

// RewriteBasePath points root-relative href and src attributes at base.
// A base of "/" leaves the page unchanged.
func RewriteBasePath(html, base string) string {
	if base == "" || base == "/" {
		return html
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	html = strings.ReplaceAll(html, `href="/`, `href="`+base)
	return strings.ReplaceAll(html, `src="/`, `src="`+base)
}

// ExtractTitle returns the text of the first line starting with "# ".
func ExtractTitle(markdown string) (string, error) {
	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:]), nil
		}
	}
	return "", ErrNoTitle
}

// FallbackTitle derives a title from a file name:
// "my-first_post.md" becomes "My First Post".
func FallbackTitle(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	return cases.Title(language.English).String(name)
}
