package testhelpers

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

// TemplateRenderer provides utilities for testing templ components
type TemplateRenderer struct {
	t      *testing.T
	buffer *bytes.Buffer
	html   string
}

// NewTemplateRenderer creates a new template renderer for testing
func NewTemplateRenderer(t *testing.T) *TemplateRenderer {
	return &TemplateRenderer{
		t:      t,
		buffer: &bytes.Buffer{},
	}
}

// Render renders a templ component and stores the HTML
func (r *TemplateRenderer) Render(component templ.Component) *TemplateRenderer {
	return r.RenderWithChildren(component, nil)
}

// RenderWithChildren renders a layout component around children
func (r *TemplateRenderer) RenderWithChildren(component, children templ.Component) *TemplateRenderer {
	r.buffer.Reset()
	ctx := context.Background()
	if children != nil {
		ctx = templ.WithChildren(ctx, children)
	}
	if err := component.Render(ctx, r.buffer); err != nil {
		r.t.Fatalf("Failed to render template: %v", err)
	}
	r.html = r.buffer.String()
	return r
}

// GetHTML returns the rendered HTML
func (r *TemplateRenderer) GetHTML() string {
	return r.html
}

// AssertContains checks if the rendered HTML contains a substring
func (r *TemplateRenderer) AssertContains(substring string) *TemplateRenderer {
	if !strings.Contains(r.html, substring) {
		r.t.Errorf("Expected HTML to contain %q, but it didn't.\nHTML: %s", substring, r.html)
	}
	return r
}

// AssertNotContains checks if the rendered HTML does not contain a substring
func (r *TemplateRenderer) AssertNotContains(substring string) *TemplateRenderer {
	if strings.Contains(r.html, substring) {
		r.t.Errorf("Expected HTML not to contain %q, but it did.\nHTML: %s", substring, r.html)
	}
	return r
}

// AssertHasElement checks if the HTML contains a specific element
func (r *TemplateRenderer) AssertHasElement(tagName string) *TemplateRenderer {
	if r.CountElements(tagName) == 0 {
		r.t.Errorf("Expected to find element <%s>, but didn't find it.\nHTML: %s", tagName, r.html)
	}
	return r
}

// AssertHasElementWithID checks if the HTML contains an element with a specific ID
func (r *TemplateRenderer) AssertHasElementWithID(id string) *TemplateRenderer {
	if !strings.Contains(r.html, `id="`+id+`"`) {
		r.t.Errorf("Expected to find element with id=%q, but didn't find it.\nHTML: %s", id, r.html)
	}
	return r
}

// CountElements counts how many times an element appears
func (r *TemplateRenderer) CountElements(tagName string) int {
	re := regexp.MustCompile(`<` + tagName + `[\s>]`)
	return len(re.FindAllString(r.html, -1))
}

// AssertElementCount checks if an element appears a specific number of times
func (r *TemplateRenderer) AssertElementCount(tagName string, expectedCount int) *TemplateRenderer {
	count := r.CountElements(tagName)
	if count != expectedCount {
		r.t.Errorf("Expected %d <%s> elements, but found %d.\nHTML: %s", expectedCount, tagName, count, r.html)
	}
	return r
}

// AssertNotEmpty checks that the rendered HTML is not empty
func (r *TemplateRenderer) AssertNotEmpty() *TemplateRenderer {
	if len(strings.TrimSpace(r.html)) == 0 {
		r.t.Error("Expected non-empty HTML, but got empty content")
	}
	return r
}

// AssertValid checks that every non-void tag is closed
func (r *TemplateRenderer) AssertValid() *TemplateRenderer {
	openTags := regexp.MustCompile(`<(\w+)(?:\s[^>]*)?>`)
	closeTags := regexp.MustCompile(`</(\w+)>`)

	tagCounts := make(map[string]int)
	for _, match := range openTags.FindAllStringSubmatch(r.html, -1) {
		if !voidElements[match[1]] {
			tagCounts[match[1]]++
		}
	}
	for _, match := range closeTags.FindAllStringSubmatch(r.html, -1) {
		tagCounts[match[1]]--
	}

	for tag, count := range tagCounts {
		if count != 0 {
			r.t.Errorf("Mismatched tags: <%s> opened %d more times than closed", tag, count)
		}
	}
	return r
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}
