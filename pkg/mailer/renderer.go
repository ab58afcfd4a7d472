package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"regexp"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// Renderer turns markdown templates with YAML frontmatter into HTML wrapped
// in an html/template layout, plus a plain-text alternative.
//
// Markdown output is sanitised before it reaches the layout. Template data
// is also exposed to the layout as .Data, where html/template escapes it;
// layouts should render untrusted values from there rather than interpolate
// them into markdown.
type Renderer struct {
	fs     fs.FS
	md     goldmark.Markdown
	policy *bluemonday.Policy

	templates map[string]*parsedTemplate
	layouts   map[string]*template.Template

	templateDir   string
	layoutDir     string
	defaultLayout string

	mu sync.RWMutex
}

type parsedTemplate struct {
	meta   map[string]any
	layout string
	body   *texttemplate.Template
	text   *texttemplate.Template // nil when there is no sibling .txt
}

// RendererConfig configures the renderer.
type RendererConfig struct {
	TemplateDir   string // Default: "."
	LayoutDir     string // Default: "layouts"
	DefaultLayout string // Default: "base.html"
}

// NewRenderer creates a renderer with default config.
func NewRenderer(filesystem fs.FS) *Renderer {
	return NewRendererWithConfig(filesystem, RendererConfig{})
}

// NewRendererWithConfig creates a renderer with custom config.
func NewRendererWithConfig(filesystem fs.FS, cfg RendererConfig) *Renderer {
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "."
	}
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}
	if cfg.DefaultLayout == "" {
		cfg.DefaultLayout = "base.html"
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(regexp.MustCompile("^" + ctaClass + "$")).OnElements("a")

	return &Renderer{
		fs:            filesystem,
		md:            goldmark.New(goldmark.WithExtensions(CTAExtension())),
		policy:        policy,
		templates:     make(map[string]*parsedTemplate),
		layouts:       make(map[string]*template.Template),
		templateDir:   cfg.TemplateDir,
		layoutDir:     cfg.LayoutDir,
		defaultLayout: cfg.DefaultLayout,
	}
}

// RenderResult holds a rendered message.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string
}

// Render executes templateName with data and wraps it in a layout.
// Layout resolution: layout argument, then the template's "Layout"
// frontmatter key, then the configured default.
func (r *Renderer) Render(layout, templateName string, data any) (*RenderResult, error) {
	tpl, err := r.template(templateName)
	if err != nil {
		return nil, err
	}

	var markdown bytes.Buffer
	if err := tpl.body.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %v", ErrRenderFailed, templateName, err)
	}

	var converted bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &converted); err != nil {
		return nil, fmt.Errorf("%w: convert markdown: %v", ErrRenderFailed, err)
	}
	content := r.policy.SanitizeBytes(converted.Bytes())

	text := markdown.String()
	if tpl.text != nil {
		var buf bytes.Buffer
		if err := tpl.text.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("%w: execute text alternative: %v", ErrRenderFailed, err)
		}
		text = buf.String()
	}

	if layout == "" {
		layout = tpl.layout
	}
	if layout == "" {
		layout = r.defaultLayout
	}

	lt, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := lt.Execute(&out, map[string]any{
		"Content":  template.HTML(content), //nolint:gosec // sanitised above
		"Metadata": tpl.meta,
		"Data":     data,
	}); err != nil {
		return nil, fmt.Errorf("%w: execute layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &RenderResult{
		HTML:     out.String(),
		Text:     text,
		Metadata: tpl.meta,
	}, nil
}

func (r *Renderer) template(name string) (*parsedTemplate, error) {
	r.mu.RLock()
	tpl, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if tpl, ok := r.templates[name]; ok {
		return tpl, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	body, err := texttemplate.New(name).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrRenderFailed, name, err)
	}

	tpl = &parsedTemplate{
		meta:   parsed.Metadata,
		layout: parsed.stringMeta("Layout"),
		body:   body,
	}

	textName := strings.TrimSuffix(name, path.Ext(name)) + ".txt"
	textContent, err := fs.ReadFile(r.fs, path.Join(r.templateDir, textName))
	switch {
	case err == nil:
		if tpl.text, err = texttemplate.New(textName).Parse(string(textContent)); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrRenderFailed, textName, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: read %s: %v", ErrRenderFailed, textName, err)
	}

	r.templates[name] = tpl
	return tpl, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	lt, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return lt, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if lt, ok := r.layouts[name]; ok {
		return lt, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	lt, err = template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse layout %s: %v", ErrRenderFailed, name, err)
	}

	r.layouts[name] = lt
	return lt, nil
}
