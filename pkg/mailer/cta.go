package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ctaPrefix opens a call-to-action link: [!cta|Label](https://example.com)
const ctaPrefix = "[!cta|"

// ctaClass is the CSS class emitted on call-to-action anchors. The sanitizer
// allows exactly this class on links.
const ctaClass = "cta"

// KindCTA is the node kind for CTANode.
var KindCTA = ast.NewNodeKind("CTA")

// CTANode is a link rendered as a button.
type CTANode struct {
	ast.BaseInline
	URL   []byte
	Label []byte
}

// Kind implements ast.Node.
func (n *CTANode) Kind() ast.NodeKind { return KindCTA }

// Dump implements ast.Node.
func (n *CTANode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"URL":   string(n.URL),
		"Label": string(n.Label),
	}, nil)
}

type ctaParser struct{}

func (ctaParser) Trigger() []byte { return []byte{'['} }

func (ctaParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, []byte(ctaPrefix)) {
		return nil
	}

	rest := line[len(ctaPrefix):]
	labelEnd := bytes.IndexByte(rest, ']')
	if labelEnd < 0 || labelEnd+1 >= len(rest) || rest[labelEnd+1] != '(' {
		return nil
	}

	urlPart := rest[labelEnd+2:]
	urlEnd := bytes.IndexByte(urlPart, ')')
	if urlEnd < 0 {
		return nil
	}

	block.Advance(len(ctaPrefix) + labelEnd + 2 + urlEnd + 1)

	return &CTANode{
		Label: rest[:labelEnd],
		URL:   bytes.TrimSpace(urlPart[:urlEnd]),
	}
}

type ctaRenderer struct {
	html.Config
}

func (r *ctaRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindCTA, r.render)
}

func (r *ctaRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*CTANode)
	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.URL, true)))
	_, _ = w.WriteString(`" class="` + ctaClass + `">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)

	return ast.WalkContinue, nil
}

type ctaExtension struct{}

func (ctaExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(ctaParser{}, 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&ctaRenderer{Config: html.NewConfig()}, 50),
	))
}

// CTAExtension returns a goldmark extension rendering [!cta|Label](URL) as
// an anchor with class "cta".
func CTAExtension() goldmark.Extender {
	return ctaExtension{}
}
