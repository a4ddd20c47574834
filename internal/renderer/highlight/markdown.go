package highlight

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dshills/kedit/internal/engine/grapheme"
)

// DocumentHighlighter highlights a whole document at once and returns
// styled lines for the rows it recognises, keyed by row index. Rows absent
// from the result keep whatever styling they already had.
type DocumentHighlighter interface {
	HighlightDocument(lines []string, lang string, theme *Theme) (map[int]Line, error)
}

var metadataLine = regexp.MustCompile(`^@[A-Za-z0-9_-]+:`)

// Markdown is a DocumentHighlighter for markdown documents backed by
// goldmark.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a markdown document highlighter.
func NewMarkdown() *Markdown {
	return &Markdown{md: goldmark.New()}
}

// Supports reports whether lang names markdown.
func (m *Markdown) Supports(lang string) bool {
	switch strings.ToLower(strings.TrimPrefix(lang, ".")) {
	case "md", "markdown":
		return true
	}
	return false
}

// HighlightDocument parses lines as markdown and styles headings, emphasis,
// code, links, block quotes and "@key: value" metadata lines.
func (m *Markdown) HighlightDocument(lines []string, lang string, theme *Theme) (map[int]Line, error) {
	if !m.Supports(lang) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	doc := newDocument(lines)
	doc.markMetadata()

	root := m.md.Parser().Parse(text.NewReader(doc.src))
	quoteDepth := 0
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if _, ok := n.(*ast.Blockquote); ok {
			if entering {
				quoteDepth++
			} else {
				quoteDepth--
			}
			return ast.WalkContinue, nil
		}
		if !entering {
			return ast.WalkContinue, nil
		}

		if n.Type() == ast.TypeBlock && quoteDepth > 0 {
			doc.markBlockRows(n, TokenQuote)
		}

		switch node := n.(type) {
		case *ast.Heading:
			doc.markBlockRows(node, TokenHeading)
		case *ast.FencedCodeBlock:
			doc.markFenced(node)
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			doc.markBlockRows(node, TokenCodeBlock)
			return ast.WalkSkipChildren, nil
		case *ast.Emphasis:
			token := TokenEmphasis
			if node.Level >= 2 {
				token = TokenStrong
			}
			if lo, hi, ok := inlineExtent(node); ok {
				doc.mark(doc.widen(lo, "*_", node.Level), doc.extend(hi, "*_", node.Level), token)
			}
		case *ast.CodeSpan:
			if lo, hi, ok := inlineExtent(node); ok {
				doc.mark(doc.widen(lo, "`", -1), doc.extend(hi, "`", -1), TokenCode)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Link:
			if lo, hi, ok := inlineExtent(node); ok {
				doc.mark(doc.widen(lo, "[", 1), doc.linkEnd(hi), TokenLink)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	return doc.build(theme), nil
}

// run is a styled byte range within one row.
type run struct {
	lo, hi int
	token  TokenType
}

// document maps goldmark byte offsets back onto buffer rows.
type document struct {
	lines  []string
	starts []int
	src    []byte
	runs   map[int][]run
}

func newDocument(lines []string) *document {
	d := &document{
		lines:  lines,
		starts: make([]int, len(lines)),
		runs:   make(map[int][]run),
	}
	off := 0
	for i, l := range lines {
		d.starts[i] = off
		off += len(l) + 1
	}
	d.src = []byte(strings.Join(lines, "\n"))
	return d
}

// rowOf returns the row containing byte offset off.
func (d *document) rowOf(off int) int {
	row, found := slices.BinarySearch(d.starts, off)
	if !found {
		row--
	}
	return max(row, 0)
}

// mark styles the byte range [lo, hi) of the source, splitting it by row.
func (d *document) mark(lo, hi int, token TokenType) {
	if hi <= lo || len(d.lines) == 0 {
		return
	}
	for row := d.rowOf(lo); row < len(d.lines) && d.starts[row] < hi; row++ {
		start := d.starts[row]
		l := max(lo, start) - start
		h := min(hi, start+len(d.lines[row])) - start
		if h > l {
			d.runs[row] = append(d.runs[row], run{lo: l, hi: h, token: token})
		}
	}
}

// markRow styles an entire row.
func (d *document) markRow(row int, token TokenType) {
	if row < 0 || row >= len(d.lines) {
		return
	}
	if _, ok := d.runs[row]; !ok {
		d.runs[row] = nil
	}
	if n := len(d.lines[row]); n > 0 {
		d.runs[row] = append(d.runs[row], run{lo: 0, hi: n, token: token})
	}
}

// markBlockRows styles every row a block node's lines touch.
func (d *document) markBlockRows(n ast.Node, token TokenType) {
	segs := n.Lines()
	for i := range segs.Len() {
		d.markRow(d.rowOf(segs.At(i).Start), token)
	}
}

// markFenced styles the fences and the body of a fenced code block.
func (d *document) markFenced(n *ast.FencedCodeBlock) {
	segs := n.Lines()
	open := -1
	if n.Info != nil {
		open = d.rowOf(n.Info.Segment.Start)
	}

	last := -1
	for i := range segs.Len() {
		row := d.rowOf(segs.At(i).Start)
		if open < 0 && i == 0 {
			open = row - 1
		}
		d.markRow(row, TokenCodeBlock)
		last = row
	}

	if open >= 0 && isFence(d.line(open)) {
		d.markRow(open, TokenCodeFence)
	}
	if last < 0 {
		last = open
	}
	if last >= 0 && last+1 < len(d.lines) && isFence(d.line(last+1)) {
		d.markRow(last+1, TokenCodeFence)
	}
}

func (d *document) line(row int) string {
	if row < 0 || row >= len(d.lines) {
		return ""
	}
	return d.lines[row]
}

// markMetadata styles "@key: value" lines.
func (d *document) markMetadata() {
	for row, l := range d.lines {
		loc := metadataLine.FindStringIndex(l)
		if loc == nil {
			continue
		}
		d.runs[row] = append(d.runs[row], run{lo: 0, hi: loc[1], token: TokenMetadataKey})
		if loc[1] < len(l) {
			d.runs[row] = append(d.runs[row], run{lo: loc[1], hi: len(l), token: TokenMetadataValue})
		}
	}
}

// widen moves lo left over up to limit delimiter bytes from set, on the
// same row. A negative limit is unbounded.
func (d *document) widen(lo int, set string, limit int) int {
	for n := 0; lo > 0 && (limit < 0 || n < limit); n++ {
		c := d.src[lo-1]
		if c == '\n' || !strings.ContainsRune(set, rune(c)) {
			break
		}
		lo--
	}
	return lo
}

// extend moves hi right over up to limit delimiter bytes from set, on the
// same row. A negative limit is unbounded.
func (d *document) extend(hi int, set string, limit int) int {
	for n := 0; hi < len(d.src) && (limit < 0 || n < limit); n++ {
		c := d.src[hi]
		if c == '\n' || !strings.ContainsRune(set, rune(c)) {
			break
		}
		hi++
	}
	return hi
}

// linkEnd returns the offset just past the "](destination)" that follows a
// link label ending at hi.
func (d *document) linkEnd(hi int) int {
	rest := d.src[hi:]
	if nl := slices.Index(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	if len(rest) < 2 || rest[0] != ']' || rest[1] != '(' {
		return hi
	}
	if end := slices.Index(rest, ')'); end >= 0 {
		return hi + end + 1
	}
	return hi
}

// build turns the collected runs into styled lines. Later runs are merged
// over earlier ones.
func (d *document) build(theme *Theme) map[int]Line {
	out := make(map[int]Line, len(d.runs))
	for row, runs := range d.runs {
		var line Line
		for _, seg := range grapheme.Segments(d.lines[row]) {
			style := theme.Text
			for _, r := range runs {
				if seg.Byte >= r.lo && seg.Byte < r.hi {
					style = style.Merge(theme.StyleForToken(r.token))
				}
			}
			line = line.Append(style, seg.Cluster)
		}
		out[row] = line
	}
	return out
}

// inlineExtent returns the byte range covered by the text descendants of n.
func inlineExtent(n ast.Node) (lo, hi int, ok bool) {
	lo, hi = -1, -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, isText := c.(*ast.Text); isText && entering {
			if lo < 0 || t.Segment.Start < lo {
				lo = t.Segment.Start
			}
			hi = max(hi, t.Segment.Stop)
		}
		return ast.WalkContinue, nil
	})
	return lo, hi, lo >= 0 && hi > lo
}

func isFence(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}
