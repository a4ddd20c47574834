// Package highlight turns lines of text into styled spans.
//
// Two highlighters are provided. Chroma colours a single line with a
// grammar selected by language tag and is used as the external grammar
// highlighter. Markdown parses a whole document and produces per-row
// overrides for structural constructs the grammar does not know about, such
// as headings, emphasis, fenced code and "@key: value" metadata lines.
//
// Both highlighters draw their colours from a Theme. Their output is a Line,
// an ordered list of spans whose texts concatenate to the source line, which
// the renderer clips to the visible column window with Line.Clip.
package highlight
