// Package parse turns raw markup text into ir.Document trees.
//
// Three dialects are supported: LaTeX-style macro/environment markup,
// a lightweight block-markup (Markdown subset), and BibTeX-style
// bibliographic records. All three parsers are pure functions of their
// input and never truncate it: every byte of the input is either covered
// by a node span or lies in a gap between sibling spans, so that
// reconstruction can reproduce the input exactly.
//
// Irrecoverable syntax (an unbalanced brace, an unterminated math span)
// yields an *Error carrying the offending byte offset. Recoverable
// defects are recorded as diagnostics on the returned document instead.
package parse
