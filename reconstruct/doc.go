// Package reconstruct regenerates source text from a document tree.
//
// Untouched nodes are emitted as verbatim byte ranges of the original
// input, so a document with no rewrites reconstructs byte-identically.
// Nodes touched by a pass are synthesized from their structured form
// instead; synthesis recurses, so a rewrite at any depth is reflected
// while untouched siblings still come from the raw buffer.
//
// A "processed through" cursor guarantees no byte range is emitted
// twice and that gaps between sibling spans (whitespace, punctuation
// outside any node) are filled verbatim. If position bookkeeping ever
// turns inconsistent the affected node falls back to its verbatim span
// and a diagnostic is recorded; reconstruction never fails a whole
// document.
package reconstruct
