// Package ir provides the intermediate representation (IR) for parsed
// markup documents.
//
// # Overview
//
// The IR package defines the core data structures for representing
// structured-markup documents as a tree of nodes. All documents, whether
// LaTeX-style macro markup, lightweight block markup, or bibliographic
// records, are represented as ir.Node trees owned by an ir.Document.
//
// The IR works as a recursive tagged union structure, where the Kind field
// discriminates what a node means and which attribute keys it may carry.
//
// # Node Structure
//
// A Node represents a single syntactic element. Nodes carry:
//
//   - Kind: the discriminant (text run, macro, citation, environment, ...)
//   - Content: the semantic string (macro name, literal text, block type)
//   - StartPos, EndPos: byte offsets into the document's raw input
//   - Line, Column: derived position (1-based line, 0-based column)
//   - Attrs: an ordered key/value list whose permitted keys depend on Kind
//   - Children: ordered, exclusively owned child nodes
//
// Each node maintains parent-child relationships through Parent and
// ParentIndex, allowing navigation through the tree structure.
//
// # Position Invariants
//
// Every well-formed document satisfies, before and after any rewrite:
//
//  1. 0 <= StartPos <= EndPos <= len(Raw) for every node.
//  2. Sibling spans are non-overlapping and sorted by StartPos.
//  3. A child's span is contained within its parent's span.
//  4. Attrs only holds keys valid for the node's Kind.
//
// CheckDocument verifies all four; tests and debug builds call it after
// every rewrite.
//
// # Lifecycle
//
// A Document is created once by a format parser, mutated in place by zero
// or more rewrite passes, and consumed once by reconstruction. The raw
// input buffer is never mutated, only referenced by range.
//
// # Thread Safety
//
// Node and Document structures are not thread-safe. Each document is
// intended to be processed by one goroutine at a time; batch callers give
// every worker its own Document.
package ir
