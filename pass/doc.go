// Package pass implements the tree-rewriting pipeline over parsed
// documents.
//
// A pass is a named, idempotent rewrite rule. Passes are local: each one
// inspects a node and at most its attached argument children, never
// distant parts of the tree. An unmatched pattern is a no-op, never an
// error, so running passes cannot fail on valid documents.
//
// Every rewrite is recorded as a Fix carrying the pass id, a message,
// the position of the rewritten node and a textual patch of the change.
// Fix logs exist for audit and logging, not for program logic.
//
// Pipeline order matters and is declared explicitly by the caller or a
// pipeline config; Default returns the stock order. fix-passthrough runs
// before promote-link-citation so shorthand rewrites cannot shadow link
// anchors rewritten later.
package pass
