// Package token provides byte-offset position tracking and balanced
// delimiter scanning shared by the format parsers and the reconstructor.
//
// PosDoc indexes the newlines of a raw input buffer so that any byte
// offset can be converted to a line/column pair in O(log n). Pos pairs an
// offset with its document for error messages.
//
// ScanGroup finds the end of a brace/bracket balanced region starting at
// a given offset, honoring backslash escapes and end-of-line comments;
// ScanGroupPlain does the same with '%' as an ordinary byte, and
// ScanMacro covers a whole macro with its attached argument groups.
package token
