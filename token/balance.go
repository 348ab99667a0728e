package token

import "fmt"

// ScanGroup returns the offset one past the close delimiter matching the
// opener at off. d[off] must be '{' or '['. Backslash escapes the next
// byte; '%' starts an end-of-line comment in which delimiters do not
// count.
func ScanGroup(d []byte, off int) (int, error) {
	if off < 0 || off >= len(d) {
		return 0, fmt.Errorf("%w: offset %d", ErrScanStart, off)
	}
	var open, close byte
	switch d[off] {
	case '{':
		open, close = '{', '}'
	case '[':
		open, close = '[', ']'
	default:
		return 0, fmt.Errorf("%w: %q at offset %d", ErrScanStart, d[off], off)
	}
	depth := 0
	i := off
	for i < len(d) {
		switch d[i] {
		case '\\':
			i += 2
			continue
		case '%':
			for i < len(d) && d[i] != '\n' {
				i++
			}
			continue
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
		i++
	}
	return 0, fmt.Errorf("%w: %q opened at offset %d never closed", ErrUnbalanced, open, off)
}

// ScanGroupPlain is ScanGroup without end-of-line comment handling, for
// dialects where '%' is an ordinary byte.
func ScanGroupPlain(d []byte, off int) (int, error) {
	if off < 0 || off >= len(d) || d[off] != '{' {
		return 0, fmt.Errorf("%w: offset %d", ErrScanStart, off)
	}
	depth := 0
	i := off
	for i < len(d) {
		switch d[i] {
		case '\\':
			i += 2
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
		i++
	}
	return 0, fmt.Errorf("%w: %q opened at offset %d never closed", ErrUnbalanced, byte('{'), off)
}

// ScanMacro returns the offset one past the last argument of the macro
// whose backslash is at off. The scan consumes the macro name, then any
// run of balanced [..] and {..} argument groups, allowing horizontal
// whitespace between them. Used by reconstruction to recover the true
// original extent of a rewritten macro.
func ScanMacro(d []byte, off int) (int, error) {
	if off < 0 || off >= len(d) || d[off] != '\\' {
		return 0, fmt.Errorf("%w: no macro at offset %d", ErrScanStart, off)
	}
	i := off + 1
	if i < len(d) && !isMacroLetter(d[i]) {
		// single-char control sequence, e.g. \% or \{
		return i + 1, nil
	}
	for i < len(d) && isMacroLetter(d[i]) {
		i++
	}
	end := i
	for {
		j := end
		for j < len(d) && (d[j] == ' ' || d[j] == '\t') {
			j++
		}
		if j >= len(d) || (d[j] != '{' && d[j] != '[') {
			return end, nil
		}
		k, err := ScanGroup(d, j)
		if err != nil {
			return end, nil
		}
		end = k
	}
}

func isMacroLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
