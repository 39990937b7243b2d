package fhestr

import "strings"

// The methods of Clear compute every engine operation on clear text. They
// define the expected results: decrypting an engine output must give what
// the Clear method with the same name returns.
//
// Two rules differ from the strings package: an empty pattern matches at
// every position from 0 through the length, so splitting "ab" by "" gives
// "", "a", "b", ""; and right-to-left splits search from the end, so
// "aaa" split right to left by "aa" gives "", "a".

// Len returns the length in bytes.
func (c Clear) Len() int { return len(c) }

// IsEmpty reports whether c is empty.
func (c Clear) IsEmpty() bool { return len(c) == 0 }

// Contains reports whether p occurs in c.
func (c Clear) Contains(p string) bool { return strings.Contains(string(c), p) }

// StartsWith reports whether c begins with p.
func (c Clear) StartsWith(p string) bool { return strings.HasPrefix(string(c), p) }

// EndsWith reports whether c ends with p.
func (c Clear) EndsWith(p string) bool { return strings.HasSuffix(string(c), p) }

// Find returns the offset of the first occurrence of p, or 0 and false.
func (c Clear) Find(p string) (int, bool) {
	i := strings.Index(string(c), p)
	if i < 0 {
		return 0, false
	}
	return i, true
}

// RFind returns the offset of the last occurrence of p, or 0 and false.
func (c Clear) RFind(p string) (int, bool) {
	i := strings.LastIndex(string(c), p)
	if i < 0 {
		return 0, false
	}
	return i, true
}

// StripPrefix removes p from the start of c, if present.
func (c Clear) StripPrefix(p string) (string, bool) {
	return strings.CutPrefix(string(c), p)
}

// StripSuffix removes p from the end of c, if present.
func (c Clear) StripSuffix(p string) (string, bool) {
	return strings.CutSuffix(string(c), p)
}

// SplitOnce splits around the first occurrence of p. When p does not occur
// it returns c, "" and false.
func (c Clear) SplitOnce(p string) (string, string, bool) {
	return strings.Cut(string(c), p)
}

// RSplitOnce splits around the last occurrence of p. When p does not occur
// it returns c, "" and false.
func (c Clear) RSplitOnce(p string) (string, string, bool) {
	s := string(c)
	i := strings.LastIndex(s, p)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(p):], true
}

func isASCIIWhitespace(r rune) bool {
	for _, b := range asciiWhitespace {
		if r == rune(b) {
			return true
		}
	}
	return false
}

// Trim removes leading and trailing ASCII whitespace.
func (c Clear) Trim() string { return strings.TrimFunc(string(c), isASCIIWhitespace) }

// TrimStart removes leading ASCII whitespace.
func (c Clear) TrimStart() string { return strings.TrimLeftFunc(string(c), isASCIIWhitespace) }

// TrimEnd removes trailing ASCII whitespace.
func (c Clear) TrimEnd() string { return strings.TrimRightFunc(string(c), isASCIIWhitespace) }

// matchIndices returns the starts of the non-overlapping occurrences of p,
// scanning forward, or backward when reverse is set. At most limit
// occurrences are returned; limit < 0 means no limit.
func (c Clear) matchIndices(p string, reverse bool, limit int) []int {
	s := string(c)
	var out []int
	if p == "" {
		for i := 0; i <= len(s) && limit != 0; i++ {
			pos := i
			if reverse {
				pos = len(s) - i
			}
			out = append(out, pos)
			limit--
		}
		return out
	}

	if reverse {
		for end := len(s); limit != 0; limit-- {
			i := strings.LastIndex(s[:end], p)
			if i < 0 {
				break
			}
			out = append(out, i)
			end = i
		}
		return out
	}
	for start := 0; limit != 0; limit-- {
		i := strings.Index(s[start:], p)
		if i < 0 {
			break
		}
		out = append(out, start+i)
		start += i + len(p)
	}
	return out
}

// splitN splits into at most n pieces; n < 0 means no limit.
func (c Clear) splitN(p string, n int, reverse bool) []string {
	if n == 0 {
		return nil
	}
	s := string(c)
	out := make([]string, 0)
	ms := c.matchIndices(p, reverse, n-1)
	if reverse {
		end := len(s)
		for _, m := range ms {
			out = append(out, s[m+len(p):end])
			end = m
		}
		return append(out, s[:end])
	}
	start := 0
	for _, m := range ms {
		out = append(out, s[start:m])
		start = m + len(p)
	}
	return append(out, s[start:])
}

// Split splits c by p, left to right.
func (c Clear) Split(p string) []string { return c.splitN(p, -1, false) }

// RSplit splits c by p, right to left.
func (c Clear) RSplit(p string) []string { return c.splitN(p, -1, true) }

// SplitN splits c by p into at most n pieces, left to right.
func (c Clear) SplitN(n int, p string) []string { return c.splitN(p, n, false) }

// RSplitN splits c by p into at most n pieces, right to left.
func (c Clear) RSplitN(n int, p string) []string { return c.splitN(p, n, true) }

// SplitTerminator is Split without a trailing empty piece.
func (c Clear) SplitTerminator(p string) []string {
	out := c.Split(p)
	if out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

// RSplitTerminator is RSplit without a leading empty piece.
func (c Clear) RSplitTerminator(p string) []string {
	out := c.RSplit(p)
	if out[0] == "" {
		out = out[1:]
	}
	return out
}

// SplitInclusive splits c by p, keeping each match at the end of its piece.
func (c Clear) SplitInclusive(p string) []string {
	s := string(c)
	out := make([]string, 0)
	start := 0
	for _, m := range c.matchIndices(p, false, -1) {
		out = append(out, s[start:m+len(p)])
		start = m + len(p)
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// SplitASCIIWhitespace returns the non-empty runs of non-whitespace bytes.
func (c Clear) SplitASCIIWhitespace() []string {
	return strings.FieldsFunc(string(c), isASCIIWhitespace)
}

// Replace replaces every non-overlapping occurrence of from with to.
func (c Clear) Replace(from, to string) string {
	return strings.ReplaceAll(string(c), from, to)
}

// ReplaceN replaces the first n non-overlapping occurrences of from with to.
func (c Clear) ReplaceN(from, to string, n int) string {
	return strings.Replace(string(c), from, to, n)
}

// Repeat returns c repeated n times.
func (c Clear) Repeat(n int) string { return strings.Repeat(string(c), n) }

// Concat returns c followed by b.
func (c Clear) Concat(b string) string { return string(c) + b }

// Compare returns -1, 0 or +1 by byte-wise lexicographic order.
func (c Clear) Compare(b string) int { return strings.Compare(string(c), b) }

// EqIgnoreCase reports equality after ASCII lowercasing.
func (c Clear) EqIgnoreCase(b string) bool { return c.ToLower() == Clear(b).ToLower() }

// ToUpper maps a-z to A-Z.
func (c Clear) ToUpper() string { return mapASCII(string(c), 'a', 'z', 256-caseDelta) }

// ToLower maps A-Z to a-z.
func (c Clear) ToLower() string { return mapASCII(string(c), 'A', 'Z', caseDelta) }

func mapASCII(s string, lo, hi, delta byte) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= lo && b[i] <= hi {
			b[i] += delta
		}
	}
	return string(b)
}
