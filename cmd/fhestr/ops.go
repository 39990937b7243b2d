package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ai8future/fhestr"
)

// inputs holds the textual arguments of one operation.
type inputs struct {
	Op       string `yaml:"op"`
	Str      string `yaml:"str"`
	StrPad   int    `yaml:"str_pad"`
	Pat      string `yaml:"pat"`
	PatPad   int    `yaml:"pat_pad"`
	ClearPat bool   `yaml:"clear_pat"`
	To       string `yaml:"to"`
	ToPad    int    `yaml:"to_pad"`
	Rhs      string `yaml:"rhs"`
	RhsPad   int    `yaml:"rhs_pad"`
	N        int    `yaml:"n"`
	Max      int    `yaml:"max"`
	EncN     bool   `yaml:"enc_n"`
}

// session holds the keys and engine of one CLI invocation.
type session struct {
	client *fhestr.ClientKey
	engine *fhestr.Engine

	// wire sends every encrypted subject through the transport encoding.
	wire bool
}

func (x *session) str(in *inputs) (fhestr.EncryptedString, error) {
	s, err := x.client.Encrypt(in.Str, in.StrPad)
	if err != nil || !x.wire {
		return s, err
	}
	data, err := x.engine.MarshalString(s)
	if err != nil {
		return s, err
	}
	return x.engine.UnmarshalString(data)
}

// operand encrypts text unless the pattern is requested in the clear.
func (x *session) operand(text string, pad int, clear bool) (fhestr.Pattern, error) {
	if clear {
		if err := fhestr.CheckASCII(text); err != nil {
			return nil, err
		}
		return fhestr.Clear(text), nil
	}
	return x.client.Encrypt(text, pad)
}

func (x *session) count(in *inputs) (fhestr.Count, error) {
	if in.N < 0 {
		return fhestr.Count{}, fmt.Errorf("n must not be negative")
	}
	if !in.EncN {
		return fhestr.ClearCount(uint16(in.N)), nil
	}
	return x.client.EncryptCount(in.N, max(in.Max, in.N))
}

type opFunc func(x *session, in *inputs) (got, want string, err error)

var ops = map[string]opFunc{
	"len": func(x *session, in *inputs) (string, string, error) {
		s, err := x.str(in)
		if err != nil {
			return "", "", err
		}
		n, err := x.client.DecryptNumber(x.engine.Len(s))
		return strconv.Itoa(n), strconv.Itoa(fhestr.Clear(in.Str).Len()), err
	},
	"is_empty": func(x *session, in *inputs) (string, string, error) {
		s, err := x.str(in)
		if err != nil {
			return "", "", err
		}
		return x.flag(x.engine.IsEmpty(s), fhestr.Clear(in.Str).IsEmpty())
	},
	"contains":    patternPredicate((*fhestr.Engine).Contains, fhestr.Clear.Contains),
	"starts_with": patternPredicate((*fhestr.Engine).StartsWith, fhestr.Clear.StartsWith),
	"ends_with":   patternPredicate((*fhestr.Engine).EndsWith, fhestr.Clear.EndsWith),
	"find":        patternIndex((*fhestr.Engine).Find, fhestr.Clear.Find),
	"rfind":       patternIndex((*fhestr.Engine).RFind, fhestr.Clear.RFind),
	"strip_prefix": patternStrip(func(e *fhestr.Engine, s fhestr.EncryptedString, p fhestr.Pattern) (fhestr.EncryptedString, fhestr.Flag) {
		return e.StripPrefix(s, p)
	}, fhestr.Clear.StripPrefix),
	"strip_suffix": patternStrip(func(e *fhestr.Engine, s fhestr.EncryptedString, p fhestr.Pattern) (fhestr.EncryptedString, fhestr.Flag) {
		return e.StripSuffix(s, p)
	}, fhestr.Clear.StripSuffix),
	"split_once": patternCut(func(e *fhestr.Engine, s fhestr.EncryptedString, p fhestr.Pattern) (fhestr.EncryptedString, fhestr.EncryptedString, fhestr.Flag) {
		return e.SplitOnce(s, p)
	}, fhestr.Clear.SplitOnce),
	"rsplit_once": patternCut(func(e *fhestr.Engine, s fhestr.EncryptedString, p fhestr.Pattern) (fhestr.EncryptedString, fhestr.EncryptedString, fhestr.Flag) {
		return e.RSplitOnce(s, p)
	}, fhestr.Clear.RSplitOnce),
	"trim":       unary((*fhestr.Engine).Trim, fhestr.Clear.Trim),
	"trim_start": unary((*fhestr.Engine).TrimStart, fhestr.Clear.TrimStart),
	"trim_end":   unary((*fhestr.Engine).TrimEnd, fhestr.Clear.TrimEnd),
	"to_upper":   unary((*fhestr.Engine).ToUpper, fhestr.Clear.ToUpper),
	"to_lower":   unary((*fhestr.Engine).ToLower, fhestr.Clear.ToLower),
	"split":      splitter((*fhestr.Engine).Split, fhestr.Clear.Split),
	"rsplit":     splitter((*fhestr.Engine).RSplit, fhestr.Clear.RSplit),
	"split_terminator": splitter((*fhestr.Engine).SplitTerminator,
		fhestr.Clear.SplitTerminator),
	"rsplit_terminator": splitter((*fhestr.Engine).RSplitTerminator,
		fhestr.Clear.RSplitTerminator),
	"split_inclusive": splitter((*fhestr.Engine).SplitInclusive, fhestr.Clear.SplitInclusive),
	"split_ascii_whitespace": func(x *session, in *inputs) (string, string, error) {
		s, err := x.str(in)
		if err != nil {
			return "", "", err
		}
		got, err := x.client.DecryptPieces(x.engine.SplitASCIIWhitespace(s).Collect())
		return fmt.Sprintf("%q", got), fmt.Sprintf("%q", fhestr.Clear(in.Str).SplitASCIIWhitespace()), err
	},
	"splitn": limitedSplitter(func(e *fhestr.Engine, s fhestr.EncryptedString, n fhestr.Count, p fhestr.Pattern) *fhestr.SplitIter {
		return e.SplitN(s, n, p)
	}, fhestr.Clear.SplitN),
	"rsplitn": limitedSplitter(func(e *fhestr.Engine, s fhestr.EncryptedString, n fhestr.Count, p fhestr.Pattern) *fhestr.SplitIter {
		return e.RSplitN(s, n, p)
	}, fhestr.Clear.RSplitN),
	"replace": func(x *session, in *inputs) (string, string, error) {
		s, p, to, err := x.replaceOperands(in)
		if err != nil {
			return "", "", err
		}
		got, err := x.client.DecryptASCII(x.engine.Replace(s, p, to))
		return strconv.Quote(got), strconv.Quote(fhestr.Clear(in.Str).Replace(in.Pat, in.To)), err
	},
	"replacen": func(x *session, in *inputs) (string, string, error) {
		s, p, to, err := x.replaceOperands(in)
		if err != nil {
			return "", "", err
		}
		n, err := x.count(in)
		if err != nil {
			return "", "", err
		}
		got, err := x.client.DecryptASCII(x.engine.ReplaceN(s, p, to, n))
		return strconv.Quote(got), strconv.Quote(fhestr.Clear(in.Str).ReplaceN(in.Pat, in.To, in.N)), err
	},
	"repeat": func(x *session, in *inputs) (string, string, error) {
		s, err := x.str(in)
		if err != nil {
			return "", "", err
		}
		n, err := x.count(in)
		if err != nil {
			return "", "", err
		}
		got, err := x.client.DecryptASCII(x.engine.Repeat(s, n))
		return strconv.Quote(got), strconv.Quote(fhestr.Clear(in.Str).Repeat(in.N)), err
	},
	"concat": func(x *session, in *inputs) (string, string, error) {
		s, rhs, err := x.rhsOperands(in)
		if err != nil {
			return "", "", err
		}
		got, err := x.client.DecryptASCII(x.engine.Concat(s, rhs))
		return strconv.Quote(got), strconv.Quote(fhestr.Clear(in.Str).Concat(in.Rhs)), err
	},
	"eq": comparison((*fhestr.Engine).Eq, func(c int) bool { return c == 0 }),
	"ne": comparison((*fhestr.Engine).Ne, func(c int) bool { return c != 0 }),
	"lt": comparison((*fhestr.Engine).Lt, func(c int) bool { return c < 0 }),
	"le": comparison((*fhestr.Engine).Le, func(c int) bool { return c <= 0 }),
	"gt": comparison((*fhestr.Engine).Gt, func(c int) bool { return c > 0 }),
	"ge": comparison((*fhestr.Engine).Ge, func(c int) bool { return c >= 0 }),
	"eq_ignore_case": func(x *session, in *inputs) (string, string, error) {
		s, rhs, err := x.rhsOperands(in)
		if err != nil {
			return "", "", err
		}
		return x.flag(x.engine.EqIgnoreCase(s, rhs), fhestr.Clear(in.Str).EqIgnoreCase(in.Rhs))
	},
}

// opNames returns the operation names in alphabetical order.
func opNames() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (x *session) flag(f fhestr.Flag, want bool) (string, string, error) {
	got, err := x.client.DecryptFlag(f)
	return strconv.FormatBool(got), strconv.FormatBool(want), err
}

func (x *session) patternOperands(in *inputs) (fhestr.EncryptedString, fhestr.Pattern, error) {
	s, err := x.str(in)
	if err != nil {
		return s, nil, err
	}
	p, err := x.operand(in.Pat, in.PatPad, in.ClearPat)
	return s, p, err
}

func (x *session) replaceOperands(in *inputs) (fhestr.EncryptedString, fhestr.Pattern, fhestr.Pattern, error) {
	s, p, err := x.patternOperands(in)
	if err != nil {
		return s, nil, nil, err
	}
	to, err := x.operand(in.To, in.ToPad, in.ClearPat)
	return s, p, to, err
}

func (x *session) rhsOperands(in *inputs) (fhestr.EncryptedString, fhestr.Pattern, error) {
	s, err := x.str(in)
	if err != nil {
		return s, nil, err
	}
	rhs, err := x.operand(in.Rhs, in.RhsPad, in.ClearPat)
	return s, rhs, err
}

func optional(v string, ok bool) string {
	if !ok {
		return "None"
	}
	return "Some(" + v + ")"
}

func patternPredicate(op func(*fhestr.Engine, fhestr.EncryptedString, fhestr.Pattern) fhestr.Flag, ref func(fhestr.Clear, string) bool) opFunc {
	return func(x *session, in *inputs) (string, string, error) {
		s, p, err := x.patternOperands(in)
		if err != nil {
			return "", "", err
		}
		return x.flag(op(x.engine, s, p), ref(fhestr.Clear(in.Str), in.Pat))
	}
}

func patternIndex(op func(*fhestr.Engine, fhestr.EncryptedString, fhestr.Pattern) (fhestr.Number, fhestr.Flag), ref func(fhestr.Clear, string) (int, bool)) opFunc {
	return func(x *session, in *inputs) (string, string, error) {
		s, p, err := x.patternOperands(in)
		if err != nil {
			return "", "", err
		}
		idx, found := op(x.engine, s, p)
		ok, err := x.client.DecryptFlag(found)
		if err != nil {
			return "", "", err
		}
		i, err := x.client.DecryptNumber(idx)
		wantIdx, wantOK := ref(fhestr.Clear(in.Str), in.Pat)
		return optional(strconv.Itoa(i), ok), optional(strconv.Itoa(wantIdx), wantOK), err
	}
}

func patternStrip(op func(*fhestr.Engine, fhestr.EncryptedString, fhestr.Pattern) (fhestr.EncryptedString, fhestr.Flag), ref func(fhestr.Clear, string) (string, bool)) opFunc {
	return func(x *session, in *inputs) (string, string, error) {
		s, p, err := x.patternOperands(in)
		if err != nil {
			return "", "", err
		}
		v, ok, err := x.client.DecryptOptional(op(x.engine, s, p))
		want, wantOK := ref(fhestr.Clear(in.Str), in.Pat)
		return optional(strconv.Quote(v), ok), optional(strconv.Quote(want), wantOK), err
	}
}

func patternCut(op func(*fhestr.Engine, fhestr.EncryptedString, fhestr.Pattern) (fhestr.EncryptedString, fhestr.EncryptedString, fhestr.Flag), ref func(fhestr.Clear, string) (string, string, bool)) opFunc {
	return func(x *session, in *inputs) (string, string, error) {
		s, p, err := x.patternOperands(in)
		if err != nil {
			return "", "", err
		}
		lhs, rhs, found := op(x.engine, s, p)
		l, ok, err := x.client.DecryptOptional(lhs, found)
		if err != nil {
			return "", "", err
		}
		r, err := x.client.DecryptASCII(rhs)
		wl, wr, wantOK := ref(fhestr.Clear(in.Str), in.Pat)
		return optional(fmt.Sprintf("%q, %q", l, r), ok), optional(fmt.Sprintf("%q, %q", wl, wr), wantOK), err
	}
}

func unary(op func(*fhestr.Engine, fhestr.EncryptedString, ...fhestr.OpOption) fhestr.EncryptedString, ref func(fhestr.Clear) string) opFunc {
	return func(x *session, in *inputs) (string, string, error) {
		s, err := x.str(in)
		if err != nil {
			return "", "", err
		}
		got, err := x.client.DecryptASCII(op(x.engine, s))
		return strconv.Quote(got), strconv.Quote(ref(fhestr.Clear(in.Str))), err
	}
}

func splitter(op func(*fhestr.Engine, fhestr.EncryptedString, fhestr.Pattern) *fhestr.SplitIter, ref func(fhestr.Clear, string) []string) opFunc {
	return func(x *session, in *inputs) (string, string, error) {
		s, p, err := x.patternOperands(in)
		if err != nil {
			return "", "", err
		}
		got, err := x.client.DecryptPieces(op(x.engine, s, p).Collect())
		return fmt.Sprintf("%q", got), fmt.Sprintf("%q", ref(fhestr.Clear(in.Str), in.Pat)), err
	}
}

func limitedSplitter(op func(*fhestr.Engine, fhestr.EncryptedString, fhestr.Count, fhestr.Pattern) *fhestr.SplitIter, ref func(fhestr.Clear, int, string) []string) opFunc {
	return func(x *session, in *inputs) (string, string, error) {
		s, p, err := x.patternOperands(in)
		if err != nil {
			return "", "", err
		}
		n, err := x.count(in)
		if err != nil {
			return "", "", err
		}
		got, err := x.client.DecryptPieces(op(x.engine, s, n, p).Collect())
		want := ref(fhestr.Clear(in.Str), in.N, in.Pat)
		return fmt.Sprintf("%q", got), fmt.Sprintf("%q", want), err
	}
}

func comparison(op func(*fhestr.Engine, fhestr.EncryptedString, fhestr.Pattern) fhestr.Flag, ref func(int) bool) opFunc {
	return func(x *session, in *inputs) (string, string, error) {
		s, rhs, err := x.rhsOperands(in)
		if err != nil {
			return "", "", err
		}
		return x.flag(op(x.engine, s, rhs), ref(fhestr.Clear(in.Str).Compare(in.Rhs)))
	}
}
