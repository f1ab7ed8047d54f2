package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/danderson/ubj"
	"github.com/kr/pretty"
)

// indenter is an io.Writer that prefixes every line after the first
// with a fixed indent, used by dumpValue to render a Value tree.
type indenter struct {
	prefix     string
	indentNext bool
	out        io.Writer
}

func (i *indenter) Write(bs []byte) (int, error) {
	ret := 0
	for len(bs) > 0 {
		if i.indentNext {
			i.indentNext = false
			if _, err := io.WriteString(i.out, i.prefix); err != nil {
				return ret, err
			}
		}

		var wr []byte
		idx := bytes.IndexByte(bs, '\n')
		if idx >= 0 {
			i.indentNext = true
			wr, bs = bs[:idx+1], bs[idx+1:]
		} else {
			wr, bs = bs, nil
		}

		n, err := i.out.Write(wr)
		ret += n
		if err != nil {
			return ret, err
		}
	}
	return ret, nil
}

func (i *indenter) indent(n int) {
	i.prefix = strings.Repeat("  ", n)
}

func (i *indenter) f(msg string, args ...any) {
	fmt.Fprintf(i, msg+"\n", args...)
}

// dumpValue writes a human-readable tree rendering of v to w.
func dumpValue(w io.Writer, v ubj.Value) {
	out := &indenter{out: w}
	dumpValueAt(out, 0, v)
}

func dumpValueAt(out *indenter, depth int, v ubj.Value) {
	out.indent(depth)
	switch v.Type() {
	case ubj.TypeArray:
		out.f("array[%d]", v.Len())
		i := 0
		for e := range v.All() {
			out.indent(depth + 1)
			out.f("[%d]:", i)
			dumpValueAt(out, depth+2, *e)
			i++
		}
	case ubj.TypeMap:
		out.f("map[%d]", v.Len())
		for _, k := range sortedKeys(v) {
			e, _ := v.Lookup(k)
			out.indent(depth + 1)
			out.f("%s:", k)
			dumpValueAt(out, depth+2, e)
		}
	default:
		out.f("%s", scalarString(v))
	}
}

func sortedKeys(v ubj.Value) []string {
	var ks []string
	for k := range v.Keys() {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

func scalarString(v ubj.Value) string {
	switch v.Type() {
	case ubj.TypeNull:
		return "null"
	case ubj.TypeBool:
		b, _ := v.Bool()
		return fmt.Sprintf("%s %v", v.Type(), b)
	case ubj.TypeChar:
		c, _ := v.Char()
		return fmt.Sprintf("%s %q", v.Type(), rune(c))
	case ubj.TypeSignedInt:
		n, _ := v.SignedInt()
		return fmt.Sprintf("%s %d", v.Type(), n)
	case ubj.TypeUnsignedInt:
		n, _ := v.UnsignedInt()
		return fmt.Sprintf("%s %d", v.Type(), n)
	case ubj.TypeFloat:
		f, _ := v.Float()
		return fmt.Sprintf("%s %v", v.Type(), f)
	case ubj.TypeString:
		s, _ := v.Str()
		return fmt.Sprintf("%s %q", v.Type(), s)
	case ubj.TypeBinary:
		b, _ := v.RawBinary()
		return fmt.Sprintf("%s % x", v.Type(), b)
	default:
		return fmt.Sprintf("%# v", pretty.Formatter(v.AsString()))
	}
}

func openOrStdin(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
