// Command ubjdump builds, inspects, and round-trips ubj-encoded
// files from the command line.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/danderson/ubj"
)

var policyArgs struct {
	MaxDepth  int `flag:"max-depth,default=32,Maximum nesting depth"`
	MaxObject int `flag:"max-object-bytes,default=67108864,Maximum total bytes per decoded value"`
	MaxString int `flag:"max-string-bytes,default=8388608,Maximum bytes per string"`
	MaxBinary int `flag:"max-binary-bytes,default=67108864,Maximum bytes per binary blob"`
	MaxKey    int `flag:"max-key-bytes,default=255,Maximum bytes per map key"`
	MaxChild  int `flag:"max-children,default=1024,Maximum direct children per container"`
}

func policy() ubj.SizePolicy {
	return ubj.SizePolicy{
		MaxValueDepth: policyArgs.MaxDepth,
		MaxObjectSize: policyArgs.MaxObject,
		MaxStringSize: policyArgs.MaxString,
		MaxBinarySize: policyArgs.MaxBinary,
		MaxKeySize:    policyArgs.MaxKey,
		MaxChildren:   policyArgs.MaxChild,
	}
}

func main() {
	root := &command.C{
		Name:     "ubjdump",
		Usage:    "command args...",
		SetFlags: command.Flags(flax.MustBind, &policyArgs),
		Commands: []*command.C{
			{
				Name:  "inspect",
				Usage: "inspect [file]",
				Help:  "Decode a ubj file (or stdin) and print its Value tree.",
				Run:   runInspect,
			},
			{
				Name:  "roundtrip",
				Usage: "roundtrip [file]",
				Help:  "Decode a ubj file, re-encode and re-decode it, and report whether the result is Equal to the first decode.",
				Run:   runRoundtrip,
			},
			{
				Name:  "build",
				Usage: "build key=value ...",
				Help: `Build a flat Map Value from key=value pairs and write its encoding
to stdout.

A value that parses as a base-10 integer encodes as SignedInt;
everything else encodes as String.`,
				Run: runBuild,
			},
			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}
	env := root.NewEnv(nil)
	command.RunOrFail(env, os.Args[1:])
}

func decodeFile(path string) (ubj.Value, *ubj.Decoder, error) {
	f, err := openOrStdin(path)
	if err != nil {
		return ubj.Value{}, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	d := ubj.NewDecoder(f, policy())
	v, err := d.Decode()
	if err != nil {
		return ubj.Value{}, d, fmt.Errorf("decoding %s: %w", path, err)
	}
	return v, d, nil
}

func arg0(env *command.Env) string {
	if len(env.Args) == 0 {
		return ""
	}
	return env.Args[0]
}

func runInspect(env *command.Env) error {
	v, d, err := decodeFile(arg0(env))
	if err != nil {
		return err
	}
	dumpValue(os.Stdout, v)
	fmt.Fprintf(os.Stdout, "(%d bytes read)\n", d.BytesRead())
	return nil
}

func runRoundtrip(env *command.Env) error {
	v, _, err := decodeFile(arg0(env))
	if err != nil {
		return err
	}
	bs, err := ubj.Marshal(v)
	if err != nil {
		return fmt.Errorf("re-encoding: %w", err)
	}
	back, err := ubj.Unmarshal(bs)
	if err != nil {
		return fmt.Errorf("re-decoding: %w", err)
	}
	if !back.Equal(v) {
		return fmt.Errorf("round trip mismatch: decoded value is not Equal to its re-decoded encoding")
	}
	fmt.Fprintf(os.Stdout, "OK (%d bytes)\n", len(bs))
	return nil
}

func runBuild(env *command.Env) error {
	v := ubj.Map()
	for _, arg := range env.Args {
		k, val, ok := strings.Cut(arg, "=")
		if !ok {
			return env.Usagef("argument %q is not in key=value form", arg)
		}
		f, err := v.Field(k)
		if err != nil {
			return err
		}
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			*f = ubj.Int64(n)
		} else {
			*f = ubj.String(val)
		}
	}
	bs, err := ubj.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	_, err = os.Stdout.Write(bs)
	return err
}
