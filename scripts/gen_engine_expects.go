// Command gen_engine_expects generates curried expectEngine* helpers from
// the expect* methods of the engine test builder, so that expectations can
// be passed around as plain values, e.g. to engineTestCase.apply.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout
)

func parseFlags() {
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("failed to open %v: %v", args[0], err)
		}
		in = f
	}

	if len(args) > 1 {
		f, err := os.Create(args[1])
		if err != nil {
			log.Fatalf("failed to create %v: %v", args[1], err)
		}
		out = f
	}
}

func main() {
	parseFlags()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	ready := make(chan struct{})

	// goimports adds the imports that generated signatures need
	eg.Go(func() error {
		imports := exec.CommandContext(ctx, "goimports")
		pipe, err := imports.StdinPipe()
		if err != nil {
			return err
		}
		defer out.Close()
		imports.Stdout = out
		imports.Stderr = os.Stderr
		out = pipe
		close(ready)
		if err := imports.Run(); err != nil {
			return fmt.Errorf("goimports failed: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ready:
		}
		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()
		return generate(ctx)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

var expectMethod = regexp.MustCompile(`func \(et engineTestCase\) expect(.+?)\((.+?)\) engineTestCase`)

func generate(ctx context.Context) error {
	var buf bytes.Buffer
	buf.WriteString("package main\n\n")
	fmt.Fprintf(&buf, "// @generated from %v\n\n", in.Name())
	if args := flag.Args(); len(args) >= 2 {
		buf.WriteString("//go:generate go run scripts/gen_engine_expects.go --")
		for _, arg := range args {
			buf.WriteByte(' ')
			buf.WriteString(arg)
		}
		buf.WriteString("\n\n")
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if match := expectMethod.FindSubmatch(sc.Bytes()); len(match) > 0 {
			writeCurried(&buf, match[1], match[2])
		}
		if buf.Len() > 0 {
			if _, err := buf.WriteTo(out); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}

func writeCurried(buf *bytes.Buffer, what, params []byte) {
	var names [][]byte
	for _, param := range bytes.Split(params, []byte(",")) {
		fields := bytes.Fields(param)
		name := fields[0]
		if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
			name = append(name[:len(name):len(name)], "..."...)
		}
		names = append(names, name)
	}

	fmt.Fprintf(buf, "func expectEngine%s(%s) func(engineTestCase) engineTestCase {\n", what, params)
	buf.WriteString("\treturn func(et engineTestCase) engineTestCase {\n")
	fmt.Fprintf(buf, "\t\treturn et.expect%s(%s)\n", what, bytes.Join(names, []byte(", ")))
	buf.WriteString("\t}\n")
	buf.WriteString("}\n\n")
}
