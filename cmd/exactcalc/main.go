package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/exactcalc"
)

const (
	banner      = "exactcalc: exact arithmetic. Enter an empty line or press Ctrl-D to quit."
	prompt      = ">> "
	historyFile = ".exactcalc_history"
)

func main() {
	log.SetFlags(0)
	var (
		inname      string
		limit       int64
		depth, prec int
		quiet       bool
	)
	flag.StringVar(&inname, "in", "", "input file with one expression per line (- for stdin)")
	flag.Int64Var(&limit, "limit", exactcalc.DefaultFactorialLimit, "greatest argument to fact")
	flag.IntVar(&depth, "depth", exactcalc.DefaultMaxDepth, "maximum recursion depth of an evaluation")
	flag.IntVar(&prec, "p", exactcalc.DefaultPrec, "precision of arbitrary-precision calculations in bits")
	flag.BoolVar(&quiet, "q", false, "suppress warnings about lost precision")
	flag.Parse()
	if prec <= 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}
	if limit < 0 {
		log.Fatalf("factorial limit (%d) must not be negative", limit)
	}
	if depth <= 0 {
		log.Fatalf("depth (%d) must be positive", depth)
	}

	opts := []exactcalc.ContextOption{
		exactcalc.Prec(uint(prec)),
		exactcalc.FactorialLimit(limit),
		exactcalc.MaxDepth(depth),
	}
	if !quiet {
		opts = append(opts, exactcalc.Warnings(log.New(os.Stderr, "", 0)))
	}
	ctx := exactcalc.NewContext(opts...)

	switch {
	case inname != "":
		f, err := infile(inname)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := evalAll(ctx, f, os.Stdout); err != nil {
			log.Fatal(err)
		}
	case flag.NArg() > 0:
		for _, arg := range flag.Args() {
			evalPrint(ctx, os.Stdout, arg)
		}
	default:
		repl(ctx)
	}
}

func infile(inname string) (io.ReadCloser, error) {
	if inname == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(inname)
}

// evalAll evaluates each non-blank line of r.
func evalAll(ctx *exactcalc.Context, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		evalPrint(ctx, w, line)
	}
	return sc.Err()
}

// evalPrint evaluates one expression and prints its result or error.
func evalPrint(ctx *exactcalc.Context, w io.Writer, line string) {
	r, err := evalLine(ctx, line)
	if err != nil {
		fmt.Fprintln(w, "error:", err)
		return
	}
	fmt.Fprintln(w, r)
}

// evalLine evaluates and renders one expression. A panic is reported as an
// error for that expression alone.
func evalLine(ctx *exactcalc.Context, line string) (r string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("internal error: %v", p)
		}
	}()
	v, err := ctx.Eval(line)
	if err != nil {
		return "", err
	}
	return exactcalc.Render(v), nil
}

func repl(ctx *exactcalc.Context) {
	fmt.Println(banner)

	var histPath string
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
	} else {
		log.Print("not keeping history: ", err)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if err := readHistory(ln, histPath); err != nil {
			log.Print("reading history: ", err)
		}
	}

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			// EOF or a broken terminal.
			fmt.Println()
			break
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		ln.AppendHistory(line)
		evalPrint(ctx, os.Stdout, line)
	}

	if histPath != "" {
		if err := writeHistory(ln, histPath); err != nil {
			log.Print("writing history: ", err)
		}
	}
}

// readHistory loads the REPL history from a file. A missing file is not an
// error.
func readHistory(ln *liner.State, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = ln.ReadHistory(f)
	return err
}

func writeHistory(ln *liner.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := ln.WriteHistory(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
