// Command calc is an interactive calculator: each expression line is JIT
// compiled to native code, and each number line evaluates the current
// expression at that point.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/aschmolck/trivial-jit/pkg/expr"
	"github.com/aschmolck/trivial-jit/pkg/jit"
)

const (
	historyFile = ".trivialjit_history"
	promptMain  = "jit> "
)

var banner = strings.TrimSpace(`
trivial-jit calculator
Enter an expression over x (e.g. 2*x^0.5 - √2) to compile it, then plain
numbers to evaluate it at those points. Ctrl+D or :quit exits.
`)

// session holds the currently compiled expression. On hosts without jit
// support it falls back to the tree-walking interpreter, which has the same
// numerics.
type session struct {
	src  string
	root expr.Node
	fn   *jit.Function // nil when interpreting
}

func newSession(src string) (*session, error) {
	root, err := expr.Parse(src)
	if err != nil {
		return nil, err
	}
	fn, err := jit.Compile(src)
	if errors.Is(err, jit.ErrUnsupported) {
		// Make sure the interpreter will accept it before echoing success.
		if _, err := jit.Eval(root, 0); err != nil {
			return nil, err
		}
		return &session{src: src, root: root}, nil
	}
	if err != nil {
		return nil, err
	}
	return &session{src: src, root: root, fn: fn}, nil
}

func (s *session) eval(x float64) float64 {
	if s.fn != nil {
		return s.fn.Call(x)
	}
	v, _ := jit.Eval(s.root, x)
	return v
}

func (s *session) close() {
	if s.fn != nil {
		_ = s.fn.Close()
	}
}

// historyPath returns where the prompt history file lives, or "" when the
// home directory is unknown and history should be skipped.
func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func main() {
	fmt.Println(banner)

	histPath := historyPath()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	var cur *session
	defer func() {
		if cur != nil {
			cur.close()
		}
	}()

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil { // io.EOF on Ctrl+D
			fmt.Println()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == ":quit" {
			return
		}
		ln.AppendHistory(input)

		// A bare number evaluates the current expression at that point.
		if x, err := strconv.ParseFloat(input, 64); err == nil {
			if cur == nil {
				fmt.Println("enter an expression first")
				continue
			}
			fmt.Printf("%s = %v  at x = %v\n", cur.src, cur.eval(x), x)
			continue
		}

		next, err := newSession(input)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if cur != nil {
			cur.close()
		}
		cur = next
		if cur.fn == nil {
			fmt.Println("(no jit on this host, interpreting)")
		}
		if !expr.UsesVar(cur.root) {
			fmt.Printf("%s = %v\n", cur.src, cur.eval(0))
		} else {
			fmt.Printf("compiled %s; enter values for x\n", cur.src)
		}
	}
}
