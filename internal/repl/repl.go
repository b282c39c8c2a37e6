// Package repl implements the driver described by spec.md §2 and §6: a
// loop that reads one top-level statement at a time from a file or
// standard input, parses it, evaluates it, and prints whatever value is
// left over. It is deliberately thin — lexer, parser, and evaluator do
// all the real work — mirroring the teacher's cmd/dwscript/cmd/run.go,
// which is likewise a wiring layer around lexer.New/parser.New/
// interp.New rather than a place for new logic.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/numl/internal/ast"
	"github.com/cwbudde/numl/internal/eval"
	"github.com/cwbudde/numl/internal/lexer"
	"github.com/cwbudde/numl/internal/parser"
	"github.com/cwbudde/numl/internal/parseerr"
	"github.com/cwbudde/numl/internal/values"
)

// Options configures a Run. Prompt is printed before reading each
// top-level statement (spec.md §6: `"> "` with no file argument, empty
// with one); File is used only to attribute error messages and is
// otherwise display-only.
type Options struct {
	Prompt  string
	File    string
	Color   bool
	DumpAST bool
	Eval    eval.Config
}

// banner is the original's print_info() (original_source/main.c:16-23),
// printed once before the REPL loop starts when reading interactively
// (spec.md §6: "With no argument: ... print a version banner").
const banner = "\n" +
	"\tVersion 1.0\n" +
	"\tCopyleft 2012\n" +
	"\tSyktyvkar State University\n" +
	"\tProgramming & Applied Math Laboratory\n" +
	"\n"

// Run drives one program: it reads source from r in full (so parseerr
// can render caret-pointed diagnostics against complete lines even when
// reading interactively line-by-line would otherwise need its own
// buffering), then re-parses it through the one-statement-per-iteration
// loop, printing the prompt before each read, evaluating each statement,
// and writing its result to out. Diagnostics go to errOut. Run returns
// the number of errors reported (each parse error and each failed
// evaluation counts once); it returns a non-nil error only when reading r
// fails — a bad program fragment is reported and the driver moves on to
// the next one, per spec.md §7 "Propagation".
func Run(r io.Reader, out, errOut io.Writer, opts Options) (int, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	lex := lexer.NewFromString(string(source))
	p := parser.New(lex, string(source), opts.File)
	ev := eval.New(opts.Eval)
	if opts.Eval.Trace {
		ev.Trace = func(format string, args ...any) {
			fmt.Fprintf(errOut, "[trace] "+format+"\n", args...)
		}
	}

	bw := bufio.NewWriter(out)
	defer bw.Flush()

	if opts.Prompt != "" {
		fmt.Fprint(bw, banner)
	}

	errCount := 0
	seenErrors := 0
	for {
		if opts.Prompt != "" {
			fmt.Fprint(bw, opts.Prompt)
			bw.Flush()
		}

		stmt := p.ParseStatement()

		if newErrs := p.Errors()[seenErrors:]; len(newErrs) > 0 {
			for _, e := range newErrs {
				fmt.Fprintln(errOut, e.Format(opts.Color))
			}
			seenErrors = len(p.Errors())
			errCount += len(newErrs)
			if stmt == nil {
				break
			}
			continue
		}
		if stmt == nil {
			break
		}

		if opts.DumpAST {
			fmt.Fprintln(out, DumpStmt(stmt, 0))
		}

		val, err := ev.EvalTop(stmt)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %s\n", err)
			errCount++
			continue
		}
		if val != nil && val.Kind != values.Void {
			fmt.Fprintln(bw, val.String())
		}
	}

	return errCount, nil
}

// FormatErrors is exposed for callers that want to render a parser's
// accumulated errors outside the Run loop, such as the parse-only
// `numl parse` command.
func FormatErrors(errs []*parseerr.Error, color bool) string {
	return parseerr.FormatErrors(errs, color)
}

// DumpStmt renders a single parsed statement as an indented tree, used
// by `numl run --dump-ast` and `numl parse`.
func DumpStmt(stmt ast.Stmt, indent int) string {
	var sb strings.Builder
	dumpNode(&sb, stmt, indent)
	return sb.String()
}

func dumpNode(sb *strings.Builder, node any, indent int) {
	pad := strings.Repeat("  ", indent)
	switch n := node.(type) {
	case nil:
		return
	case *ast.ExprStmt:
		fmt.Fprintf(sb, "%sExprStmt\n", pad)
		dumpNode(sb, n.X, indent+1)
	case *ast.LocalStmt:
		fmt.Fprintf(sb, "%sLocalStmt %v\n", pad, n.Names)
	case *ast.Block:
		fmt.Fprintf(sb, "%sBlock\n", pad)
		for cur := n.First; cur != nil; cur = cur.GetNext() {
			if _, ok := cur.(*ast.EndScope); ok {
				break
			}
			dumpNode(sb, cur, indent+1)
		}
	case *ast.FunctionDecl:
		fmt.Fprintf(sb, "%sFunctionDecl %s(%v)\n", pad, n.Name, n.Params)
		dumpNode(sb, n.Body, indent+1)
	case *ast.IfStmt:
		fmt.Fprintf(sb, "%sIfStmt\n", pad)
		dumpNode(sb, n.Cond, indent+1)
		dumpNode(sb, n.Then, indent+1)
		if n.Else != nil {
			dumpNode(sb, n.Else, indent+1)
		}
	case *ast.WhileStmt:
		fmt.Fprintf(sb, "%sWhileStmt\n", pad)
		dumpNode(sb, n.Cond, indent+1)
		dumpNode(sb, n.Body, indent+1)
	case *ast.ForStmt:
		fmt.Fprintf(sb, "%sForStmt\n", pad)
		dumpNode(sb, n.Init, indent+1)
		dumpNode(sb, n.Cond, indent+1)
		dumpNode(sb, n.Post, indent+1)
		dumpNode(sb, n.Body, indent+1)
	case *ast.BreakStmt:
		fmt.Fprintf(sb, "%sBreakStmt\n", pad)
	case *ast.ContinueStmt:
		fmt.Fprintf(sb, "%sContinueStmt\n", pad)
	case *ast.ReturnStmt:
		fmt.Fprintf(sb, "%sReturnStmt\n", pad)
		dumpNode(sb, n.Value, indent+1)
	case *ast.IncludeStmt:
		fmt.Fprintf(sb, "%sIncludeStmt %q\n", pad, n.Path)
	case *ast.Stub:
		fmt.Fprintf(sb, "%sStub\n", pad)
	case *ast.Identifier:
		fmt.Fprintf(sb, "%sIdentifier %s\n", pad, n.Name)
	case *ast.NumberLit:
		fmt.Fprintf(sb, "%sNumberLit %g\n", pad, n.Value)
	case *ast.StringLit:
		fmt.Fprintf(sb, "%sStringLit %q\n", pad, n.Value)
	case *ast.VectorLit:
		fmt.Fprintf(sb, "%sVectorLit\n", pad)
		for _, el := range n.Elems {
			dumpNode(sb, el, indent+1)
		}
	case *ast.MatrixLit:
		fmt.Fprintf(sb, "%sMatrixLit %dx%d\n", pad, n.Rows, n.Cols)
		for _, el := range n.Elems {
			dumpNode(sb, el, indent+1)
		}
	case *ast.BinaryExpr:
		fmt.Fprintf(sb, "%sBinaryExpr %s\n", pad, n.Op)
		dumpNode(sb, n.Left, indent+1)
		dumpNode(sb, n.Right, indent+1)
	case *ast.CallExpr:
		fmt.Fprintf(sb, "%sCallExpr %s\n", pad, n.Name)
		for _, a := range n.Args {
			dumpNode(sb, a, indent+1)
		}
	case *ast.IndexExpr:
		fmt.Fprintf(sb, "%sIndexExpr %s\n", pad, n.Name)
		for _, ix := range n.Indices {
			dumpNode(sb, ix, indent+1)
		}
	case *ast.AssignExpr:
		fmt.Fprintf(sb, "%sAssignExpr\n", pad)
		dumpNode(sb, n.Target, indent+1)
		dumpNode(sb, n.Value, indent+1)
	case *ast.EndScope:
		// terminal sentinel, nothing to render
	default:
		fmt.Fprintf(sb, "%s%T\n", pad, node)
	}
}
