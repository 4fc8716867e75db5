// Command spade runs spade source files and provides an interactive REPL,
// mirroring smog's cmd/smog entry point (runFile/runREPL/evalREPL), minus
// the bytecode compile/disassemble subcommands: spade has no bytecode
// format to compile to or disassemble.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"spade/pkg/environment"
	"spade/pkg/evaluator"
	"spade/pkg/lexer"
	"spade/pkg/parser"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		runREPL()
		return
	}

	switch os.Args[1] {
	case "version", "-v", "--version":
		fmt.Printf("spade version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	case "repl":
		runREPL()
	case "run":
		if len(os.Args) < 3 {
			fmt.Println("Error: no file specified")
			printUsage()
			os.Exit(1)
		}
		runFile(os.Args[2])
	default:
		runFile(os.Args[1])
	}
}

func printUsage() {
	fmt.Println("spade - a small Lox-family scripting language")
	fmt.Println("\nUsage:")
	fmt.Println("  spade                Start interactive REPL")
	fmt.Println("  spade [file]         Run a .spade source file")
	fmt.Println("  spade run [file]     Run a .spade source file")
	fmt.Println("  spade repl           Start interactive REPL")
	fmt.Println("  spade version        Show version")
	fmt.Println("  spade help           Show this help")
}

// runFile reads, parses, and executes a source file to completion, exiting
// nonzero on any scan, parse, or runtime error.
func runFile(filename string) {
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	toks, err := lexer.Scan(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan error: %v\n", err)
		os.Exit(1)
	}

	p := parser.New(toks)
	program, err := p.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
		os.Exit(1)
	}

	ev := evaluator.New()
	env := environment.New()
	if err := ev.ExecuteProgram(program, env); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}

// runREPL starts an interactive Read-Eval-Print Loop with a persistent
// environment, modeled on smog's runREPL: the evaluator and environment
// survive across inputs so variables and functions declared in one line
// remain visible to later ones. Unlike smog's period-terminated multi-line
// buffering (needed because Smalltalk statements can span lines before a
// closing period), spade statements already self-terminate on `;` or `}`,
// so each line is parsed and executed independently.
func runREPL() {
	fmt.Printf("spade REPL v%s\n", version)
	fmt.Println("Type ':help' for help, ':quit' or ':exit' to exit")
	fmt.Println()

	ev := evaluator.New()
	env := environment.New()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("spade> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case ":quit", ":exit":
			fmt.Println("Goodbye!")
			return
		case ":help":
			printREPLHelp()
			continue
		case "":
			continue
		}

		evalREPL(ev, env, line)
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
	}
}

// evalREPL scans, parses, and runs a single line of input against the
// REPL's persistent environment. A line ending in neither `;` nor `}` is
// first tried as a bare expression: if it parses as one, it is evaluated
// directly and its value printed, so `spade> 2 + 2` shows `4` without
// requiring an explicit `print`. Anything else, including a line that does
// not parse as an expression, is parsed and run as a full statement
// sequence.
func evalREPL(ev *evaluator.Evaluator, env *environment.Environment, input string) {
	toks, err := lexer.Scan(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan error: %v\n", err)
		return
	}

	if !strings.HasSuffix(input, ";") && !strings.HasSuffix(input, "}") {
		expr, err := parser.New(toks).ParseExpression()
		if err == nil {
			value, err := ev.EvaluateExpression(expr, env)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
				return
			}
			fmt.Println(evaluator.Stringify(value))
			return
		}
	}

	program, err := parser.New(toks).Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
		return
	}

	if err := ev.ExecuteProgram(program, env); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
	}
}

func printREPLHelp() {
	fmt.Println("spade REPL Help")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  :help     Show this help message")
	fmt.Println("  :quit     Exit the REPL")
	fmt.Println("  :exit     Exit the REPL")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  - Enter spade statements, e.g. let x = 1; print x;")
	fmt.Println("  - Variables and functions persist across lines")
	fmt.Println("  - A bare expression's value is printed automatically")
	fmt.Println()
}
