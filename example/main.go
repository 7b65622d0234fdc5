// An example of using the chtl compiler as a library.
package main

import (
	"fmt"
	"log/slog"
	"os"

	chtl "github.com/dpotapov/go-chtl"
)

func main() {
	c := &chtl.Compiler{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	html, diags, err := c.CompileFile("index.chtl")
	chtl.PrintDiagnostics(os.Stderr, diags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(html)
}
