// Command probe loads a shared library and resolves entry points, for
// checking an interpreter installation before binding to it.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/jmp75/rdotnet/dynlib"
)

func main() {
	var (
		libName     = flag.String("lib", "", "Library path or base name (base names get the platform prefix/suffix)")
		symbols     = flag.String("symbols", "", "Entry points to resolve (comma-separated)")
		searchDir   = flag.String("dir", "", "Directory to search before system defaults")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose loader logging")
	)
	flag.Parse()

	if *libName == "" {
		fmt.Fprintln(os.Stderr, "Usage: probe -lib <name> [-symbols a,b,c] [-dir path]")
		fmt.Fprintln(os.Stderr, "       probe -lib <name> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			dynlib.SetLogger(logger)
		}
	}

	if *searchDir != "" {
		if err := dynlib.SetSearchDirectory(*searchDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer dynlib.RestoreDefaultSearchDirectory()
	}

	name := *libName
	if filepath.Ext(name) == "" && !strings.ContainsRune(name, os.PathSeparator) {
		name = dynlib.FileName(name)
	}

	if *interactive && term.IsTerminal(int(os.Stdout.Fd())) {
		if err := runInteractive(name); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(name, *symbols); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(name, symbolList string) error {
	lib, err := dynlib.Load(name)
	if err != nil {
		return err
	}
	defer lib.Release()

	fmt.Printf("Library: %s\n", lib.Name())
	fmt.Printf("Handle:  %#x\n", lib.Handle())

	failures := 0
	for _, sym := range strings.Split(symbolList, ",") {
		sym = strings.TrimSpace(sym)
		if sym == "" {
			continue
		}
		addr, err := lib.Resolve(sym)
		if err != nil {
			fmt.Printf("  %-32s MISSING (%v)\n", sym, err)
			failures++
			continue
		}
		fmt.Printf("  %-32s %#x\n", sym, addr)
	}
	if failures > 0 {
		return fmt.Errorf("%d entry point(s) missing", failures)
	}
	return nil
}
