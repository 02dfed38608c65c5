package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/sunholo/smlcheck/internal/diag"
	"github.com/sunholo/smlcheck/internal/statics"
	"github.com/sunholo/smlcheck/internal/types"
)

var (
	// Version info - set by ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		noColorFlag = flag.Bool("no-color", false, "Disable colored output")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("smlcheck %s (%s, built %s)\n", Version, Commit, BuildTime)
		return
	}

	colored := !*noColorFlag && diag.WriterWantsColor(os.Stdout)
	if !colored {
		color.NoColor = true
	}

	fmt.Println(bold("smlcheck static semantics demo"))
	fmt.Println()

	for _, demo := range demos {
		syms, bs := statics.Minimal()
		result := statics.Check(syms, bs, demo.arenas, demo.root)
		bs.Append(result.Bs)

		fmt.Printf("%s %s\n", cyan("==>"), demo.title)
		for _, name := range result.Bs.Env.ValEnv.OrderedNames() {
			vi := result.Bs.Env.ValEnv[name]
			fmt.Printf("  val %s : %s\n", green(string(name)), types.SchemeString(syms, vi.TyScheme))
		}
		for _, name := range result.Bs.Env.StrEnv.OrderedNames() {
			inner := result.Bs.Env.StrEnv[name]
			fmt.Printf("  structure %s\n", green(string(name)))
			for _, valName := range inner.ValEnv.OrderedNames() {
				vi := inner.ValEnv[valName]
				fmt.Printf("    val %s : %s\n", green(string(valName)), types.SchemeString(syms, vi.TyScheme))
			}
		}
		if len(result.Errors) > 0 {
			diag.Render(os.Stdout, result.Errors, colored)
		}
		fmt.Println()
	}
}
