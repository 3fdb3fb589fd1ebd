// SPDX-License-Identifier: MIT

// Command glas is the reference CLI for the runtime: resolve a
// ValueRef, then extract, print, inspect its arity, or run it.
package main

import "os"

func main() {
	os.Exit(Main(os.Args[1:]))
}

// Main runs the CLI over argv (excluding the program name) and returns
// the process exit code. Split out from main so it can be exercised
// without an actual os.Exit.
func Main(argv []string) int {
	cmd := newRootCmd()
	args := rewriteFreeVerb(argv)
	if args == nil {
		// cobra reads os.Args when given nil args; no argv means no arguments.
		args = []string{}
	}
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return exitCode
}

// rewriteFreeVerb implements the §6.3 free-verb shorthand: a bare verb
// with no leading "-" is sugar for --run against the corresponding
// glas-cli-<verb> module, e.g. `glas fmt x.g0` means
// `glas --run glas-cli-fmt.main -- x.g0`.
func rewriteFreeVerb(argv []string) []string {
	if len(argv) == 0 || len(argv[0]) == 0 || argv[0][0] == '-' {
		return argv
	}
	verb := argv[0]
	rest := argv[1:]
	out := make([]string, 0, len(rest)+3)
	out = append(out, "--run", "glas-cli-"+verb+".main", "--")
	return append(out, rest...)
}
