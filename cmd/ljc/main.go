// Command ljc is the Lj compiler's CLI: lex, parse, and compile Lj
// source to its ECMAScript target.
package main

import (
	"fmt"
	"os"

	"github.com/xbodwf/ljc/cmd/ljc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cmd.ExitCodeFor(err))
	}
}
