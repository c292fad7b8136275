package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ljc",
	Short: "Lj compiler",
	Long: `ljc compiles Lj, a small class-and-pattern-matching language, to
plain ECMAScript.

Lj programs compile to readable JavaScript: defer and using lower to
try/finally, when lowers to an if/else-if ladder or an IIFE, and classes
keep their shape with hard-private fields via '#'.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

// exitError pins a command failure to one of spec.md §6's exit codes
// instead of always exiting 1, so a parse/compile error (1) stays
// distinguishable from an I/O or usage error (2).
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func compileFailure(err error) error { return &exitError{code: 1, err: err} }
func usageFailure(err error) error   { return &exitError{code: 2, err: err} }

// ExitCodeFor maps an error returned by Execute to a process exit code:
// 0 is handled by main before this is ever called, 1 is a compilation
// error, 2 is everything else (I/O, bad flags, missing files).
func ExitCodeFor(err error) int {
	var ee *exitError
	if ok := asExitError(err, &ee); ok {
		return ee.code
	}
	return 2
}

func asExitError(err error, target **exitError) bool {
	for err != nil {
		if ee, ok := err.(*exitError); ok {
			*target = ee
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

