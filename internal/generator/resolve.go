package generator

import "strings"

// ModuleResolver rewrites an import/export specifier as it is emitted,
// letting a caller control how `.lj` module paths map onto whatever the
// target runtime expects. The generator never hard-codes a strategy.
type ModuleResolver interface {
	ResolveImport(specifier, fromFile string) string
}

// IdentityResolver leaves every specifier untouched.
type IdentityResolver struct{}

func (IdentityResolver) ResolveImport(specifier, _ string) string { return specifier }

// RewriteExtensionResolver rewrites a trailing ".lj" to ".js", leaving
// bare package specifiers (no such suffix) alone.
type RewriteExtensionResolver struct{}

func (RewriteExtensionResolver) ResolveImport(specifier, _ string) string {
	if strings.HasSuffix(specifier, ".lj") {
		return strings.TrimSuffix(specifier, ".lj") + ".js"
	}
	return specifier
}

// StdPrefixResolver rewrites a leading "/std/" to Root, the configured
// runtime import root (e.g. a package name or a relative path).
type StdPrefixResolver struct {
	Root string
}

func (r StdPrefixResolver) ResolveImport(specifier, _ string) string {
	if strings.HasPrefix(specifier, "/std/") {
		return r.Root + "/" + strings.TrimPrefix(specifier, "/std/")
	}
	return specifier
}
