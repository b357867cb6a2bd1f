package docs

import (
	"os"
	"path/filepath"
	"strings"
)

// CoreName is the reserved package name for the core's own package tree.
const CoreName = "herald"

// Category classifies a package name for the documentation pipeline. Each
// category binds to a fixed (source root, output root) pair.
type Category int

const (
	// CategoryCore is the core's own package tree.
	CategoryCore Category = iota
	// CategoryCustom is a custom package under the custom-packages root.
	CategoryCustom
	// CategoryPlugin is a plugin under the plugins root.
	CategoryPlugin
)

// Roots holds the directory pairs the three categories resolve against.
type Roots struct {
	PackagesDir     string // core package tree
	PackagesDocsDir string
	CustomDir       string // custom packages
	CustomDocsDir   string
	PluginsDir      string // plugins
	PluginsDocsDir  string
}

// Resolver classifies package names into categories by probing the
// configured roots.
type Resolver struct {
	roots Roots
}

// NewResolver creates a resolver over the given roots.
func NewResolver(roots Roots) *Resolver {
	return &Resolver{roots: roots}
}

// Classify resolves pkg to a category. Check order is fixed: core first,
// then custom packages, then plugins; first match wins. The boolean is
// false when pkg matches no category.
func (r *Resolver) Classify(pkg string) (Category, bool) {
	if pkg == CoreName {
		return CategoryCore, true
	}
	if r.isCustomPackage(pkg) {
		return CategoryCustom, true
	}
	if r.isPlugin(pkg) {
		return CategoryPlugin, true
	}
	return 0, false
}

// Paths returns the (source root, output root) pair for pkg in category.
// The templates are fixed: the core tree maps whole-root to whole-root,
// custom packages and plugins map per-package subdirectories.
func (r *Resolver) Paths(category Category, pkg string) (sourceRoot, outputRoot string) {
	switch category {
	case CategoryCore:
		return r.roots.PackagesDir, r.roots.PackagesDocsDir
	case CategoryCustom:
		return filepath.Join(r.roots.CustomDir, pkg), filepath.Join(r.roots.CustomDocsDir, pkg)
	default:
		return filepath.Join(r.roots.PluginsDir, pkg), filepath.Join(r.roots.PluginsDocsDir, pkg)
	}
}

// isCustomPackage reports whether pkg names an entry of the custom-packages
// root. Matching is case-sensitive on the name without extension, so both
// single-file packages (pkg.py-style modules) and package directories count.
func (r *Resolver) isCustomPackage(pkg string) bool {
	entries, err := os.ReadDir(r.roots.CustomDir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() {
			name = strings.TrimSuffix(name, filepath.Ext(name))
		}
		if name == pkg {
			return true
		}
	}
	return false
}

// isPlugin reports whether pkg names a subdirectory of the plugins root.
func (r *Resolver) isPlugin(pkg string) bool {
	entries, err := os.ReadDir(r.roots.PluginsDir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() && entry.Name() == pkg {
			return true
		}
	}
	return false
}
