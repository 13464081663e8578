package config

import (
	"os"
	"path/filepath"
	"sort"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/matzehuels/figx/pkg/label"
)

// WorkspaceFileName is the marker file identifying a workspace root.
const WorkspaceFileName = "figx.toml"

// PackageFileName is the conventional per-package config file name.
const PackageFileName = ".fig.toml"

// DefaultCacheDir is the default cache directory name, relative to the
// workspace root.
const DefaultCacheDir = ".figx-cache"

// FindWorkspaceRoot walks upward from dir looking for WorkspaceFileName,
// returning the first ancestor (including dir itself) that contains it.
func FindWorkspaceRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", newError(CodeInaccessibleCwd, Span{}, "resolve current directory: %v", err)
	}

	cur := abs
	for {
		candidate := filepath.Join(cur, WorkspaceFileName)
		if _, err := os.Stat(candidate); err == nil {
			return cur, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", newError(CodeInitNotInWorkspace, Span{}, "no %s found in %q or any parent directory", WorkspaceFileName, abs)
		}
		cur = parent
	}
}

// discoverPackageFiles walks root's descendants, respecting .gitignore files
// found along the way (cascading per directory, same as git itself), and
// returns every PackageFileName path found, in a deterministic (lexically
// sorted) order.
func discoverPackageFiles(root string) ([]string, error) {
	repo := gitignore.NewRepository(root)

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		if repo.Match(path, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() && d.Name() == PackageFileName {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, newError(CodeFigTraversing, Span{File: root}, "walk workspace tree: %v", err)
	}

	sort.Strings(files)
	return files, nil
}

// LoadWorkspace discovers the workspace root from currentDir, parses the
// workspace file and every discovered package file, and returns the fully
// assembled Workspace (spec §4.2's "Discovery" and "Validation passes").
func LoadWorkspace(currentDir string) (*Workspace, error) {
	root, err := FindWorkspaceRoot(currentDir)
	if err != nil {
		return nil, err
	}

	remotes, profiles, err := ParseWorkspaceFile(filepath.Join(root, WorkspaceFileName))
	if err != nil {
		return nil, err
	}

	profileByName := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		profileByName[p.Name] = p
	}

	packageFiles, err := discoverPackageFiles(root)
	if err != nil {
		return nil, err
	}

	var packages []Package
	for _, pf := range packageFiles {
		relDir := filepath.Dir(pf)
		rel, err := filepath.Rel(root, relDir)
		if err != nil {
			return nil, newError(CodeFigTraversing, Span{File: pf}, "compute package dir: %v", err)
		}
		if rel == "." {
			rel = ""
		}
		dir, err := label.ParsePackage(filepath.ToSlash(rel))
		if err != nil {
			return nil, newError(CodeFigInvalidPackage, Span{File: pf}, "invalid package directory %q: %v", rel, err)
		}

		resources, err := ParsePackageFile(pf, dir, profileByName)
		if err != nil {
			return nil, err
		}

		packages = append(packages, Package{Dir: dir, Resources: resources})
	}

	absCurrent, err := filepath.Abs(currentDir)
	if err != nil {
		return nil, newError(CodeInaccessibleCwd, Span{}, "resolve current directory: %v", err)
	}
	relCurrent, err := filepath.Rel(root, absCurrent)
	if err != nil {
		return nil, newError(CodeInaccessibleCwd, Span{}, "compute current directory relative to workspace root: %v", err)
	}
	if relCurrent == "." {
		relCurrent = ""
	}
	currentPkg, err := label.ParsePackage(filepath.ToSlash(relCurrent))
	if err != nil {
		return nil, newError(CodeFigInvalidPackage, Span{}, "invalid current directory %q: %v", relCurrent, err)
	}

	var currentPackageLabel *label.Package
	for _, pkg := range packages {
		if pkg.Dir == currentPkg {
			p := pkg.Dir
			currentPackageLabel = &p
			break
		}
	}

	return &Workspace{
		Remotes:  remotes,
		Profiles: profiles,
		Packages: packages,
		Context: InvocationContext{
			WorkspaceRoot:       root,
			CurrentDir:          currentPkg,
			CacheDir:            filepath.Join(root, DefaultCacheDir),
			PackageFiles:        packageFiles,
			CurrentPackageLabel: currentPackageLabel,
		},
	}, nil
}

// SelectResources filters a workspace's resources by a composed label
// pattern, preserving package-then-declaration order (spec §2: labels are
// matched against the pattern algebra in pkg/label).
func SelectResources(ws *Workspace, pattern label.ComposedPattern) []Resource {
	var out []Resource
	for _, pkg := range ws.Packages {
		if !label.PackagePatternMatches(pattern, pkg.Dir, ws.Context.CurrentDir) {
			continue
		}
		for _, r := range pkg.Resources {
			if label.MatchesComposed(pattern, r.Label, ws.Context.CurrentDir) {
				out = append(out, r)
			}
		}
	}
	return out
}
