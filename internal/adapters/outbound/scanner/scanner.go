package scanner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/tscoverage/tscoverage/internal/domain"
)

// FileScanner implements domain.FileDiscoverer by walking the target
// directory and matching paths with doublestar globs.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Patterns returns one search pattern per extension, rooted at the target
// directory with forward slashes.
func Patterns(cfg domain.AnalysisConfig) []string {
	base := strings.TrimSuffix(strings.ReplaceAll(cfg.TargetDirectory, `\`, "/"), "/")
	patterns := make([]string, 0, len(cfg.SupportedExtensions))
	for _, ext := range cfg.SupportedExtensions {
		patterns = append(patterns, base+"/**/*"+ext)
	}
	return patterns
}

// Discover returns the sorted, deduplicated absolute paths of regular files
// under cfg.TargetDirectory that carry a supported extension and match no
// ignore pattern. Dot files and dot directories are never returned. A
// missing target directory yields an empty list. With cfg.RespectGitignore,
// paths matched by <target>/.gitignore are skipped as well.
//
// Symlinked files and directories are followed and reported under the
// link's path. A link whose target overlaps a tree already being walked is
// skipped, so each file is reported once.
func (s *FileScanner) Discover(ctx context.Context, cfg domain.AnalysisConfig) ([]string, error) {
	absRoot, err := filepath.Abs(cfg.TargetDirectory)
	if err != nil {
		return nil, &domain.DiscoveryError{Err: err}
	}

	m, err := newMatcher(cfg)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, &domain.DiscoveryError{Err: err}
	}
	if !info.IsDir() || len(m.include) == 0 {
		return []string{}, nil
	}
	if cfg.RespectGitignore {
		if m.git, err = loadGitignore(absRoot); err != nil {
			return nil, &domain.DiscoveryError{Pattern: gitignoreFile, Err: err}
		}
	}

	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, &domain.DiscoveryError{Err: err}
	}

	w := &walker{
		ctx:     ctx,
		m:       m,
		absRoot: absRoot,
		base:    strings.TrimSuffix(filepath.ToSlash(cfg.TargetDirectory), "/"),
		seen:    make(map[string]bool),
		entered: map[string]bool{realRoot: true},
		files:   []string{},
	}
	if err := w.walk(absRoot, realRoot); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &domain.DiscoveryError{Err: err}
	}

	sort.Strings(w.files)
	return w.files, nil
}

type walker struct {
	ctx     context.Context
	m       *matcher
	absRoot string
	base    string
	seen    map[string]bool
	// entered holds the real paths of directories walked through a link,
	// plus the root.
	entered map[string]bool
	files   []string
}

// walk walks the real directory realDir and reports each path as if it
// lived under dir.
func (w *walker) walk(dir, realDir string) error {
	return filepath.WalkDir(realDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := w.ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == realDir {
			return nil
		}

		sub, _ := filepath.Rel(realDir, path)
		logical := filepath.Join(dir, sub)
		rel, _ := filepath.Rel(w.absRoot, logical)
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if w.skipsDir(d.Name(), rel, logical) {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(d.Name()) {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				return nil
			}
			if target.IsDir() {
				if w.skipsDir(d.Name(), rel, logical) {
					return nil
				}
				return w.follow(logical, path)
			}
			if !target.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		if !w.m.includes(rel) || w.m.ignores(rel, w.base) || w.m.gitignored(logical, false) {
			return nil
		}
		if !w.seen[logical] {
			w.seen[logical] = true
			w.files = append(w.files, logical)
		}
		return nil
	})
}

// follow walks the directory behind a symlink. Targets that overlap a tree
// already being walked, such as a link into the target itself or to one of
// its ancestors, are skipped so each file is reported once and cycles end.
func (w *walker) follow(logical, link string) error {
	resolved, err := filepath.EvalSymlinks(link)
	if err != nil || overlaps(resolved, w.entered) {
		return nil
	}
	w.entered[resolved] = true
	return w.walk(logical, resolved)
}

func (w *walker) skipsDir(name, rel, logical string) bool {
	return isHidden(name) || w.m.prunes(rel, w.base) || w.m.gitignored(logical, true)
}

func overlaps(path string, entered map[string]bool) bool {
	for dir := range entered {
		if path == dir || within(path, dir) || within(dir, path) {
			return true
		}
	}
	return false
}

func within(path, dir string) bool {
	return strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}

type matcher struct {
	include []string
	ignore  []string
	// dirIgnore holds the directory part of ignore patterns ending in /**,
	// used to skip whole subtrees.
	dirIgnore []string
	git       gitignore.IgnoreMatcher
}

const gitignoreFile = ".gitignore"

// loadGitignore reads the .gitignore at the root of the target. Nested
// .gitignore files are not consulted. A missing file matches nothing.
func loadGitignore(absRoot string) (gitignore.IgnoreMatcher, error) {
	path := filepath.Join(absRoot, gitignoreFile)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return gitignore.DummyIgnoreMatcher(false), nil
	}
	return gitignore.NewGitIgnore(path, absRoot)
}

func (m *matcher) gitignored(absPath string, isDir bool) bool {
	return m.git != nil && m.git.Match(absPath, isDir)
}

func newMatcher(cfg domain.AnalysisConfig) (*matcher, error) {
	m := &matcher{}
	for i, ext := range cfg.SupportedExtensions {
		p := "**/*" + ext
		if !doublestar.ValidatePattern(p) {
			return nil, &domain.DiscoveryError{Pattern: Patterns(cfg)[i], Err: doublestar.ErrBadPattern}
		}
		m.include = append(m.include, p)
	}
	for _, raw := range cfg.IgnorePatterns {
		p := strings.ReplaceAll(raw, `\`, "/")
		if !doublestar.ValidatePattern(p) {
			return nil, &domain.DiscoveryError{Pattern: raw, Err: doublestar.ErrBadPattern}
		}
		m.ignore = append(m.ignore, p)
		if dir, ok := strings.CutSuffix(p, "/**"); ok && dir != "" && dir != "**" {
			m.dirIgnore = append(m.dirIgnore, dir)
		}
	}
	return m, nil
}

func (m *matcher) includes(rel string) bool {
	for _, p := range m.include {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// ignores tests rel against every ignore pattern both relative to the
// target and prefixed with the target as given.
func (m *matcher) ignores(rel, base string) bool {
	candidates := []string{rel, base + "/" + rel}
	for _, p := range m.ignore {
		for _, c := range candidates {
			if ok, _ := doublestar.Match(p, c); ok {
				return true
			}
		}
	}
	return false
}

func (m *matcher) prunes(rel, base string) bool {
	for _, p := range m.dirIgnore {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, base+"/"+rel); ok {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
