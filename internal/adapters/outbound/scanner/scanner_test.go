package scanner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tscoverage/tscoverage/internal/adapters/outbound/scanner"
	"github.com/tscoverage/tscoverage/internal/domain"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("const x = 1;\n"), 0644))
	}
}

func defaultConfig(dir string) domain.AnalysisConfig {
	return domain.AnalysisConfig{
		TargetDirectory:     dir,
		SupportedExtensions: domain.DefaultExtensions(),
		IgnorePatterns:      domain.DefaultIgnorePatterns(),
	}
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	absRoot, err := filepath.Abs(root)
	require.NoError(t, err)
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		assert.True(t, filepath.IsAbs(p), "path %s should be absolute", p)
		r, err := filepath.Rel(absRoot, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscover_FindsSupportedExtensionsSorted(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"z.ts", "a.js", "components/Button.tsx", "components/Old.jsx",
		"views/Home.vue", "deep/nested/dir/file.ts", "README.md", "style.css",
	)

	files, err := scanner.New().Discover(context.Background(), defaultConfig(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a.js",
		"components/Button.tsx",
		"components/Old.jsx",
		"deep/nested/dir/file.ts",
		"views/Home.vue",
		"z.ts",
	}, rel(t, dir, files))
}

func TestDiscover_ExcludesDefaultIgnoredDirectories(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"app.ts",
		"node_modules/lib/index.js",
		"pkg/node_modules/dep/index.js",
		"dist/bundle.js",
		"build/out.js",
		"coverage/lcov-report/prettify.js",
	)

	files, err := scanner.New().Discover(context.Background(), defaultConfig(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"app.ts"}, rel(t, dir, files))
}

func TestDiscover_ExcludesDotFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "app.ts", ".eslintrc.js", ".storybook/main.js", "src/.hidden.ts")

	files, err := scanner.New().Discover(context.Background(), defaultConfig(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"app.ts"}, rel(t, dir, files))
}

func TestDiscover_KeepsTestFilesByDefault(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "sum.ts", "sum.test.ts", "sum.spec.js")

	files, err := scanner.New().Discover(context.Background(), defaultConfig(dir))
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestDiscover_CustomIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "typescript/a.ts", "javascript/b.js", "javascript/nested/c.js", "x.test.ts")

	cfg := defaultConfig(dir)
	cfg.IgnorePatterns = []string{"**/javascript/**", "**/*.test.*"}

	files, err := scanner.New().Discover(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"typescript/a.ts"}, rel(t, dir, files))
}

func TestDiscover_EmptyIgnoreMeansIgnoreNothing(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "app.ts", "node_modules/lib/index.js")

	cfg := defaultConfig(dir)
	cfg.IgnorePatterns = []string{}

	files, err := scanner.New().Discover(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.ts", "node_modules/lib/index.js"}, rel(t, dir, files))
}

func TestDiscover_EmptyExtensionsMatchNothing(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "app.ts")

	cfg := defaultConfig(dir)
	cfg.SupportedExtensions = []string{}

	files, err := scanner.New().Discover(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscover_CustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.ts", "b.js", "c.mts")

	cfg := defaultConfig(dir)
	cfg.SupportedExtensions = []string{".ts", ".mts"}

	files, err := scanner.New().Discover(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.ts", "c.mts"}, rel(t, dir, files))
}

func TestDiscover_DuplicateExtensionsDoNotDuplicateFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.ts")

	cfg := defaultConfig(dir)
	cfg.SupportedExtensions = []string{".ts", ".ts"}

	files, err := scanner.New().Discover(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestDiscover_MissingDirectoryIsEmpty(t *testing.T) {
	files, err := scanner.New().Discover(context.Background(), defaultConfig(filepath.Join(t.TempDir(), "nope")))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscover_OnlyIgnoredFilesIsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "node_modules/react/index.js", "node_modules/react/cjs/react.development.js")

	files, err := scanner.New().Discover(context.Background(), defaultConfig(dir))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscover_InvalidIgnorePattern(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.ts")

	cfg := defaultConfig(dir)
	cfg.IgnorePatterns = []string{"**/[unclosed"}

	_, err := scanner.New().Discover(context.Background(), cfg)
	var discErr *domain.DiscoveryError
	require.True(t, errors.As(err, &discErr))
	assert.Equal(t, "**/[unclosed", discErr.Pattern)
}

func TestDiscover_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.ts", "b/c.ts")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scanner.New().Discover(ctx, defaultConfig(dir))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_RespectsGitignore(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "app.ts", "generated/api.ts", "legacy/old.js", "legacy/keep.js", "tmp.js")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"),
		[]byte("# build output\ngenerated/\nlegacy/*.js\n!legacy/keep.js\ntmp.js\n"), 0644))

	cfg := defaultConfig(dir)
	files, err := scanner.New().Discover(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, files, 5, ".gitignore is not consulted unless asked")

	cfg.RespectGitignore = true
	files, err = scanner.New().Discover(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.ts", "legacy/keep.js"}, rel(t, dir, files))
}

func TestDiscover_RespectGitignoreWithoutFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "app.ts", "lib/util.js")

	cfg := defaultConfig(dir)
	cfg.RespectGitignore = true
	files, err := scanner.New().Discover(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func symlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
}

func TestDiscover_FollowsSymlinkedFile(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, outside, "shared.ts")
	writeTree(t, dir, "app.ts")
	symlink(t, filepath.Join(outside, "shared.ts"), filepath.Join(dir, "linked.ts"))

	files, err := scanner.New().Discover(context.Background(), defaultConfig(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"app.ts", "linked.ts"}, rel(t, dir, files))
}

func TestDiscover_FollowsSymlinkedDirectory(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, outside, "util.ts", "deep/helper.js", "node_modules/dep/index.js")
	writeTree(t, dir, "app.ts")
	symlink(t, outside, filepath.Join(dir, "shared"))

	files, err := scanner.New().Discover(context.Background(), defaultConfig(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"app.ts", "shared/deep/helper.js", "shared/util.ts"}, rel(t, dir, files))
}

func TestDiscover_SymlinkCyclesTerminate(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "lib/a.ts")
	symlink(t, dir, filepath.Join(dir, "lib", "root"))
	symlink(t, filepath.Join(dir, "lib"), filepath.Join(dir, "alias"))

	files, err := scanner.New().Discover(context.Background(), defaultConfig(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/a.ts"}, rel(t, dir, files), "each file is reported once")
}

func TestDiscover_SymlinkedTargetDirectory(t *testing.T) {
	target := t.TempDir()
	writeTree(t, target, "a.ts")
	link := filepath.Join(t.TempDir(), "src")
	symlink(t, target, link)

	files, err := scanner.New().Discover(context.Background(), defaultConfig(link))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.ts"}, rel(t, link, files))
}

func TestPatterns_NormalizesBackslashes(t *testing.T) {
	cfg := domain.AnalysisConfig{
		TargetDirectory:     `C:\work\app\`,
		SupportedExtensions: []string{".ts", ".vue"},
	}
	assert.Equal(t, []string{"C:/work/app/**/*.ts", "C:/work/app/**/*.vue"}, scanner.Patterns(cfg))
}
