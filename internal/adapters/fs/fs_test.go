package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
)

// writeTree creates the given files (slash-separated, relative to root).
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte("int x;\n"), domain.FilePerm))
	}
}

func collect(t *testing.T, w *fs.Walker, root string, ignores *fs.IgnoreSet) []string {
	t.Helper()
	var got []string
	for rel, err := range w.WalkFiles(root, root, ignores) {
		require.NoError(t, err)
		got = append(got, rel)
	}
	return got
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		".git/config",
		".kiln/records/x.json",
		"build/out.c",
		"src/main.c",
		"src/util/util.c",
		"README.md",
	)

	ignores, err := fs.NewIgnoreSet([]string{"build"})
	require.NoError(t, err)

	got := collect(t, fs.NewWalker(), root, ignores)

	assert.ElementsMatch(t, []string{"README.md", "src/main.c", "src/util/util.c"}, got)
}

func TestWalker_WalkFiles_MissingDir(t *testing.T) {
	root := t.TempDir()

	var errs []error
	for _, err := range fs.NewWalker().WalkFiles(root, filepath.Join(root, "nope"), nil) {
		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	assert.Error(t, errs[0])
}

func TestIgnoreSet_Match(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		want     bool
	}{
		{name: "base name anywhere", patterns: []string{"*.gen.c"}, path: "src/deep/x.gen.c", want: true},
		{name: "base name no match", patterns: []string{"*.gen.c"}, path: "src/x.c", want: false},
		{name: "rooted single star stays in dir", patterns: []string{"test/*.c"}, path: "test/sub/a.c", want: false},
		{name: "rooted single star", patterns: []string{"test/*.c"}, path: "test/a.c", want: true},
		{name: "double star crosses dirs", patterns: []string{"test/**"}, path: "test/sub/a.c", want: true},
		{name: "nil set", patterns: nil, path: "a.c", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s *fs.IgnoreSet
			if tt.patterns != nil {
				var err error
				s, err = fs.NewIgnoreSet(tt.patterns)
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, s.Match(tt.path))
		})
	}
}

func TestNewIgnoreSet_InvalidPattern(t *testing.T) {
	_, err := fs.NewIgnoreSet([]string{"[unterminated"})
	require.ErrorContains(t, err, domain.ErrInvalidConfig.Error())
}

func TestSourceDiscoverer_Discover(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"src/main.c",
		"src/util.c",
		"src/util.h",
		"src/gen/table.gen.c",
		"tests/test_util.c",
		"tools/helper.cpp",
	)

	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(root, "src", "main.c"), stamp, stamp))

	d := fs.NewSourceDiscoverer(fs.NewWalker())
	mods, err := d.Discover(root, domain.Project{
		Lang:       "c",
		SourceDirs: []string{"src"},
		Ignore:     []string{"*.gen.c"},
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.Target{
		domain.NewTarget(filepath.Join("src", "main.c")),
		domain.NewTarget(filepath.Join("src", "util.c")),
	}, mods.Targets())
	assert.True(t, stamp.Equal(mods[domain.NewTarget(filepath.Join("src", "main.c"))]))
}

func TestSourceDiscoverer_Discover_DefaultsToRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "main.cpp", "lib/a.cc", "lib/b.c")

	mods, err := fs.NewSourceDiscoverer(fs.NewWalker()).Discover(root, domain.Project{Lang: "cpp"})
	require.NoError(t, err)

	assert.Equal(t, []domain.Target{
		domain.NewTarget(filepath.Join("lib", "a.cc")),
		domain.NewTarget("main.cpp"),
	}, mods.Targets())
}

func TestSourceDiscoverer_Discover_Errors(t *testing.T) {
	root := t.TempDir()
	d := fs.NewSourceDiscoverer(fs.NewWalker())

	_, err := d.Discover(root, domain.Project{Lang: "fortran"})
	require.ErrorContains(t, err, domain.ErrInvalidConfig.Error())

	_, err = d.Discover(root, domain.Project{Lang: "c", SourceDirs: []string{"missing"}})
	require.ErrorContains(t, err, domain.ErrSourceDiscoveryFailed.Error())
}
