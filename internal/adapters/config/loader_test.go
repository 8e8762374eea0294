package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/config"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func newLoader(t *testing.T, env map[string]string) (*config.Loader, *mocks.MockLogger, *mocks.MockSourceDiscoverer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockSources := mocks.NewMockSourceDiscoverer(ctrl)

	loader := config.NewLoader(mockLogger, mockSources)
	loader.Getenv = func(key string) string { return env[key] }
	return loader, mockLogger, mockSources
}

const helloYAML = `
project:
  name: hello
  compiler: ccache gcc
  compiler_flags: [Wall, O2]
  include: [include]
  lib_dir: [lib]
  libs: [m]
  linker_flags: [pthread]
  src: [src]
  ignore: ["*.gen.c"]
  before_script: echo before
  after_script: echo after
bin:
  - name: hello
    path: src/main.c
  - name: tool
    sources: [src/tool.c, src/tool_cli.c]
lib:
  - name: greet
    static: true
    dynamic: true
`

func TestLoader_Load_YAML(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.YAMLFileName, helloYAML)

	loader, _, mockSources := newLoader(t, nil)
	mods := domain.FileModMap{domain.NewTarget("src/main.c"): time.Unix(1, 0)}
	mockSources.EXPECT().Discover(root, gomock.Any()).DoAndReturn(
		func(_ string, p domain.Project) (domain.FileModMap, error) {
			assert.Equal(t, []string{"src"}, p.SourceDirs)
			assert.Equal(t, []string{"*.gen.c"}, p.Ignore)
			return mods, nil
		},
	)

	desc, err := loader.Load(filepath.Join(root, domain.YAMLFileName))
	require.NoError(t, err)

	assert.Equal(t, root, desc.Root)
	assert.Equal(t, filepath.Join(root, domain.YAMLFileName), desc.File)
	assert.Equal(t, "hello", desc.Project.Name)
	assert.Equal(t, domain.LangC, desc.Project.Lang)
	assert.Equal(t, "echo before", desc.Project.BeforeScript)
	assert.Equal(t, "echo after", desc.Project.AfterScript)
	assert.Equal(t, domain.Toolchain{
		Compiler:      []string{"ccache", "gcc"},
		CompilerFlags: []string{"Wall", "O2"},
		Includes:      []string{"include"},
		LibDirs:       []string{"lib"},
		Libs:          []string{"m"},
		LinkerFlags:   []string{"pthread"},
		Archiver:      []string{"ar"},
		ArchiverFlags: []string{"rcs"},
	}, desc.Project.Toolchain)
	assert.Equal(t, []domain.Binary{
		{Name: "hello", Sources: []string{filepath.Join("src", "main.c")}},
		{Name: "tool", Sources: []string{filepath.Join("src", "tool.c"), filepath.Join("src", "tool_cli.c")}},
	}, desc.Binaries)
	assert.Equal(t, []domain.Library{{Name: "greet", Static: true, Dynamic: true}}, desc.Libraries)
	assert.Equal(t, mods, desc.Sources)
}

func TestLoader_Load_TOML(t *testing.T) {
	root := filepath.Join(t.TempDir(), "calc")
	createFile(t, root, "calc.toml", `
[project]
name = "calc"
lang = "c++"
archiver = "llvm-ar"
archiver_flags = "crs"

[[bin]]
name = "calc"
path = "main.cpp"

[[lib]]
name = "calc"
static = true
`)

	loader, _, mockSources := newLoader(t, nil)
	mockSources.EXPECT().Discover(root, gomock.Any()).Return(domain.FileModMap{}, nil)

	desc, err := loader.Load(filepath.Join(root, "calc.toml"))
	require.NoError(t, err)

	assert.Equal(t, domain.LangCPP, desc.Project.Lang)
	assert.Equal(t, []string{"gcc"}, desc.Project.Toolchain.Compiler)
	assert.Equal(t, []string{"llvm-ar"}, desc.Project.Toolchain.Archiver)
	assert.Equal(t, []string{"crs"}, desc.Project.Toolchain.ArchiverFlags)
	assert.Equal(t, []domain.Binary{{Name: "calc", Sources: []string{"main.cpp"}}}, desc.Binaries)
	assert.Equal(t, []domain.Library{{Name: "calc", Static: true}}, desc.Libraries)
}

func TestLoader_Load_ToolsFromEnvironment(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.YAMLFileName, "project:\n  name: env\n")

	loader, _, mockSources := newLoader(t, map[string]string{"CC": "clang", "AR": "llvm-ar"})
	mockSources.EXPECT().Discover(root, gomock.Any()).Return(domain.FileModMap{}, nil)

	desc, err := loader.Load(filepath.Join(root, domain.YAMLFileName))
	require.NoError(t, err)

	assert.Equal(t, []string{"clang"}, desc.Project.Toolchain.Compiler)
	assert.Equal(t, []string{"llvm-ar"}, desc.Project.Toolchain.Archiver)
}

func TestLoader_Load_EmptyFile(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.YAMLFileName, "")

	loader, _, mockSources := newLoader(t, nil)
	mockSources.EXPECT().Discover(root, gomock.Any()).Return(domain.FileModMap{}, nil)

	desc, err := loader.Load(filepath.Join(root, domain.YAMLFileName))
	require.NoError(t, err)
	assert.Empty(t, desc.Binaries)
	assert.Empty(t, desc.Libraries)
}

func TestLoader_Load_WarnsOnLibraryWithoutArtifacts(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.YAMLFileName, "lib:\n  - name: idle\n")

	loader, mockLogger, mockSources := newLoader(t, nil)
	mockLogger.EXPECT().Warn(`library "idle" requests neither a static nor a dynamic artifact`)
	mockSources.EXPECT().Discover(root, gomock.Any()).Return(domain.FileModMap{}, nil)

	desc, err := loader.Load(filepath.Join(root, domain.YAMLFileName))
	require.NoError(t, err)
	assert.Len(t, desc.Libraries, 1)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		expectedErr error
	}{
		{
			name:        "malformed yaml",
			file:        domain.YAMLFileName,
			content:     "project: [unclosed",
			expectedErr: domain.ErrConfigParseFailed,
		},
		{
			name:        "unknown yaml key",
			file:        domain.YAMLFileName,
			content:     "project:\n  compiler_flagz: [Wall]\n",
			expectedErr: domain.ErrConfigParseFailed,
		},
		{
			name:        "unknown toml key",
			file:        "proj.toml",
			content:     "[project]\nnmae = \"x\"\n",
			expectedErr: domain.ErrConfigParseFailed,
		},
		{
			name:        "malformed toml",
			file:        "proj.toml",
			content:     "[project\n",
			expectedErr: domain.ErrConfigParseFailed,
		},
		{
			name:        "duplicate binary",
			file:        domain.YAMLFileName,
			content:     "bin:\n  - name: app\n  - name: app\n",
			expectedErr: domain.ErrDuplicateOutput,
		},
		{
			name:        "duplicate library",
			file:        domain.YAMLFileName,
			content:     "lib:\n  - {name: u, static: true}\n  - {name: u, dynamic: true}\n",
			expectedErr: domain.ErrDuplicateOutput,
		},
		{
			name:        "unnamed binary",
			file:        domain.YAMLFileName,
			content:     "bin:\n  - path: main.c\n",
			expectedErr: domain.ErrInvalidConfig,
		},
		{
			name:        "unbalanced compiler quote",
			file:        domain.YAMLFileName,
			content:     "project:\n  compiler: \"gcc '-O2\"\n",
			expectedErr: domain.ErrInvalidCompiler,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			createFile(t, root, tt.file, tt.content)

			loader, _, _ := newLoader(t, nil)
			desc, err := loader.Load(filepath.Join(root, tt.file))

			require.Error(t, err)
			require.ErrorContains(t, err, tt.expectedErr.Error())
			assert.Nil(t, desc)
		})
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	loader, _, _ := newLoader(t, nil)

	_, err := loader.Load(filepath.Join(t.TempDir(), domain.YAMLFileName))
	require.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestLoader_Load_SourceDiscoveryFailure(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.YAMLFileName, "project:\n  name: x\n")

	loader, _, mockSources := newLoader(t, nil)
	mockSources.EXPECT().Discover(root, gomock.Any()).Return(nil, domain.ErrSourceDiscoveryFailed)

	_, err := loader.Load(filepath.Join(root, domain.YAMLFileName))
	require.ErrorContains(t, err, domain.ErrSourceDiscoveryFailed.Error())
}

func TestLoader_Discover_Parent(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.YAMLFileName, "project:\n  name: parent\n")
	start := filepath.Join(root, "src", "nested")
	require.NoError(t, os.MkdirAll(start, domain.DirPerm))

	loader, _, mockSources := newLoader(t, nil)
	mockSources.EXPECT().Discover(root, gomock.Any()).Return(domain.FileModMap{}, nil)

	desc, err := loader.Discover(start)
	require.NoError(t, err)
	assert.Equal(t, root, desc.Root)
	assert.Equal(t, "parent", desc.Project.Name)
}

func TestLoader_Discover_NearestWins(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.YAMLFileName, "project:\n  name: outer\n")
	inner := filepath.Join(root, "inner")
	createFile(t, inner, "inner.toml", "[project]\nname = \"inner\"\n")

	loader, _, mockSources := newLoader(t, nil)
	mockSources.EXPECT().Discover(inner, gomock.Any()).Return(domain.FileModMap{}, nil)

	desc, err := loader.Discover(inner)
	require.NoError(t, err)
	assert.Equal(t, "inner", desc.Project.Name)
}

func TestLoader_Discover_PrefersYAML(t *testing.T) {
	root := filepath.Join(t.TempDir(), "both")
	createFile(t, root, "both.toml", "[project]\nname = \"toml\"\n")
	createFile(t, root, domain.YMLFileName, "project:\n  name: yml\n")

	loader, _, mockSources := newLoader(t, nil)
	mockSources.EXPECT().Discover(root, gomock.Any()).Return(domain.FileModMap{}, nil)

	desc, err := loader.Discover(root)
	require.NoError(t, err)
	assert.Equal(t, "yml", desc.Project.Name)
}

func TestLoader_Discover_NotFound(t *testing.T) {
	start := t.TempDir()
	loader, _, _ := newLoader(t, nil)

	_, err := loader.Discover(start)
	if err == nil {
		t.Skip("a build file exists above the temporary directory")
	}
	require.ErrorContains(t, err, domain.ErrNoBuildFile.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, start, zErr.Metadata()["start_dir"])
}

func TestLoader_Integration_DiscoversSources(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.YAMLFileName, "project:\n  src: [src]\nbin:\n  - name: app\n    path: src/main.c\n")
	createFile(t, root, "src/main.c", "int main(void) { return 0; }\n")
	createFile(t, root, "src/util.c", "int util(void) { return 1; }\n")
	createFile(t, root, "src/util.h", "int util(void);\n")

	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl), fs.NewSourceDiscoverer(fs.NewWalker()))

	desc, err := loader.Discover(filepath.Join(root, "src"))
	require.NoError(t, err)

	assert.Equal(t, []domain.Target{
		domain.NewTarget(filepath.Join("src", "main.c")),
		domain.NewTarget(filepath.Join("src", "util.c")),
	}, desc.Sources.Targets())
	assert.Equal(t, []string{filepath.Join("src", "main.o"), filepath.Join("src", "util.o")}, desc.LibraryObjects())
}
