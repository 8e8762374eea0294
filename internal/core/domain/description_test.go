package domain_test

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
)

func newDescription(sources []string, bins []domain.Binary, libs []domain.Library) *domain.Description {
	mods := make(domain.FileModMap, len(sources))
	for _, s := range sources {
		mods[domain.NewTarget(s)] = time.Unix(0, 0)
	}
	return &domain.Description{
		Root: "/proj",
		Project: domain.Project{
			Name: "proj",
			Toolchain: domain.Toolchain{
				Compiler:      []string{"gcc"},
				CompilerFlags: []string{"Wall", "-O2"},
				Includes:      []string{"include"},
				LibDirs:       []string{"lib"},
				Libs:          []string{"m"},
				LinkerFlags:   []string{"pthread"},
				Archiver:      []string{"ar"},
				ArchiverFlags: []string{"rcs"},
			},
		},
		Sources:   mods,
		Binaries:  bins,
		Libraries: libs,
	}
}

func TestDescription_BinaryObjects(t *testing.T) {
	a := domain.Binary{Name: "a", Sources: []string{"a.c", "shared.c"}}
	b := domain.Binary{Name: "b", Sources: []string{"b.c", "shared.c"}}
	desc := newDescription([]string{"a.c", "b.c", "shared.c"}, []domain.Binary{a, b}, nil)

	assert.Equal(t, []string{"a.o", "shared.o"}, desc.BinaryObjects(a))
	assert.Equal(t, []string{"b.o", "shared.o"}, desc.BinaryObjects(b))
}

func TestDescription_BinaryObjects_SingleBinaryUnfiltered(t *testing.T) {
	a := domain.Binary{Name: "a", Sources: []string{"a.c"}}
	desc := newDescription([]string{"a.c", "b.c", "util.c"}, []domain.Binary{a}, nil)

	assert.Equal(t, []string{"a.o", "b.o", "util.o"}, desc.BinaryObjects(a))
}

func TestDescription_BinaryObjects_UnownedSourcesShared(t *testing.T) {
	a := domain.Binary{Name: "a", Sources: []string{"a.c"}}
	b := domain.Binary{Name: "b", Sources: []string{"b.c"}}
	desc := newDescription([]string{"a.c", "b.c", "util.c"}, []domain.Binary{a, b}, nil)

	assert.Equal(t, []string{"a.o", "util.o"}, desc.BinaryObjects(a))
	assert.Equal(t, []string{"b.o", "util.o"}, desc.BinaryObjects(b))
}

func TestDescription_ObjectList(t *testing.T) {
	a := domain.Binary{Name: "a", Sources: []string{"a.c"}}
	desc := newDescription([]string{"b.c", "a.c"}, []domain.Binary{a}, nil)

	assert.Equal(t, []string{"a.o", "b.o"}, desc.ObjectList())
	assert.Equal(t, []string{"b.o"}, desc.ObjectList(a))
	assert.Equal(t, []string{"a.o", "b.o"}, desc.LibraryObjects())
}

func TestDescription_LibraryCommands_IncludeBinarySources(t *testing.T) {
	app := domain.Binary{Name: "app", Sources: []string{"main.c"}}
	lib := domain.Library{Name: "util", Static: true, Dynamic: true}
	desc := newDescription([]string{"main.c", "util.c"}, []domain.Binary{app}, []domain.Library{lib})

	static := desc.StaticCommand(lib).Args
	assert.Equal(t, []string{"main.o", "util.o"}, static[len(static)-2:])
	assert.Contains(t, desc.DynamicCommand(lib).Args, "main.o")
	assert.Contains(t, desc.DynamicCommand(lib).Args, "util.o")
}

func TestDescription_Flags(t *testing.T) {
	desc := newDescription(nil, nil, nil)
	desc.Project.Toolchain.Libs = []string{"m", "pthread"}

	assert.Equal(t, []string{"-lm", "-lpthread"}, desc.LibraryFlags())
	assert.Equal(t, []string{"-Llib"}, desc.LibDirFlags())
	assert.Equal(t, []string{"-Iinclude"}, desc.IncludeFlags())
}

func TestDescription_Lookup(t *testing.T) {
	desc := newDescription(nil,
		[]domain.Binary{{Name: "app"}},
		[]domain.Library{{Name: "util", Static: true}},
	)

	b, err := desc.Binary("app")
	require.NoError(t, err)
	assert.Equal(t, "app", b.Name)

	l, err := desc.Library("util")
	require.NoError(t, err)
	assert.Equal(t, "util", l.Name)

	_, err = desc.Binary("missing")
	require.ErrorContains(t, err, domain.ErrTargetNotFound.Error())

	_, err = desc.Library("app")
	require.ErrorContains(t, err, domain.ErrTargetNotFound.Error())
}

func TestDescription_Abs(t *testing.T) {
	desc := newDescription(nil, nil, nil)

	assert.Equal(t, "/proj/src/a.o", desc.Abs("src/a.o"))
	assert.Equal(t, "/elsewhere/x", desc.Abs("/elsewhere/x"))
}

func TestDescription_Commands(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("library file names are platform specific")
	}

	a := domain.Binary{Name: "a", Sources: []string{"src/a.c"}}
	b := domain.Binary{Name: "b", Sources: []string{"src/b.c"}}
	util := domain.Library{Name: "util", Static: true, Dynamic: true}
	desc := newDescription(
		[]string{"src/a.c", "src/b.c", "src/shared.c"},
		[]domain.Binary{a, b},
		[]domain.Library{util},
	)

	lines := make([]string, 0, 8)
	for _, target := range desc.Sources.Targets() {
		cmd := desc.CompileCommand(target)
		assert.Equal(t, "/proj", cmd.Dir)
		lines = append(lines, cmd.String())
	}
	lines = append(lines,
		desc.LinkCommand(a).String(),
		desc.LinkCommand(b).String(),
		desc.StaticCommand(util).String(),
		desc.DynamicCommand(util).String(),
	)

	g := goldie.New(t)
	g.Assert(t, "commands", []byte(strings.Join(lines, "\n")+"\n"))
}
