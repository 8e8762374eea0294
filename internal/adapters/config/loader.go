// Package config locates and parses kiln project descriptions.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/shlex"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	defaultCompiler      = "gcc"
	defaultArchiver      = "ar"
	defaultArchiverFlags = "rcs"
)

var _ ports.DescriptionLoader = (*Loader)(nil)

// Loader implements ports.DescriptionLoader for YAML and TOML build files.
type Loader struct {
	Logger  ports.Logger
	Sources ports.SourceDiscoverer
	// Getenv supplies CC and AR when the build file leaves the tools unset.
	Getenv func(string) string
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger, sources ports.SourceDiscoverer) *Loader {
	return &Loader{
		Logger:  logger,
		Sources: sources,
		Getenv:  os.Getenv,
	}
}

// Discover finds the nearest build file at or above startDir and loads it.
func (l *Loader) Discover(startDir string) (*domain.Description, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrNoBuildFile.Error()), "start_dir", startDir)
	}

	path, ok := findBuildFile(abs)
	if !ok {
		return nil, zerr.With(domain.ErrNoBuildFile, "start_dir", startDir)
	}
	return l.Load(path)
}

// findBuildFile walks upward from start, returning the first recognized build file.
func findBuildFile(start string) (string, bool) {
	current := start
	for {
		for _, name := range domain.BuildFileNames(current) {
			candidate := filepath.Join(current, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate, true
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// Load parses the build file at path and discovers its sources.
// The directory holding the file becomes the project root.
func (l *Loader) Load(path string) (*domain.Description, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", path)
	}

	var file BuildFile
	if err := decodeBuildFile(abs, &file); err != nil {
		return nil, zerr.With(err, "file", abs)
	}

	desc, err := l.buildDescription(&file)
	if err != nil {
		return nil, zerr.With(err, "file", abs)
	}
	desc.Root = filepath.Dir(abs)
	desc.File = abs

	desc.Sources, err = l.Sources.Discover(desc.Root, desc.Project)
	if err != nil {
		return nil, err
	}
	return desc, nil
}

func decodeBuildFile(path string, target *BuildFile) error {
	// #nosec G304 -- path is the located build file
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if strings.EqualFold(filepath.Ext(path), domain.TOMLExt) {
		return decodeTOML(data, target)
	}
	return decodeYAML(data, target)
}

func decodeYAML(data []byte, target *BuildFile) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

func decodeTOML(data []byte, target *BuildFile) error {
	md, err := toml.Decode(string(data), target)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return zerr.With(domain.ErrConfigParseFailed, "unknown_key", undecoded[0].String())
	}
	return nil
}

func (l *Loader) buildDescription(file *BuildFile) (*domain.Description, error) {
	toolchain, err := l.buildToolchain(&file.Project)
	if err != nil {
		return nil, err
	}

	binaries, err := buildBinaries(file.Bin)
	if err != nil {
		return nil, err
	}

	libraries, err := l.buildLibraries(file.Lib)
	if err != nil {
		return nil, err
	}

	return &domain.Description{
		Project: domain.Project{
			Name:         file.Project.Name,
			Lang:         domain.NormalizeLang(file.Project.Lang),
			SourceDirs:   file.Project.Src,
			Ignore:       file.Project.Ignore,
			BeforeScript: file.Project.BeforeScript,
			AfterScript:  file.Project.AfterScript,
			Toolchain:    toolchain,
		},
		Binaries:  binaries,
		Libraries: libraries,
	}, nil
}

func (l *Loader) buildToolchain(p *ProjectDTO) (domain.Toolchain, error) {
	compiler, err := splitTool("compiler", firstNonEmpty(p.Compiler, l.Getenv("CC"), defaultCompiler))
	if err != nil {
		return domain.Toolchain{}, err
	}
	archiver, err := splitTool("archiver", firstNonEmpty(p.Archiver, l.Getenv("AR"), defaultArchiver))
	if err != nil {
		return domain.Toolchain{}, err
	}
	arFlags, err := splitTool("archiver_flags", firstNonEmpty(p.ArchiverFlags, defaultArchiverFlags))
	if err != nil {
		return domain.Toolchain{}, err
	}

	return domain.Toolchain{
		Compiler:      compiler,
		CompilerFlags: p.CompilerFlags,
		Includes:      p.Include,
		LibDirs:       p.LibDir,
		Libs:          p.Libs,
		LinkerFlags:   p.LinkerFlags,
		Archiver:      archiver,
		ArchiverFlags: arFlags,
	}, nil
}

// splitTool splits a configured command such as "ccache gcc" into arguments.
func splitTool(field, value string) ([]string, error) {
	args, err := shlex.Split(value)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidCompiler.Error()), field, value)
	}
	if len(args) == 0 {
		return nil, zerr.With(domain.ErrInvalidCompiler, field, value)
	}
	return args, nil
}

func buildBinaries(dtos []BinaryDTO) ([]domain.Binary, error) {
	seen := make(map[string]bool, len(dtos))
	binaries := make([]domain.Binary, 0, len(dtos))
	for i, dto := range dtos {
		if dto.Name == "" {
			return nil, zerr.With(domain.ErrInvalidConfig, "bin", fmt.Sprintf("entry %d has no name", i))
		}
		if seen[dto.Name] {
			err := zerr.With(domain.ErrDuplicateOutput, "kind", string(domain.KindBinary))
			return nil, zerr.With(err, "name", dto.Name)
		}
		seen[dto.Name] = true

		sources := make([]string, 0, len(dto.Sources)+1)
		if dto.Path != "" {
			sources = append(sources, filepath.Clean(filepath.FromSlash(dto.Path)))
		}
		for _, s := range dto.Sources {
			sources = append(sources, filepath.Clean(filepath.FromSlash(s)))
		}
		binaries = append(binaries, domain.Binary{Name: dto.Name, Sources: sources})
	}
	return binaries, nil
}

func (l *Loader) buildLibraries(dtos []LibraryDTO) ([]domain.Library, error) {
	seen := make(map[string]bool, len(dtos))
	libraries := make([]domain.Library, 0, len(dtos))
	for i, dto := range dtos {
		if dto.Name == "" {
			return nil, zerr.With(domain.ErrInvalidConfig, "lib", fmt.Sprintf("entry %d has no name", i))
		}
		if seen[dto.Name] {
			err := zerr.With(domain.ErrDuplicateOutput, "kind", string(domain.KindLibrary))
			return nil, zerr.With(err, "name", dto.Name)
		}
		seen[dto.Name] = true

		if !dto.Static && !dto.Dynamic {
			l.Logger.Warn(fmt.Sprintf("library %q requests neither a static nor a dynamic artifact", dto.Name))
		}
		libraries = append(libraries, domain.Library{Name: dto.Name, Static: dto.Static, Dynamic: dto.Dynamic})
	}
	return libraries, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
