package config

// BuildFile is the structure of a project description, in YAML or TOML.
type BuildFile struct {
	Project ProjectDTO   `yaml:"project" toml:"project"`
	Bin     []BinaryDTO  `yaml:"bin" toml:"bin"`
	Lib     []LibraryDTO `yaml:"lib" toml:"lib"`
}

// ProjectDTO holds the global project settings.
type ProjectDTO struct {
	Name          string   `yaml:"name" toml:"name"`
	Lang          string   `yaml:"lang" toml:"lang"`
	Compiler      string   `yaml:"compiler" toml:"compiler"`
	CompilerFlags []string `yaml:"compiler_flags" toml:"compiler_flags"`
	Include       []string `yaml:"include" toml:"include"`
	LibDir        []string `yaml:"lib_dir" toml:"lib_dir"`
	Libs          []string `yaml:"libs" toml:"libs"`
	LinkerFlags   []string `yaml:"linker_flags" toml:"linker_flags"`
	Archiver      string   `yaml:"archiver" toml:"archiver"`
	ArchiverFlags string   `yaml:"archiver_flags" toml:"archiver_flags"`
	Src           []string `yaml:"src" toml:"src"`
	Ignore        []string `yaml:"ignore" toml:"ignore"`
	BeforeScript  string   `yaml:"before_script" toml:"before_script"`
	AfterScript   string   `yaml:"after_script" toml:"after_script"`
}

// BinaryDTO declares an executable. Path is shorthand for a single owned source.
type BinaryDTO struct {
	Name    string   `yaml:"name" toml:"name"`
	Path    string   `yaml:"path" toml:"path"`
	Sources []string `yaml:"sources" toml:"sources"`
}

// LibraryDTO declares a library and the artifact forms it wants.
type LibraryDTO struct {
	Name    string `yaml:"name" toml:"name"`
	Static  bool   `yaml:"static" toml:"static"`
	Dynamic bool   `yaml:"dynamic" toml:"dynamic"`
}
