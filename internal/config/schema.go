package config

// DefaultFilename is the generated file name used when output.filename is
// empty.
const DefaultFilename = "utilgen_types.go"

// DefaultHeader is the first comment line of generated files.
const DefaultHeader = "Code generated by utilgen. DO NOT EDIT."

// File is the root of utilgen.yaml.
type File struct {
	// Version of the config format.
	Version string `yaml:"version" validate:"required,oneof=1"`
	// Packages are go/packages patterns to load.
	Packages []string `yaml:"packages,omitempty" validate:"dive,required"`
	// Output controls generated files.
	Output Output `yaml:"output,omitempty"`
	// Declarations are selector declarations kept out of source.
	Declarations []Declaration `yaml:"declarations,omitempty" validate:"dive"`

	// Dir is the directory of the loaded file; empty for parsed data.
	Dir string `yaml:"-"`
	// Path is the file the config was loaded from.
	Path string `yaml:"-"`
}

// Output configures generated files.
type Output struct {
	Filename    string `yaml:"filename,omitempty" validate:"required,endswith=.go,excludesall=/\\"`
	Header      string `yaml:"header,omitempty"`
	Concurrency int    `yaml:"concurrency,omitempty" validate:"gte=0,lte=256"`
}

// Declaration is one selector declaration.
type Declaration struct {
	// Name of the generated type.
	Name string `yaml:"name" validate:"required,goident"`
	// Kind is struct or interface.
	Kind string `yaml:"kind,omitempty" validate:"oneof=struct interface"`
	// Package is the directory (or import path) of the output package.
	Package  string `yaml:"package" validate:"required"`
	Selector string `yaml:"selector" validate:"required"`
	// Namespaces override the candidate namespaces. By default they are the
	// output package followed by its imports.
	Namespaces []string `yaml:"namespaces,omitempty" validate:"dive,goident"`
	// Accessibility overrides the one derived from Name.
	Accessibility string `yaml:"accessibility,omitempty" validate:"omitempty,oneof=public internal private"`

	// Line is the line of the entry in the source file, if known.
	Line int `yaml:"-"`
}
