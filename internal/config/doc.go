// Package config loads utilgen.yaml.
//
// The file names the packages to load, output settings and selector
// declarations that are not written as source directives:
//
//	version: "1"
//	packages: ["./examples/poco"]
//	output:
//	  filename: utilgen_types.go
//	declarations:
//	  - name: PocoSummary
//	    kind: struct
//	    package: ./examples/poco
//	    selector: Pick<TestPoco, NotNullInt|NotNullObject>
//
// Relative package directories are resolved against the directory holding
// the file.
package config
