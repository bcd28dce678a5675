// Package gen renders evaluated declarations as Go source.
//
// Generation uses text/template + go/format. Every output package gets one
// file holding its declarations sorted by name:
//   - struct declarations become struct types; readonly fields are
//     unexported and exposed through a getter
//   - interface declarations become interfaces with a getter per field and
//     a setter per writable field
//
// A declaration that cannot be written is reported as a diagnostic and left
// out; the rest of its file is still generated.
package gen
