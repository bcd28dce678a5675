package report

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"utilgen/internal/engine"
)

// Manifest lists evaluated declarations.
type Manifest struct {
	Declarations []Declaration `yaml:"declarations"`
}

// Declaration is one entry of a Manifest.
type Declaration struct {
	Name          string   `yaml:"name"`
	Kind          string   `yaml:"kind"`
	Package       string   `yaml:"package,omitempty"`
	Selector      string   `yaml:"selector"`
	Accessibility string   `yaml:"accessibility"`
	Source        string   `yaml:"source,omitempty"`
	Fields        []Field  `yaml:"fields,omitempty"`
	Error         *Failure `yaml:"error,omitempty"`
}

// Field is one field of a declaration.
type Field struct {
	Name  string   `yaml:"name"`
	Type  string   `yaml:"type"`
	Flags []string `yaml:"flags,omitempty,flow"`
}

// Failure describes a declaration that did not evaluate.
type Failure struct {
	Code        string   `yaml:"code"`
	Message     string   `yaml:"message"`
	Suggestions []string `yaml:"suggestions,omitempty"`
}

// NewManifest builds a manifest from results, keeping their order.
func NewManifest(results []engine.Result) *Manifest {
	m := &Manifest{Declarations: make([]Declaration, 0, len(results))}

	for _, r := range results {
		req := r.Request

		decl := Declaration{
			Name:          req.Name,
			Kind:          req.Category.String(),
			Package:       req.Package,
			Selector:      req.Selector,
			Accessibility: req.Access.String(),
		}

		if req.Pos.IsValid() {
			decl.Source = req.Pos.String()
		}

		if !r.OK() {
			decl.Error = &Failure{
				Code:        r.Diagnostic.Code,
				Message:     r.Diagnostic.Message,
				Suggestions: r.Diagnostic.Suggestions,
			}
		}

		for _, f := range r.Fields {
			decl.Fields = append(decl.Fields, Field{Name: f.Name, Type: typeName(f.Type), Flags: Flags(f)})
		}

		m.Declarations = append(m.Declarations, decl)
	}

	return m
}

// Marshal serializes the manifest to YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	return buf.Bytes(), nil
}

// Write writes the YAML manifest to w.
func (m *Manifest) Write(w io.Writer) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
