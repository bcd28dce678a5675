package config

import (
	"errors"
	"fmt"
	"go/token"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"utilgen/internal/diagnostic"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report yaml key names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	if err := v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return token.IsIdentifier(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// Validate checks f and reports every problem as an InvalidConfig
// diagnostic.
func Validate(f *File) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if f == nil {
		diags.AddError(diagnostic.KindInvalidConfig, "config is nil", token.Position{})
		return diags
	}

	err := validate.Struct(f)

	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		for _, ve := range valErrs {
			path := fieldPath(ve)

			diag := diagnostic.New(diagnostic.KindInvalidConfig, path+": "+formatValidationError(ve)).At(f.position(path))
			if hint := suggestion(ve); hint != "" {
				diag.Suggestions = []string{hint}
			}

			diags.Add(diag)
		}
	} else if err != nil {
		diags.AddError(diagnostic.KindInvalidConfig, err.Error(), f.position(""))
	}

	seen := make(map[string]int)

	for i, d := range f.Declarations {
		if d.Name == "" {
			continue
		}

		key := d.Package + "\x00" + d.Name
		if first, dup := seen[key]; dup {
			path := fmt.Sprintf("declarations[%d].name", i)
			diags.AddError(diagnostic.KindInvalidConfig,
				fmt.Sprintf("%s: %s is already declared by declarations[%d]", path, d.Name, first), f.position(path))

			continue
		}

		seen[key] = i
	}

	return diags
}

// fieldPath drops the root struct name from the validator namespace.
func fieldPath(ve validator.FieldError) string {
	_, path, found := strings.Cut(ve.Namespace(), ".")
	if !found {
		return ve.Namespace()
	}

	return path
}

// position locates a field path in the loaded file. Paths inside a
// declaration point at the declaration's line.
func (f *File) position(path string) token.Position {
	pos := token.Position{Filename: f.Path}

	var i int
	if _, err := fmt.Sscanf(path, "declarations[%d]", &i); err == nil && i >= 0 && i < len(f.Declarations) {
		pos.Line = f.Declarations[i].Line
	}

	return pos
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "goident":
		return fmt.Sprintf("%q is not a valid Go identifier", ve.Value())
	case "endswith":
		return fmt.Sprintf("must end with %s", ve.Param())
	case "excludesall":
		return "must be a file name, not a path"
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}

		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

func suggestion(ve validator.FieldError) string {
	switch ve.Tag() {
	case "oneof":
		return "use one of: " + strings.Join(strings.Fields(ve.Param()), ", ")
	case "endswith", "excludesall":
		return "use a name like " + DefaultFilename
	case "required":
		return "set " + ve.Field()
	default:
		return ""
	}
}
