package diagnostic_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"utilgen/internal/diagnostic"
	"utilgen/internal/selector"
	"utilgen/internal/typesys"
	"utilgen/internal/typesys/typesystest"
)

func compileAndEvaluate(f *typesystest.Fixture, text string) error {
	n, err := selector.Compile(f.Table, text, selector.Scope{
		Access:     typesys.Public,
		Namespaces: []string{typesystest.Namespace},
	})
	if err != nil {
		return err
	}

	_, err = selector.Evaluate(f.Table, n)

	return err
}

func TestClassify(t *testing.T) {
	f := typesystest.New()

	tests := []struct {
		input string
		kind  diagnostic.Kind
		code  string
	}{
		{"Pick<TestPoco", diagnostic.KindMalformedExpression, "UTG0001"},
		{"Frob<TestPoco>", diagnostic.KindMalformedExpression, "UTG0001"},
		{"Import<Missing>", diagnostic.KindUnresolvedType, "UTG0002"},
		{"Union<TestPoco, TestPocoWithDifferentTypes>", diagnostic.KindConflict, "UTG0002"},
		{"Pick<TestPoco, Missing>", diagnostic.KindInvalidPropertyName, "UTG0004"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := compileAndEvaluate(f, tt.input)

			d := diagnostic.Classify(err)
			assert.Equal(t, tt.kind, d.Kind)
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, diagnostic.DiagnosticError, d.Severity)
			assert.Equal(t, err.Error(), d.Message)
		})
	}
}

func TestClassify_Wrapped(t *testing.T) {
	f := typesystest.New()
	err := fmt.Errorf("declaration Foo: %w", compileAndEvaluate(f, "Import<Missing>"))

	assert.Equal(t, diagnostic.KindUnresolvedType, diagnostic.Classify(err).Kind)
}

func TestClassify_Internal(t *testing.T) {
	d := diagnostic.Classify(errors.New("boom"))

	assert.Equal(t, diagnostic.KindInternalFailure, d.Kind)
	assert.Equal(t, "UTG0003", d.Code)
	assert.Contains(t, d.Message, "boom")
}

func TestClassify_Suggestions(t *testing.T) {
	f := typesystest.New()

	d := diagnostic.Classify(compileAndEvaluate(f, "Pick<TestPoco, NotNulInt|NullableStrng>"))
	assert.Equal(t, []string{
		"NotNulInt: did you mean NotNullInt?",
		"NullableStrng: did you mean NullableString?",
	}, d.Suggestions)

	d = diagnostic.Classify(compileAndEvaluate(f, "Import<TestPocco>"))
	assert.Contains(t, d.Suggestions, "did you mean TestPoco?")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "InvalidPropertyName", diagnostic.KindInvalidPropertyName.String())
	assert.Equal(t, "LoadFailure", diagnostic.KindLoadFailure.String())
	assert.Equal(t, "EmitFailure", diagnostic.KindEmitFailure.String())
	assert.Equal(t, "UTG0103", diagnostic.KindEmitFailure.Code())
	assert.Equal(t, "Kind(99)", diagnostic.Kind(99).String())
}
