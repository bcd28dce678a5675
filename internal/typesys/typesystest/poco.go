// Package typesystest provides an in-memory symbol table shared by tests.
package typesystest

import "utilgen/internal/typesys"

// Namespace is where the fixture types are declared.
const Namespace = "app.models"

// Fixture is a populated Memory table plus handles to its types.
type Fixture struct {
	Table *typesys.Memory

	Int    *typesys.MemoryType
	Object *typesys.MemoryType
	String *typesys.MemoryType
	T      *typesys.MemoryType

	TestStruct                 *typesys.MemoryType
	TestPoco                   *typesys.MemoryType
	TestPoco2                  *typesys.MemoryType
	TestPocoOnlyNotNull        *typesys.MemoryType
	TestPocoOnlyNullable       *typesys.MemoryType
	TestPocoWithDifferentTypes *typesys.MemoryType
	TestPocoWithReadonly       *typesys.MemoryType
	TestGenericPoco            *typesys.MemoryType
	OtherTestPoco              *typesys.MemoryType
	DeepTestPoco               *typesys.MemoryType
}

// New builds the fixture.
//
// TestPoco has the eight fields
//
//	NotNullInt int, NotNullObject object, NotNullString string, NotNullStruct TestStruct,
//	NullableInt *int, NullableObject object?, NullableString string?, NullableStruct *TestStruct
//
// where int and TestStruct are value types and object and string are
// reference types. TestPoco2 repeats it, TestPocoOnlyNotNull and
// TestPocoOnlyNullable split it in two. A second type named TestPoco lives
// in namespace "other", and a third one in "app.deep.nested".
func New() *Fixture {
	m := typesys.NewMemory()
	f := &Fixture{
		Table:  m,
		Int:    typesys.Builtin("int", true),
		Object: typesys.Builtin("object", false),
		String: typesys.Builtin("string", false),
		T:      typesys.Builtin("T", true),
	}

	models := m.Namespace(Namespace)

	f.TestStruct = models.Struct("TestStruct", typesys.Field{Name: "Foo", Type: f.Int})

	notNull := func() []typesys.Field {
		return []typesys.Field{
			{Name: "NotNullInt", Type: f.Int},
			{Name: "NotNullObject", Type: f.Object},
			{Name: "NotNullString", Type: f.String},
			{Name: "NotNullStruct", Type: f.TestStruct},
		}
	}

	nullable := func() []typesys.Field {
		return []typesys.Field{
			{Name: "NullableInt", Type: m.WrapNullable(f.Int), Nullable: true},
			{Name: "NullableObject", Type: f.Object, Nullable: true},
			{Name: "NullableString", Type: f.String, Nullable: true},
			{Name: "NullableStruct", Type: m.WrapNullable(f.TestStruct), Nullable: true},
		}
	}

	f.TestPoco = models.Class("TestPoco", append(notNull(), nullable()...)...)
	f.TestPoco2 = models.Class("TestPoco2", append(notNull(), nullable()...)...)
	f.TestPocoOnlyNotNull = models.Class("TestPocoOnlyNotNull", notNull()...)
	f.TestPocoOnlyNullable = models.Class("TestPocoOnlyNullable", nullable()...)

	f.TestPocoWithDifferentTypes = models.Class("TestPocoWithDifferentTypes",
		typesys.Field{Name: "NotNullInt", Type: f.String},
		typesys.Field{Name: "NullableInt", Type: f.String, Nullable: true},
	)

	f.TestPocoWithReadonly = models.Class("TestPocoWithReadonly",
		typesys.Field{Name: "NotNullInt", Type: f.Int, Readonly: true},
		typesys.Field{Name: "NotNullString", Type: f.String, Required: true},
	)

	f.TestGenericPoco = models.Declare("TestGenericPoco", 1, typesys.Public, false,
		typesys.Field{Name: "Value", Type: f.T},
	)

	f.OtherTestPoco = m.Namespace("other").Class("TestPoco",
		typesys.Field{Name: "Other", Type: f.Int},
	)

	f.DeepTestPoco = m.Namespace("app.deep.nested").Class("TestPoco",
		typesys.Field{Name: "Deep", Type: f.Int},
	)

	return f
}
