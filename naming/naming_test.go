package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/mimic/contract"
)

func method(name string, params ...contract.TypeDescriptor) contract.MemberContract {
	m := contract.MemberContract{Kind: contract.KindMethod, Name: name, DeclaringSurface: "Svc"}
	for i, t := range params {
		m.Parameters = append(m.Parameters, contract.ParameterDescriptor{
			Name: string(rune('a' + i)),
			Type: t,
			Mode: contract.ModeValue,
		})
	}
	return m
}

func surface(members ...contract.MemberContract) *contract.TypeSurface {
	s := &contract.TypeSurface{Targets: []string{"Svc"}, Members: members}
	s.Normalize()
	return s
}

func TestSingleMemberKeepsBareName(t *testing.T) {
	s := surface(method("Send", contract.Value("string")))
	names := Resolve(s)

	assert.Equal(t, "Send", names.Member(s.Members[0]))
}

func TestOverloadsGetOrdinalSuffixes(t *testing.T) {
	one := method("Add", contract.Value("int32"))
	two := method("Add", contract.Value("int32"), contract.Value("int32"))
	s := surface(one, two)
	names := Resolve(s)

	// Lexical order of parameter type lists: the one-parameter overload
	// sorts first because its joined canonical is a prefix of the other.
	assert.Equal(t, "Add1", names.Member(one))
	assert.Equal(t, "Add2", names.Member(two))
}

func TestOverloadSuffixesSurviveReordering(t *testing.T) {
	one := method("Add", contract.Value("int32"))
	two := method("Add", contract.Value("int32"), contract.Value("int32"))

	forward := Resolve(surface(one, two))
	backward := Resolve(surface(two, one))

	assert.Equal(t, forward.Member(one), backward.Member(one))
	assert.Equal(t, forward.Member(two), backward.Member(two))
}

func TestUnrelatedNamesStableUnderAddition(t *testing.T) {
	send := method("Send", contract.Value("string"))
	before := Resolve(surface(send))

	// Adding an unrelated member must not move existing names.
	after := Resolve(surface(send, method("Close")))
	assert.Equal(t, before.Member(send), after.Member(send))
}

func TestIndexersAlwaysKeySuffixed(t *testing.T) {
	ret := contract.Value("string")
	byString := contract.MemberContract{
		Kind:             contract.KindIndexer,
		Name:             "Item",
		DeclaringSurface: "Svc",
		Parameters:       []contract.ParameterDescriptor{{Name: "key", Type: contract.Value("string"), Mode: contract.ModeValue}},
		Returns:          &ret,
	}
	s := surface(byString)
	names := Resolve(s)
	assert.Equal(t, "ItemOfString", names.Member(byString))

	// A second indexer never renames the first.
	byInt := byString
	byInt.Parameters = []contract.ParameterDescriptor{{Name: "key", Type: contract.Value("int32"), Mode: contract.ModeValue}}
	both := Resolve(surface(byString, byInt))
	assert.Equal(t, "ItemOfString", both.Member(byString))
	assert.Equal(t, "ItemOfInt32", both.Member(byInt))
}

func TestGenericInstantiationSuffixes(t *testing.T) {
	ret := contract.Param("T")
	convert := contract.MemberContract{
		Kind:             contract.KindGenericMethod,
		Name:             "Convert",
		DeclaringSurface: "Svc",
		TypeParameters:   []contract.TypeParameter{{Name: "T"}},
		Parameters:       []contract.ParameterDescriptor{{Name: "src", Type: contract.Param("T"), Mode: contract.ModeValue}},
		Returns:          &ret,
		Instantiations: [][]contract.TypeDescriptor{
			{contract.Reference("User")},
			{contract.Reference("Order")},
		},
	}
	s := surface(convert)
	names := Resolve(s)

	assert.Equal(t, "ConvertUser", names.Instantiation(convert, []contract.TypeDescriptor{contract.Reference("User")}))
	assert.Equal(t, "ConvertOrder", names.Instantiation(convert, []contract.TypeDescriptor{contract.Reference("Order")}))
}

func TestSingleInstantiationKeepsBareName(t *testing.T) {
	ret := contract.Param("T")
	convert := contract.MemberContract{
		Kind:             contract.KindGenericMethod,
		Name:             "Convert",
		DeclaringSurface: "Svc",
		TypeParameters:   []contract.TypeParameter{{Name: "T"}},
		Returns:          &ret,
		Instantiations:   [][]contract.TypeDescriptor{{contract.Reference("User")}},
	}
	names := Resolve(surface(convert))

	assert.Equal(t, "Convert", names.Instantiation(convert, []contract.TypeDescriptor{contract.Reference("User")}))
}

func TestQualifiedAccessorsOnMultiSurfaceUnits(t *testing.T) {
	ping := contract.MemberContract{
		Kind:             contract.KindMethod,
		Name:             "Ping",
		DeclaringSurface: "Alpha",
		Surfaces:         []string{"Alpha", "Beta"},
	}
	s := &contract.TypeSurface{Targets: []string{"Alpha", "Beta"}, Members: []contract.MemberContract{ping}}
	s.Normalize()
	names := Resolve(s)

	require.Equal(t, []string{"Alpha", "Beta"}, names.QualifiedSurfaces())
	alpha, ok := names.Qualified("Alpha", ping)
	require.True(t, ok)
	assert.Equal(t, "AlphaPing", alpha)
	beta, ok := names.Qualified("Beta", ping)
	require.True(t, ok)
	assert.Equal(t, "BetaPing", beta)
}

func TestSingleSurfaceHasNoQualifiedAccessors(t *testing.T) {
	send := method("Send", contract.Value("string"))
	names := Resolve(surface(send))

	assert.Empty(t, names.QualifiedSurfaces())
	_, ok := names.Qualified("Svc", send)
	assert.False(t, ok)
}

func TestUnitName(t *testing.T) {
	assert.Equal(t, "SvcMimic", Resolve(surface(method("Ping"))).Unit())

	multi := &contract.TypeSurface{Targets: []string{"beta", "alpha"}}
	multi.Normalize()
	assert.Equal(t, "AlphaBetaMimic", Resolve(multi).Unit())
}
