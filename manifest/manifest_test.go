package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/mimic/contract"
	"github.com/teranos/mimic/errors"
	"github.com/teranos/mimic/flatten"
)

const calcManifest = `
version: 1
surfaces:
  - name: Resettable
    members:
      - kind: method
        name: Clear
  - name: Calc
    extends: [Resettable]
    members:
      - kind: method
        name: Add
        params:
          - name: a
            type: {name: int32}
          - name: b
            type: {name: int32}
        returns: {name: int32}
      - kind: property
        name: Precision
        returns: {name: int32}
        settable: true
      - kind: indexer
        name: Memory
        params:
          - name: slot
            type: {name: string}
        returns: {name: float64}
        settable: true
      - kind: event
        name: Overflow
        handler: {kind: opaque, name: OverflowHandler}
units:
  - targets: [Calc]
    strategy: standalone
    strict: true
    package: doubles
`

func TestParseRoundTrip(t *testing.T) {
	m, err := Parse([]byte(calcManifest))
	require.NoError(t, err)

	assert.Equal(t, 1, m.Version)
	assert.Equal(t, []string{"Calc", "Resettable"}, m.SurfaceNames())
	require.Len(t, m.Units, 1)
	assert.True(t, m.Units[0].Strict)

	reg, err := m.Registry()
	require.NoError(t, err)

	s, err := flatten.Flatten(reg, "Calc")
	require.NoError(t, err)
	assert.Len(t, s.Members, 5)
}

func TestParseMemberShapes(t *testing.T) {
	m, err := Parse([]byte(calcManifest))
	require.NoError(t, err)

	reg, err := m.Registry()
	require.NoError(t, err)
	decl, ok := reg.Lookup("Calc")
	require.True(t, ok)

	byName := map[string]contract.MemberContract{}
	for _, mem := range decl.Members {
		byName[mem.Name] = mem
	}

	add := byName["Add"]
	require.Len(t, add.Parameters, 2)
	assert.Equal(t, contract.ModeValue, add.Parameters[0].Mode)
	assert.Equal(t, "int32", add.Returns.Canonical())

	assert.True(t, byName["Precision"].Settable)
	assert.Equal(t, contract.KindIndexer, byName["Memory"].Kind)
	require.NotNil(t, byName["Overflow"].HandlerType)
	assert.Equal(t, contract.TypeOpaque, byName["Overflow"].HandlerType.Kind)
}

func TestTypeRefKindDefaults(t *testing.T) {
	scalar, err := TypeRef{Name: "int32"}.Descriptor()
	require.NoError(t, err)
	assert.Equal(t, contract.TypeValue, scalar.Kind)

	named, err := TypeRef{Name: "User"}.Descriptor()
	require.NoError(t, err)
	assert.Equal(t, contract.TypeReference, named.Kind)
}

func TestTypeRefComposite(t *testing.T) {
	ref := TypeRef{
		Kind: "deferred",
		Elem: &TypeRef{Kind: "array", Elem: &TypeRef{Name: "User"}},
	}
	d, err := ref.Descriptor()
	require.NoError(t, err)
	assert.Equal(t, "deferred<User[]>", d.Canonical())
}

func TestTypeRefErrors(t *testing.T) {
	cases := []TypeRef{
		{Kind: "value"},               // no name
		{Kind: "array"},               // no elem
		{Kind: "tuple"},               // no elements
		{Kind: "mystery", Name: "X"},  // unknown kind
		{Kind: "container", Args: []TypeRef{{Name: "int32"}}}, // no name
	}
	for _, ref := range cases {
		_, err := ref.Descriptor()
		assert.ErrorIs(t, err, errors.ErrInvalidManifest)
	}
}

func TestParseRejectsInvalidManifests(t *testing.T) {
	cases := map[string]string{
		"not yaml":    "{{{",
		"no surfaces": "version: 1",
		"duplicate surface": `
surfaces:
  - name: A
  - name: A
`,
		"unknown member kind": `
surfaces:
  - name: A
    members:
      - kind: telepathy
        name: Read
`,
		"event without handler": `
surfaces:
  - name: A
    members:
      - kind: event
        name: Changed
`,
		"property without value type": `
surfaces:
  - name: A
    members:
      - kind: property
        name: Precision
`,
		"indexer without value type": `
surfaces:
  - name: A
    members:
      - kind: indexer
        name: Item
        params:
          - name: key
            type: {name: string}
`,
		"unit targets unknown surface": `
surfaces:
  - name: A
units:
  - targets: [B]
`,
		"unit without targets": `
surfaces:
  - name: A
units:
  - strategy: standalone
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidManifest)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mimic.yaml")
	require.NoError(t, os.WriteFile(path, []byte(calcManifest), 0644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Surfaces, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
