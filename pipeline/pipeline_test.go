package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/mimic/contract"
	"github.com/teranos/mimic/diag"
	"github.com/teranos/mimic/flatten"
	"github.com/teranos/mimic/render"
)

func ptr(t contract.TypeDescriptor) *contract.TypeDescriptor { return &t }

func calcSurface(t *testing.T) *contract.TypeSurface {
	t.Helper()
	reg := flatten.NewRegistry(flatten.Declaration{
		Surface: "Calc",
		Members: []contract.MemberContract{
			{
				Kind: contract.KindMethod,
				Name: "Add",
				Parameters: []contract.ParameterDescriptor{
					{Name: "a", Type: contract.Value("int32"), Mode: contract.ModeValue},
				},
				Returns: ptr(contract.Value("int32")),
			},
		},
	})
	s, err := flatten.Flatten(reg, "Calc")
	require.NoError(t, err)
	return s
}

func boxSurface(t *testing.T) *contract.TypeSurface {
	t.Helper()
	ret := contract.Param("T")
	reg := flatten.NewRegistry(flatten.Declaration{
		Surface:        "Box",
		TypeParameters: []contract.TypeParameter{{Name: "T"}},
		Members: []contract.MemberContract{
			{Kind: contract.KindProperty, Name: "Value", Returns: &ret},
		},
	})
	s, err := flatten.Flatten(reg, "Box")
	require.NoError(t, err)
	return s
}

func TestGenerateProducesArtifact(t *testing.T) {
	p := New(nil)
	artifact, err := p.Generate(Request{
		Surface:  calcSurface(t),
		Strategy: render.StrategyStandalone,
		Package:  "doubles",
	})
	require.NoError(t, err)

	assert.Equal(t, "CalcMimic", artifact.Unit)
	assert.Contains(t, artifact.Text, "package doubles")
	assert.Contains(t, artifact.Text, "type CalcMimic struct {")
	assert.NotEmpty(t, artifact.Fingerprint)
}

func TestGenerateCachesByContent(t *testing.T) {
	p := New(nil)
	req := Request{Surface: calcSurface(t), Strategy: render.StrategyStandalone, Package: "doubles"}

	first, err := p.Generate(req)
	require.NoError(t, err)

	// A structurally equal surface built independently hits the cache.
	second, err := p.Generate(Request{Surface: calcSurface(t), Strategy: render.StrategyStandalone, Package: "doubles"})
	require.NoError(t, err)
	assert.Same(t, first, second)

	// Different settings miss it.
	strict, err := p.Generate(Request{Surface: calcSurface(t), Strategy: render.StrategyStandalone, Strict: true, Package: "doubles"})
	require.NoError(t, err)
	assert.NotSame(t, first, strict)
}

func TestGenerateRequiresSurface(t *testing.T) {
	_, err := New(nil).Generate(Request{Strategy: render.StrategyStandalone})
	assert.Error(t, err)
}

func TestGenerateClosesOpenSurface(t *testing.T) {
	p := New(nil)
	artifact, err := p.Generate(Request{
		Surface:       boxSurface(t),
		Strategy:      render.StrategyStandalone,
		Package:       "doubles",
		TypeArguments: []contract.TypeDescriptor{contract.Reference("User")},
	})
	require.NoError(t, err)

	assert.Contains(t, artifact.Text, "ValueProp *mimic.Property[*User]")
	assert.NotContains(t, artifact.Text, "[T any]")
}

func TestGenerateReportsValuelessProperty(t *testing.T) {
	reg := flatten.NewRegistry(flatten.Declaration{
		Surface: "Svc",
		Members: []contract.MemberContract{
			{Kind: contract.KindProperty, Name: "Broken"},
		},
	})
	s, err := flatten.Flatten(reg, "Svc")
	require.NoError(t, err)

	// A property with no value type must fail with a diagnostic, never
	// reach the renderer.
	_, err = New(nil).Generate(Request{
		Surface:  s,
		Strategy: render.StrategyStandalone,
		Package:  "doubles",
	})
	require.Error(t, err)
	d, ok := diag.FromError(err)
	require.True(t, ok)
	assert.Equal(t, diag.CodeUnsupportedConstruct, d.Code)
}

func TestGenerateClosesEventHandler(t *testing.T) {
	handler := contract.Param("H")
	reg := flatten.NewRegistry(flatten.Declaration{
		Surface:        "Notifier",
		TypeParameters: []contract.TypeParameter{{Name: "H"}},
		Members: []contract.MemberContract{
			{Kind: contract.KindEvent, Name: "Changed", HandlerType: &handler},
		},
	})
	s, err := flatten.Flatten(reg, "Notifier")
	require.NoError(t, err)

	artifact, err := New(nil).Generate(Request{
		Surface:       s,
		Strategy:      render.StrategyStandalone,
		Package:       "doubles",
		TypeArguments: []contract.TypeDescriptor{contract.Opaque("ChangeHandler")},
	})
	require.NoError(t, err)

	assert.Contains(t, artifact.Text, "ChangedEvent *mimic.Event[ChangeHandler]")
	assert.NotContains(t, artifact.Text, "mimic.Event[H]")
}

func TestGenerateRejectsWrongArity(t *testing.T) {
	_, err := New(nil).Generate(Request{
		Surface:  boxSurface(t),
		Strategy: render.StrategyStandalone,
		Package:  "doubles",
		TypeArguments: []contract.TypeDescriptor{
			contract.Reference("User"),
			contract.Value("int32"),
		},
	})
	require.Error(t, err)
	d, ok := diag.FromError(err)
	require.True(t, ok)
	assert.Equal(t, diag.CodeArityMismatch, d.Code)
}

func TestGenerateRejectsOpenSurfaceWithoutStrategy(t *testing.T) {
	_, err := New(nil).Generate(Request{
		Surface:  boxSurface(t),
		Strategy: render.StrategyStandalone,
		Package:  "doubles",
	})
	require.Error(t, err)
	d, ok := diag.FromError(err)
	require.True(t, ok)
	assert.Equal(t, diag.CodeUnsupportedConstruct, d.Code)
}

func TestGenerateOpenGenericStrategy(t *testing.T) {
	artifact, err := New(nil).Generate(Request{
		Surface:  boxSurface(t),
		Strategy: render.StrategyOpenGeneric,
		Package:  "doubles",
	})
	require.NoError(t, err)
	assert.Contains(t, artifact.Text, "type BoxMimic[T any] struct {")
}

func TestGenerateRejectsOpenGenericOnClosedTarget(t *testing.T) {
	_, err := New(nil).Generate(Request{
		Surface:  calcSurface(t),
		Strategy: render.StrategyOpenGeneric,
		Package:  "doubles",
	})
	require.Error(t, err)
	d, ok := diag.FromError(err)
	require.True(t, ok)
	assert.Equal(t, diag.CodeUnsupportedConstruct, d.Code)
}

func TestGenerateRejectsOpenGenericCallable(t *testing.T) {
	reg := flatten.NewRegistry(flatten.Declaration{
		Surface:        "Mapper",
		TypeParameters: []contract.TypeParameter{{Name: "T"}},
		Callable:       true,
		Members: []contract.MemberContract{
			{Kind: contract.KindMethod, Name: "Invoke"},
		},
	})
	s, err := flatten.Flatten(reg, "Mapper")
	require.NoError(t, err)

	for _, strategy := range []render.Strategy{render.StrategyStandalone, render.StrategyOpenGeneric} {
		_, err := New(nil).Generate(Request{Surface: s, Strategy: strategy, Package: "doubles"})
		require.Error(t, err)
		d, ok := diag.FromError(err)
		require.True(t, ok)
		assert.Equal(t, diag.CodeUnsupportedConstruct, d.Code)
	}
}

func TestGenerateRejectsUnknownStrategy(t *testing.T) {
	_, err := New(nil).Generate(Request{
		Surface:  calcSurface(t),
		Strategy: render.Strategy("mystery"),
		Package:  "doubles",
	})
	assert.Error(t, err)
}
