package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/mimic/contract"
	"github.com/teranos/mimic/policy"
)

func TestGoType(t *testing.T) {
	tests := []struct {
		name string
		typ  contract.TypeDescriptor
		want string
	}{
		{"primitive", contract.Value("int32"), "int32"},
		{"named value", contract.Value("user_id"), "UserId"},
		{"reference", contract.Reference("User"), "*User"},
		{"nullable value", contract.Nullable(contract.Value("int32")), "*int32"},
		{"nullable reference stays single pointer", contract.Nullable(contract.Reference("User")), "*User"},
		{"deferred", contract.Deferred(contract.Value("string")), "mimic.Deferred[string]"},
		{"array", contract.Array(contract.Value("byte")), "[]byte"},
		{"map", contract.Container("map", contract.Value("string"), contract.Value("int32")), "map[string]int32"},
		{"list", contract.Container("list", contract.Reference("User")), "[]*User"},
		{"param", contract.Param("T"), "T"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, goType(tt.typ))
		})
	}
}

func TestParamGoType(t *testing.T) {
	value := contract.ParameterDescriptor{Name: "a", Type: contract.Value("int32"), Mode: contract.ModeValue}
	inout := contract.ParameterDescriptor{Name: "b", Type: contract.Value("int32"), Mode: contract.ModeRefInOut}
	out := contract.ParameterDescriptor{Name: "c", Type: contract.Reference("User"), Mode: contract.ModeRefOut}

	assert.Equal(t, "int32", paramGoType(value))
	assert.Equal(t, "*int32", paramGoType(inout))
	// Already-pointer types are not double-lifted.
	assert.Equal(t, "*User", paramGoType(out))
}

func TestDefaultExpr(t *testing.T) {
	assert.Equal(t, "nil", defaultExpr(policy.DefaultFor(contract.Reference("User"))))
	assert.Equal(t, "[]string{}", defaultExpr(policy.DefaultFor(contract.Array(contract.Value("string")))))
	assert.Equal(t, "*new(int32)", defaultExpr(policy.DefaultFor(contract.Value("int32"))))
	assert.Equal(t, "*new(T)", defaultExpr(policy.DefaultFor(contract.Param("T"))))
	assert.Equal(t, "mimic.Resolved[*User](nil)",
		defaultExpr(policy.DefaultFor(contract.Deferred(contract.Reference("User")))))
}
