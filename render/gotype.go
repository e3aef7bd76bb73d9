package render

import (
	"strings"

	"github.com/teranos/mimic/contract"
	"github.com/teranos/mimic/policy"
)

// goPrimitives are the value-type names passed through to Go verbatim.
var goPrimitives = map[string]bool{
	"bool": true, "string": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true,
	"byte": true, "rune": true,
	"uintptr": true, "complex64": true, "complex128": true,
	"time.Duration": true, "time.Time": true,
}

// goType renders a type descriptor as a Go type expression. Host types are
// assumed to live in (or be imported by) the package the artifact is emitted
// into; reference types render as pointers, deferred wrappers as
// runtime.Deferred, nullable types as pointers.
func goType(t contract.TypeDescriptor) string {
	switch t.Kind {
	case contract.TypeValue:
		if goPrimitives[t.Name] {
			return t.Name
		}
		return contract.ExportIdent(t.Name)

	case contract.TypeReference:
		return "*" + contract.ExportIdent(t.Name)

	case contract.TypeNullable:
		inner := goType(*t.Elem)
		if strings.HasPrefix(inner, "*") {
			return inner
		}
		return "*" + inner

	case contract.TypeDeferred:
		return "mimic.Deferred[" + goType(*t.Elem) + "]"

	case contract.TypeArray:
		return "[]" + goType(*t.Elem)

	case contract.TypeContainer:
		if t.Name == "map" && len(t.Args) == 2 {
			return "map[" + goType(t.Args[0]) + "]" + goType(t.Args[1])
		}
		if len(t.Args) == 1 && (t.Name == "list" || t.Name == "set" || t.Name == "slice") {
			return "[]" + goType(t.Args[0])
		}
		base := contract.ExportIdent(t.Name)
		if len(t.Args) == 0 {
			return base
		}
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = goType(a)
		}
		return base + "[" + strings.Join(args, ", ") + "]"

	case contract.TypeTuple:
		var sb strings.Builder
		sb.WriteString("struct {\n")
		for i, a := range t.Args {
			sb.WriteString("\tV")
			sb.WriteString(ordinal(i))
			sb.WriteString(" ")
			sb.WriteString(goType(a))
			sb.WriteString("\n")
		}
		sb.WriteString("}")
		return sb.String()

	case contract.TypeParam:
		return t.Name

	default: // TypeOpaque
		return contract.ExportIdent(t.Name)
	}
}

// paramGoType renders a parameter's Go type, lifting reference modes to
// pointers so callees can observe and write through them.
func paramGoType(p contract.ParameterDescriptor) string {
	t := goType(p.Type)
	switch p.Mode {
	case contract.ModeRefInOut, contract.ModeRefOut:
		if strings.HasPrefix(t, "*") {
			return t
		}
		return "*" + t
	default:
		return t
	}
}

// defaultExpr renders the Go expression realizing a policy outcome. The
// caller must only ask for expressions of safe outcomes.
func defaultExpr(o policy.Outcome) string {
	switch o.Kind {
	case policy.OutcomeDeferred:
		return "mimic.Resolved[" + goType(*o.Type.Elem) + "](" + defaultExpr(*o.Inner) + ")"
	default:
		switch o.Form {
		case policy.FormNull:
			return "nil"
		case policy.FormEmpty:
			return goType(o.Type) + "{}"
		default: // FormZero
			return "*new(" + goType(o.Type) + ")"
		}
	}
}

func ordinal(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return digits[i : i+1]
	}
	return digits[i/10:i/10+1] + digits[i%10:i%10+1]
}
