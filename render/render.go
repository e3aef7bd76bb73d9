// Package render emits generation units as Go source text.
//
// Render is a deterministic, stateless function of the interceptor model and
// name assignment: naming and defaulting decisions are fixed upstream, and
// the strategy selects the wrapping shape only. Standalone units are whole
// files, inline units are fragments for embedding in a host file, and
// open-generic units thread the target's type parameters through every
// generated type unchanged.
package render

import (
	"fmt"
	"strings"

	"github.com/teranos/mimic/contract"
	"github.com/teranos/mimic/model"
	"github.com/teranos/mimic/policy"
)

// Strategy selects the wrapping shape of an emitted unit.
type Strategy string

const (
	// StrategyStandalone emits a complete Go file with package clause
	// and imports.
	StrategyStandalone Strategy = "standalone"

	// StrategyInline emits declarations only, for embedding in a host
	// file that provides the package clause and the runtime import
	// (aliased mimic).
	StrategyInline Strategy = "inline"

	// StrategyOpenGeneric emits a standalone file whose unit type keeps
	// the target's unbound type parameters.
	StrategyOpenGeneric Strategy = "open-generic"
)

// runtimeImport is the import path generated code depends on.
const runtimeImport = "github.com/teranos/mimic/runtime"

// Render emits one generation unit. The surface, names, and interceptor
// models fully determine the output; rendering the same unit twice yields
// byte-identical text.
func Render(u *model.Unit, strategy Strategy, pkg string) string {
	r := &renderer{unit: u, strategy: strategy}
	if strategy == StrategyOpenGeneric {
		r.tpDecl = typeParamDecl(u.Surface.TypeParameters)
		r.tpUse = typeParamUse(u.Surface.TypeParameters)
	}

	if strategy != StrategyInline {
		r.header(pkg)
	}
	r.recordTypes()
	r.unitType()
	r.overridesType()
	r.constructor()
	r.members()
	r.qualifiedAccessors()
	r.resets()
	return r.sb.String()
}

type renderer struct {
	sb       strings.Builder
	unit     *model.Unit
	strategy Strategy

	// tpDecl is "[T any, U any]" for open-generic units, else "".
	// tpUse is the matching "[T, U]".
	tpDecl string
	tpUse  string
}

func (r *renderer) pf(format string, args ...any) {
	fmt.Fprintf(&r.sb, format, args...)
}

func (r *renderer) header(pkg string) {
	targets := strings.Join(r.unit.Surface.Targets, ", ")
	r.pf("// Code generated by mimic. DO NOT EDIT.\n//\n// Tracking double for %s.\n\npackage %s\n\n", targets, pkg)
	r.pf("import (\n\tmimic %q\n)\n\n", runtimeImport)
}

// memberShape describes how one method-like member maps onto the runtime
// interceptor: its tracked record type, full invocation type, and result.
type memberShape struct {
	name    string
	params  []contract.ParameterDescriptor
	tracked []contract.ParameterDescriptor
	returns *contract.TypeDescriptor

	argsType   string // A
	paramsType string // P
	resultType string // R
	needsArgs  bool   // a named Args struct is emitted
	needsFull  bool   // a named Params struct is emitted (ref params)
}

func (r *renderer) shape(name string, params []contract.ParameterDescriptor, returns *contract.TypeDescriptor) memberShape {
	s := memberShape{name: name, params: params, returns: returns}
	for _, p := range params {
		if p.Mode.Tracked() {
			s.tracked = append(s.tracked, p)
		}
		if p.Mode == contract.ModeRefOut || p.Mode == contract.ModeRefInOut {
			s.needsFull = true
		}
	}

	unit := r.unit.Names.Unit()
	switch len(s.tracked) {
	case 0:
		s.argsType = "mimic.Void"
	case 1:
		s.argsType = goType(s.tracked[0].Type)
	default:
		s.needsArgs = true
		s.argsType = unit + name + "Args" + r.tpUse
	}

	if s.needsFull {
		s.paramsType = unit + name + "Params" + r.tpUse
	} else {
		s.paramsType = s.argsType
	}

	if returns == nil {
		s.resultType = "mimic.Void"
	} else {
		s.resultType = goType(*returns)
	}
	return s
}

// shapes returns every method-like shape of the unit in canonical order:
// plain methods, then each generic instantiation.
func (r *renderer) shapes() []memberShape {
	var out []memberShape
	for _, ic := range r.unit.Interceptors {
		switch ic.Contract.Kind {
		case contract.KindMethod:
			out = append(out, r.shape(ic.Name, ic.Contract.Parameters, ic.Contract.Returns))
		case contract.KindGenericMethod:
			for _, inst := range ic.Instantiations {
				out = append(out, r.shape(inst.Name, inst.Params, inst.Returns))
			}
		}
	}
	return out
}

// recordTypes emits the named Args/Params record structs and multi-key
// indexer key structs.
func (r *renderer) recordTypes() {
	unit := r.unit.Names.Unit()
	for _, s := range r.shapes() {
		if s.needsArgs {
			r.pf("// %s%sArgs records one %s call.\ntype %s%sArgs%s struct {\n", unit, s.name, s.name, unit, s.name, r.tpDecl)
			for _, p := range s.tracked {
				r.pf("\t%s %s\n", contract.ExportIdent(p.Name), goType(p.Type))
			}
			r.pf("}\n\n")
		}
		if s.needsFull {
			r.pf("// %s%sParams is the full invocation record handed to callbacks\n// and overrides; reference parameters appear as pointers.\ntype %s%sParams%s struct {\n", unit, s.name, unit, s.name, r.tpDecl)
			for _, p := range s.params {
				r.pf("\t%s %s\n", contract.ExportIdent(p.Name), paramGoType(p))
			}
			r.pf("}\n\n")
		}
	}
	for _, ic := range r.unit.Interceptors {
		if ic.Contract.Kind == contract.KindIndexer && len(ic.Contract.Parameters) > 1 {
			r.pf("// %s%sKey is the composite key of the %s indexer.\ntype %s%sKey%s struct {\n", unit, ic.Name, ic.Name, unit, ic.Name, r.tpDecl)
			for _, p := range ic.Contract.Parameters {
				r.pf("\t%s %s\n", contract.ExportIdent(p.Name), goType(p.Type))
			}
			r.pf("}\n\n")
		}
	}
}

// indexerKeyType returns the Go key type of an indexer member.
func (r *renderer) indexerKeyType(ic model.Interceptor) string {
	if len(ic.Contract.Parameters) == 1 {
		return goType(ic.Contract.Parameters[0].Type)
	}
	return r.unit.Names.Unit() + ic.Name + "Key" + r.tpUse
}

func (r *renderer) unitType() {
	unit := r.unit.Names.Unit()
	targets := strings.Join(r.unit.Surface.Targets, ", ")
	r.pf("// %s is a tracking double for %s. Every member records its\n// interactions and dispatches callbacks, author overrides, and safe\n// defaults in that order.\ntype %s%s struct {\n", unit, targets, unit, r.tpDecl)
	for _, ic := range r.unit.Interceptors {
		switch ic.Contract.Kind {
		case contract.KindMethod:
			s := r.shape(ic.Name, ic.Contract.Parameters, ic.Contract.Returns)
			r.pf("\t%sCall *mimic.Interceptor[%s, %s, %s]\n", ic.Name, s.argsType, s.paramsType, s.resultType)
		case contract.KindProperty:
			r.pf("\t%sProp *mimic.Property[%s]\n", ic.Name, goType(*ic.Contract.Returns))
		case contract.KindIndexer:
			r.pf("\t%sIdx *mimic.Indexer[%s, %s]\n", ic.Name, r.indexerKeyType(ic), goType(*ic.Contract.Returns))
		case contract.KindEvent:
			r.pf("\t%sEvent *mimic.Event[%s]\n", ic.Name, goType(*ic.Contract.HandlerType))
		case contract.KindGenericMethod:
			r.pf("\t%sFamily *mimic.Family\n", ic.Name)
			for _, inst := range ic.Instantiations {
				s := r.shape(inst.Name, inst.Params, inst.Returns)
				r.pf("\t%sCall *mimic.Interceptor[%s, %s, %s]\n", inst.Name, s.argsType, s.paramsType, s.resultType)
			}
		}
	}
	r.pf("}\n\n")
}

func (r *renderer) overridesType() {
	unit := r.unit.Names.Unit()
	r.pf("// %sOverrides holds the author-defined overrides for this unit,\n// second in dispatch priority after per-instance callbacks.\ntype %sOverrides%s struct {\n", unit, unit, r.tpDecl)
	for _, ic := range r.unit.Interceptors {
		switch ic.Contract.Kind {
		case contract.KindMethod:
			s := r.shape(ic.Name, ic.Contract.Parameters, ic.Contract.Returns)
			r.pf("\t%s func(%s) %s\n", ic.Name, s.paramsType, s.resultType)
		case contract.KindProperty:
			t := goType(*ic.Contract.Returns)
			r.pf("\t%s func() %s\n", ic.Name, t)
			if ic.Contract.Settable {
				r.pf("\tSet%s func(%s)\n", ic.Name, t)
			}
		case contract.KindIndexer:
			k, v := r.indexerKeyType(ic), goType(*ic.Contract.Returns)
			r.pf("\t%s func(%s) %s\n", ic.Name, k, v)
			if ic.Contract.Settable {
				r.pf("\tSet%s func(%s, %s)\n", ic.Name, k, v)
			}
		case contract.KindGenericMethod:
			for _, inst := range ic.Instantiations {
				s := r.shape(inst.Name, inst.Params, inst.Returns)
				r.pf("\t%s func(%s) %s\n", inst.Name, s.paramsType, s.resultType)
			}
		}
	}
	r.pf("}\n\n")

	if r.strategy != StrategyOpenGeneric {
		r.pf("// %sAuthored is read once, at construction time, and shared by\n// every instance of this unit.\nvar %sAuthored %sOverrides\n\n", unit, unit, unit)
	}
}

func (r *renderer) constructor() {
	unit := r.unit.Names.Unit()
	if r.strategy == StrategyOpenGeneric {
		r.pf("// New%s creates a tracking double. authored may be nil; it is the\n// unit-level override set shared by instances built from it.\nfunc New%s%s(authored *%sOverrides%s) *%s%s {\n", unit, unit, r.tpDecl, unit, r.tpUse, unit, r.tpUse)
		r.pf("\tif authored == nil {\n\t\tauthored = &%sOverrides%s{}\n\t}\n", unit, r.tpUse)
	} else {
		r.pf("// New%s creates a tracking double. Author-defined overrides are read\n// from %sAuthored at construction time.\nfunc New%s() *%s {\n", unit, unit, unit, unit)
		r.pf("\tauthored := &%sAuthored\n", unit)
	}
	r.pf("\tm := &%s%s{}\n", unit, r.tpUse)

	for _, ic := range r.unit.Interceptors {
		surface := ic.Contract.DeclaringSurface
		switch ic.Contract.Kind {
		case contract.KindMethod:
			s := r.shape(ic.Name, ic.Contract.Parameters, ic.Contract.Returns)
			r.pf("\tm.%sCall = mimic.NewInterceptor[%s, %s, %s](%q, %q)", ic.Name, s.argsType, s.paramsType, s.resultType, ic.Name, surface)
			r.wireCommon(s, ic.Default, ic.Contract.IsVoid(), "authored."+ic.Name)
		case contract.KindProperty:
			t := goType(*ic.Contract.Returns)
			r.pf("\tm.%sProp = mimic.NewProperty[%s](%q, %q, %v)", ic.Name, t, ic.Name, surface, ic.Contract.Settable)
			if r.unit.Strict {
				r.pf(".\n\t\tWithStrict(true)")
			}
			if ic.Default.Safe() {
				r.pf(".\n\t\tWithDefault(func() (%s, bool) { return %s, true })", t, defaultExpr(ic.Default))
			}
			r.pf(".\n\t\tWithGetOverride(authored.%s)", ic.Name)
			if ic.Contract.Settable {
				r.pf(".\n\t\tWithSetOverride(authored.Set%s)", ic.Name)
			}
			r.pf("\n")
		case contract.KindIndexer:
			k, v := r.indexerKeyType(ic), goType(*ic.Contract.Returns)
			r.pf("\tm.%sIdx = mimic.NewIndexer[%s, %s](%q, %q, %v)", ic.Name, k, v, ic.Name, surface, ic.Contract.Settable)
			if r.unit.Strict {
				r.pf(".\n\t\tWithStrict(true)")
			}
			if ic.Default.Safe() {
				r.pf(".\n\t\tWithDefault(func() (%s, bool) { return %s, true })", v, defaultExpr(ic.Default))
			}
			r.pf(".\n\t\tWithGetOverride(authored.%s)", ic.Name)
			if ic.Contract.Settable {
				r.pf(".\n\t\tWithSetOverride(authored.Set%s)", ic.Name)
			}
			r.pf("\n")
		case contract.KindEvent:
			r.pf("\tm.%sEvent = mimic.NewEvent[%s](%q, %q)\n", ic.Name, goType(*ic.Contract.HandlerType), ic.Name, surface)
		case contract.KindGenericMethod:
			r.pf("\tm.%sFamily = mimic.NewFamily(%q, %q)\n", ic.Name, ic.Contract.Name, surface)
			for _, inst := range ic.Instantiations {
				s := r.shape(inst.Name, inst.Params, inst.Returns)
				r.pf("\tm.%sCall = mimic.NewInterceptor[%s, %s, %s](%q, %q)", inst.Name, s.argsType, s.paramsType, s.resultType, inst.Name, surface)
				r.wireCommon(s, inst.Default, inst.Returns == nil, "authored."+inst.Name)
				r.pf("\tm.%sFamily.Attach(%q, func() mimic.Tracker { return m.%sCall })\n", ic.Name, inst.Key, inst.Name)
			}
		}
	}
	r.pf("\treturn m\n}\n\n")
}

// wireCommon appends the strict/default/override chain of one interceptor
// construction and terminates the statement.
func (r *renderer) wireCommon(s memberShape, def policy.Outcome, void bool, overrideExpr string) {
	if r.unit.Strict {
		r.pf(".\n\t\tWithStrict(true)")
	}
	if void {
		// Void members always have a trivial safe default: do nothing.
		r.pf(".\n\t\tWithDefault(func() (mimic.Void, bool) { return mimic.Void{}, true })")
	} else if def.Safe() {
		r.pf(".\n\t\tWithDefault(func() (%s, bool) { return %s, true })", s.resultType, defaultExpr(def))
	}
	r.pf(".\n\t\tWithOverride(%s)\n", overrideExpr)
}

// signature renders the Go parameter list of a member.
func signature(params []contract.ParameterDescriptor) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + " " + paramGoType(p)
	}
	return strings.Join(parts, ", ")
}

// recordExpr renders the tracked-args value at a call site: ref-inout
// parameters are dereferenced so history captures their value at call time.
func (r *renderer) recordExpr(s memberShape) string {
	switch len(s.tracked) {
	case 0:
		return "mimic.Void{}"
	case 1:
		p := s.tracked[0]
		if p.Mode == contract.ModeRefInOut {
			return "*" + p.Name
		}
		return p.Name
	default:
		parts := make([]string, len(s.tracked))
		for i, p := range s.tracked {
			v := p.Name
			if p.Mode == contract.ModeRefInOut {
				v = "*" + p.Name
			}
			parts[i] = contract.ExportIdent(p.Name) + ": " + v
		}
		return s.argsType + "{" + strings.Join(parts, ", ") + "}"
	}
}

// paramsExpr renders the full invocation value at a call site.
func (r *renderer) paramsExpr(s memberShape) string {
	if !s.needsFull {
		return r.recordExpr(s)
	}
	parts := make([]string, len(s.params))
	for i, p := range s.params {
		parts[i] = contract.ExportIdent(p.Name) + ": " + p.Name
	}
	return s.paramsType + "{" + strings.Join(parts, ", ") + "}"
}

func (r *renderer) methodShape(s memberShape, receiver string) {
	ret := ""
	if s.returns != nil {
		ret = " " + s.resultType
	}
	r.pf("func (m *%s) %s(%s)%s {\n", receiver, s.name, signature(s.params), ret)
	call := fmt.Sprintf("m.%sCall.Invoke(%s, %s)", s.name, r.recordExpr(s), r.paramsExpr(s))
	if s.returns != nil {
		r.pf("\treturn %s\n}\n\n", call)
	} else {
		r.pf("\t%s\n}\n\n", call)
	}
}

func (r *renderer) members() {
	receiver := r.unit.Names.Unit() + r.tpUse
	for _, ic := range r.unit.Interceptors {
		switch ic.Contract.Kind {
		case contract.KindMethod:
			r.methodShape(r.shape(ic.Name, ic.Contract.Parameters, ic.Contract.Returns), receiver)
		case contract.KindProperty:
			t := goType(*ic.Contract.Returns)
			r.pf("func (m *%s) %s() %s {\n\treturn m.%sProp.Get()\n}\n\n", receiver, ic.Name, t, ic.Name)
			if ic.Contract.Settable {
				r.pf("func (m *%s) Set%s(v %s) {\n\tm.%sProp.Set(v)\n}\n\n", receiver, ic.Name, t, ic.Name)
			}
		case contract.KindIndexer:
			r.indexerMembers(ic, receiver)
		case contract.KindEvent:
			h := goType(*ic.Contract.HandlerType)
			r.pf("func (m *%s) Add%s(h %s) mimic.Handle {\n\treturn m.%sEvent.Add(h)\n}\n\n", receiver, ic.Name, h, ic.Name)
			r.pf("func (m *%s) Remove%s(h mimic.Handle) {\n\tm.%sEvent.Remove(h)\n}\n\n", receiver, ic.Name, ic.Name)
			r.pf("func (m *%s) Raise%s(fire func(%s)) {\n\tm.%sEvent.Raise(fire)\n}\n\n", receiver, ic.Name, h, ic.Name)
		case contract.KindGenericMethod:
			for _, inst := range ic.Instantiations {
				r.methodShape(r.shape(inst.Name, inst.Params, inst.Returns), receiver)
			}
		}
	}
}

func (r *renderer) indexerMembers(ic model.Interceptor, receiver string) {
	v := goType(*ic.Contract.Returns)
	params := ic.Contract.Parameters
	if len(params) == 1 {
		k := goType(params[0].Type)
		r.pf("func (m *%s) %s(%s %s) %s {\n\treturn m.%sIdx.Get(%s)\n}\n\n", receiver, ic.Name, params[0].Name, k, v, ic.Name, params[0].Name)
		if ic.Contract.Settable {
			r.pf("func (m *%s) Set%s(%s %s, value %s) {\n\tm.%sIdx.Set(%s, value)\n}\n\n", receiver, ic.Name, params[0].Name, k, v, ic.Name, params[0].Name)
		}
		return
	}
	keyType := r.indexerKeyType(ic)
	keyLit := keyLiteral(keyType, params)
	r.pf("func (m *%s) %s(%s) %s {\n\treturn m.%sIdx.Get(%s)\n}\n\n", receiver, ic.Name, signature(params), v, ic.Name, keyLit)
	if ic.Contract.Settable {
		r.pf("func (m *%s) Set%s(%s, value %s) {\n\tm.%sIdx.Set(%s, value)\n}\n\n", receiver, ic.Name, signature(params), v, ic.Name, keyLit)
	}
}

func keyLiteral(keyType string, params []contract.ParameterDescriptor) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = contract.ExportIdent(p.Name) + ": " + p.Name
	}
	return keyType + "{" + strings.Join(parts, ", ") + "}"
}

// qualifiedAccessors emits per-surface delegating accessors on
// multi-surface units, so shared same-named members remain addressable per
// declaring target.
func (r *renderer) qualifiedAccessors() {
	receiver := r.unit.Names.Unit() + r.tpUse
	for _, surface := range r.unit.Names.QualifiedSurfaces() {
		for _, ic := range r.unit.Interceptors {
			qname, ok := r.unit.Names.Qualified(surface, ic.Contract)
			if !ok {
				continue
			}
			switch ic.Contract.Kind {
			case contract.KindMethod:
				r.qualifiedMethod(receiver, surface, qname, ic.Name, r.shape(ic.Name, ic.Contract.Parameters, ic.Contract.Returns))
			case contract.KindProperty:
				t := goType(*ic.Contract.Returns)
				r.pf("// %s accesses %s via its %s declaration.\nfunc (m *%s) %s() %s {\n\treturn m.%s()\n}\n\n", qname, ic.Name, surface, receiver, qname, t, ic.Name)
				if ic.Contract.Settable {
					r.pf("func (m *%s) Set%s(v %s) {\n\tm.Set%s(v)\n}\n\n", receiver, qname, t, ic.Name)
				}
			case contract.KindIndexer:
				v := goType(*ic.Contract.Returns)
				params := ic.Contract.Parameters
				args := paramNames(params)
				r.pf("// %s accesses %s via its %s declaration.\nfunc (m *%s) %s(%s) %s {\n\treturn m.%s(%s)\n}\n\n",
					qname, ic.Name, surface, receiver, qname, signature(params), v, ic.Name, args)
				if ic.Contract.Settable {
					r.pf("func (m *%s) Set%s(%s, value %s) {\n\tm.Set%s(%s, value)\n}\n\n", receiver, qname, signature(params), v, ic.Name, args)
				}
			case contract.KindEvent:
				h := goType(*ic.Contract.HandlerType)
				r.pf("// Add%s subscribes to %s via its %s declaration.\nfunc (m *%s) Add%s(h %s) mimic.Handle {\n\treturn m.Add%s(h)\n}\n\n",
					qname, ic.Name, surface, receiver, qname, h, ic.Name)
				r.pf("func (m *%s) Remove%s(h mimic.Handle) {\n\tm.Remove%s(h)\n}\n\n", receiver, qname, ic.Name)
				r.pf("func (m *%s) Raise%s(fire func(%s)) {\n\tm.Raise%s(fire)\n}\n\n", receiver, qname, h, ic.Name)
			case contract.KindGenericMethod:
				for _, inst := range ic.Instantiations {
					// Instantiation suffixes carry over onto the accessor.
					qInst := qname + strings.TrimPrefix(inst.Name, ic.Name)
					r.qualifiedMethod(receiver, surface, qInst, inst.Name, r.shape(inst.Name, inst.Params, inst.Returns))
				}
			}
		}
	}
}

// qualifiedMethod emits one delegating accessor for a method-like member.
func (r *renderer) qualifiedMethod(receiver, surface, qname, target string, s memberShape) {
	ret, kw := "", ""
	if s.returns != nil {
		ret = " " + s.resultType
		kw = "return "
	}
	r.pf("// %s accesses %s via its %s declaration.\nfunc (m *%s) %s(%s)%s {\n\t%sm.%s(%s)\n}\n\n",
		qname, target, surface, receiver, qname, signature(s.params), ret, kw, target, paramNames(s.params))
}

// paramNames joins the parameter names of a call-through argument list.
func paramNames(params []contract.ParameterDescriptor) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name
	}
	return strings.Join(parts, ", ")
}

// resets emits the unit-level reset operations, each delegating to every
// member's corresponding reset.
func (r *renderer) resets() {
	receiver := r.unit.Names.Unit() + r.tpUse

	r.pf("// ResetTracking clears counters and history on every member. Override\n// slots and backing-stored values survive.\nfunc (m *%s) ResetTracking() {\n", receiver)
	r.eachResettable(func(field string, kind contract.Kind) {
		r.pf("\tm.%s.ResetTracking()\n", field)
	})
	r.pf("}\n\n")

	r.pf("// ResetCallbacks clears every per-instance callback slot. Tracking\n// state and backing-stored values survive.\nfunc (m *%s) ResetCallbacks() {\n", receiver)
	r.eachResettable(func(field string, kind contract.Kind) {
		if kind != contract.KindEvent {
			r.pf("\tm.%s.ResetCallback()\n", field)
		}
	})
	r.pf("}\n\n")

	r.pf("// Reset clears tracking and callbacks. Backing-stored values require\n// explicit assignment to change.\nfunc (m *%s) Reset() {\n\tm.ResetTracking()\n\tm.ResetCallbacks()\n}\n", receiver)
}

// eachResettable visits the struct fields that hold per-member state, in
// member order.
func (r *renderer) eachResettable(visit func(field string, kind contract.Kind)) {
	for _, ic := range r.unit.Interceptors {
		switch ic.Contract.Kind {
		case contract.KindMethod:
			visit(ic.Name+"Call", ic.Contract.Kind)
		case contract.KindProperty:
			visit(ic.Name+"Prop", ic.Contract.Kind)
		case contract.KindIndexer:
			visit(ic.Name+"Idx", ic.Contract.Kind)
		case contract.KindEvent:
			visit(ic.Name+"Event", ic.Contract.Kind)
		case contract.KindGenericMethod:
			for _, inst := range ic.Instantiations {
				visit(inst.Name+"Call", ic.Contract.Kind)
			}
		}
	}
}

// typeParamDecl renders "[T any, U any]" from the surface's type
// parameters; the first constraint descriptor becomes the Go constraint.
func typeParamDecl(tps []contract.TypeParameter) string {
	if len(tps) == 0 {
		return ""
	}
	parts := make([]string, len(tps))
	for i, tp := range tps {
		constraint := "any"
		if len(tp.Constraints) > 0 {
			constraint = goType(tp.Constraints[0])
		}
		parts[i] = tp.Name + " " + constraint
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func typeParamUse(tps []contract.TypeParameter) string {
	if len(tps) == 0 {
		return ""
	}
	parts := make([]string, len(tps))
	for i, tp := range tps {
		parts[i] = tp.Name
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
