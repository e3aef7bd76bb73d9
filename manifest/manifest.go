// Package manifest reads and validates mimic generation manifests.
//
// A manifest is the YAML handoff format between the upstream contract
// collaborator and the generation pipeline: it carries already-analyzed
// surface declarations plus the list of generation units to emit. The codec
// validates structure only; semantic checks (conflicts, arity) stay in the
// flattener and model builder.
package manifest

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/teranos/mimic/contract"
	"github.com/teranos/mimic/errors"
	"github.com/teranos/mimic/flatten"
)

// Manifest is the top-level document.
type Manifest struct {
	Version  int       `yaml:"version"`
	Surfaces []Surface `yaml:"surfaces"`
	Units    []Unit    `yaml:"units"`
}

// Surface is one declared contract surface.
type Surface struct {
	Name           string          `yaml:"name"`
	Extends        []string        `yaml:"extends,omitempty"`
	Callable       bool            `yaml:"callable,omitempty"`
	TypeParameters []TypeParameter `yaml:"type_parameters,omitempty"`
	Members        []Member        `yaml:"members"`
}

// TypeParameter is one unbound type parameter of a surface or member.
type TypeParameter struct {
	Name        string    `yaml:"name"`
	Constraints []TypeRef `yaml:"constraints,omitempty"`
}

// Member is one declared member of a surface.
type Member struct {
	Kind           string          `yaml:"kind"`
	Name           string          `yaml:"name"`
	Params         []Param         `yaml:"params,omitempty"`
	Returns        *TypeRef        `yaml:"returns,omitempty"`
	Settable       bool            `yaml:"settable,omitempty"`
	Handler        *TypeRef        `yaml:"handler,omitempty"`
	TypeParameters []TypeParameter `yaml:"type_parameters,omitempty"`
	Instantiations [][]TypeRef     `yaml:"instantiations,omitempty"`
}

// Param is one declared parameter. Mode defaults to by-value.
type Param struct {
	Name string  `yaml:"name"`
	Type TypeRef `yaml:"type"`
	Mode string  `yaml:"mode,omitempty"`
}

// TypeRef is the recursive YAML form of a type reference. Kind may be
// omitted: well-known scalar names default to value kind, everything else to
// reference kind.
type TypeRef struct {
	Kind string    `yaml:"kind,omitempty"`
	Name string    `yaml:"name,omitempty"`
	Elem *TypeRef  `yaml:"elem,omitempty"`
	Args []TypeRef `yaml:"args,omitempty"`
}

// Unit is one requested generation unit.
type Unit struct {
	Targets       []string  `yaml:"targets"`
	Strategy      string    `yaml:"strategy,omitempty"`
	Strict        bool      `yaml:"strict,omitempty"`
	Package       string    `yaml:"package,omitempty"`
	TypeArguments []TypeRef `yaml:"type_arguments,omitempty"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest %s", path)
	}
	return m, nil
}

// Parse decodes and validates a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidManifest, err.Error())
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if len(m.Surfaces) == 0 {
		return invalid("no surfaces declared")
	}
	seen := make(map[string]bool, len(m.Surfaces))
	for _, s := range m.Surfaces {
		if s.Name == "" {
			return invalid("surface with empty name")
		}
		if seen[s.Name] {
			return invalid("surface %q declared twice", s.Name)
		}
		seen[s.Name] = true
		for _, mem := range s.Members {
			if err := mem.validate(s.Name); err != nil {
				return err
			}
		}
	}
	for i, u := range m.Units {
		if len(u.Targets) == 0 {
			return invalid("unit %d has no targets", i)
		}
		for _, target := range u.Targets {
			if !seen[target] {
				return invalid("unit %d targets undeclared surface %q", i, target)
			}
		}
	}
	return nil
}

func (mem Member) validate(surface string) error {
	if mem.Name == "" {
		return invalid("surface %q declares a member with no name", surface)
	}
	switch contract.Kind(mem.Kind) {
	case contract.KindMethod, contract.KindProperty, contract.KindIndexer,
		contract.KindEvent, contract.KindGenericMethod:
	default:
		return invalid("surface %q member %q has unknown kind %q", surface, mem.Name, mem.Kind)
	}
	for _, p := range mem.Params {
		switch contract.PassingMode(p.Mode) {
		case contract.ModeValue, contract.ModeRefIn, contract.ModeRefInOut, contract.ModeRefOut:
		default:
			if p.Mode != "" {
				return invalid("surface %q member %q parameter %q has unknown mode %q",
					surface, mem.Name, p.Name, p.Mode)
			}
		}
	}
	switch contract.Kind(mem.Kind) {
	case contract.KindProperty, contract.KindIndexer:
		if mem.Returns == nil {
			return invalid("surface %q %s %q declares no value type", surface, mem.Kind, mem.Name)
		}
	case contract.KindEvent:
		if mem.Handler == nil {
			return invalid("surface %q event %q declares no handler type", surface, mem.Name)
		}
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(errors.ErrInvalidManifest, format, args...)
}

// Registry converts the declared surfaces into a flattening registry.
func (m *Manifest) Registry() (*flatten.Registry, error) {
	reg := flatten.NewRegistry()
	for _, s := range m.Surfaces {
		decl, err := s.declaration()
		if err != nil {
			return nil, err
		}
		reg.Add(decl)
	}
	return reg, nil
}

// SurfaceNames returns the declared surface names in sorted order.
func (m *Manifest) SurfaceNames() []string {
	names := make([]string, 0, len(m.Surfaces))
	for _, s := range m.Surfaces {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

func (s Surface) declaration() (flatten.Declaration, error) {
	decl := flatten.Declaration{
		Surface:  s.Name,
		Extends:  append([]string(nil), s.Extends...),
		Callable: s.Callable,
	}
	for _, tp := range s.TypeParameters {
		param, err := tp.descriptor()
		if err != nil {
			return flatten.Declaration{}, err
		}
		decl.TypeParameters = append(decl.TypeParameters, param)
	}
	for _, mem := range s.Members {
		mc, err := mem.contract()
		if err != nil {
			return flatten.Declaration{}, err
		}
		decl.Members = append(decl.Members, mc)
	}
	return decl, nil
}

func (tp TypeParameter) descriptor() (contract.TypeParameter, error) {
	out := contract.TypeParameter{Name: tp.Name}
	for _, c := range tp.Constraints {
		t, err := c.Descriptor()
		if err != nil {
			return contract.TypeParameter{}, err
		}
		out.Constraints = append(out.Constraints, t)
	}
	return out, nil
}

func (mem Member) contract() (contract.MemberContract, error) {
	mc := contract.MemberContract{
		Kind:     contract.Kind(mem.Kind),
		Name:     mem.Name,
		Settable: mem.Settable,
	}
	for _, p := range mem.Params {
		t, err := p.Type.Descriptor()
		if err != nil {
			return contract.MemberContract{}, err
		}
		mode := contract.PassingMode(p.Mode)
		if p.Mode == "" {
			mode = contract.ModeValue
		}
		mc.Parameters = append(mc.Parameters, contract.ParameterDescriptor{
			Name: p.Name,
			Type: t,
			Mode: mode,
		})
	}
	if mem.Returns != nil {
		t, err := mem.Returns.Descriptor()
		if err != nil {
			return contract.MemberContract{}, err
		}
		mc.Returns = &t
	}
	if mem.Handler != nil {
		t, err := mem.Handler.Descriptor()
		if err != nil {
			return contract.MemberContract{}, err
		}
		mc.HandlerType = &t
	}
	for _, tp := range mem.TypeParameters {
		param, err := tp.descriptor()
		if err != nil {
			return contract.MemberContract{}, err
		}
		mc.TypeParameters = append(mc.TypeParameters, param)
	}
	for _, inst := range mem.Instantiations {
		args, err := descriptors(inst)
		if err != nil {
			return contract.MemberContract{}, err
		}
		mc.Instantiations = append(mc.Instantiations, args)
	}
	return mc, nil
}

// scalarNames are the names a kind-less TypeRef resolves to value kind.
var scalarNames = map[string]bool{
	"bool": true, "string": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true,
	"byte": true, "rune": true,
}

// Descriptor converts the YAML form into a contract type descriptor.
func (t TypeRef) Descriptor() (contract.TypeDescriptor, error) {
	kind := contract.TypeKind(t.Kind)
	if t.Kind == "" {
		if scalarNames[t.Name] {
			kind = contract.TypeValue
		} else {
			kind = contract.TypeReference
		}
	}

	switch kind {
	case contract.TypeValue, contract.TypeReference, contract.TypeOpaque, contract.TypeParam:
		if t.Name == "" {
			return contract.TypeDescriptor{}, invalid("%s type with no name", kind)
		}
		return contract.TypeDescriptor{Kind: kind, Name: t.Name}, nil

	case contract.TypeNullable, contract.TypeDeferred, contract.TypeArray:
		if t.Elem == nil {
			return contract.TypeDescriptor{}, invalid("%s type with no elem", kind)
		}
		elem, err := t.Elem.Descriptor()
		if err != nil {
			return contract.TypeDescriptor{}, err
		}
		return contract.TypeDescriptor{Kind: kind, Name: t.Name, Elem: &elem}, nil

	case contract.TypeContainer:
		if t.Name == "" {
			return contract.TypeDescriptor{}, invalid("container type with no name")
		}
		args, err := descriptors(t.Args)
		if err != nil {
			return contract.TypeDescriptor{}, err
		}
		return contract.TypeDescriptor{Kind: kind, Name: t.Name, Args: args}, nil

	case contract.TypeTuple:
		if len(t.Args) == 0 {
			return contract.TypeDescriptor{}, invalid("tuple type with no elements")
		}
		args, err := descriptors(t.Args)
		if err != nil {
			return contract.TypeDescriptor{}, err
		}
		return contract.TypeDescriptor{Kind: kind, Args: args}, nil

	default:
		return contract.TypeDescriptor{}, invalid("unknown type kind %q", t.Kind)
	}
}

func descriptors(refs []TypeRef) ([]contract.TypeDescriptor, error) {
	out := make([]contract.TypeDescriptor, 0, len(refs))
	for _, r := range refs {
		t, err := r.Descriptor()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
