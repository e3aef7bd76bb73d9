// Package pipeline orchestrates one generation pass: flattened surface in,
// rendered artifact or structured diagnostics out.
//
// The pass is a pure function of its request. Independent units share no
// mutable state, so the host build system may run any number of passes in
// parallel. The optional cache keys on deep content fingerprints: two
// structurally equal requests produce one rendering.
package pipeline

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/mimic/contract"
	"github.com/teranos/mimic/diag"
	"github.com/teranos/mimic/errors"
	"github.com/teranos/mimic/logger"
	"github.com/teranos/mimic/model"
	"github.com/teranos/mimic/naming"
	"github.com/teranos/mimic/render"
)

// Request fully determines one generation unit: the flattened surface, the
// wrapping strategy, the strict flag, and the target package name. Open
// surfaces may additionally be closed with concrete type arguments.
type Request struct {
	Surface  *contract.TypeSurface
	Strategy render.Strategy
	Strict   bool

	// Package is the Go package name standalone artifacts declare.
	Package string

	// TypeArguments closes an open-generic surface before generation.
	// Leave empty to keep the surface open (open-generic strategy).
	TypeArguments []contract.TypeDescriptor
}

// Artifact is one successfully rendered generation unit.
type Artifact struct {
	Unit        string
	Text        string
	Fingerprint string
}

// Pipeline runs generation passes. The zero value is not usable; construct
// with New.
type Pipeline struct {
	log *zap.SugaredLogger

	mu    sync.RWMutex
	cache map[string]*Artifact
}

// New creates a pipeline. A nil logger falls back to the package logger.
func New(log *zap.SugaredLogger) *Pipeline {
	if log == nil {
		log = logger.Logger
	}
	return &Pipeline{
		log:   log,
		cache: make(map[string]*Artifact),
	}
}

// Generate runs one pass: validate, name, build interceptor models, render.
// A failed unit emits no text at all; errors carry a *diag.Diagnostic when
// the failure is a structured generation-time diagnostic.
func (p *Pipeline) Generate(req Request) (*Artifact, error) {
	if req.Surface == nil {
		return nil, errors.New("pipeline: request has no surface")
	}
	start := time.Now()

	surface, err := p.close(req)
	if err != nil {
		return nil, err
	}
	if err := checkStrategy(surface, req.Strategy); err != nil {
		return nil, err
	}

	key := cacheKey(surface, req)
	p.mu.RLock()
	hit := p.cache[key]
	p.mu.RUnlock()
	if hit != nil {
		p.log.Debugw("generation cache hit",
			logger.FieldUnit, hit.Unit,
			logger.FieldFingerprint, hit.Fingerprint)
		return hit, nil
	}

	names := naming.Resolve(surface)
	unit, err := model.Build(surface, names, model.Options{Strict: req.Strict})
	if err != nil {
		return nil, err
	}

	text := render.Render(unit, req.Strategy, req.Package)
	artifact := &Artifact{
		Unit:        names.Unit(),
		Text:        text,
		Fingerprint: surface.Fingerprint(),
	}

	p.mu.Lock()
	p.cache[key] = artifact
	p.mu.Unlock()

	p.log.Infow("generated unit",
		logger.FieldUnit, artifact.Unit,
		logger.FieldStrategy, string(req.Strategy),
		logger.FieldMemberCount, len(surface.Members),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return artifact, nil
}

// close binds an open surface's type parameters to the request's concrete
// arguments, if any were supplied.
func (p *Pipeline) close(req Request) (*contract.TypeSurface, error) {
	s := req.Surface
	if len(req.TypeArguments) == 0 {
		return s, nil
	}
	if len(req.TypeArguments) != len(s.TypeParameters) {
		return nil, diag.ArityMismatch(targetName(s), len(s.TypeParameters), len(req.TypeArguments))
	}

	bind := make(map[string]contract.TypeDescriptor, len(s.TypeParameters))
	for i, tp := range s.TypeParameters {
		bind[tp.Name] = req.TypeArguments[i]
	}

	closed := &contract.TypeSurface{
		Targets:  append([]string(nil), s.Targets...),
		Callable: s.Callable,
	}
	for _, m := range s.Members {
		bound := m
		bound.Parameters = make([]contract.ParameterDescriptor, len(m.Parameters))
		for i, param := range m.Parameters {
			param.Type = param.Type.Substitute(bind)
			bound.Parameters[i] = param
		}
		if m.Returns != nil {
			ret := m.Returns.Substitute(bind)
			bound.Returns = &ret
		}
		if m.HandlerType != nil {
			h := m.HandlerType.Substitute(bind)
			bound.HandlerType = &h
		}
		closed.Members = append(closed.Members, bound)
	}
	closed.Normalize()
	return closed, nil
}

// checkStrategy rejects strategy/surface combinations no emission can
// honor.
func checkStrategy(s *contract.TypeSurface, strategy render.Strategy) error {
	switch strategy {
	case render.StrategyStandalone, render.StrategyInline:
		if len(s.TypeParameters) > 0 {
			if s.Callable {
				return diag.UnsupportedConstruct(
					fmt.Sprintf("open-generic callable-type target %s has no wrapping strategy available", targetName(s)))
			}
			return diag.UnsupportedConstruct(
				fmt.Sprintf("open-generic target %s requires the open-generic strategy or concrete type arguments", targetName(s)))
		}
	case render.StrategyOpenGeneric:
		if len(s.TypeParameters) == 0 {
			return diag.UnsupportedConstruct(
				fmt.Sprintf("target %s has no type parameters; use the standalone or inline strategy", targetName(s)))
		}
		if s.Callable {
			return diag.UnsupportedConstruct(
				fmt.Sprintf("open-generic callable-type target %s has no wrapping strategy available", targetName(s)))
		}
	default:
		return errors.Newf("pipeline: unknown strategy %q", strategy)
	}
	return nil
}

func cacheKey(s *contract.TypeSurface, req Request) string {
	return fmt.Sprintf("%s|%s|%v|%s", s.Fingerprint(), req.Strategy, req.Strict, req.Package)
}

func targetName(s *contract.TypeSurface) string {
	if len(s.Targets) == 1 {
		return s.Targets[0]
	}
	return fmt.Sprintf("%v", s.Targets)
}
