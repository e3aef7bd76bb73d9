// Package diag defines the structured diagnostics the generation pipeline
// reports to its host. A failed unit produces no artifact and one or more
// diagnostics; each carries a stable code, a human-readable message, and the
// member/surface references the host needs to point at the original
// declaration site.
package diag

import (
	"fmt"
	"strings"

	"github.com/teranos/mimic/errors"
)

// Code is a stable diagnostic code. Codes are part of the tool's contract
// with host build systems and never change meaning.
type Code string

const (
	// CodeSignatureConflict - same member name with incompatible
	// signatures across declaring surfaces.
	CodeSignatureConflict Code = "signature-conflict"

	// CodeArityMismatch - an open-generic target supplied a different
	// number of type arguments than its contract declares.
	CodeArityMismatch Code = "arity-mismatch"

	// CodeUnsupportedConstruct - a construct generated code cannot
	// express regardless of strategy.
	CodeUnsupportedConstruct Code = "unsupported-construct"
)

// MemberRef locates one offending member declaration.
type MemberRef struct {
	Surface   string
	Member    string
	Signature string
}

func (r MemberRef) String() string {
	if r.Signature == "" {
		return r.Surface + "." + r.Member
	}
	return fmt.Sprintf("%s.%s [%s]", r.Surface, r.Member, r.Signature)
}

// Diagnostic is one generation-time failure. It implements error and wraps
// the repo sentinel errors so callers can use errors.Is across the boundary.
type Diagnostic struct {
	Code    Code
	Message string
	Members []MemberRef

	cause error
}

func (d *Diagnostic) Error() string {
	if len(d.Members) == 0 {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	refs := make([]string, len(d.Members))
	for i, m := range d.Members {
		refs[i] = m.String()
	}
	return fmt.Sprintf("%s: %s (%s)", d.Code, d.Message, strings.Join(refs, "; "))
}

func (d *Diagnostic) Unwrap() error {
	return d.cause
}

// SignatureConflict reports members that share a name but disagree on
// signature across declaring surfaces. Conflicts are never silently
// resolved; the caller must split the target or supply a combined contract.
func SignatureConflict(name string, refs ...MemberRef) *Diagnostic {
	return &Diagnostic{
		Code:    CodeSignatureConflict,
		Message: fmt.Sprintf("member %q is declared with incompatible signatures", name),
		Members: refs,
		cause:   errors.ErrConflict,
	}
}

// ArityMismatch reports an open-generic target closed with the wrong number
// of type arguments.
func ArityMismatch(target string, want, got int) *Diagnostic {
	return &Diagnostic{
		Code:    CodeArityMismatch,
		Message: fmt.Sprintf("target %q declares %d type parameter(s) but %d argument(s) were supplied", target, want, got),
		cause:   errors.ErrUnsupported,
	}
}

// UnsupportedConstruct reports a contract shape that cannot be represented
// in generated code under any strategy.
func UnsupportedConstruct(reason string, refs ...MemberRef) *Diagnostic {
	return &Diagnostic{
		Code:    CodeUnsupportedConstruct,
		Message: reason,
		Members: refs,
		cause:   errors.ErrUnsupported,
	}
}

// FromError extracts a Diagnostic from an error chain, if one is present.
func FromError(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
