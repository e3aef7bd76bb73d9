package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/mimic/errors"
)

func TestSignatureConflictWrapsSentinel(t *testing.T) {
	err := SignatureConflict("Fetch",
		MemberRef{Surface: "Left", Member: "Fetch", Signature: "method|Fetch()->string"},
		MemberRef{Surface: "Right", Member: "Fetch", Signature: "method|Fetch()->int32"},
	)

	assert.True(t, errors.Is(err, errors.ErrConflict))
	assert.Equal(t, CodeSignatureConflict, err.Code)
	assert.Contains(t, err.Error(), "Fetch")
	assert.Contains(t, err.Error(), "Left.Fetch [method|Fetch()->string]")
}

func TestArityMismatch(t *testing.T) {
	err := ArityMismatch("Box", 1, 2)

	assert.True(t, errors.Is(err, errors.ErrUnsupported))
	assert.Equal(t, CodeArityMismatch, err.Code)
	assert.Contains(t, err.Error(), "1 type parameter(s)")
	assert.Contains(t, err.Error(), "2 argument(s)")
}

func TestUnsupportedConstruct(t *testing.T) {
	err := UnsupportedConstruct("no wrapping strategy available")

	assert.True(t, errors.Is(err, errors.ErrUnsupported))
	assert.Equal(t, "unsupported-construct: no wrapping strategy available", err.Error())
}

func TestFromError(t *testing.T) {
	d := ArityMismatch("Box", 1, 2)
	wrapped := errors.Wrap(d, "unit 3")

	got, ok := FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeArityMismatch, got.Code)

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)
}
