package logger

// Standard field names for consistent structured logging across mimic.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Generation units
	FieldUnit        = "unit"
	FieldTarget      = "target"
	FieldStrategy    = "strategy"
	FieldFingerprint = "fingerprint"

	// Contract surfaces
	FieldSurface     = "surface"
	FieldMember      = "member"
	FieldMemberCount = "member_count"
	FieldKind        = "kind"

	// Diagnostics
	FieldError     = "error"
	FieldErrorCode = "error_code"

	// Files and paths
	FieldFile     = "file"
	FieldManifest = "manifest"
	FieldOutput   = "output"

	// Timing
	FieldDurationMS = "duration_ms"

	// Counts
	FieldCount = "count"
)
