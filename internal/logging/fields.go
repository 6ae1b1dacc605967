package logging

// Field name constants for structured logging.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldSource = "source"
	FieldMode   = "mode"

	// Decode fields.
	FieldBytes   = "bytes"
	FieldObjects = "objects"
	FieldOffset  = "offset"
	FieldNode    = "node"

	// History fields.
	FieldHistoryID = "history_id"
	FieldLimit     = "limit"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
