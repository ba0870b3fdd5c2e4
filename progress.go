package resman

// ProgressEvent represents a progress update during packing or loading.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Path is the file currently being processed, if applicable.
	Path string

	// BytesDone is the number of content bytes processed so far.
	BytesDone uint64

	// FilesDone is the number of files or chunks processed so far.
	FilesDone int
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

// Progress stages for pack and load operations.
const (
	// StageEnumerating indicates the operation is walking the directory tree.
	StageEnumerating ProgressStage = iota

	// StagePacking indicates a file was written to the package.
	StagePacking

	// StageLoading indicates a chunk was read from the package.
	StageLoading
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageEnumerating:
		return "enumerating"
	case StagePacking:
		return "packing"
	case StageLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during operations.
type ProgressFunc func(ProgressEvent)
