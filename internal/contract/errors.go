package contract

import "fmt"

// InvalidRepositoryError indicates a repository path that cannot be analyzed:
// missing, not a directory, or lacking version-control metadata. It is
// recoverable at batch level; the engine records it and moves on.
type InvalidRepositoryError struct {
	Path   string
	Reason string
}

func (e *InvalidRepositoryError) Error() string {
	return fmt.Sprintf("invalid repository %q: %s", e.Path, e.Reason)
}

// NoRepositoriesError indicates an empty repository list. It is fatal for the
// whole batch; there is nothing to analyze.
type NoRepositoriesError struct{}

func (e *NoRepositoriesError) Error() string {
	return "no repositories provided. Usage: clew analyze <repo1> <repo2> ..."
}

// StorageWriteError indicates that persisting a batch to the growth history
// failed. The computed batch remains valid; callers decide whether a missing
// persisted copy is fatal.
type StorageWriteError struct {
	Path string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("failed to write to %s: %v", e.Path, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

// StorageReadError indicates that reading stored batches failed.
type StorageReadError struct {
	Path string
	Err  error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("failed to read from %s: %v", e.Path, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }
