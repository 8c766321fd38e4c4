package libczi

import "github.com/kjmueller/libczi/internal/directory"

// ReadOnlyDirectory is the append-only directory variant built while a CZI
// file is being opened: Add appends entries in stream order; after
// AddingFinished the directory is immutable and freely shareable (spec
// §4.5, §5).
type ReadOnlyDirectory = directory.ReadOnly

// NewReadOnlyDirectory returns an empty ReadOnlyDirectory.
func NewReadOnlyDirectory() *ReadOnlyDirectory { return directory.NewReadOnly() }

// WriterDirectory is the directory variant used when authoring a CZI file:
// entries are kept in the writer sort order of spec §4.5, and duplicate
// layer-0 entries (same coordinate and m-index) are rejected.
type WriterDirectory = directory.Writer

// NewWriterDirectory returns an empty WriterDirectory.
func NewWriterDirectory() *WriterDirectory { return directory.NewWriter() }

// ReaderWriterDirectory is the directory variant that supports modifying
// and removing entries after the fact, addressed by a stable integer key
// (spec §4.5).
type ReaderWriterDirectory = directory.ReaderWriter

// NewReaderWriterDirectory returns an empty ReaderWriterDirectory.
func NewReaderWriterDirectory() *ReaderWriterDirectory { return directory.NewReaderWriter() }
