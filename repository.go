package libczi

import (
	"github.com/kjmueller/libczi/internal/directory"
	"github.com/kjmueller/libczi/internal/model"
	"github.com/kjmueller/libczi/internal/stats"
)

// AttachmentKind selects which payload kind ISubBlock.RawData should return
// (spec §6.1; Supplemented Feature #2 gives this surface a concrete shape —
// the attachment bytes themselves are opaque to this core, consistent with
// spec.md's Non-goal of a metadata DOM).
type AttachmentKind = model.AttachmentKind

const (
	KindMetadata   = model.KindMetadata
	KindData       = model.KindData
	KindAttachment = model.KindAttachment
)

// ISubBlock is the surface a decoded-but-not-yet-unpacked sub-block exposes
// to this core. It is implemented by the (out-of-scope) on-disk parser;
// this package only consumes it (spec §6.1). Modeled on the teacher's small
// collaborator interfaces such as internal/tile/generator.go's TileWriter —
// a minimal method set owned by the caller, not this library.
type ISubBlock = model.ISubBlock

// IStream is the minimal read surface this core requires of an I/O stream
// (spec §6.1). Per spec §5, accessors do not serialize calls internally —
// an IStream implementation backed by state that cannot support concurrent
// reads (e.g. a single seek-then-read file descriptor) must serialize
// itself.
type IStream = model.IStream

// SubBlockStatistics is the derived-statistics snapshot a repository
// produces (spec §3.4). The concrete type lives in internal/stats.
type SubBlockStatistics = stats.Statistics

// ISubBlockRepository is the query surface the accessors consume (spec
// §6.1, §4.5). It is implemented by the sub-block directory variants in
// internal/directory, re-exported to callers through the constructors in
// this package.
type ISubBlockRepository = directory.Repository

// IndexSet is a small integer-set abstraction used for the scene_filter
// accessor option (spec §4.8, Supplemented Feature #4).
type IndexSet = directory.IndexSet

// NewIndexSet builds an IndexSet containing the given scene indices.
func NewIndexSet(values ...int) *IndexSet { return directory.NewIndexSet(values...) }
