package model

import "context"

// AttachmentKind selects which payload kind ISubBlock.RawData should return
// (spec §6.1; Supplemented Feature #2).
type AttachmentKind int

const (
	KindMetadata AttachmentKind = iota
	KindData
	KindAttachment
)

// ISubBlock is the surface a decoded-but-not-yet-unpacked sub-block exposes
// to this core; implemented by the (out-of-scope) on-disk parser (spec §6.1).
type ISubBlock interface {
	Info() SubBlockInfo
	RawData(kind AttachmentKind) ([]byte, error)
}

// IStream is the minimal read surface this core requires of an I/O stream
// (spec §6.1, §5 — callers needing concurrent reads over stateful file
// descriptors must serialize internally; this core does not do it for them).
type IStream interface {
	ReadAt(ctx context.Context, offset int64, p []byte) (n int, err error)
}
