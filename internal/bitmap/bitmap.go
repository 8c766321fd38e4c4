// Package bitmap implements the pixel-buffer primitives described in spec
// §3.2 and §4.1-§4.2: an aligned, reentrant-lockable pixel buffer, the
// pixel-conversion matrix, stride-aware copy/blit/resize kernels, and the
// 1-bit-per-pixel bitonal mask type with its masked copy and 2x decimation.
package bitmap

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/kjmueller/libczi/internal/model"
)

// alignment is the minimum byte alignment guaranteed for a Bitmap's pixel
// buffer (spec §3.2).
const alignment = 32

// Bitmap owns a contiguous, ≥32-byte-aligned pixel buffer. Direct access
// is only permitted through Lock/Unlock, which are reentrant and must
// balance; Release panics if any lock is still outstanding, matching the
// fail-loud programmer-error contract of spec §7 class 1.
type Bitmap struct {
	mu sync.Mutex

	pixelType model.PixelType
	width     int
	height    int
	stride    int

	raw  []byte // over-allocated backing array
	data []byte // aligned view into raw, len == stride*height

	lockCount int32
	released  bool
}

// New allocates a Bitmap of the given pixel type, dimensions and stride.
// stride must be at least width*bytes_per_pel(pixelType).
func New(pixelType model.PixelType, width, height, stride int) *Bitmap {
	bpp := model.MustBytesPerPel(pixelType)
	model.Invariant(width > 0 && height > 0, "bitmap dimensions must be positive")
	model.Invariant(stride >= width*bpp, "stride smaller than width*bytes_per_pel")

	size := stride * height
	raw := make([]byte, size+alignment)
	offset := alignedOffset(raw)
	return &Bitmap{
		pixelType: pixelType,
		width:     width,
		height:    height,
		stride:    stride,
		raw:       raw,
		data:      raw[offset : offset+size],
	}
}

func alignedOffset(buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	addr := uintptr(unsafe.Pointer(&buf[0]))
	rem := addr % alignment
	if rem == 0 {
		return 0
	}
	return int(alignment - rem)
}

// PixelType returns the bitmap's pixel format.
func (b *Bitmap) PixelType() model.PixelType { return b.pixelType }

// Width returns the bitmap's width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the bitmap's height in pixels.
func (b *Bitmap) Height() int { return b.height }

// Stride returns the bitmap's row pitch in bytes.
func (b *Bitmap) Stride() int { return b.stride }

// LockedView is the {ptr, stride, size} triple spec §4.1's scoped lock
// hands out; Data aliases the bitmap's underlying buffer, so writes
// through it are visible immediately.
type LockedView struct {
	Data   []byte
	Stride int
}

// Lock acquires a reentrant read/write view onto the pixel buffer. Every
// Lock must be balanced by a corresponding Unlock.
func (b *Bitmap) Lock() LockedView {
	b.mu.Lock()
	defer b.mu.Unlock()
	model.Invariant(!b.released, "bitmap locked after release")
	atomic.AddInt32(&b.lockCount, 1)
	return LockedView{Data: b.data, Stride: b.stride}
}

// Unlock releases one previously acquired Lock.
func (b *Bitmap) Unlock() {
	n := atomic.AddInt32(&b.lockCount, -1)
	model.Invariant(n >= 0, "unlock without a matching lock")
}

// LockCount reports the number of currently outstanding locks.
func (b *Bitmap) LockCount() int32 { return atomic.LoadInt32(&b.lockCount) }

// Release marks the bitmap as destroyed, panicking if any lock is still
// outstanding (spec §3.2, §7 class 1: "destroying a bitmap while any lock
// is held is a fatal programming error").
func (b *Bitmap) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	model.Invariant(atomic.LoadInt32(&b.lockCount) == 0, "bitmap released while a lock is held")
	b.released = true
	b.data = nil
	b.raw = nil
}
