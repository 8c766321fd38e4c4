package libczi

import "github.com/kjmueller/libczi/internal/compositor"

// ChannelInfo describes one input channel to Composite (spec §4.10).
type ChannelInfo = compositor.ChannelInfo

// Composite implements the multi-channel compositor of spec §4.10: each
// channel's sample is mapped through its lookup table or black/white-point
// ramp, weighted, optionally tinted, and summed into dst, which must be
// Bgr24 or Bgra32 (Bgra32 gets constantAlpha written to every pixel).
func Composite(channels []ChannelInfo, dst *Bitmap, constantAlpha byte) error {
	return compositor.Composite(channels, dst, constantAlpha)
}
