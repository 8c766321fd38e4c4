package bitmap

import "sync"

// scratchPools maps a buffer length to a *sync.Pool of reusable []byte
// scratch buffers for temporary decode/convert staging; no codec or
// accessor in this module calls GetScratch or PutScratch. Grounded directly
// on internal/tile/rgbapool.go's
// sync.Map-of-sync.Pool pattern, generalized from fixed image dimensions
// to arbitrary byte lengths.
var scratchPools sync.Map

// GetScratch returns a zeroed []byte of length n, reused from the pool
// when one of that exact length is available.
func GetScratch(n int) []byte {
	if p, ok := scratchPools.Load(n); ok {
		if v := p.(*sync.Pool).Get(); v != nil {
			buf := v.([]byte)
			clear(buf)
			return buf
		}
	}
	return make([]byte, n)
}

// PutScratch returns buf to the pool for reuse at its own length. Nil or
// empty buffers are silently ignored.
func PutScratch(buf []byte) {
	if len(buf) == 0 {
		return
	}
	p, _ := scratchPools.LoadOrStore(len(buf), &sync.Pool{})
	p.(*sync.Pool).Put(buf)
}
