package lohibyte

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"
)

func TestUnpackThenPackRoundTrips(t *testing.T) {
	const wordCount, lineCount = 5, 3
	stride := wordCount * 2
	src := make([]byte, stride*lineCount)
	r := rand.New(rand.NewSource(1))
	for i := 0; i < wordCount*lineCount; i++ {
		binary.LittleEndian.PutUint16(src[i*2:], uint16(r.Intn(65536)))
	}

	planes := make([]byte, wordCount*2*lineCount)
	Unpack(src, wordCount, stride, lineCount, planes)

	dst := make([]byte, stride*lineCount)
	Pack(planes, wordCount, lineCount, stride, dst)

	if !bytes.Equal(src, dst) {
		t.Fatalf("pack(unpack(src)) != src\nsrc=%v\ndst=%v", src, dst)
	}
}

func TestUnpackExampleS2(t *testing.T) {
	// S2: a 2x1 Gray16 image with samples 0x1234, 0x5678.
	src := make([]byte, 4)
	binary.LittleEndian.PutUint16(src[0:2], 0x1234)
	binary.LittleEndian.PutUint16(src[2:4], 0x5678)

	planes := make([]byte, 4)
	Unpack(src, 2, 4, 1, planes)

	wantLo := []byte{0x34, 0x78}
	wantHi := []byte{0x12, 0x56}
	if !bytes.Equal(planes[:2], wantLo) {
		t.Errorf("low-byte plane = %v, want %v", planes[:2], wantLo)
	}
	if !bytes.Equal(planes[2:], wantHi) {
		t.Errorf("high-byte plane = %v, want %v", planes[2:], wantHi)
	}

	dst := make([]byte, 4)
	Pack(planes, 2, 1, 4, dst)
	if !bytes.Equal(dst, src) {
		t.Errorf("Pack(Unpack(src)) = %v, want %v", dst, src)
	}
}
