package cache

import (
	"math"
	"testing"

	"github.com/kjmueller/libczi/internal/bitmap"
	"github.com/kjmueller/libczi/internal/model"
)

func oneMiBBitmap() *bitmap.Bitmap {
	// Gray8, stride == width, height*stride == 1 MiB.
	const side = 1024
	return bitmap.New(model.Gray8, side, side, side)
}

func TestCacheReplaceOnAdd(t *testing.T) {
	c := New()
	b1 := oneMiBBitmap()
	b2 := oneMiBBitmap()
	c.Add(10, b1)
	c.Add(10, b2)
	got, ok := c.Get(10)
	if !ok || got != b2 {
		t.Fatalf("Get(10) = %v, %v; want b2, true", got, ok)
	}
}

// S5: add three 1-MiB bitmaps at keys 10,11,12; touch 10 via Get; prune to
// 2 MiB => elements_count=2 and Get(11) misses (11 was least-recently-used).
func TestCacheEvictionScenarioS5(t *testing.T) {
	c := New()
	c.Add(10, oneMiBBitmap())
	c.Add(11, oneMiBBitmap())
	c.Add(12, oneMiBBitmap())

	if _, ok := c.Get(10); !ok {
		t.Fatal("expected Get(10) to hit before prune")
	}

	const mib = 1 << 20
	c.Prune(2*mib, math.MaxUint64)

	stats := c.Statistics(StatAll)
	if stats.ElementsCount != 2 {
		t.Fatalf("elements_count = %d, want 2", stats.ElementsCount)
	}
	if stats.MemoryUsage > 2*mib {
		t.Fatalf("memory_usage = %d, want <= %d", stats.MemoryUsage, 2*mib)
	}
	if _, ok := c.Get(11); ok {
		t.Fatal("expected 11 to have been evicted (least recently used)")
	}
	if _, ok := c.Get(10); !ok {
		t.Fatal("expected 10 to survive (touched before prune)")
	}
	if _, ok := c.Get(12); !ok {
		t.Fatal("expected 12 to survive (most recently added)")
	}
}

func TestCachePruneDisabledAxis(t *testing.T) {
	c := New()
	for i := 0; i < 5; i++ {
		c.Add(i, oneMiBBitmap())
	}
	c.Prune(math.MaxUint64, 3)
	if got := c.Statistics(StatAll).ElementsCount; got != 3 {
		t.Fatalf("elements_count = %d, want 3", got)
	}
}
