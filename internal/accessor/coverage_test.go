package accessor

import (
	"testing"

	"github.com/kjmueller/libczi/internal/model"
)

func TestCoverageSimpleInsertAndCover(t *testing.T) {
	var c coverage
	full := model.IntRect{X: 0, Y: 0, W: 100, H: 100}
	if c.Covered(full) {
		t.Fatal("empty coverage should not cover anything")
	}
	c.Insert(full)
	if !c.Covered(full) {
		t.Fatal("expected full rect to be covered after inserting itself")
	}
	if !c.Covered(model.IntRect{X: 10, Y: 10, W: 20, H: 20}) {
		t.Fatal("expected sub-rect to be covered")
	}
}

func TestCoveragePartialInsertsDoNotFalselyReportCovered(t *testing.T) {
	var c coverage
	c.Insert(model.IntRect{X: 0, Y: 0, W: 50, H: 100})
	if c.Covered(model.IntRect{X: 0, Y: 0, W: 100, H: 100}) {
		t.Fatal("should not be covered: only half inserted")
	}
	c.Insert(model.IntRect{X: 50, Y: 0, W: 50, H: 100})
	if !c.Covered(model.IntRect{X: 0, Y: 0, W: 100, H: 100}) {
		t.Fatal("expected full coverage after inserting both halves")
	}
}

func TestCoverageOverlappingInsertsStayDisjoint(t *testing.T) {
	var c coverage
	c.Insert(model.IntRect{X: 0, Y: 0, W: 10, H: 10})
	c.Insert(model.IntRect{X: 5, Y: 5, W: 10, H: 10})
	// Union area should be 10*10 + 10*10 - 5*5 = 175.
	area := 0
	for _, r := range c.disjoint {
		area += r.W * r.H
	}
	if area != 175 {
		t.Fatalf("disjoint area = %d, want 175", area)
	}
	if !c.Covered(model.IntRect{X: 0, Y: 0, W: 10, H: 10}) {
		t.Fatal("first rect should be fully covered")
	}
	if !c.Covered(model.IntRect{X: 5, Y: 5, W: 10, H: 10}) {
		t.Fatal("second rect should be fully covered")
	}
	if c.Covered(model.IntRect{X: 0, Y: 0, W: 20, H: 20}) {
		t.Fatal("larger rect should not be fully covered")
	}
}
