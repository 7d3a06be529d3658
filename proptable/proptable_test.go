package proptable

import (
	"testing"

	"github.com/cwbudde/qjscore/value"
)

func name(s string) *value.String { return value.NewString(s) }

func TestInsertIsIdempotent(t *testing.T) {
	tbl := New()
	d1 := tbl.Insert(name("x"))
	d1.Kind = KindData
	d1.Value = value.FromInt32(1)

	d2 := tbl.Insert(name("x"))
	if d1 != d2 {
		t.Fatal("Insert of an existing name must return the same descriptor pointer")
	}
	if d2.Value.ToInt32() != 1 {
		t.Fatalf("descriptor value lost across re-Insert: %v", d2.Value)
	}
}

func TestFindMissing(t *testing.T) {
	tbl := New()
	if tbl.Find(name("missing")) != nil {
		t.Error("Find on an empty table should return nil")
	}
}

func TestRemoveAlwaysReturnsTrue(t *testing.T) {
	tbl := New()
	if !tbl.Remove(name("absent")) {
		t.Error("Remove of an absent name must return true (JS `delete` contract)")
	}
	tbl.Insert(name("present"))
	if !tbl.Remove(name("present")) {
		t.Error("Remove of a present name must return true")
	}
	if tbl.Find(name("present")) != nil {
		t.Error("removed name must no longer be found")
	}
}

func TestEnumerationOrderIsInsertionOrder(t *testing.T) {
	tbl := New()
	tbl.Insert(name("a"))
	tbl.Insert(name("b"))
	tbl.Insert(name("c"))

	var order []string
	tbl.Each(func(e Entry) bool {
		order = append(order, e.Name.Go())
		return true
	})
	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

// TestDeleteThenReinsertReordersEnumeration mirrors spec.md's end-to-end
// scenario 2: var o={}; o.a=1; o.b=2; delete o.a; o.a=3 enumerates "ba".
func TestDeleteThenReinsertReordersEnumeration(t *testing.T) {
	tbl := New()
	tbl.Insert(name("a"))
	tbl.Insert(name("b"))
	tbl.Remove(name("a"))
	tbl.Insert(name("a")) // reuses the tombstoned slab slot but moves to the end of enumeration order

	var order []string
	tbl.Each(func(e Entry) bool {
		order = append(order, e.Name.Go())
		return true
	})
	want := "ba"
	got := ""
	for _, s := range order {
		got += s
	}
	if got != want {
		t.Errorf("enumeration after delete+reinsert = %q, want %q", got, want)
	}
}

func TestRehashSurvivesLookups(t *testing.T) {
	tbl := New()
	const n = 64
	names := make([]*value.String, n)
	for i := 0; i < n; i++ {
		names[i] = name(string(rune('a' + i%26)) + string(rune('0'+i/26)))
		tbl.Insert(names[i])
	}
	for i := 0; i < n; i++ {
		if tbl.Find(names[i]) == nil {
			t.Fatalf("name %q lost after rehashing", names[i].Go())
		}
	}
	if tbl.Len() != n {
		t.Errorf("Len() = %d, want %d", tbl.Len(), n)
	}
}

func TestHashCollisionFallsBackToTextCompare(t *testing.T) {
	// Two distinct String pointers with equal text must be treated as the
	// same key even though they are not pointer-identical.
	tbl := New()
	d1 := tbl.Insert(name("collide"))
	d1.Kind = KindData
	d1.Value = value.FromInt32(99)

	d2 := tbl.Find(name("collide"))
	if d2 != d1 {
		t.Fatal("Find must locate an entry by a different *String with equal text")
	}
}
