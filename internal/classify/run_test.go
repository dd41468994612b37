package classify

import (
	"reflect"
	"testing"

	gr "github.com/jsdoublel/lobetree/internal/graphs"
)

func TestRun(t *testing.T) {
	lobes := map[string]*gr.LobeGraph{
		"p1-typeA": makeLobe("p1-typeA",
			map[int64]int{0: 0, 1: 1, 2: 1, 3: 1},
			[]testEdge{{0, 1, 5}, {0, 2, 7}, {0, 3, 9}}),
		"p2-typeB": makeLobe("p2-typeB",
			map[int64]int{0: 0, 1: 1, 2: 1},
			[]testEdge{{0, 1, 4}, {0, 2, 6}}),
		"p3-single": makeLobe("p3-single",
			map[int64]int{0: 0},
			nil),
		"p4-cycle": makeLobe("p4-cycle",
			map[int64]int{0: 0, 1: 1, 2: 1},
			[]testEdge{{0, 1, 1}, {1, 2, 1}, {2, 0, 1}}),
		"p5-wide": makeLobe("p5-wide",
			map[int64]int{0: 0, 1: 1, 2: 1, 3: 1, 4: 1},
			[]testEdge{{0, 1, 1}, {0, 2, 2}, {0, 3, 3}, {0, 4, 4}}),
		"p6-typeB": makeLobe("p6-typeB",
			map[int64]int{0: 0, 1: 1, 2: 2, 3: 2},
			[]testEdge{{0, 1, 10}, {1, 2, 3}, {1, 3, 8}}),
		"p7-forest": makeLobe("p7-forest",
			map[int64]int{0: 0, 1: 1, 2: 1, 3: 1},
			[]testEdge{{0, 1, 1}, {0, 2, 1}}),
	}
	s := Run(lobes)
	if s.Total != 7 {
		t.Errorf("total %d != 7", s.Total)
	}
	if s.Trees != 5 {
		t.Errorf("trees %d != 5", s.Trees)
	}
	if !reflect.DeepEqual(s.NotTrees, []string{"p4-cycle", "p7-forest"}) {
		t.Errorf("not trees %v", s.NotTrees)
	}
	if !reflect.DeepEqual(s.Unclassified, []string{"p3-single", "p5-wide"}) {
		t.Errorf("unclassified %v", s.Unclassified)
	}
	if s.TypeA != 1 || s.TypeB != 2 {
		t.Errorf("type A %d != 1 or type B %d != 2", s.TypeA, s.TypeB)
	}
	expected := []Record{
		{Patient: "p1-typeA", Label: "A", Length1: 0, Length2: 0},
		{Patient: "p2-typeB", Label: "B", Length1: 4, Length2: 6},
		{Patient: "p6-typeB", Label: "B", Length1: 3, Length2: 8},
	}
	if records := s.Records(); !reflect.DeepEqual(records, expected) {
		t.Errorf("records %+v != %+v", records, expected)
	}
	for _, p := range []string{"p3-single", "p4-cycle", "p5-wide", "p7-forest"} {
		if _, ok := s.Descriptors[p]; ok {
			t.Errorf("%s should not have a descriptor", p)
		}
	}
}

func TestRunEmpty(t *testing.T) {
	s := Run(map[string]*gr.LobeGraph{})
	if s.Total != 0 || s.Trees != 0 || len(s.Records()) != 0 {
		t.Errorf("expected empty summary, got %+v", s)
	}
	if s.NotTrees == nil || s.Unclassified == nil {
		t.Error("lists should be empty, not nil")
	}
}
