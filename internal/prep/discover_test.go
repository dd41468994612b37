package prep

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func patientsOf(files []GraphFile) []string {
	patients := make([]string, len(files))
	for i, f := range files {
		patients[i] = f.Patient
	}
	return patients
}

func TestDiscover(t *testing.T) {
	layout, err := Discover("testdata/input")
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if !reflect.DeepEqual(layout.Patients, []string{"P01", "P02", "P03"}) {
		t.Errorf("patients %v", layout.Patients)
	}
	if result := patientsOf(layout.Trees); !reflect.DeepEqual(result, []string{"P01", "P02"}) {
		t.Errorf("trees %v", result)
	}
	if layout.Trees[0].Path != filepath.Join("testdata", "input", "P01", "tree.graphml") {
		t.Errorf("wrong tree path %s", layout.Trees[0].Path)
	}
	expectedLobes := map[LobeID][]string{
		LeftLowerLobe:   {"P01"},
		LeftUpperLobe:   {"P01", "P02", "P03"},
		RightLowerLobe:  {},
		RightMiddleLobe: {},
		RightUpperLobe:  {},
	}
	for lobe, expected := range expectedLobes {
		if result := patientsOf(layout.Lobes[lobe]); !reflect.DeepEqual(result, expected) {
			t.Errorf("%s lobes %v != %v", lobe, result, expected)
		}
		if result := patientsOf(layout.LobeFiles[lobe]); !reflect.DeepEqual(result, expected) {
			t.Errorf("%s lobe files %v != %v", lobe, result, expected)
		}
	}
}

func TestDiscoverInvalid(t *testing.T) {
	testCases := []struct {
		name string
		dir  string
	}{
		{name: "missing", dir: "testdata/nothing-here"},
		{name: "file", dir: "testdata/input/readme.txt"},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := Discover(test.dir)
			if !errors.Is(err, ErrInvalidFile) {
				t.Errorf("expected %s, got %+v", ErrInvalidFile, err)
			}
		})
	}
}

func TestDiscoverEmpty(t *testing.T) {
	layout, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if len(layout.Patients) != 0 || len(layout.Trees) != 0 || len(layout.Lobes[LeftUpperLobe]) != 0 {
		t.Errorf("expected empty layout, got %+v", layout)
	}
}

func TestLoadGraphs(t *testing.T) {
	layout, err := Discover("testdata/input")
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	lobes, err := LoadGraphMap(layout.Lobes[LeftUpperLobe], 2)
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	expected := map[string]struct {
		patient string
		nodes   int
		edges   int
		tree    bool
	}{
		"P01": {patient: "P01", nodes: 4, edges: 3, tree: true},
		"P02": {patient: "P02", nodes: 3, edges: 2, tree: true},
		"P03": {patient: "P03", nodes: 3, edges: 3, tree: false},
	}
	if len(lobes) != len(expected) {
		t.Fatalf("loaded %d lobes, expected %d", len(lobes), len(expected))
	}
	for p, exp := range expected {
		lobe := lobes[p]
		if lobe.Patient != exp.patient || lobe.NumNodes() != exp.nodes || lobe.NumEdges() != exp.edges || lobe.IsTree() != exp.tree {
			t.Errorf("%s: got patient %s, %d nodes, %d edges, tree %t",
				p, lobe.Patient, lobe.NumNodes(), lobe.NumEdges(), lobe.IsTree())
		}
	}
	trees, err := LoadGraphs(layout.Trees, 1)
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if len(trees) != 2 || trees[0].Patient != "P01" || trees[1].Patient != "P02" {
		t.Errorf("trees not loaded in order")
	}
}

func TestLoadGraphsError(t *testing.T) {
	files := []GraphFile{
		{Patient: "P01", Path: "testdata/input/P01/tree.graphml"},
		{Patient: "P03", Path: "testdata/input/P03/notes.txt"},
		{Patient: "P04", Path: "testdata/input/P04/tree.graphml"},
	}
	_, err := LoadGraphs(files, 0)
	if !errors.Is(err, ErrInvalidFormat) && !errors.Is(err, ErrInvalidFile) {
		t.Errorf("expected error reading files, got %+v", err)
	}
}
