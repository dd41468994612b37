package classify

import (
	"log"
	"maps"
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"

	gr "github.com/jsdoublel/lobetree/internal/graphs"
)

// Row of the classification report
type Record struct {
	Patient string
	Label   string
	Length1 float64
	Length2 float64
}

// Aggregated result of classifying every lobe of one type
type Summary struct {
	Total        int                   // lobes given
	Trees        int                   // lobes that are trees
	NotTrees     []string              // patients whose lobe is not a tree
	TypeA        int                   // lobes classified as Type A
	TypeB        int                   // lobes classified as Type B
	Unclassified []string              // patients whose lobe is a tree but could not be classified
	Descriptors  map[string]Descriptor // Type A and Type B results by patient
}

// Classifies each lobe that is a tree (patient -> lobe). Lobes that are not
// trees or cannot be classified are listed but left out of Descriptors.
func Run(lobes map[string]*gr.LobeGraph) *Summary {
	s := &Summary{
		Total:        len(lobes),
		NotTrees:     make([]string, 0),
		Unclassified: make([]string, 0),
		Descriptors:  make(map[string]Descriptor),
	}
	log.Printf("found %d lobes for analysis", len(lobes))
	patients := slices.Sorted(maps.Keys(lobes))
	trees := make([]string, 0, len(patients))
	for _, p := range patients {
		if lobes[p].IsTree() {
			trees = append(trees, p)
		} else {
			s.NotTrees = append(s.NotTrees, p)
		}
	}
	s.Trees = len(trees)
	log.Printf("detected trees: %d/%d", s.Trees, s.Total)
	if len(s.NotTrees) != 0 {
		log.Printf("patients whose lobes are not a tree: %s", strings.Join(s.NotTrees, ", "))
	}
	for _, p := range trees {
		lobe := lobes[p]
		d := Classify(lobe, lobe.NodeIDs())
		logDescriptor(p, d)
		switch d.Class {
		case TypeA:
			s.TypeA++
		case TypeB:
			s.TypeB++
		default:
			s.Unclassified = append(s.Unclassified, p)
			continue
		}
		s.Descriptors[p] = d
	}
	log.Printf("successfully classified %d lobes as Type A", s.TypeA)
	log.Printf("found %d potential candidates for Type B", s.TypeB)
	if s.TypeB > 1 {
		l1, l2 := s.typeBLengths()
		log.Printf("Type B lengths: length_1 mean %.3f (sd %.3f), length_2 mean %.3f (sd %.3f)",
			stat.Mean(l1, nil), stat.StdDev(l1, nil), stat.Mean(l2, nil), stat.StdDev(l2, nil))
	}
	return s
}

func logDescriptor(patient string, d Descriptor) {
	if d.Retries != 0 {
		log.Printf("%s: less than 2 neighbors at %d root candidate(s), moved on to the next smallest node id", patient, d.Retries)
	}
	switch {
	case d.Class == TypeA:
		log.Printf("%s: classified as Type A (root %d)", patient, d.Root)
	case d.Class == TypeB:
		log.Printf("%s: 2 neighbors detected (root %d), lengths %v", patient, d.Root, d.Weights)
	case d.Degree > 3:
		log.Printf("%s: more than 3 neighbors detected (root %d), lengths %v", patient, d.Root, d.Weights)
	default:
		log.Printf("%s: no root candidate with at least 2 neighbors", patient)
	}
}

func (s *Summary) typeBLengths() ([]float64, []float64) {
	l1, l2 := make([]float64, 0, s.TypeB), make([]float64, 0, s.TypeB)
	for _, p := range slices.Sorted(maps.Keys(s.Descriptors)) {
		if d := s.Descriptors[p]; d.Class == TypeB {
			l1 = append(l1, d.Length1)
			l2 = append(l2, d.Length2)
		}
	}
	return l1, l2
}

// Classification records sorted by patient
func (s *Summary) Records() []Record {
	records := make([]Record, 0, len(s.Descriptors))
	for _, p := range slices.Sorted(maps.Keys(s.Descriptors)) {
		d := s.Descriptors[p]
		l1, l2 := d.Lengths()
		records = append(records, Record{Patient: p, Label: d.Label(), Length1: l1, Length2: l2})
	}
	return records
}
