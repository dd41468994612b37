// Package used for discovering and reading patient graph files, and for
// writing the csv reports and plots
package prep

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	gr "github.com/jsdoublel/lobetree/internal/graphs"
)

var (
	ErrInvalidFile   = errors.New("invalid file")
	ErrInvalidFormat = errors.New("invalid format")
	ErrWritingFile   = errors.New("error writing file")
)

const (
	levelAttr   = "level"
	weightAttr  = "weight"
	patientAttr = "patient"

	defaultWeight = 1
)

type xmlGraphML struct {
	XMLName xml.Name   `xml:"graphml"`
	Keys    []xmlKey   `xml:"key"`
	Graphs  []xmlGraph `xml:"graph"`
}

type xmlKey struct {
	ID      string  `xml:"id,attr"`
	For     string  `xml:"for,attr"`
	Name    string  `xml:"attr.name,attr"`
	Default *string `xml:"default"`
}

type xmlGraph struct {
	EdgeDefault string    `xml:"edgedefault,attr"`
	Data        []xmlData `xml:"data"`
	Nodes       []xmlNode `xml:"node"`
	Edges       []xmlEdge `xml:"edge"`
}

type xmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []xmlData `xml:"data"`
}

type xmlEdge struct {
	Source string    `xml:"source,attr"`
	Target string    `xml:"target,attr"`
	Data   []xmlData `xml:"data"`
}

type xmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// key ids of one attribute, plus its default value if any
type attrKey struct {
	ids        map[string]bool
	defaultVal *string
}

func (k attrKey) lookup(data []xmlData) (string, bool) {
	for _, d := range data {
		if k.ids[d.Key] {
			return strings.TrimSpace(d.Value), true
		}
	}
	if k.defaultVal != nil {
		return strings.TrimSpace(*k.defaultVal), true
	}
	return "", false
}

// finds the keys declared for domain (node, edge, graph) with attribute name
func findKey(keys []xmlKey, domain, name string) attrKey {
	k := attrKey{ids: make(map[string]bool)}
	for _, key := range keys {
		keyName := key.Name
		if keyName == "" {
			keyName = key.ID
		}
		if keyName != name || (key.For != domain && key.For != "all") {
			continue
		}
		k.ids[key.ID] = true
		if key.Default != nil {
			k.defaultVal = key.Default
		}
	}
	return k
}

// Reads GraphML file. fallbackPatient is used when the graph has no patient
// attribute.
func ReadGraphMLFile(path, fallbackPatient string) (*gr.LobeGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w, error reading %s: %s", ErrInvalidFile, path, err)
	}
	lg, err := ReadGraphML(bytes.NewReader(data), fallbackPatient)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lg, nil
}

// Reads the first graph of a GraphML document. Node ids must be integers; the
// node attribute "level", edge attribute "weight", and graph attribute
// "patient" are read if declared.
func ReadGraphML(r io.Reader, fallbackPatient string) (*gr.LobeGraph, error) {
	var doc xmlGraphML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w, error parsing graphml: %s", ErrInvalidFormat, err)
	}
	if len(doc.Graphs) == 0 {
		return nil, fmt.Errorf("%w, graphml document contains no graph", ErrInvalidFormat)
	}
	g := doc.Graphs[0]
	patient := fallbackPatient
	if p, ok := findKey(doc.Keys, "graph", patientAttr).lookup(g.Data); ok && p != "" {
		patient = p
	}
	lg := gr.NewLobeGraph(patient, g.EdgeDefault == "directed")
	levelKey := findKey(doc.Keys, "node", levelAttr)
	for _, n := range g.Nodes {
		id, err := parseNodeID(n.ID)
		if err != nil {
			return nil, err
		}
		lg.AddNode(id)
		if s, ok := levelKey.lookup(n.Data); ok {
			level, err := parseLevel(s)
			if err != nil {
				return nil, fmt.Errorf("%w, node %s: %s", ErrInvalidFormat, n.ID, err)
			}
			lg.SetLevel(id, level)
		}
	}
	weightKey := findKey(doc.Keys, "edge", weightAttr)
	for _, e := range g.Edges {
		u, err := parseNodeID(e.Source)
		if err != nil {
			return nil, err
		}
		v, err := parseNodeID(e.Target)
		if err != nil {
			return nil, err
		}
		w := float64(defaultWeight)
		if s, ok := weightKey.lookup(e.Data); ok {
			if w, err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("%w, edge %s-%s weight: %s", ErrInvalidFormat, e.Source, e.Target, err)
			}
		}
		lg.AddEdge(u, v, w)
	}
	return lg, nil
}

func parseNodeID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w, node id \"%s\" is not an integer", ErrInvalidFormat, s)
	}
	return id, nil
}

// levels are integers, but some writers store them as floats
func parseLevel(s string) (int, error) {
	if level, err := strconv.Atoi(s); err == nil {
		return level, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("level %s is not finite", s)
	}
	return int(f), nil
}
