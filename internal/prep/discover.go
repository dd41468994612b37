package prep

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	gr "github.com/jsdoublel/lobetree/internal/graphs"
)

const (
	graphExt     = ".graphml"
	treeFileName = "tree" + graphExt
)

type GraphFile struct {
	Patient string // patient the file belongs to (used if the graph has no patient attribute)
	Path    string
}

// Graph files found in the input directory
type Layout struct {
	Patients  []string               // patient subdirectories, sorted
	Trees     []GraphFile            // <patient>/tree.graphml
	Lobes     map[LobeID][]GraphFile // <patient>/lobe-<id>-<patient>.graphml
	LobeFiles map[LobeID][]GraphFile // any lobe-<id>-*.graphml below the input directory
}

// Finds whole-tree and lobe files in inputDir. Every subdirectory of inputDir
// is a patient. Missing files are skipped.
func Discover(inputDir string) (*Layout, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, fmt.Errorf("%w, %s", ErrInvalidFile, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%w, %s is not a directory", ErrInvalidFile, inputDir)
	}
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("%w, error reading %s: %s", ErrInvalidFile, inputDir, err)
	}
	layout := &Layout{
		Patients:  make([]string, 0),
		Trees:     make([]GraphFile, 0),
		Lobes:     make(map[LobeID][]GraphFile),
		LobeFiles: make(map[LobeID][]GraphFile),
	}
	for _, lobe := range LobeIDs {
		layout.Lobes[lobe] = make([]GraphFile, 0)
		layout.LobeFiles[lobe] = make([]GraphFile, 0)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		patient := entry.Name()
		patientDir := filepath.Join(inputDir, patient)
		layout.Patients = append(layout.Patients, patient)
		if path := filepath.Join(patientDir, treeFileName); isFile(path) {
			layout.Trees = append(layout.Trees, GraphFile{Patient: patient, Path: path})
		}
		for _, lobe := range LobeIDs {
			if path := filepath.Join(patientDir, lobe.FileName(patient)); isFile(path) {
				layout.Lobes[lobe] = append(layout.Lobes[lobe], GraphFile{Patient: patient, Path: path})
			}
		}
	}
	err = filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != graphExt {
			return nil
		}
		for _, lobe := range LobeIDs {
			if strings.HasPrefix(d.Name(), fmt.Sprintf("lobe-%d-", int(lobe))) {
				patient := filepath.Base(filepath.Dir(path))
				layout.LobeFiles[lobe] = append(layout.LobeFiles[lobe], GraphFile{Patient: patient, Path: path})
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w, error walking %s: %s", ErrInvalidFile, inputDir, err)
	}
	return layout, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Reads graph files with up to nprocs files read at once (no limit if nprocs <=
// 0). Graphs are returned in the same order as files.
func LoadGraphs(files []GraphFile, nprocs int) ([]*gr.LobeGraph, error) {
	graphs := make([]*gr.LobeGraph, len(files))
	g, ctx := errgroup.WithContext(context.Background())
	if nprocs > 0 {
		g.SetLimit(nprocs)
	}
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lg, err := ReadGraphMLFile(f.Path, f.Patient)
			if err != nil {
				return err
			}
			graphs[i] = lg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return graphs, nil
}

// Same as LoadGraphs, but keyed by GraphFile.Patient
func LoadGraphMap(files []GraphFile, nprocs int) (map[string]*gr.LobeGraph, error) {
	graphs, err := LoadGraphs(files, nprocs)
	if err != nil {
		return nil, err
	}
	result := make(map[string]*gr.LobeGraph, len(graphs))
	for i, lg := range graphs {
		if _, ok := result[files[i].Patient]; ok {
			log.Printf("WARNING: more than one graph for patient %s, using %s", files[i].Patient, files[i].Path)
		}
		result[files[i].Patient] = lg
	}
	return result, nil
}
