package prep

import (
	"encoding/csv"
	"fmt"
	"image/color"
	"io"
	"log"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/jsdoublel/lobetree/internal/classify"
	gr "github.com/jsdoublel/lobetree/internal/graphs"
	"github.com/jsdoublel/lobetree/internal/stats"
)

var (
	barColor1 = color.RGBA{R: 37, G: 150, B: 190, A: 255}
	barColor2 = color.RGBA{R: 234, G: 145, B: 60, A: 255}
)

const (
	plotH       = 4 * vg.Inch
	plotMinW    = 6 * vg.Inch
	plotBarW    = vg.Length(6)
	plotPerBarW = 0.35 * vg.Inch
	plotTitle   = "Length of edges of type B candidates"
)

// Creates (or truncates) the output file at path, logging a warning if it
// already existed
func CreateOutputFile(path string) (*os.File, error) {
	if _, err := os.Stat(path); err == nil {
		log.Printf("WARNING: file was overwritten: %s", path)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w, %s", ErrWritingFile, err)
	}
	return file, nil
}

// Writes csv data to a newly created file at path
func WriteCSVFile(path string, write func(io.Writer) error) (err error) {
	file, err := CreateOutputFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w, %s", ErrWritingFile, cerr)
		}
	}()
	return write(file)
}

func writeCSV(data [][]string, w io.Writer) (err error) {
	writer := csv.NewWriter(w)
	defer func() {
		writer.Flush()
		if err == nil {
			err = writer.Error()
		} else if writer.Error() != nil {
			log.Printf("error when flushing output csv, %s", writer.Error())
		}
	}()
	if err = writer.WriteAll(data); err != nil {
		err = fmt.Errorf("%w, %s", ErrWritingFile, err)
		return
	}
	return
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Columns: patient, nodes, edges, longest_path_length, maximum_independent_set_length
func WriteTreeStatsCSV(rows []stats.TreeStats, w io.Writer) error {
	data := make([][]string, len(rows)+1)
	data[0] = []string{"patient", "nodes", "edges", "longest_path_length", "maximum_independent_set_length"}
	for i, row := range rows {
		data[i+1] = []string{
			row.Patient,
			strconv.Itoa(row.Nodes),
			strconv.Itoa(row.Edges),
			strconv.Itoa(row.LongestPathLength),
			strconv.Itoa(row.MaxIndependentSetSize),
		}
	}
	return writeCSV(data, w)
}

// Columns: patient, nodes, edges, nodeQuotient, edgeQuotient
func WriteLobeStatsCSV(rows []stats.LobeStats, w io.Writer) error {
	data := make([][]string, len(rows)+1)
	data[0] = []string{"patient", "nodes", "edges", "nodeQuotient", "edgeQuotient"}
	for i, row := range rows {
		data[i+1] = []string{
			row.Patient,
			strconv.Itoa(row.Nodes),
			strconv.Itoa(row.Edges),
			formatFloat(row.NodeQuotient),
			formatFloat(row.EdgeQuotient),
		}
	}
	return writeCSV(data, w)
}

// Columns: patient, classification, length_1, length_2
func WriteClassificationCSV(records []classify.Record, w io.Writer) error {
	data := make([][]string, len(records)+1)
	data[0] = []string{"patient", "classification", "length_1", "length_2"}
	for i, r := range records {
		data[i+1] = []string{r.Patient, r.Label, formatFloat(r.Length1), formatFloat(r.Length2)}
	}
	return writeCSV(data, w)
}

// Grouped bar chart of both lengths per patient, saved to path (format from
// the extension). Nothing is written if there are no records.
func WriteLengthsBarChart(records []classify.Record, path string) error {
	if len(records) == 0 {
		log.Printf("no classified lobes; skipping plot %s", path)
		return nil
	}
	patients := make([]string, len(records))
	l1, l2 := make(plotter.Values, len(records)), make(plotter.Values, len(records))
	for i, r := range records {
		patients[i] = r.Patient
		l1[i], l2[i] = r.Length1, r.Length2
	}
	p := plot.New()
	p.Title.Text = plotTitle
	p.Y.Label.Text = "Length"
	p.Y.Min = 0
	bars1, err := plotter.NewBarChart(l1, plotBarW)
	if err != nil {
		return fmt.Errorf("%w, %s", ErrWritingFile, err)
	}
	bars1.Color = barColor1
	bars1.LineStyle.Width = 0
	bars1.Offset = -plotBarW / 2
	bars2, err := plotter.NewBarChart(l2, plotBarW)
	if err != nil {
		return fmt.Errorf("%w, %s", ErrWritingFile, err)
	}
	bars2.Color = barColor2
	bars2.LineStyle.Width = 0
	bars2.Offset = plotBarW / 2
	labels1, err := barLabels(l1, -plotBarW/2)
	if err != nil {
		return fmt.Errorf("%w, %s", ErrWritingFile, err)
	}
	labels2, err := barLabels(l2, plotBarW/2)
	if err != nil {
		return fmt.Errorf("%w, %s", ErrWritingFile, err)
	}
	p.Add(bars1, bars2, labels1, labels2)
	p.Legend.Add("Length1", bars1)
	p.Legend.Add("Length2", bars2)
	p.Legend.Top = true
	p.NominalX(patients...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	width := max(plotMinW, vg.Length(len(records))*plotPerBarW)
	if err := p.Save(width, plotH, path); err != nil {
		return fmt.Errorf("%w, %s", ErrWritingFile, err)
	}
	return nil
}

// value labels drawn just above each bar
func barLabels(values plotter.Values, xOffset vg.Length) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(values))
	text := make([]string, len(values))
	for i, v := range values {
		xys[i].X, xys[i].Y = float64(i), v
		text[i] = formatFloat(v)
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].Font.Size = vg.Points(6)
	}
	labels.Offset = vg.Point{X: xOffset, Y: vg.Points(3)}
	return labels, nil
}

// Writes one newick file per tree (patient -> tree) into dir, named
// <patient>.nwk. Graphs that are not trees are skipped with a warning.
func WriteNewickFiles(trees map[string]*gr.LobeGraph, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w, %s", ErrWritingFile, err)
	}
	for _, p := range slices.Sorted(maps.Keys(trees)) {
		nwk, err := trees[p].Newick()
		if err != nil {
			log.Printf("WARNING: skipping newick for %s, %s", p, err)
			continue
		}
		path := filepath.Join(dir, p+".nwk")
		if _, err := os.Stat(path); err == nil {
			log.Printf("WARNING: file was overwritten: %s", path)
		}
		if err := os.WriteFile(path, []byte(nwk+"\n"), 0o644); err != nil {
			return fmt.Errorf("%w, %s", ErrWritingFile, err)
		}
	}
	return nil
}
