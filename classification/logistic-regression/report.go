package main

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// curvePoints is the number of marks sampled for probability curves.
const curvePoints = 60

// Describe returns gota summary statistics of the dataset.
func Describe(ds *Dataset) dataframe.DataFrame {
	df := dataframe.New(
		series.New(mat.Col(nil, 0, ds.Records), series.Float, ds.FeatureNames[0]),
		series.New(ds.Targets, series.String, "label"),
	)
	return df.Describe()
}

// ProbabilityCurves samples P(class | marks) on an even grid spanning the
// marks of ds. curves[j] follows model.Classes()[j].
func ProbabilityCurves(model *Model, ds *Dataset, points int) (marks []float64, curves [][]float64, err error) {
	if points < 2 {
		return nil, nil, fmt.Errorf("need at least 2 points, got %d", points)
	}
	col := mat.Col(nil, 0, ds.Records)
	marks = make([]float64, points)
	floats.Span(marks, floats.Min(col), floats.Max(col))

	proba, err := model.PredictProba(mat.NewDense(points, 1, marks))
	if err != nil {
		return nil, nil, err
	}
	_, k := proba.Dims()
	curves = make([][]float64, k)
	for j := range curves {
		curves[j] = mat.Col(nil, j, proba)
	}
	return marks, curves, nil
}

// AsciiCurves renders one terminal chart per class.
func AsciiCurves(classes []string, marks []float64, curves [][]float64) string {
	var out string
	for j, c := range classes {
		caption := fmt.Sprintf("P(%s | %s) for %s in [%g, %g]", c, featureName, featureName, marks[0], marks[len(marks)-1])
		out += asciigraph.Plot(curves[j], asciigraph.Height(8), asciigraph.Width(curvePoints), asciigraph.Caption(caption))
		out += "\n\n"
	}
	return out
}

// SavePlot writes the probability curves to a PNG file.
func SavePlot(path string, classes []string, marks []float64, curves [][]float64) error {
	// Create the plot.
	p := plot.New()
	p.Title.Text = "Class probabilities"
	p.X.Label.Text = featureName
	p.Y.Label.Text = "probability"
	p.Add(plotter.NewGrid())

	lines := make([]interface{}, 0, 2*len(classes))
	for j, c := range classes {
		pts := make(plotter.XYs, len(marks))
		for i, m := range marks {
			pts[i].X = m
			pts[i].Y = curves[j][i]
		}
		lines = append(lines, c, pts)
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return err
	}
	// Save the plot to a PNG file.
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
