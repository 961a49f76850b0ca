package analysis

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"crime-analytics-api/models"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData signals that the filtered dataset is too small to fit
// a meaningful model.
var ErrInsufficientData = errors.New("insufficient data to train model")

// FeatureImportance ranks a feature by the magnitude of its learned weight
// over standardized inputs.
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// ModelMetrics reports the quality of one ephemeral training run.
type ModelMetrics struct {
	Accuracy         float64             `json:"accuracy"`
	TrainSize        int                 `json:"train_size"`
	EvalSize         int                 `json:"eval_size"`
	HighSeverityRate float64             `json:"high_severity_rate"`
	TopFeatures      []FeatureImportance `json:"top_features"`
}

var featureNames = []string{"hour", "month", "day_of_week", "area", "lat", "lon"}

var weekdayIndex = map[string]int{
	"Sunday": 0, "Monday": 1, "Tuesday": 2, "Wednesday": 3,
	"Thursday": 4, "Friday": 5, "Saturday": 6,
}

const (
	trainSplitSeed = 7
	trainEpochs    = 300
	learningRate   = 0.1
	evalFraction   = 0.2
)

// TrainRiskModel engineers temporal/spatial features from the filtered
// dataset, labels records as high-severity vs. not, and fits a logistic
// regression by batch gradient descent. The fitted model is discarded; only
// its metrics and feature ranking are returned. Datasets with at most
// minRecords records are refused with ErrInsufficientData.
func TrainRiskModel(records []models.Incident, minRecords int) (*ModelMetrics, error) {
	if len(records) <= minRecords {
		return nil, ErrInsufficientData
	}

	areaIdx := areaIndex(records)

	n := len(records)
	d := len(featureNames)
	features := make([][]float64, n)
	labels := make([]float64, n)
	positives := 0
	for i, rec := range records {
		features[i] = []float64{
			float64(rec.Hour),
			float64(rec.Month),
			float64(weekdayIndex[rec.DayOfWeek]),
			float64(areaIdx[rec.Area]),
			rec.Lat,
			rec.Lon,
		}
		if rec.Severity == models.SeverityHigh {
			labels[i] = 1
			positives++
		}
	}

	standardize(features, d)

	rng := rand.New(rand.NewSource(trainSplitSeed))
	order := rng.Perm(n)
	evalSize := int(float64(n) * evalFraction)
	if evalSize < 1 {
		evalSize = 1
	}
	evalIdx := order[:evalSize]
	trainIdx := order[evalSize:]

	weights := fitLogistic(features, labels, trainIdx, d)

	correct := 0
	for _, i := range evalIdx {
		pred := 0.0
		if sigmoid(score(weights, features[i])) >= 0.5 {
			pred = 1
		}
		if pred == labels[i] {
			correct++
		}
	}

	importances := make([]FeatureImportance, d)
	for j, name := range featureNames {
		importances[j] = FeatureImportance{Feature: name, Importance: math.Abs(weights[j])}
	}
	sort.SliceStable(importances, func(i, j int) bool {
		return importances[i].Importance > importances[j].Importance
	})

	return &ModelMetrics{
		Accuracy:         float64(correct) / float64(len(evalIdx)),
		TrainSize:        len(trainIdx),
		EvalSize:         len(evalIdx),
		HighSeverityRate: float64(positives) / float64(n),
		TopFeatures:      importances,
	}, nil
}

// areaIndex encodes area names as stable ordinals (sorted order).
func areaIndex(records []models.Incident) map[string]int {
	names := make([]string, 0)
	seen := make(map[string]struct{})
	for _, rec := range records {
		if _, ok := seen[rec.Area]; !ok {
			seen[rec.Area] = struct{}{}
			names = append(names, rec.Area)
		}
	}
	sort.Strings(names)
	idx := make(map[string]int, len(names))
	for i, name := range names {
		idx[name] = i
	}
	return idx
}

// standardize rescales each feature column to zero mean and unit variance so
// weight magnitudes are comparable across features.
func standardize(features [][]float64, d int) {
	col := make([]float64, len(features))
	for j := 0; j < d; j++ {
		for i := range features {
			col[i] = features[i][j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		for i := range features {
			features[i][j] = (features[i][j] - mean) / std
		}
	}
}

// fitLogistic runs batch gradient descent and returns d weights plus a bias
// term at index d.
func fitLogistic(features [][]float64, labels []float64, trainIdx []int, d int) []float64 {
	weights := make([]float64, d+1)
	grad := make([]float64, d+1)
	m := float64(len(trainIdx))

	for epoch := 0; epoch < trainEpochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		for _, i := range trainIdx {
			diff := sigmoid(score(weights, features[i])) - labels[i]
			for j := 0; j < d; j++ {
				grad[j] += diff * features[i][j]
			}
			grad[d] += diff
		}
		floats.AddScaled(weights, -learningRate/m, grad)
	}
	return weights
}

func score(weights []float64, x []float64) float64 {
	return floats.Dot(weights[:len(x)], x) + weights[len(x)]
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
