package analysis

import (
	"math/rand"

	"crime-analytics-api/models"

	"gonum.org/v1/gonum/floats"
)

// HotspotCenter is a cluster centroid plus its member count.
type HotspotCenter struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Count int     `json:"count"`
}

const (
	kmeansSeed     = 1
	kmeansMaxIters = 100
)

// DetectHotspots partitions incident coordinates into at most k clusters
// with seeded k-means (k-means++ initialization, Lloyd iterations) and
// returns the centers alongside the raw points for heat-map rendering.
// k is clamped to the number of distinct coordinates; clusters that end up
// empty are omitted. An empty input short-circuits without clustering.
func DetectHotspots(records []models.Incident, k int) ([]HotspotCenter, [][2]float64) {
	points := make([][2]float64, 0, len(records))
	for _, rec := range records {
		points = append(points, [2]float64{rec.Lat, rec.Lon})
	}
	if len(points) == 0 || k < 1 {
		return []HotspotCenter{}, points
	}

	distinct := make(map[[2]float64]struct{}, len(points))
	for _, p := range points {
		distinct[p] = struct{}{}
	}
	if k > len(distinct) {
		k = len(distinct)
	}

	rng := rand.New(rand.NewSource(kmeansSeed))
	centroids := seedCentroids(points, k, rng)

	assignments := make([]int, len(points))
	for iter := 0; iter < kmeansMaxIters; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCentroid(p, centroids)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([][2]float64, k)
		counts := make([]int, k)
		for i, p := range points {
			c := assignments[i]
			sums[c][0] += p[0]
			sums[c][1] += p[1]
			counts[c]++
		}
		for c := range centroids {
			if counts[c] == 0 {
				continue
			}
			centroids[c][0] = sums[c][0] / float64(counts[c])
			centroids[c][1] = sums[c][1] / float64(counts[c])
		}
	}

	counts := make([]int, k)
	for _, c := range assignments {
		counts[c]++
	}

	centers := make([]HotspotCenter, 0, k)
	for c, centroid := range centroids {
		if counts[c] == 0 {
			continue
		}
		centers = append(centers, HotspotCenter{Lat: centroid[0], Lon: centroid[1], Count: counts[c]})
	}
	return centers, points
}

// seedCentroids implements k-means++: each subsequent centroid is drawn with
// probability proportional to its squared distance from the nearest one
// chosen so far.
func seedCentroids(points [][2]float64, k int, rng *rand.Rand) [][2]float64 {
	centroids := make([][2]float64, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	dists := make([]float64, len(points))
	for len(centroids) < k {
		for i, p := range points {
			dists[i] = sqDistance(p, centroids[nearestCentroid(p, centroids)])
		}
		total := floats.Sum(dists)
		if total == 0 {
			// Remaining points coincide with existing centroids.
			centroids = append(centroids, points[rng.Intn(len(points))])
			continue
		}
		target := rng.Float64() * total
		cum := 0.0
		chosen := len(points) - 1
		for i, d := range dists {
			cum += d
			if cum >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}
	return centroids
}

func nearestCentroid(p [2]float64, centroids [][2]float64) int {
	best := 0
	bestDist := sqDistance(p, centroids[0])
	for c := 1; c < len(centroids); c++ {
		if d := sqDistance(p, centroids[c]); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func sqDistance(a, b [2]float64) float64 {
	d := floats.Distance(a[:], b[:], 2)
	return d * d
}
