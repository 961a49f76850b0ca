package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"time"

	"crime-analytics-api/analysis"
	"crime-analytics-api/config"
	"crime-analytics-api/models"
	"crime-analytics-api/services"

	"github.com/gin-gonic/gin"
)

const cacheTTL = 60 * time.Second

const noDataMessage = "No data uploaded yet. Please upload a CSV file first."

type AnalysisHandler struct {
	store *services.DatasetStore
	cache *services.CacheService
	cfg   config.AnalysisConfig
}

func NewAnalysisHandler(store *services.DatasetStore, cache *services.CacheService, cfg config.AnalysisConfig) *AnalysisHandler {
	return &AnalysisHandler{store: store, cache: cache, cfg: cfg}
}

type FilteredDataResponse struct {
	RecordCount int               `json:"record_count"`
	Data        []models.Incident `json:"data"`
}

type HotspotsResponse struct {
	Centers  []analysis.HotspotCenter `json:"centers"`
	HeatData [][2]float64             `json:"heat_data"`
}

type TimeSeriesResponse struct {
	Counts   []analysis.TimeSeriesPoint `json:"counts"`
	Forecast []analysis.TimeSeriesPoint `json:"forecast"`
}

func (h *AnalysisHandler) FilteredData(c *gin.Context) {
	payload, ds, ok := h.bindFiltered(c, "filtered-data")
	if !ok {
		return
	}

	key := cacheKey("filtered-data", ds.Version, payload)
	var cached FilteredDataResponse
	if err := h.cache.Get(c.Request.Context(), key, &cached); err == nil && cached.Data != nil {
		h.observe(c, "filtered-data", http.StatusOK, cached)
		return
	}

	start := time.Now()
	filtered := analysis.ApplyFilter(ds.Records, payload)
	sample := filtered
	if len(sample) > h.cfg.SampleLimit {
		sample = sample[:h.cfg.SampleLimit]
	}
	resp := FilteredDataResponse{RecordCount: len(filtered), Data: sample}
	services.AnalysisDuration.WithLabelValues("filtered-data").Observe(time.Since(start).Seconds())

	go h.cache.Set(context.Background(), key, resp, cacheTTL)
	h.observe(c, "filtered-data", http.StatusOK, resp)
}

func (h *AnalysisHandler) Hotspots(c *gin.Context) {
	var payload models.HotspotPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		services.AnalysisRequests.WithLabelValues("hotspots", "error").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ds, err := h.store.Snapshot()
	if err != nil {
		services.AnalysisRequests.WithLabelValues("hotspots", "no_data").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": noDataMessage})
		return
	}

	key := cacheKey("hotspots", ds.Version, payload)
	var cached HotspotsResponse
	if err := h.cache.Get(c.Request.Context(), key, &cached); err == nil && cached.Centers != nil {
		h.observe(c, "hotspots", http.StatusOK, cached)
		return
	}

	start := time.Now()
	filtered := analysis.ApplyFilter(ds.Records, payload.FilterPayload)
	centers, heatData := analysis.DetectHotspots(filtered, payload.NClusters)
	resp := HotspotsResponse{Centers: centers, HeatData: heatData}
	services.AnalysisDuration.WithLabelValues("hotspots").Observe(time.Since(start).Seconds())

	go h.cache.Set(context.Background(), key, resp, cacheTTL)
	h.observe(c, "hotspots", http.StatusOK, resp)
}

func (h *AnalysisHandler) TimeSeries(c *gin.Context) {
	payload, ds, ok := h.bindFiltered(c, "time-series")
	if !ok {
		return
	}

	key := cacheKey("time-series", ds.Version, payload)
	var cached TimeSeriesResponse
	if err := h.cache.Get(c.Request.Context(), key, &cached); err == nil && cached.Counts != nil {
		h.observe(c, "time-series", http.StatusOK, cached)
		return
	}

	start := time.Now()
	filtered := analysis.ApplyFilter(ds.Records, payload)
	counts := analysis.DailyCounts(filtered)
	forecast := analysis.Forecast(counts, h.cfg.ForecastHorizonDays, h.cfg.MinForecastPoints)
	resp := TimeSeriesResponse{Counts: counts, Forecast: forecast}
	services.AnalysisDuration.WithLabelValues("time-series").Observe(time.Since(start).Seconds())

	go h.cache.Set(context.Background(), key, resp, cacheTTL)
	h.observe(c, "time-series", http.StatusOK, resp)
}

func (h *AnalysisHandler) SeverityBreakdown(c *gin.Context) {
	payload, ds, ok := h.bindFiltered(c, "severity-breakdown")
	if !ok {
		return
	}

	key := cacheKey("severity-breakdown", ds.Version, payload)
	var cached analysis.BreakdownResult
	if err := h.cache.Get(c.Request.Context(), key, &cached); err == nil && cached.Bar != nil {
		h.observe(c, "severity-breakdown", http.StatusOK, cached)
		return
	}

	start := time.Now()
	filtered := analysis.ApplyFilter(ds.Records, payload)
	resp := analysis.SeverityBreakdown(filtered)
	services.AnalysisDuration.WithLabelValues("severity-breakdown").Observe(time.Since(start).Seconds())

	go h.cache.Set(context.Background(), key, resp, cacheTTL)
	h.observe(c, "severity-breakdown", http.StatusOK, resp)
}

func (h *AnalysisHandler) TrainModel(c *gin.Context) {
	payload, ds, ok := h.bindFiltered(c, "train-model")
	if !ok {
		return
	}

	start := time.Now()
	filtered := analysis.ApplyFilter(ds.Records, payload)
	metrics, err := analysis.TrainRiskModel(filtered, h.cfg.MinTrainingRecords)
	services.AnalysisDuration.WithLabelValues("train-model").Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, analysis.ErrInsufficientData) {
			services.AnalysisRequests.WithLabelValues("train-model", "insufficient_data").Inc()
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Not enough data to train the model (requires > %d records).", h.cfg.MinTrainingRecords),
			})
			return
		}
		services.AnalysisRequests.WithLabelValues("train-model", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "model training failed"})
		return
	}

	h.observe(c, "train-model", http.StatusOK, metrics)
}

// bindFiltered handles the shared preamble of every filter-driven endpoint:
// payload binding and the uploaded-dataset precondition.
func (h *AnalysisHandler) bindFiltered(c *gin.Context, endpoint string) (models.FilterPayload, *services.Dataset, bool) {
	var payload models.FilterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		services.AnalysisRequests.WithLabelValues(endpoint, "error").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return payload, nil, false
	}

	ds, err := h.store.Snapshot()
	if err != nil {
		services.AnalysisRequests.WithLabelValues(endpoint, "no_data").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": noDataMessage})
		return payload, nil, false
	}

	return payload, ds, true
}

func (h *AnalysisHandler) observe(c *gin.Context, endpoint string, status int, body interface{}) {
	services.AnalysisRequests.WithLabelValues(endpoint, "ok").Inc()
	c.JSON(status, body)
}

func cacheKey(endpoint, version string, payload interface{}) string {
	data, _ := json.Marshal(payload)
	hasher := fnv.New64a()
	hasher.Write(data)
	return fmt.Sprintf("%s:%s:%x", endpoint, version, hasher.Sum64())
}
