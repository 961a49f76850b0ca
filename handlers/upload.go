package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"crime-analytics-api/analysis"
	"crime-analytics-api/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UploadHandler struct {
	store      *services.DatasetStore
	classifier analysis.SeverityClassifier
}

func NewUploadHandler(store *services.DatasetStore, classifier analysis.SeverityClassifier) *UploadHandler {
	return &UploadHandler{store: store, classifier: classifier}
}

// Upload ingests a CSV file, normalizes and classifies it, and replaces the
// active dataset wholesale.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("cannot open upload: %v", err)})
		return
	}
	defer f.Close()

	records, err := analysis.LoadIncidents(f)
	if err != nil {
		var parseErr *analysis.ParseError
		if errors.As(err, &parseErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Error processing file: %s", parseErr.Reason)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Error processing file: %v", err)})
		return
	}

	h.classifier.Apply(records)
	ds := h.store.Replace(file.Filename, records)

	services.UploadsTotal.Inc()
	services.RecordsLoaded.Add(float64(len(records)))
	logrus.WithFields(logrus.Fields{
		"filename": ds.Filename,
		"version":  ds.Version,
		"records":  len(records),
	}).Info("dataset replaced")

	c.JSON(http.StatusOK, gin.H{
		"message":         fmt.Sprintf("File '%s' processed successfully.", file.Filename),
		"total_records":   len(records),
		"dataset_version": ds.Version,
		"filters": gin.H{
			"areas":      ds.Areas,
			"crimes":     ds.Crimes,
			"severities": ds.Severities,
		},
	})
}
