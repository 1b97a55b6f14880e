package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"housing-report/models"
	"housing-report/services"
	"housing-report/storage"
	"housing-report/utils"
)

const maxUploadBytes = 64 << 20

var (
	reportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housing_report_reports_generated_total",
		Help: "Total number of reports assembled.",
	})
	reportsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "housing_report_reports_failed_total",
		Help: "Total number of report requests that failed, by reason.",
	}, []string{"reason"})
	placeholdersRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "housing_report_placeholders_total",
		Help: "Sections rendered as placeholders because an input was missing.",
	}, []string{"section"})
	reportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "housing_report_assembly_duration_seconds",
		Help:    "Duration of a report request.",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
	})
)

// ImageSlot binds a form field to a report section.
type ImageSlot struct {
	Field   string
	Section string
	Caption string
	Path    string
}

// ReportHandler serves the assembled report as JSON.
type ReportHandler struct {
	pipeline *services.Pipeline
	dataset  *models.Dataset
	slots    []ImageSlot
	logger   *utils.Logger
}

// NewReportHandler creates a handler around a dataset loaded once at
// startup. dataset may be nil until one is uploaded with a request.
func NewReportHandler(pipeline *services.Pipeline, dataset *models.Dataset, slots []ImageSlot, logger *utils.Logger) *ReportHandler {
	return &ReportHandler{pipeline: pipeline, dataset: dataset, slots: slots, logger: logger}
}

// RegisterRoutes mounts the report, health and metrics endpoints.
func RegisterRoutes(router *gin.Engine, h *ReportHandler) {
	router.GET("/health", h.Health)
	router.GET("/report", h.GetReport)
	router.POST("/report", h.PostReport)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (h *ReportHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "UP",
		"dataset_loaded": h.dataset != nil,
	})
}

// GetReport assembles a report from the configured inputs.
func (h *ReportHandler) GetReport(c *gin.Context) {
	h.respond(c, h.dataset, h.configuredImages())
}

// PostReport accepts a multipart form whose "dataset" file and image
// fields replace the configured inputs for this request only.
func (h *ReportHandler) PostReport(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		reportsFailed.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected a multipart form"})
		return
	}

	dataset := h.dataset
	if fh, err := c.FormFile("dataset"); err == nil {
		ds, err := readUploadedDataset(fh)
		if err != nil {
			reportsFailed.WithLabelValues("bad_dataset").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		dataset = ds
	}

	images := h.configuredImages()
	for i, slot := range h.slots {
		fh, err := c.FormFile(slot.Field)
		if err != nil {
			continue
		}
		data, err := readUpload(fh)
		if err != nil {
			reportsFailed.WithLabelValues("bad_image").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		images[i].Ref = services.ImageRef{Data: data}
	}

	h.respond(c, dataset, images)
}

func (h *ReportHandler) respond(c *gin.Context, dataset *models.Dataset, images []services.ImageRequest) {
	start := time.Now()
	defer func() { reportDuration.Observe(time.Since(start).Seconds()) }()

	report, err := h.pipeline.Run(c.Request.Context(), dataset, images)
	if err != nil {
		status, reason := classify(err)
		reportsFailed.WithLabelValues(reason).Inc()
		h.logger.Error("[http] report failed: %v", err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	reportsGenerated.Inc()
	for _, p := range report.Placeholders {
		placeholdersRendered.WithLabelValues(p.Section).Inc()
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) configuredImages() []services.ImageRequest {
	images := make([]services.ImageRequest, len(h.slots))
	for i, slot := range h.slots {
		images[i] = services.ImageRequest{
			Section: slot.Section,
			Caption: slot.Caption,
			Ref:     services.ImageRef{Path: slot.Path},
		}
	}
	return images
}

// classify maps data errors to 422 and everything else to 500.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrEmptyDataset):
		return http.StatusUnprocessableEntity, "empty_dataset"
	case errors.Is(err, services.ErrMissingColumn):
		return http.StatusUnprocessableEntity, "missing_column"
	case errors.Is(err, services.ErrDuplicateModelName):
		return http.StatusUnprocessableEntity, "duplicate_model"
	case errors.Is(err, services.ErrNoMetrics), errors.Is(err, services.ErrInvalidMetric):
		return http.StatusUnprocessableEntity, "invalid_metrics"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func readUploadedDataset(fh *multipart.FileHeader) (*models.Dataset, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return storage.ReadDataset(f)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
