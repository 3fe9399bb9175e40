package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidshare_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vidshare_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidshare_uploads_total",
			Help: "Total number of accepted uploads",
		},
		[]string{"kind"},
	)

	UploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vidshare_upload_size_bytes",
			Help:    "Size of accepted uploads in bytes",
			Buckets: prometheus.ExponentialBuckets(64*1024, 2, 12), // 64KB to 128MB
		},
	)

	VideoViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vidshare_video_views_total",
			Help: "Total number of recorded video views",
		},
	)

	ModerationActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidshare_moderation_actions_total",
			Help: "Admin moderation actions by kind",
		},
		[]string{"action"},
	)

	MediaCleanupFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vidshare_media_cleanup_failures_total",
			Help: "Media files that could not be removed when their video was deleted",
		},
	)
)

func RecordHTTPRequest(method, endpoint, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(seconds)
}

func RecordUpload(kind string, size int64) {
	UploadsTotal.WithLabelValues(kind).Inc()
	UploadSizeBytes.Observe(float64(size))
}

func RecordView() {
	VideoViewsTotal.Inc()
}

func RecordModeration(action string) {
	ModerationActionsTotal.WithLabelValues(action).Inc()
}

func RecordMediaCleanupFailure() {
	MediaCleanupFailuresTotal.Inc()
}
