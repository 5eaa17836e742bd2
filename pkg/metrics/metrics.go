package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gurujee"

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests by route, method and status."},
		[]string{"route", "method", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency by route.", Buckets: prometheus.DefBuckets},
		[]string{"route", "method"},
	)
	InquiriesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "inquiries_created_total", Help: "Customer inquiries accepted."},
	)
	ReviewsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "reviews_created_total", Help: "Reviews accepted."},
	)
	UploadBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "upload_bytes_total", Help: "Bytes of images stored by folder."},
		[]string{"folder"},
	)
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "events_published_total", Help: "Domain events published by subject and result."},
		[]string{"subject", "result"},
	)
	MailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "mails_sent_total", Help: "Notification mails by template and result."},
		[]string{"template", "result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(
		RateLimitAllowed,
		RateLimitRejected,
		HTTPRequests,
		HTTPDuration,
		InquiriesCreated,
		ReviewsCreated,
		UploadBytes,
		EventsPublished,
		MailsSent,
	)
}
