package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// Counter is a monotonically increasing metric.
type Counter struct {
	name string
	help string
	v    atomic.Uint64
}

// Inc adds one to the counter.
func (c *Counter) Inc() {
	c.v.Add(1)
}

// Value returns the current count.
func (c *Counter) Value() uint64 {
	return c.v.Load()
}

var (
	counters []*Counter

	SubmissionsReceived = newCounter("submissions_received_total", "Intake submissions received")
	SubmissionsFailed   = newCounter("submissions_failed_total", "Intake submissions that returned 500")
	PatientEmailSent    = newCounter("patient_email_sent_total", "Treatment letters delivered to the SMTP relay")
	PatientEmailFailed  = newCounter("patient_email_failed_total", "Treatment letters that failed to send")
	PatientEmailSkipped = newCounter("patient_email_skipped_total", "Submissions without a patient email")
	StaffEmailSent      = newCounter("staff_email_sent_total", "Staff notifications delivered to the SMTP relay")
	StaffEmailFailed    = newCounter("staff_email_failed_total", "Staff notifications that failed to send")
	InstructionsMissing = newCounter("instructions_missing_total", "Injectable letters sent without the instruction PDF")
	OrdersForwarded     = newCounter("orders_forwarded_total", "Orders accepted by the fulfillment API")
	OrdersFailed        = newCounter("orders_failed_total", "Orders rejected by or unreachable at the fulfillment API")
	OrdersSkipped       = newCounter("orders_skipped_total", "Orders not sent because credentials are missing")
	WebhookEvents       = newCounter("webhook_events_total", "Fulfillment webhook events received")
	TrackingEmailSent   = newCounter("tracking_email_sent_total", "Shipment tracking emails sent")
	TrackingEmailFailed = newCounter("tracking_email_failed_total", "Shipment tracking emails that failed to send")
	ArtifactsSwept      = newCounter("artifacts_swept_total", "Orphaned summary PDFs removed by the sweeper")
	RateLimited         = newCounter("rate_limited_total", "Requests rejected by the rate limiter")
	PanicsRecovered     = newCounter("panics_recovered_total", "Handler panics turned into 500 responses")

	submissionDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

func newCounter(name, help string) *Counter {
	c := &Counter{name: name, help: help}
	counters = append(counters, c)
	return c
}

// ObserveSubmissionDurationMs records an end-to-end submission duration in milliseconds.
func ObserveSubmissionDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	submissionDuration.Observe(value)
}

// ObserveSubmissionSince records the time elapsed since start.
func ObserveSubmissionSince(start time.Time) {
	ObserveSubmissionDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	for _, c := range counters {
		writeCounter(&buf, c.name, c.help, c.Value())
	}
	writeHistogram(&buf, "submission_duration_ms", "Submission processing duration in milliseconds", submissionDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe counts value in the first bucket whose bound is >= value.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
