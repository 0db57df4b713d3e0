package submissions

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"intake-backend/internal/intake"
	"intake-backend/internal/shared/metrics"
	"intake-backend/internal/shared/server/middleware"
	"intake-backend/internal/shared/server/respond"
	"intake-backend/internal/shared/telemetry"
)

// SuccessMessage is returned for every submission that reaches the end of the pipeline.
const SuccessMessage = "Form submitted successfully. You will receive a treatment plan via email shortly."

const defaultMaxSubmissionSize = 20 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc     *Service
	MaxSize int64
}

// NewHandler constructs a Handler. maxSize caps the request body.
func NewHandler(svc *Service, maxSize int64) *Handler {
	if maxSize <= 0 {
		maxSize = defaultMaxSubmissionSize
	}
	return &Handler{Svc: svc, MaxSize: maxSize}
}

// RegisterRoutes attaches the intake form routes.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/submit-form", h.submit)
	r.POST("/api/submit-form", h.submit)
}

func (h *Handler) submit(c *gin.Context) {
	start := time.Now()
	metrics.SubmissionsReceived.Inc()
	defer metrics.ObserveSubmissionSince(start)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxSize)
	rec, err := intake.FromRequest(c.Request, h.MaxSize)
	if err != nil {
		metrics.SubmissionsFailed.Inc()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "too_large", "Submission is too large. Please upload a smaller ID file.", nil)
			return
		}
		telemetry.Error("submission.read_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal", middleware.GenericFailureMessage, nil)
		return
	}
	c.Set("medication", rec.MedicationKey())

	sub, err := h.Svc.Process(c.Request.Context(), middleware.RequestIDFromContext(c), rec)
	c.Set("submissionId", sub.ID)
	if err != nil {
		metrics.SubmissionsFailed.Inc()
		telemetry.Error("submission.failed", map[string]any{"submission_id": sub.ID, "error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal", middleware.GenericFailureMessage, nil)
		return
	}
	c.Set("orderNumber", sub.OrderNumber)

	respond.Success(c, SuccessMessage)
}
