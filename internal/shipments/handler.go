package shipments

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"intake-backend/internal/shared/metrics"
	"intake-backend/internal/shared/server/respond"
	"intake-backend/internal/shared/telemetry"
)

const maxWebhookBody = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the ShipStation webhook route.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/shipstation-webhook", h.webhook)
}

func (h *Handler) webhook(c *gin.Context) {
	metrics.WebhookEvents.Inc()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	var ev Event
	if err == nil {
		err = json.Unmarshal(body, &ev)
	}
	if err != nil {
		telemetry.Error("webhook.invalid_body", map[string]any{"error": err.Error()})
		c.AbortWithStatusJSON(http.StatusInternalServerError, respond.Result{Success: false})
		return
	}
	c.Set("webhookEvent", ev.Type())

	h.Svc.Handle(c.Request.Context(), ev)
	respond.OK(c, respond.Result{Success: true})
}
