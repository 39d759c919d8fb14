package handlers

import (
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/infrastructure/realtime"
	"ebd_gestao/internal/usecase"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	eventBufferSize   = 16
	defaultKeepAlive  = 25 * time.Second
	sseEventChange    = "change"
	sseEventKeepAlive = "keepalive"
)

// IChangeSubscriber is the subscription side of the change hub.
type IChangeSubscriber interface {
	Subscribe(pred realtime.Predicate, handler realtime.Handler) (unsubscribe func())
}

var _ IChangeSubscriber = (*realtime.Hub)(nil)

// EventsHandler streams proposal changes as Server-Sent Events.
type EventsHandler struct {
	proposals  usecase.IProposalUseCase
	subscriber IChangeSubscriber
	keepAlive  time.Duration
	log        *zap.Logger
}

func NewEventsHandler(proposals usecase.IProposalUseCase, subscriber IChangeSubscriber, keepAlive time.Duration, log *zap.Logger) *EventsHandler {
	if keepAlive <= 0 {
		keepAlive = defaultKeepAlive
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &EventsHandler{proposals: proposals, subscriber: subscriber, keepAlive: keepAlive, log: log}
}

// StreamProposal godoc
// @Summary      Proposal change feed
// @Description  Sends the current status first, then one event per change. The stream ends when the proposal reaches a final status.
// @Tags         proposals
// @Produce      text/event-stream
// @Param        id   path  string  true  "Proposal ID"
// @Success      200  {object}  entities.ChangeEvent
// @Failure      404  {object}  pkg.HTTPError
// @Router       /proposals/{id}/events [get]
func (h *EventsHandler) StreamProposal(c *gin.Context) {
	current, err := h.proposals.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	events := make(chan entities.ChangeEvent, eventBufferSize)
	unsubscribe := h.subscriber.Subscribe(realtime.ForEntity(entities.ChangeEntityProposal, current.ID), func(ev entities.ChangeEvent) {
		select {
		case events <- ev:
		default:
			h.log.Warn("[events][handler] slow subscriber; event dropped", zap.String("proposal_id", ev.EntityID), zap.String("status", ev.Status))
		}
	})
	defer unsubscribe()

	h.log.Info("[events][handler] stream opened", zap.String("proposal_id", current.ID))
	defer h.log.Info("[events][handler] stream closed", zap.String("proposal_id", current.ID))

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	c.SSEvent(sseEventChange, entities.ChangeEvent{
		Entity:     entities.ChangeEntityProposal,
		EntityID:   current.ID,
		Status:     string(current.Status),
		PaymentURL: current.PaymentURL,
		At:         current.UpdatedAt,
	})
	if current.Status.Terminal() {
		return
	}

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()
	done := c.Request.Context().Done()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-done:
			return false
		case ev := <-events:
			c.SSEvent(sseEventChange, ev)
			return !entities.ProposalStatus(ev.Status).Terminal()
		case <-ticker.C:
			c.SSEvent(sseEventKeepAlive, gin.H{"at": time.Now().UTC()})
			return true
		}
	})
}
