// Package gateway is the HTTP boundary the USSD gateway calls: one
// endpoint per interaction, one for the end-of-session notification, plus
// health and metrics.
package gateway

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/avvvet/ussdflow/internal/events"
	"github.com/avvvet/ussdflow/internal/observability"
	"github.com/avvvet/ussdflow/internal/ussd"
)

// GenericFailure answers interactions the application could not serve.
// Sent as END with HTTP 200: the gateway must always get a directive, never
// an HTTP error, once a payload binds.
const GenericFailure = "Service temporarily unavailable. Please try again later."

// Server answers the gateway's HTTP calls.
type Server struct {
	app         ussd.Handler
	publisher   events.Publisher
	serviceName string
	started     time.Time
}

// NewServer binds the application and the event publisher. A nil publisher
// disables events.
func NewServer(app ussd.Handler, publisher events.Publisher, serviceName string) *Server {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Server{
		app:         app,
		publisher:   publisher,
		serviceName: serviceName,
		started:     time.Now(),
	}
}

// Router builds the gin engine with middleware and routes registered.
func (s *Server) Router(logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.RequestLogger(logger))
	router.Use(observability.RequestMetricsMiddleware(s.serviceName))

	router.POST("/ussd", s.handleInteraction)
	router.POST("/ussd/notify", s.handleNotification)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.started).String(),
			"service": s.serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// handleInteraction answers one gateway interaction with a text/plain
// CON/END body.
func (s *Server) handleInteraction(c *gin.Context) {
	var req ussd.Request
	if err := c.ShouldBind(&req); err != nil {
		// A payload missing required fields never reaches the application.
		c.String(http.StatusBadRequest, "invalid request: %v", err)
		return
	}
	c.Set(observability.SessionIDKey, req.SessionID)

	start := time.Now()
	res, err := s.app.Handle(c.Request.Context(), &req)
	if err != nil {
		log.Error().
			Err(err).
			Str("session_id", req.SessionID).
			Str("phone_number", req.PhoneNumber).
			Str("text", req.Text).
			Msg("interaction failed")
		res = ussd.End(GenericFailure)
	}

	directive := "con"
	if res.IsEnding() {
		directive = "end"
	}
	observability.RecordInteraction(s.serviceName, directive, time.Since(start))

	log.Info().
		Str("session_id", req.SessionID).
		Str("text", req.Text).
		Str("directive", directive).
		Msg("interaction answered")

	c.String(http.StatusOK, res.Render())
}

// handleNotification logs and republishes the gateway's end-of-session
// callback. Nothing here feeds back into session state.
func (s *Server) handleNotification(c *gin.Context) {
	var n ussd.Notification
	if err := c.ShouldBind(&n); err != nil {
		c.String(http.StatusBadRequest, "invalid notification: %v", err)
		return
	}
	c.Set(observability.SessionIDKey, n.SessionID)

	event := log.Info()
	if n.Status.Failed() {
		event = log.Warn().Str("error_message", n.ErrorMessage)
	}
	event.
		Str("session_id", n.SessionID).
		Str("phone_number", n.PhoneNumber).
		Str("status", string(n.Status)).
		Str("input", n.Input).
		Str("duration_ms", n.DurationInMillis).
		Int("hops", n.HopsCount).
		Msg("session finished")

	observability.RecordSessionCompletion(s.serviceName, string(n.Status))

	if err := s.publisher.PublishSessionEvent(c.Request.Context(), &events.SessionEvent{
		SessionID:    n.SessionID,
		PhoneNumber:  n.PhoneNumber,
		ServiceCode:  n.ServiceCode,
		NetworkCode:  n.NetworkCode,
		Status:       string(n.Status),
		Input:        n.Input,
		LastResponse: n.LastAppResponse,
		OccurredAt:   time.Now(),
	}); err != nil {
		// The callback is fire-and-forget for the gateway; a publish
		// failure is ours to log, not theirs to retry.
		log.Warn().Err(err).Str("session_id", n.SessionID).Msg("failed to publish session event")
	}

	c.String(http.StatusOK, "ok")
}
