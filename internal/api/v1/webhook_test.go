package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brushlead/brushlead/internal/config"
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/brushlead/brushlead/internal/testutil"
	"github.com/brushlead/brushlead/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// stubGateway returns a canned event from ParseWebhookEvent; the mock in
// testutil always rejects, which covers the verification failure path.
type stubGateway struct {
	testutil.MockPaymentGateway
	event *types.GatewayEvent
}

func (g *stubGateway) ParseWebhookEvent(payload []byte, signature string) (*types.GatewayEvent, error) {
	return g.event, nil
}

type stubReconciler struct {
	err    error
	events []*types.GatewayEvent
}

func (r *stubReconciler) Reconcile(ctx context.Context, event *types.GatewayEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func newWebhookRouter(t *testing.T, h *WebhookHandler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhooks/stripe", h.HandleStripeWebhook)
	return r
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(config.GetDefaultConfig())
	require.NoError(t, err)
	return log
}

func TestHandleStripeWebhookMissingSignature(t *testing.T) {
	reconciler := &stubReconciler{}
	h := NewWebhookHandler(testutil.NewMockPaymentGateway(), reconciler, testLogger(t))
	r := newWebhookRouter(t, h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader("{}"))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, reconciler.events)
}

func TestHandleStripeWebhookInvalidSignature(t *testing.T) {
	reconciler := &stubReconciler{}
	h := NewWebhookHandler(testutil.NewMockPaymentGateway(), reconciler, testLogger(t))
	r := newWebhookRouter(t, h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader("{}"))
	req.Header.Set("Stripe-Signature", "t=1,v1=bogus")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, reconciler.events)
}

func TestHandleStripeWebhookDeliversEvent(t *testing.T) {
	event := &types.GatewayEvent{
		ID:       "evt_handler_ok",
		Type:     types.GatewayEventPaymentIntentSucceeded,
		IntentID: "pi_handler_ok",
	}
	reconciler := &stubReconciler{}
	h := NewWebhookHandler(&stubGateway{event: event}, reconciler, testLogger(t))
	r := newWebhookRouter(t, h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader("{}"))
	req.Header.Set("Stripe-Signature", "t=1,v1=valid")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, reconciler.events, 1)
	require.Equal(t, "evt_handler_ok", reconciler.events[0].ID)
	require.Contains(t, w.Body.String(), "evt_handler_ok")
}

func TestHandleStripeWebhookReconcileErrorReturnsRetryableStatus(t *testing.T) {
	event := &types.GatewayEvent{
		ID:       "evt_handler_err",
		Type:     types.GatewayEventPaymentIntentSucceeded,
		IntentID: "pi_handler_err",
	}
	reconciler := &stubReconciler{
		err: ierr.NewError("store unavailable").Mark(ierr.ErrDatabase),
	}
	h := NewWebhookHandler(&stubGateway{event: event}, reconciler, testLogger(t))
	r := newWebhookRouter(t, h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader("{}"))
	req.Header.Set("Stripe-Signature", "t=1,v1=valid")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}
