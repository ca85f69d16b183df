package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationsCounterIncrements(t *testing.T) {
	Operations.Reset()
	Operations.WithLabelValues("seal", "ok").Inc()
	Operations.WithLabelValues("seal", "ok").Inc()
	assert.Equal(t, float64(2), testutil.ToFloat64(Operations.WithLabelValues("seal", "ok")))
}

func TestErrorsCounterLabelledByKind(t *testing.T) {
	Errors.Reset()
	Errors.WithLabelValues("unseal", "AuthenticationFailed").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(Errors.WithLabelValues("unseal", "AuthenticationFailed")))
}

func TestHandlerServesRegistry(t *testing.T) {
	Operations.Reset()
	Operations.WithLabelValues("traverse", "ok").Inc()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "hexvault_vault_operations_total")
}
