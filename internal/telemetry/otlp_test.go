package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupOtelDisabled(t *testing.T) {
	o, err := SetupOtel(context.Background(), "iidxbot-test", OtlpOptions{})
	require.NoError(t, err)
	require.Nil(t, o.TracerProvider)
	require.Nil(t, o.MeterProvider)
	require.NoError(t, o.Shutdown(context.Background()))
}

func TestSetupOtelHttpTraces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	o, err := SetupOtel(context.Background(), "iidxbot-test", OtlpOptions{
		Traces: OtlpEndpoint{HttpEndpoint: server.URL + "/v1/traces"},
	})
	require.NoError(t, err)
	require.NotNil(t, o.TracerProvider)
	require.Nil(t, o.MeterProvider)
	require.NoError(t, o.Shutdown(context.Background()))
}

func TestScopedAPI(t *testing.T) {
	rec := &Recorder{}
	scoped := NewScopedAPI("bot", NewScopedAPI("iidxme", rec))

	scoped.ReportBroken("client.get", "url")
	scoped.ReportCount("songs", 3)

	broken := rec.Reports("broken")
	require.Len(t, broken, 1)
	require.Equal(t, "iidxme: bot: client.get", broken[0].ID)
	require.Equal(t, []any{"url"}, broken[0].Params)
	require.Equal(t, []any{int64(3)}, rec.Reports("count")[0].Params)
}
