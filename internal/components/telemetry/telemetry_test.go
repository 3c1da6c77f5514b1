package telemetry

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	recorder := &Recorder{}
	scoped := NewScopedAPI("koreafood_scraper", NewScopedAPI("loader", recorder))

	scoped.ReportBroken("client.detail", errors.New("boom"), "X123")
	scoped.ReportCount("client.pages", 3)

	require.Equal(t, []Report{
		{Level: LevelBroken, ID: "koreafood_scraper: loader: client.detail", Params: []any{errors.New("boom"), "X123"}},
		{Level: LevelCount, ID: "koreafood_scraper: loader: client.pages", Params: []any{int64(3)}},
	}, recorder.Reports())
	require.Len(t, recorder.Find(LevelBroken, "client.detail"), 1)
	require.Empty(t, recorder.Find(LevelWarning, "client.detail"))
}

func TestInstrumentResty(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodGet, "http://koreanfood.test/ok", httpmock.NewStringResponder(http.StatusOK, "ok"))
	transport.RegisterResponder(http.MethodGet, "http://koreanfood.test/down", httpmock.NewErrorResponder(errors.New("connection refused")))

	recorder := &Recorder{}
	client := resty.New()
	client.SetTransport(transport)
	InstrumentResty(client, recorder)

	_, err := client.R().Get("http://koreanfood.test/ok")
	require.NoError(t, err)
	require.Len(t, recorder.Find(LevelDebug, report_resty_request), 1)
	require.Len(t, recorder.Find(LevelDebug, report_resty_response), 1)
	require.Empty(t, recorder.Find(LevelBroken, ""))

	_, err = client.R().Get("http://koreanfood.test/down")
	require.Error(t, err)
	broken := recorder.Find(LevelBroken, report_resty_response)
	require.Len(t, broken, 1)
	require.Equal(t, http.MethodGet, broken[0].Params[1])
}
