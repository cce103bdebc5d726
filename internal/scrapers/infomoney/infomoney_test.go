package infomoney

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bolsa-bot/internal/components/telemetry"
	"bolsa-bot/internal/failure"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const quotePage = `<!DOCTYPE html>
<html lang="pt-BR">
<head><title>Ibovespa hoje | InfoMoney</title></head>
<body>
	<div class="quotes">
		<div class="line-info">
			<div class="value"><p>128.456</p></div>
			<div class="percentage"><p>1,87%</p></div>
		</div>
		<table>
			<tr><td>Variação (Dia)</td><td class="positive">
				+1,23%
			</td></tr>
			<tr><td>Variação (Semana)</td><td>-2,00%</td></tr>
		</table>
	</div>
</body>
</html>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDailyChange(t *testing.T) {
	srv := serve(t, http.StatusOK, quotePage)
	client := NewClient(srv.URL, &telemetry.Recorder{})

	quote, err := client.DailyChange(context.Background())
	require.NoError(t, err)
	require.Equal(t, "+1,23%", quote.Change)
}

func TestDailyChangeLabelMissing(t *testing.T) {
	srv := serve(t, http.StatusOK, `<html><body><p>Variação (Semana)</p><p>+1,00%</p></body></html>`)
	rec := &telemetry.Recorder{}
	client := NewClient(srv.URL, rec)

	_, err := client.DailyChange(context.Background())

	var formatErr *failure.UpstreamFormatError
	require.True(t, errors.As(err, &formatErr))
	require.Equal(t, Source, formatErr.Source)
	require.Len(t, rec.Reports("broken"), 1)
	require.Equal(t, "infomoney: client.daily-change", rec.Reports("broken")[0].ID)
}

func TestDailyChangeNotANumber(t *testing.T) {
	srv := serve(t, http.StatusOK, `<p>Variação (Dia)</p><p>n/d%</p>`)
	client := NewClient(srv.URL, &telemetry.Recorder{})

	_, err := client.DailyChange(context.Background())

	var formatErr *failure.UpstreamFormatError
	require.True(t, errors.As(err, &formatErr))
}

func TestDailyChangeInvalidEncoding(t *testing.T) {
	srv := serve(t, http.StatusOK, "<p>Varia\xe7\xe3o (Dia)</p><p>+1,00%</p>")
	client := NewClient(srv.URL, &telemetry.Recorder{})

	_, err := client.DailyChange(context.Background())

	var parseErr *failure.ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Contains(t, parseErr.Error(), "infomoney")
}

func TestDailyChangeErrorStatus(t *testing.T) {
	srv := serve(t, http.StatusServiceUnavailable, quotePage)
	client := NewClient(srv.URL, &telemetry.Recorder{})

	_, err := client.DailyChange(context.Background())

	var formatErr *failure.UpstreamFormatError
	require.True(t, errors.As(err, &formatErr))
	require.Contains(t, formatErr.Reason, "503")
}

func TestDailyChangeTransportFailure(t *testing.T) {
	srv := serve(t, http.StatusOK, quotePage)
	url := srv.URL
	srv.Close()

	client := NewClient(url, &telemetry.Recorder{})
	_, err := client.DailyChange(context.Background())

	var transportErr *failure.TransportError
	require.True(t, errors.As(err, &transportErr))
	require.Equal(t, url, transportErr.URL)
}

func TestQuotePercent(t *testing.T) {
	testCases := []struct {
		change   string
		expected string
	}{
		{change: "+1,23%", expected: "1.23"},
		{change: "-0,50%", expected: "-0.5"},
		{change: "0.00%", expected: "0"},
		{change: " 2.5 %", expected: "2.5"},
	}

	for _, test := range testCases {
		percent, err := Quote{Change: test.change}.Percent()
		require.NoError(t, err, test.change)
		require.True(t, decimal.RequireFromString(test.expected).Equal(percent), test.change)
	}

	_, err := Quote{Change: "abc%"}.Percent()
	require.Error(t, err)
}
