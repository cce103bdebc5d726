package restyutil

import (
	"context"
	"fmt"
	"time"

	"bolsa-bot/internal/components/telemetry"
	"bolsa-bot/internal/failure"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// NewBrowserClient creates a resty client that looks like a desktop browser to the
// pages being scraped.
func NewBrowserClient(tel telemetry.API) *resty.Client {
	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", UserAgent)
	client.SetTimeout(time.Second * 30)

	// 1 request max per second, a burst of 1 means no requests are dropped
	limiter := rate.NewLimiter(1, 1)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, tel)
	return client
}

// GetPage fetches a page body. Transport failures become a *failure.TransportError and
// non-2xx statuses a *failure.UpstreamFormatError attributed to `source`.
func GetPage(ctx context.Context, client *resty.Client, source, link string) ([]byte, error) {
	res, err := client.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, &failure.TransportError{Op: "GET", URL: link, Err: err}
	}
	if res.IsError() {
		return nil, &failure.UpstreamFormatError{
			Source: source,
			Reason: fmt.Sprintf("unexpected status %s", res.Status()),
		}
	}
	return res.Body(), nil
}
