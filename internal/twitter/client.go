package twitter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"bolsa-bot/internal/assert"
	"bolsa-bot/internal/components/chrono"
	"bolsa-bot/internal/components/entropy"
	"bolsa-bot/internal/components/telemetry"
	"bolsa-bot/internal/failure"

	"github.com/go-resty/resty/v2"
)

const (
	report_client_update_status = "client.update-status"
)

const DefaultStatusUpdateUrl = "https://api.twitter.com/1.1/statuses/update.json"

// Response is what the endpoint answered, it is reported as-is and not interpreted.
type Response struct {
	StatusCode int
	Status     string
	Body       string
}

type Client struct {
	http   *resty.Client
	url    string
	signer Signer
	time   chrono.TimeAPI
	rand   entropy.API
	tel    telemetry.API
}

func NewClient(url string, creds Credentials, time chrono.TimeAPI, rand entropy.API, tel telemetry.API) Client {
	assert.NotEmptyStr(url, "url")
	assert.NotNil(time, "time")
	assert.NotNil(rand, "rand")
	assert.NotNil(tel, "tel")

	tel = telemetry.NewScopedAPI("twitter", tel)

	client := resty.New()
	telemetry.InstrumentResty(client, tel)

	return Client{
		http:   client,
		url:    url,
		signer: Signer{Credentials: creds},
		time:   time,
		rand:   rand,
		tel:    tel,
	}
}

// UpdateStatus posts a status signed with a nonce and timestamp generated for this call only.
func (c Client) UpdateStatus(ctx context.Context, status string) (Response, error) {
	nonce, err := c.rand.Nonce()
	if err != nil {
		err = fmt.Errorf("generate nonce: %w", err)
		c.tel.ReportBroken(report_client_update_status, err)
		return Response{}, err
	}
	timestamp := strconv.FormatInt(c.time.Now().Unix(), 10)

	params := map[string]string{"status": status}
	authorization := c.signer.Header(http.MethodPost, c.url, params, nonce, timestamp)

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", authorization).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody("status=" + PercentEncode(status)).
		Post(c.url)
	if err != nil {
		err = &failure.TransportError{Op: http.MethodPost, URL: c.url, Err: err}
		c.tel.ReportBroken(report_client_update_status, err)
		return Response{}, err
	}

	out := Response{
		StatusCode: res.StatusCode(),
		Status:     res.Status(),
		Body:       res.String(),
	}
	if res.IsError() {
		c.tel.ReportWarning(report_client_update_status, out.Status, out.Body)
	} else {
		c.tel.ReportDebug("status updated", out.Status, out.Body)
	}
	return out, nil
}
