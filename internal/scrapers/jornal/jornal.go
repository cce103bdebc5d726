package jornal

import (
	"context"
	"fmt"

	"bolsa-bot/internal/components/restyutil"
	"bolsa-bot/internal/components/telemetry"
	"bolsa-bot/internal/failure"
	"bolsa-bot/internal/scrapers/markup"

	"github.com/go-resty/resty/v2"
)

const (
	report_client_headlines       = "client.headlines"
	report_client_headlines_count = "client.headlines-count"
)

const (
	Source     = "jornal da cidade online"
	DefaultUrl = "https://www.jornaldacidadeonline.com.br/noticias/direito-e-justica/denuncias"
)

type Client struct {
	http *resty.Client
	url  string
	tel  telemetry.API
}

func NewClient(url string, tel telemetry.API) Client {
	tel = telemetry.NewScopedAPI("jornal", tel)
	return Client{
		http: restyutil.NewBrowserClient(tel),
		url:  url,
		tel:  tel,
	}
}

// Headlines scrapes the candidate headlines of the news listing in page order.
// The first titled element of the page is site navigation and is left out.
func (c Client) Headlines(ctx context.Context) ([]string, error) {
	body, err := restyutil.GetPage(ctx, c.http, Source, c.url)
	if err != nil {
		c.tel.ReportBroken(report_client_headlines, fmt.Errorf("fetch: %w", err))
		return nil, err
	}

	titles, err := markup.TitleAttributes(body)
	if err != nil {
		err = &failure.ParseError{Source: Source, Err: err}
		c.tel.ReportBroken(report_client_headlines, err)
		return nil, err
	}
	if len(titles) <= 1 {
		err := &failure.UpstreamFormatError{
			Source: Source,
			Reason: "no headlines found",
		}
		c.tel.ReportBroken(report_client_headlines, err)
		return nil, err
	}

	headlines := titles[1:]
	c.tel.ReportCount(report_client_headlines_count, int64(len(headlines)))
	return headlines, nil
}
