package infomoney

import (
	"context"
	"fmt"
	"strings"

	"bolsa-bot/internal/components/restyutil"
	"bolsa-bot/internal/components/telemetry"
	"bolsa-bot/internal/failure"
	"bolsa-bot/internal/scrapers/markup"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	report_client_daily_change = "client.daily-change"
)

const (
	Source       = "infomoney"
	DefaultUrl   = "https://www.infomoney.com.br/cotacoes/ibovespa/"
	ChangeLabel  = "Variação (Dia)"
	changeSuffix = "%"
)

// Quote is the daily change of the index as displayed on the quote page, ex. "+1,23%".
type Quote struct {
	Change string
}

// Percent parses the displayed change, accepting either a comma or a dot as the
// decimal separator.
func (q Quote) Percent() (decimal.Decimal, error) {
	number := strings.TrimSpace(strings.TrimSuffix(q.Change, changeSuffix))
	number = strings.TrimPrefix(number, "+")
	number = strings.Replace(number, ",", ".", 1)
	return decimal.NewFromString(number)
}

type Client struct {
	http *resty.Client
	url  string
	tel  telemetry.API
}

func NewClient(url string, tel telemetry.API) Client {
	tel = telemetry.NewScopedAPI("infomoney", tel)
	return Client{
		http: restyutil.NewBrowserClient(tel),
		url:  url,
		tel:  tel,
	}
}

// DailyChange scrapes the index's daily change from the quote page.
func (c Client) DailyChange(ctx context.Context) (Quote, error) {
	body, err := restyutil.GetPage(ctx, c.http, Source, c.url)
	if err != nil {
		c.tel.ReportBroken(report_client_daily_change, fmt.Errorf("fetch: %w", err))
		return Quote{}, err
	}

	value, ok, err := markup.LabeledValue(body, ChangeLabel, changeSuffix)
	if err != nil {
		err = &failure.ParseError{Source: Source, Err: err}
		c.tel.ReportBroken(report_client_daily_change, err)
		return Quote{}, err
	}
	if !ok {
		err := &failure.UpstreamFormatError{
			Source: Source,
			Reason: fmt.Sprintf("no percentage found after %q", ChangeLabel),
		}
		c.tel.ReportBroken(report_client_daily_change, err)
		return Quote{}, err
	}

	quote := Quote{Change: value}
	if _, err := quote.Percent(); err != nil {
		err := &failure.UpstreamFormatError{
			Source: Source,
			Reason: fmt.Sprintf("daily change %q is not a number", value),
		}
		c.tel.ReportBroken(report_client_daily_change, err)
		return Quote{}, err
	}

	c.tel.ReportDebug("daily change", value)
	return quote, nil
}
