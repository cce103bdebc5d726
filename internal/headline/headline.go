package headline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"bolsa-bot/internal/assert"
	"bolsa-bot/internal/components/entropy"
	"bolsa-bot/internal/components/telemetry"
	"bolsa-bot/internal/failure"
	"bolsa-bot/internal/scrapers/infomoney"
)

const (
	report_generator_generate = "generator.generate"
)

// QuoteSource provides the index's daily change.
type QuoteSource interface {
	DailyChange(ctx context.Context) (infomoney.Quote, error)
}

// NewsSource provides candidate news headlines.
type NewsSource interface {
	Headlines(ctx context.Context) ([]string, error)
}

type Direction int

const (
	Flat Direction = iota
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "flat"
}

// DirectionOf reads the direction from the sign in front of a change.
func DirectionOf(change string) Direction {
	switch {
	case strings.HasPrefix(change, "+"):
		return Up
	case strings.HasPrefix(change, "-"):
		return Down
	}
	return Flat
}

// Movements returns the phrase table describing the direction.
func (d Direction) Movements() []string {
	switch d {
	case Up:
		return UpMovements
	case Down:
		return DownMovements
	}
	return FlatMovements
}

// Message is a composed post, see String for the final text.
type Message struct {
	Alias     string
	Movement  string
	Change    string
	Link      string
	Title     string
	Direction Direction
}

func (m Message) String() string {
	return fmt.Sprintf("%s %s (%s) %s %s", m.Alias, m.Movement, m.Change, m.Link, m.Title)
}

var (
	sectionPrefix = regexp.MustCompile(`^[A-Z]* *[:-]`)
	parenthetical = regexp.MustCompile(`\(.*\)`)
)

// SanitizeTitle removes an editorial section prefix like "STF:" and any
// parenthetical remark from a headline.
func SanitizeTitle(title string) string {
	title = sectionPrefix.ReplaceAllString(strings.TrimSpace(title), "")
	return strings.TrimSpace(parenthetical.ReplaceAllString(title, ""))
}

type Generator struct {
	quotes QuoteSource
	news   NewsSource
	rand   entropy.API
	tel    telemetry.API
}

func NewGenerator(quotes QuoteSource, news NewsSource, rand entropy.API, tel telemetry.API) Generator {
	assert.NotNil(quotes, "quotes")
	assert.NotNil(news, "news")
	assert.NotNil(rand, "rand")
	assert.NotNil(tel, "tel")

	return Generator{
		quotes: quotes,
		news:   news,
		rand:   rand,
		tel:    telemetry.NewScopedAPI("headline", tel),
	}
}

// Generate scrapes both sources and composes a message out of them.
func (g Generator) Generate(ctx context.Context) (Message, error) {
	quote, err := g.quotes.DailyChange(ctx)
	if err != nil {
		return Message{}, err
	}
	headlines, err := g.news.Headlines(ctx)
	if err != nil {
		return Message{}, err
	}
	if len(headlines) == 0 {
		err := &failure.UpstreamFormatError{Source: "news", Reason: "no candidate headlines"}
		g.tel.ReportBroken(report_generator_generate, err)
		return Message{}, err
	}

	direction := DirectionOf(quote.Change)
	if direction == Flat {
		g.tel.ReportWarning(report_generator_generate, "unsigned daily change", quote.Change)
	}

	msg := Message{
		Alias:     entropy.Choice(g.rand, Aliases),
		Movement:  entropy.Choice(g.rand, direction.Movements()),
		Change:    quote.Change,
		Link:      entropy.Choice(g.rand, Links),
		Title:     SanitizeTitle(entropy.Choice(g.rand, headlines)),
		Direction: direction,
	}
	g.tel.ReportDebug("composed message", direction.String(), len(headlines), msg.String())
	return msg, nil
}
