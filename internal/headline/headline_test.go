package headline

import (
	"context"
	"errors"
	"slices"
	"testing"

	"bolsa-bot/internal/components/entropy"
	"bolsa-bot/internal/components/telemetry"
	"bolsa-bot/internal/failure"
	"bolsa-bot/internal/scrapers/infomoney"

	"github.com/stretchr/testify/require"
)

type fakeQuotes struct {
	change string
	err    error
	calls  int
}

func (f *fakeQuotes) DailyChange(ctx context.Context) (infomoney.Quote, error) {
	f.calls++
	return infomoney.Quote{Change: f.change}, f.err
}

type fakeNews struct {
	headlines []string
	err       error
	calls     int
}

func (f *fakeNews) Headlines(ctx context.Context) ([]string, error) {
	f.calls++
	return f.headlines, f.err
}

func TestSanitizeTitle(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "STF: Fulano é investigado (ver nota)", expected: "Fulano é investigado"},
		{input: "  - menor prefixo (x) final", expected: "menor prefixo  final"},
		{input: "Sem prefixo nenhum", expected: "Sem prefixo nenhum"},
		{input: "URGENTE - Ministro renuncia", expected: "Ministro renuncia"},
		{input: "Deputado (PT) e senador (PL) discutem", expected: "Deputado  discutem"},
		{input: "Governo: medida é anunciada", expected: "Governo: medida é anunciada"},
		{input: "\tCPI:   depoimento adiado \n", expected: "depoimento adiado"},
	}

	for _, row := range table {
		require.Equal(t, row.expected, SanitizeTitle(row.input), row.input)
	}
}

func TestDirectionOf(t *testing.T) {
	require.Equal(t, Up, DirectionOf("+2.10%"))
	require.Equal(t, Down, DirectionOf("-0.50%"))
	require.Equal(t, Flat, DirectionOf("0.00%"))
	require.Equal(t, Flat, DirectionOf(""))
	require.Equal(t, "flat", Flat.String())
}

func TestMessageString(t *testing.T) {
	msg := Message{
		Alias:    "IBOV",
		Movement: "sobe",
		Change:   "+1,23%",
		Link:     "após jornal mostrar que",
		Title:    "Fulano é investigado",
	}
	require.Equal(t, "IBOV sobe (+1,23%) após jornal mostrar que Fulano é investigado", msg.String())
}

func TestGenerateDeterministic(t *testing.T) {
	quotes := &fakeQuotes{change: "-0,50%"}
	news := &fakeNews{headlines: []string{
		"Primeira notícia",
		"STF: Fulano é investigado (ver nota)",
	}}
	// alias, movement, link, title
	seq := &entropy.Sequence{Indexes: []int{5, 2, 9, 1}}

	gen := NewGenerator(quotes, news, seq, &telemetry.Recorder{})
	msg, err := gen.Generate(context.Background())
	require.NoError(t, err)

	require.Equal(
		t,
		"IBOV cai (-0,50%) pouco depois de noticiado que Fulano é investigado",
		msg.String(),
	)
	require.Equal(t, Down, msg.Direction)
	require.Equal(t, 1, quotes.calls)
	require.Equal(t, 1, news.calls)
}

func movementTrials(t *testing.T, change string) []string {
	gen := NewGenerator(
		&fakeQuotes{change: change},
		&fakeNews{headlines: []string{"a", "b", "c"}},
		entropy.NewStandardRandom(),
		&telemetry.Recorder{},
	)

	var movements []string
	for i := 0; i < 1000; i++ {
		msg, err := gen.Generate(context.Background())
		require.NoError(t, err)
		movements = append(movements, msg.Movement)
	}
	return movements
}

func TestUpChangeUsesUpMovements(t *testing.T) {
	for _, movement := range movementTrials(t, "+2.10%") {
		require.Contains(t, UpMovements, movement)
		require.NotContains(t, DownMovements, movement)
	}
}

func TestDownChangeUsesDownMovements(t *testing.T) {
	for _, movement := range movementTrials(t, "-0.50%") {
		require.Contains(t, DownMovements, movement)
		require.NotContains(t, UpMovements, movement)
	}
}

func TestFlatChangeUsesFlatMovements(t *testing.T) {
	rec := &telemetry.Recorder{}
	gen := NewGenerator(
		&fakeQuotes{change: "0.00%"},
		&fakeNews{headlines: []string{"a"}},
		entropy.NewStandardRandom(),
		rec,
	)

	msg, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.True(t, slices.Contains(FlatMovements, msg.Movement))
	require.Len(t, rec.Reports("warning"), 1)
}

func TestGenerateErrors(t *testing.T) {
	quoteErr := &failure.UpstreamFormatError{Source: "infomoney", Reason: "label missing"}
	quotes := &fakeQuotes{err: quoteErr}
	news := &fakeNews{headlines: []string{"a"}}

	gen := NewGenerator(quotes, news, entropy.NewStandardRandom(), &telemetry.Recorder{})
	_, err := gen.Generate(context.Background())
	require.ErrorIs(t, err, quoteErr)
	require.Equal(t, 0, news.calls)

	newsErr := &failure.TransportError{Op: "GET", URL: "x", Err: errors.New("refused")}
	gen = NewGenerator(&fakeQuotes{change: "+1%"}, &fakeNews{err: newsErr}, entropy.NewStandardRandom(), &telemetry.Recorder{})
	_, err = gen.Generate(context.Background())
	require.ErrorIs(t, err, newsErr)

	gen = NewGenerator(&fakeQuotes{change: "+1%"}, &fakeNews{}, entropy.NewStandardRandom(), &telemetry.Recorder{})
	_, err = gen.Generate(context.Background())
	var formatErr *failure.UpstreamFormatError
	require.True(t, errors.As(err, &formatErr))
}
