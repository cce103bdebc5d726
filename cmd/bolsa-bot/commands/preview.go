package commands

import (
	"os"

	"bolsa-bot/internal/bot"
	"bolsa-bot/internal/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(previewCmd)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Composes a headline and prints its parts without posting it.",
	Run: func(cmd *cobra.Command, args []string) {
		msg, err := bot.Preview(cmd.Context(), bot.Options{})
		if err != nil {
			serviceutil.Fatal("failed to compose headline", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Part", "Value"})
		t.AppendRows([]table.Row{
			{"Alias", msg.Alias},
			{"Movement", msg.Movement},
			{"Change", msg.Change},
			{"Direction", msg.Direction.String()},
			{"Link", msg.Link},
			{"Title", msg.Title},
		})
		t.AppendFooter(table.Row{"Message", msg.String()})
		t.Render()
	},
}
