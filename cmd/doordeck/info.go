package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"doordeck/internal/card"
	"doordeck/internal/scrape"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Print a scraped card file or URL list as a table",
	Long: `info prints a hand-off file as a table. Card data (a JSON array of objects)
is listed with rarity counts; a URL list (a JSON array of strings) is numbered.
Without an argument the configured card file is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := cfg.Scrape.CardsFile
	if len(args) == 1 {
		path = args[0]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("%s is not a JSON array: %w", path, err)
	}
	if len(entries) > 0 && len(entries[0]) > 0 && entries[0][0] == '"' {
		urls, err := scrape.ReadURLs(path)
		if err != nil {
			return err
		}
		renderURLs(cmd.OutOrStdout(), urls)
		return nil
	}

	cards, err := card.ReadCards(path)
	if err != nil {
		return err
	}
	renderCards(cmd.OutOrStdout(), cards)
	return nil
}

func renderCards(w io.Writer, cards []card.Card) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Card", "Rarity", "Image"})

	counts := map[card.Rarity]int{}
	for i, c := range cards {
		counts[c.Rarity]++
		t.AppendRow(table.Row{i + 1, c.DisplayName(), c.Rarity.Title(), c.ImageURL})
	}

	t.AppendSeparator()
	for _, r := range card.Rarities() {
		if counts[r] > 0 {
			t.AppendFooter(table.Row{"", r.Title(), counts[r], ""})
		}
	}
	t.AppendFooter(table.Row{"", "Total", len(cards), ""})

	t.SetStyle(table.StyleRounded)
	t.Render()
}

func renderURLs(w io.Writer, urls []string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "URL"})
	for i, u := range urls {
		t.AppendRow(table.Row{i + 1, u})
	}
	t.AppendFooter(table.Row{"Total", len(urls)})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
