package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/tessgo/pkg/tesseract"
)

var (
	layoutPage int
	layoutOpts tesseract.LayoutOptions
)

var layoutCmd = &cobra.Command{
	Use:   "layout FILE",
	Short: "Print the block, paragraph, line and word tree as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayout,
}

func init() {
	f := layoutCmd.Flags()
	f.IntVarP(&layoutPage, "page", "p", 0, "only this 1-based page")
	f.BoolVar(&layoutOpts.Symbols, "symbols", false, "include symbols")
	f.BoolVar(&layoutOpts.Choices, "choices", false, "include alternative symbol choices")
	f.BoolVar(&layoutOpts.WordDetails, "word-details", false, "include font and dictionary attributes")
	rootCmd.AddCommand(layoutCmd)
}

type pageLayout struct {
	Page   int               `json:"page"`
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Blocks []tesseract.Block `json:"blocks"`
}

func runLayout(cmd *cobra.Command, args []string) error {
	pages, err := loadPages(args[0], layoutPage)
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	out := make([]pageLayout, 0, len(pages))
	for _, p := range pages {
		blocks, err := svc.Layout(cmd.Context(), p.Image, layoutOpts)
		if err != nil {
			return fmt.Errorf("page %d: %w", p.Number, err)
		}
		if blocks == nil {
			blocks = []tesseract.Block{}
		}
		b := p.Image.Bounds()
		out = append(out, pageLayout{Page: p.Number, Width: b.Dx(), Height: b.Dy(), Blocks: blocks})
	}
	return writeJSON(cmd.OutOrStdout(), out)
}
