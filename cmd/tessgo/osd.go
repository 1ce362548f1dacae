package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/tessgo/internal/ocr"
)

var osdPage int

var osdCmd = &cobra.Command{
	Use:   "osd FILE",
	Short: "Detect page orientation and script",
	Long:  "Detect page orientation and script. Requires osd.traineddata.",
	Args:  cobra.ExactArgs(1),
	RunE:  runOSD,
}

func init() {
	osdCmd.Flags().IntVarP(&osdPage, "page", "p", 0, "only this 1-based page")
	rootCmd.AddCommand(osdCmd)
}

type pageOrientation struct {
	Page int `json:"page"`
	*ocr.OrientationResult
}

func runOSD(cmd *cobra.Command, args []string) error {
	pages, err := loadPages(args[0], osdPage)
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	out := make([]pageOrientation, 0, len(pages))
	for _, p := range pages {
		res, err := svc.DetectOrientation(cmd.Context(), p.Image)
		if err != nil {
			return fmt.Errorf("page %d: %w", p.Number, err)
		}
		out = append(out, pageOrientation{Page: p.Number, OrientationResult: res})
	}
	return writeJSON(cmd.OutOrStdout(), out)
}
