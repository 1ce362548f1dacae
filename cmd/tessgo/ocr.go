package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/tessgo/internal/imaging"
	"github.com/ironsheep/tessgo/internal/ocr"
)

var (
	ocrPage      int
	ocrJSON      bool
	ocrRegion    string
	ocrGrayscale bool
	ocrScale     float64
	ocrThreshold int
	ocrInvert    bool
)

var ocrCmd = &cobra.Command{
	Use:   "ocr FILE",
	Short: "Recognize text in an image, TIFF or PDF",
	Long: `Recognize text in every page of FILE and print it. With --json the full
result (words, confidences, bounding boxes) is printed per page.

--region limits recognition to "x1,y1,x2,y2" or a named area such as
top-half or bottom-right.`,
	Args: cobra.ExactArgs(1),
	RunE: runOCR,
}

func init() {
	f := ocrCmd.Flags()
	f.IntVarP(&ocrPage, "page", "p", 0, "only this 1-based page")
	f.BoolVar(&ocrJSON, "json", false, "print results as JSON")
	f.StringVar(&ocrRegion, "region", "", "x1,y1,x2,y2 or a region name")
	f.BoolVar(&ocrGrayscale, "grayscale", false, "convert to grayscale first")
	f.Float64Var(&ocrScale, "scale", 0, "resize by this factor first")
	f.IntVar(&ocrThreshold, "threshold", 0, "binarize at this gray level first")
	f.BoolVar(&ocrInvert, "invert", false, "invert light-on-dark text first")
	rootCmd.AddCommand(ocrCmd)
}

type pageResult struct {
	Page int `json:"page"`
	*ocr.OCRResult
}

func runOCR(cmd *cobra.Command, args []string) error {
	pages, err := loadPages(args[0], ocrPage)
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	opts := ocr.Options{Pipeline: pipelineFlags(cmd)}
	out := cmd.OutOrStdout()
	var results []pageResult
	for _, p := range pages {
		var res *ocr.OCRResult
		if ocrRegion != "" {
			r, err := parseRegion(p.Image, ocrRegion)
			if err != nil {
				return err
			}
			res, err = svc.ExtractRegion(cmd.Context(), p.Image, r, opts)
			if err != nil {
				return fmt.Errorf("page %d: %w", p.Number, err)
			}
		} else if res, err = svc.Extract(cmd.Context(), p.Image, opts); err != nil {
			return fmt.Errorf("page %d: %w", p.Number, err)
		}
		logger.Info().Int("page", p.Number).Float64("confidence", res.MeanConfidence).Msg("recognized")

		if ocrJSON {
			results = append(results, pageResult{Page: p.Number, OCRResult: res})
			continue
		}
		if len(pages) > 1 {
			fmt.Fprintf(out, "--- page %d ---\n", p.Number)
		}
		fmt.Fprint(out, res.FullText)
	}
	if ocrJSON {
		return writeJSON(out, results)
	}
	return nil
}

// pipelineFlags returns the preprocessing requested on the command line, or
// nil to keep the configured pipeline.
func pipelineFlags(cmd *cobra.Command) *imaging.Pipeline {
	f := cmd.Flags()
	if !f.Changed("grayscale") && !f.Changed("scale") && !f.Changed("threshold") && !f.Changed("invert") {
		return nil
	}
	p := cfg.Preprocess
	if f.Changed("grayscale") {
		p.Grayscale = ocrGrayscale
	}
	if f.Changed("scale") {
		p.Scale = ocrScale
	}
	if f.Changed("threshold") {
		p.Threshold = ocrThreshold
	}
	if f.Changed("invert") {
		p.Invert = ocrInvert
	}
	return &p
}

func parseRegion(img image.Image, s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return imaging.NamedRegion(img, s)
	}
	var v [4]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid region %q: %w", s, err)
		}
		v[i] = n
	}
	if v[0] >= v[2] || v[1] >= v[3] {
		return image.Rectangle{}, fmt.Errorf("invalid region %q: x1 must be < x2, y1 must be < y2", s)
	}
	return image.Rect(v[0], v[1], v[2], v[3]), nil
}
