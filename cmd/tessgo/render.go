package main

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/tessgo/pkg/tesseract"
)

var (
	renderOutput  string
	renderFormats []string
	renderTitle   string
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Write hOCR, PDF, ALTO, TSV and other Tesseract outputs",
	Long: `Recognize every page of FILE and write one document per format to
OUTPUT.<ext>. OUTPUT defaults to FILE without its extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	names := make([]string, len(tesseract.RenderFormats))
	for i, f := range tesseract.RenderFormats {
		names[i] = string(f)
	}
	f := renderCmd.Flags()
	f.StringVarP(&renderOutput, "output", "o", "", "output base path")
	f.StringSliceVarP(&renderFormats, "format", "f", []string{string(tesseract.FormatText)},
		"formats: "+strings.Join(names, ", "))
	f.StringVar(&renderTitle, "title", "", "document title (default: file name)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	path := args[0]
	formats := make([]tesseract.RenderFormat, 0, len(renderFormats))
	for _, s := range renderFormats {
		f, err := tesseract.ParseRenderFormat(s)
		if err != nil {
			return err
		}
		formats = append(formats, f)
	}
	base := renderOutput
	if base == "" {
		base = strings.TrimSuffix(path, filepath.Ext(path))
	}
	title := renderTitle
	if title == "" {
		title = filepath.Base(path)
	}

	pages, err := loadPages(path, 0)
	if err != nil {
		return err
	}
	images := make([]image.Image, len(pages))
	for i, p := range pages {
		images[i] = p.Image
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.RenderDocument(cmd.Context(), images, base, title, formats); err != nil {
		return err
	}
	logger.Info().Str("output", base).Int("pages", len(pages)).Strs("formats", renderFormats).Msg("rendered")
	fmt.Fprintln(cmd.OutOrStdout(), base)
	return nil
}
