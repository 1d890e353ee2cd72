package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/bobmcallan/abacus/internal/common"
	"github.com/bobmcallan/abacus/internal/devtools"
	"github.com/bobmcallan/abacus/internal/devtools/imaging"
)

func (c *cli) ratesCmd() *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "rates [CODE ...]",
		Short: "Show exchange rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if base == "" {
				base = c.app.Config.Currency.Base
			}
			rates, err := c.app.Currency.Rates(cmd.Context(), base)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), rates)
			}

			codes := make([]string, 0, len(rates.Rates))
			for code := range rates.Rates {
				if len(args) == 0 || slices.Contains(args, code) || slices.Contains(args, strings.ToLower(code)) {
					codes = append(codes, code)
				}
			}
			slices.Sort(codes)

			t := newTable(cmd.OutOrStdout())
			t.SetTitle("1 %s (%s, %s)", rates.Base, rates.Source, rates.AsOf.Format("2006-01-02 15:04 MST"))
			t.AppendHeader(table.Row{"Code", "Rate", "Value"})
			for _, code := range codes {
				t.AppendRow(table.Row{code, formatFloat(rates.Rates[code]), common.FormatMoney(rates.Rates[code], code)})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&base, "base", "b", "", "base currency (default from config)")
	return cmd
}

func (c *cli) imageCmd() *cobra.Command {
	var (
		output  string
		format  string
		quality int
	)
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Resize, crop or compress images",
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file (default <input>-<op>.<ext>)")
	cmd.PersistentFlags().StringVar(&format, "format", "", "output format: jpeg or png")
	cmd.PersistentFlags().IntVarP(&quality, "quality", "q", 0, "JPEG quality 5-100")

	// run decodes the input, applies op and writes the output file.
	run := func(cmd *cobra.Command, input, op string, apply func(*imaging.Source) (*imaging.Result, error)) error {
		data, err := os.ReadFile(input)
		if err != nil {
			return err
		}
		src, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return err
		}
		res, err := apply(src)
		if err != nil {
			return err
		}
		dst := output
		if dst == "" {
			ext := "." + res.Format
			if res.Format == imaging.FormatJPEG {
				ext = ".jpg"
			}
			dst = strings.TrimSuffix(input, filepath.Ext(input)) + "-" + op + ext
		}
		if err := os.WriteFile(dst, res.Data, 0o644); err != nil {
			return err
		}
		if c.jsonOut {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", dst)
		r := &renderer{w: cmd.OutOrStdout()}
		r.result(res)
		return nil
	}

	var (
		width, height int
		keepAspect    bool
	)
	resize := &cobra.Command{
		Use:   "resize <file>",
		Short: "Scale an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], "resize", func(src *imaging.Source) (*imaging.Result, error) {
				return imaging.Resize(src, imaging.ResizeOptions{
					Width: width, Height: height, KeepAspect: keepAspect, Format: format, Quality: quality,
				})
			})
		},
	}
	resize.Flags().IntVarP(&width, "width", "W", 0, "target width in pixels")
	resize.Flags().IntVarP(&height, "height", "H", 0, "target height in pixels")
	resize.Flags().BoolVar(&keepAspect, "keep-aspect", true, "fit inside width×height")

	var x, y, cw, ch int
	crop := &cobra.Command{
		Use:   "crop <file>",
		Short: "Cut a rectangle out of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], "crop", func(src *imaging.Source) (*imaging.Result, error) {
				return imaging.Crop(src, imaging.CropOptions{
					X: x, Y: y, Width: cw, Height: ch, Format: format, Quality: quality,
				})
			})
		},
	}
	crop.Flags().IntVar(&x, "x", 0, "left edge")
	crop.Flags().IntVar(&y, "y", 0, "top edge")
	crop.Flags().IntVarP(&cw, "width", "W", 0, "crop width")
	crop.Flags().IntVarP(&ch, "height", "H", 0, "crop height")

	var targetKB, maxWidth int
	compress := &cobra.Command{
		Use:   "compress <file>",
		Short: "Re-encode as JPEG at a quality or target size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], "compress", func(src *imaging.Source) (*imaging.Result, error) {
				return imaging.Compress(src, imaging.CompressOptions{
					Quality: quality, TargetBytes: targetKB * 1024, MaxWidth: maxWidth,
				})
			})
		},
	}
	compress.Flags().IntVar(&targetKB, "target-kb", 0, "largest output size in KB")
	compress.Flags().IntVar(&maxWidth, "max-width", 0, "downscale wider images first")

	cmd.AddCommand(resize, crop, compress)
	return cmd
}

func (c *cli) pdfCmd() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "PDF tools",
	}
	words := &cobra.Command{
		Use:   "words <file>",
		Short: "Count the words of a PDF's text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			res, err := devtools.PDFWordCount(data, top)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			r := &renderer{w: cmd.OutOrStdout(), maxRows: c.rows}
			r.result(res)
			return nil
		},
	}
	words.Flags().IntVar(&top, "top", 10, "most frequent words to list")
	cmd.AddCommand(words)
	return cmd
}
