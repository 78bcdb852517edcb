package noise

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ecpass/ports"

	"github.com/xuri/excelize/v2"
)

// Format selects the sample file layout
type Format string

const (
	// FormatLines writes one value per line
	FormatLines Format = "lines"
	// FormatXY writes a CSV with x=i/count and y=sample, the layout formula-search tools expect
	FormatXY Format = "xy"
	// FormatXLSX writes the xy layout to Sheet1 of a workbook
	FormatXLSX Format = "xlsx"
)

const (
	DefaultCount = 50
	sheet        = "Sheet1"
	precision    = 12
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatLines, FormatXY, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unsupported noise format %q (want lines, xy or xlsx)", s)
}

// FormatForPath infers the format from a file extension
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX
	case ".csv":
		return FormatXY
	}
	return FormatLines
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Writer produces random sample files. Output is intentionally not reproducible.
type Writer struct {
	source ports.NoiseSource
}

// NewWriter creates a writer drawing from source, or from math/rand/v2 when nil
func NewWriter(source ports.NoiseSource) *Writer {
	if source == nil {
		source = globalSource{}
	}
	return &Writer{source: source}
}

// Samples returns count values strictly inside (0,1)
func (w *Writer) Samples(count int) ([]float64, error) {
	if count <= 0 {
		return nil, fmt.Errorf("noise count must be positive, got %d", count)
	}
	samples := make([]float64, count)
	for i := range samples {
		v := w.source.Float64()
		for v <= 0 || v >= 1 {
			v = w.source.Float64()
		}
		samples[i] = v
	}
	return samples, nil
}

// WriteFile writes count samples to path, overwriting it
func (w *Writer) WriteFile(path string, count int, format Format) error {
	samples, err := w.Samples(count)
	if err != nil {
		return err
	}

	if format == FormatXLSX {
		return writeXLSX(path, samples)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, samples, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes samples in a text format
func Encode(out io.Writer, samples []float64, format Format) error {
	switch format {
	case FormatLines:
		for _, v := range samples {
			if _, err := fmt.Fprintf(out, "%.*f\n", precision, v); err != nil {
				return err
			}
		}
		return nil
	case FormatXY:
		cw := csv.NewWriter(out)
		if err := cw.Write([]string{"x", "y"}); err != nil {
			return err
		}
		for i, v := range samples {
			if err := cw.Write([]string{fToStr(xAt(i, len(samples))), fToStr(v)}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}
	return fmt.Errorf("format %q is not a text format", format)
}

func writeXLSX(path string, samples []float64) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetCellValue(sheet, "A1", "x"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B1", "y"); err != nil {
		return err
	}
	for i, v := range samples {
		row := i + 2
		xCell, _ := excelize.CoordinatesToCellName(1, row)
		yCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(sheet, xCell, xAt(i, len(samples))); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, yCell, v); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func xAt(i, count int) float64 {
	return float64(i) / float64(count)
}

func fToStr(x float64) string {
	return strconv.FormatFloat(x, 'f', precision, 64)
}
