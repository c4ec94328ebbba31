package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"gonum.org/v1/plot/vg"

	"github.com/bryan-cox/roadmap/internal/chart"
	"github.com/bryan-cox/roadmap/internal/preview"
)

// --- Custom Flag Types ---

var (
	_ pflag.Value = (*formatValue)(nil)
	_ pflag.Value = (*lengthValue)(nil)
	_ pflag.Value = (*colorValue)(nil)
)

// formatValue is an output image format flag.
type formatValue chart.Format

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(s string) error {
	v, err := chart.ParseFormat(s)
	if err != nil {
		return err
	}
	*f = formatValue(v)
	return nil
}

func (f *formatValue) Type() string { return "format" }

// lengthValue is a physical length flag such as "14in" or "35cm".
type lengthValue struct {
	length vg.Length
	text   string
}

func newLengthValue(text string) lengthValue {
	v := lengthValue{}
	if err := v.Set(text); err != nil {
		panic(err)
	}
	return v
}

func (v *lengthValue) String() string { return v.text }

func (v *lengthValue) Set(s string) error {
	l, err := vg.ParseLength(s)
	if err != nil {
		return fmt.Errorf("invalid length %q, use e.g. 14in, 35cm or 1000pt: %w", s, err)
	}
	if l <= 0 {
		return fmt.Errorf("length %q must be positive", s)
	}
	v.length, v.text = l, s
	return nil
}

func (v *lengthValue) Type() string { return "length" }

// colorValue selects terminal color output for the preview.
type colorValue preview.ColorMode

func (c *colorValue) String() string { return string(*c) }

func (c *colorValue) Set(s string) error {
	m, err := preview.ParseColorMode(s)
	if err != nil {
		return err
	}
	*c = colorValue(m)
	return nil
}

func (c *colorValue) Type() string { return "mode" }
