package cmd

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/fysac/xprng/config"
	"github.com/fysac/xprng/prng"
	"github.com/spf13/cobra"
)

func newIntCmd(o *options) *cobra.Command {
	var (
		count    int
		min, max int
	)
	cmd := &cobra.Command{
		Use:   "int",
		Short: "Draw integers in [min, max], one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := o.generator()
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			for i := 0; i < count; i++ {
				v, err := g.RandInt(min, max)
				if err != nil {
					return err
				}
				buf.WriteString(strconv.Itoa(v))
				buf.WriteByte('\n')
			}
			return o.writeOutput(cmd, buf.Bytes())
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&count, "count", "n", 1, "number of draws")
	flags.IntVar(&min, "min", prng.DefaultMin, "lower bound (inclusive)")
	flags.IntVar(&max, "max", prng.DefaultMax, "upper bound (inclusive)")
	flags.StringVarP(&o.out, "out", "o", "", "write to this file instead of stdout (must not exist)")
	return cmd
}

func newBytesCmd(o *options) *cobra.Command {
	var (
		length   int
		readable bool
	)
	cmd := &cobra.Command{
		Use:   "bytes",
		Short: "Draw a string of pseudo-random bytes",
		Long: `Draw a string of pseudo-random bytes.
--format=text prints the characters, decimal prints the values separated by spaces,
hex prints them as a hex string.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := o.generator()
			if err != nil {
				return err
			}
			b, err := formatBytes(g, length, readable, o.formatOrDefault())
			if err != nil {
				return err
			}
			return o.writeOutput(cmd, b)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&length, "count", "n", 1, "number of bytes")
	flags.BoolVarP(&readable, "readable", "r", false, "only printable ASCII (32-126)")
	flags.StringVarP(&o.format, "format", "f", config.FormatText, "text, decimal or hex (env XPRNG_FORMAT)")
	flags.StringVarP(&o.out, "out", "o", "", "write to this file instead of stdout (must not exist)")
	return cmd
}

func formatBytes(g *prng.Generator, length int, readable bool, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case config.FormatText:
		buf.WriteString(g.RandBytes(length, readable))
	case config.FormatDecimal:
		for i, v := range g.RandDecimal(length, readable) {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(strconv.Itoa(v))
		}
	case config.FormatHex:
		var raw []byte
		for _, v := range g.RandDecimal(length, readable) {
			raw = append(raw, byte(v))
		}
		buf.WriteString(hex.EncodeToString(raw))
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidFormat, format)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
