package cmd

import (
	"errors"
	"fmt"

	"github.com/fysac/xprng/config"
	"github.com/fysac/xprng/vectors"
	"github.com/spf13/cobra"
)

func newVectorsCmd(o *options) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "vectors SEED...",
		Short: "Print the first draws for each seed as a JSON object",
		Long: `Print the first draws for each seed as a JSON object, keyed by seed in
argument order. Seeds are text unless --numeric is given. For example:
  xprng vectors --count 8 test "hello world"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds := make([]any, 0, len(args))
			for _, arg := range args {
				seed, err := config.ParseSeed(arg, o.numeric)
				if err != nil {
					return err
				}
				if seed == nil {
					return fmt.Errorf("empty seed: %w", vectors.ErrNoSeed)
				}
				seeds = append(seeds, seed)
			}
			b, err := vectors.Streams(seeds, count)
			if err != nil {
				return err
			}
			return o.writeOutput(cmd, b)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&count, "count", "n", 16, "draws per seed")
	flags.StringVarP(&o.out, "out", "o", "", "write to this file instead of stdout (must not exist)")
	return cmd
}

func newVerifyCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE...",
		Short: "Check YAML conformance suites against this generator",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				s, err := vectors.LoadFile(path)
				if err != nil {
					return err
				}
				failures := s.Run()
				for _, f := range failures {
					o.log.Printf("FAIL %s: %v", f.Name, f.Err)
				}
				failed += len(failures)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d vectors passed\n", path, len(s.Vectors)-len(failures), len(s.Vectors))
			}
			if failed > 0 {
				return fmt.Errorf("%d vectors failed", failed)
			}
			return nil
		},
	}
}

func newRecordCmd(o *options) *cobra.Command {
	var (
		name     string
		count    int
		min, max int
		length   int
		readable bool
	)
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Print a YAML conformance suite for one seed",
		Long: `Print a YAML conformance suite for one seed, with the values this generator
draws. Without --seed the current time is used and written into the suite.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("record needs --name")
			}
			seed, err := o.seedValue()
			if err != nil {
				return err
			}
			if seed == nil {
				g, err := o.generator()
				if err != nil {
					return err
				}
				seed = g.State().Seed
			}

			step := vectors.Step{Op: vectors.OpInt, Count: count}
			if cmd.Flags().Changed("min") || cmd.Flags().Changed("max") {
				step.Min, step.Max = &min, &max
			}
			steps := []vectors.Step{step}
			if length > 0 {
				steps = append(steps, vectors.Step{Op: vectors.OpBytes, Length: length, Readable: readable})
			}

			v, err := vectors.Record(name, seed, steps)
			if err != nil {
				return err
			}
			b, err := (&vectors.Suite{Vectors: []vectors.Vector{v}}).Marshal()
			if err != nil {
				return err
			}
			return o.writeOutput(cmd, b)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "vector name")
	flags.IntVarP(&count, "count", "n", 16, "integer draws")
	flags.IntVar(&min, "min", 0, "lower bound for integer draws")
	flags.IntVar(&max, "max", 255, "upper bound for integer draws")
	flags.IntVar(&length, "bytes", 0, "byte draws to append after the integers")
	flags.BoolVarP(&readable, "readable", "r", false, "byte draws are printable ASCII")
	flags.StringVarP(&o.out, "out", "o", "", "write to this file instead of stdout (must not exist)")
	return cmd
}
