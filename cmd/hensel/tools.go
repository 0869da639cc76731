package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/henselcode/hensel"
	"github.com/katalvlaran/henselcode/modarith"
)

func newCRTCmd(a *app) *cobra.Command {
	var moduli, remainders []string
	cmd := &cobra.Command{
		Use:   "crt",
		Short: "Solve x ≡ r_i (mod m_i) for pairwise coprime moduli",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := parseIntegers(moduli)
			if err != nil {
				return err
			}
			rs, err := parseIntegers(remainders)
			if err != nil {
				return err
			}
			x, err := modarith.CRT(ms, rs)
			if err != nil {
				return err
			}
			a.logger.Info("crt solved", zap.Int("congruences", len(ms)), zap.Stringer("x", x))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), x)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&moduli, "moduli", nil, "Comma-separated pairwise coprime moduli")
	cmd.Flags().StringSliceVar(&remainders, "remainders", nil, "Comma-separated remainders")
	_ = cmd.MarkFlagRequired("moduli")
	_ = cmd.MarkFlagRequired("remainders")
	return cmd
}

func newPrimeCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "prime <bits>",
		Short: "Draw random primes of an exact bit length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bits, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: %v", hensel.ErrBadBitRange, err)
			}
			var src hensel.RandomSource = hensel.CryptoSource{}
			if a.cfg.Seed != 0 {
				src = hensel.NewSeededSource(a.cfg.Seed)
			}
			ps, err := hensel.RandomDistinctPrimes(src, count, bits)
			if err != nil {
				return err
			}
			a.logger.Debug("primes drawn", zap.Int("bits", bits), zap.Int("count", count), zap.Int64("seed", a.cfg.Seed))
			for _, p := range ps {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), p); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of distinct primes")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML, or save it with --out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out != "" {
				if err := a.cfg.Save(out); err != nil {
					return err
				}
				a.logger.Info("config saved", zap.String("path", out))
				return nil
			}
			data, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the configuration to this file")
	return cmd
}
