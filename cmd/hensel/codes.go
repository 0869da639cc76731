package main

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/henselcode/config"
	"github.com/katalvlaran/henselcode/hensel"
)

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <rational>",
		Short: "Encode a rational such as 2/3 or -7/11",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRational(args[0])
			if err != nil {
				return err
			}
			c, err := a.encode(r)
			if err != nil {
				return err
			}
			a.logger.Info("encoded",
				zap.String("rational", r.RatString()),
				zap.Stringer("kind", c.Kind()),
				zap.String("code", c.String()))
			if decoded := c.Rat(); decoded.Cmp(r) != 0 {
				a.logger.Warn("rational outside reconstruction bound",
					zap.String("rational", r.RatString()),
					zap.String("decoded", decoded.RatString()))
			}
			return printCode(cmd.OutOrStdout(), c)
		},
	}
}

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <code>",
		Short: "Decode a residue, a digit list or a residue list",
		Long: `decode reads the encoded form printed by encode:

  truncated   a single residue, e.g. 11316396
  expansion   comma-separated digits, least significant first, e.g. 83,195,174
  composite   comma-separated residues, one per prime`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.decode(args[0])
			if err != nil {
				return err
			}
			a.logger.Info("decoded",
				zap.String("code", args[0]),
				zap.Stringer("kind", c.Kind()),
				zap.String("rational", c.Rat().RatString()))
			return printCode(cmd.OutOrStdout(), c)
		},
	}
}

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <a> <op> <b>",
		Short: "Encode two rationals, combine them with + - * / and decode",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := hensel.ParseOp(args[1])
			if err != nil {
				return err
			}
			operands := make([]hensel.Code, 2)
			for i, s := range []string{args[0], args[2]} {
				r, err := parseRational(s)
				if err != nil {
					return err
				}
				if operands[i], err = a.encode(r); err != nil {
					return err
				}
			}
			c, err := hensel.Apply(op, operands[0], operands[1])
			if err != nil {
				a.logger.Warn("evaluation failed", zap.String("op", op.String()), zap.Error(err))
				return err
			}
			a.logger.Info("evaluated",
				zap.String("expr", strings.Join(args, " ")),
				zap.String("rational", c.Rat().RatString()))
			return printCode(cmd.OutOrStdout(), c)
		},
	}
}

// encode builds the configured representation of r.
func (a *app) encode(r *big.Rat) (hensel.Code, error) {
	kind, primes, err := a.ring()
	if err != nil {
		return nil, err
	}
	return hensel.New(kind, primes, a.cfg.Exponent, r, a.cfg.Options()...)
}

// decode parses an encoded form in the configured representation.
func (a *app) decode(s string) (hensel.Code, error) {
	kind, primes, err := a.ring()
	if err != nil {
		return nil, err
	}
	values, err := parseIntegers(config.SplitList(s))
	if err != nil {
		return nil, err
	}
	k := a.cfg.Exponent

	switch kind {
	case hensel.KindTruncated:
		if len(values) != 1 {
			return nil, fmt.Errorf("%w: truncated code is a single residue, got %d values", hensel.ErrWrongInputShape, len(values))
		}
		return hensel.TruncatedFromResidue(primes[0], k, values[0])
	case hensel.KindExpansion:
		return hensel.ExpansionFromDigits(primes[0], k, values, a.cfg.Options()...)
	default:
		return hensel.CompositeFromResidues(primes, k, values)
	}
}

func (a *app) ring() (hensel.Kind, []*big.Int, error) {
	kind, err := a.cfg.Kind()
	if err != nil {
		return 0, nil, err
	}
	primes, err := a.cfg.PrimeList()
	if err != nil {
		return 0, nil, err
	}
	return kind, primes, nil
}

// printCode writes the readable code, its decode-ready form and the rational.
func printCode(w io.Writer, c hensel.Code) error {
	_, err := fmt.Fprintf(w, "kind: %s\nprimes: %v\nexponent: %d\ncode: %s\nencoded: %s\nrational: %s\n",
		c.Kind(), c.Primes(), c.Exponent(), c, encodedForm(c), c.Rat().RatString())
	return err
}

// encodedForm renders the argument decode accepts for c.
func encodedForm(c hensel.Code) string {
	switch v := c.(type) {
	case *hensel.Expansion:
		return joinInts(v.Digits())
	case *hensel.Composite:
		return joinInts(v.Residues())
	}
	return c.String()
}

func joinInts(vs []*big.Int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}

func parseRational(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a rational", hensel.ErrWrongInputShape, s)
	}
	return r, nil
}

func parseIntegers(ss []string) ([]*big.Int, error) {
	out := make([]*big.Int, len(ss))
	for i, s := range ss {
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not an integer", hensel.ErrWrongInputShape, s)
		}
		out[i] = n
	}
	return out, nil
}
