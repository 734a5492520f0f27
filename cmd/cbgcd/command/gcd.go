package command

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
)

var GCD = &cobra.Command{
	Use:   "gcd A B",
	Short: "Prints the greatest common divisor of two integers.",
	Long: `Prints the greatest common divisor of two integers.

Operands are read in decimal, or in hexadecimal, octal or binary with a 0x, 0o
or 0b prefix. Signs are ignored.`,
	Args: cobra.ExactArgs(2),
	RunE: commandGCD,
}

func commandGCD(cmd *cobra.Command, args []string) error {
	a, err := parseOperand(args[0])
	if err != nil {
		return err
	}
	b, err := parseOperand(args[1])
	if err != nil {
		return err
	}
	g, err := engine.GCD(a, b)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), g)
	return err
}

func parseOperand(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("operand %q is not an integer", s)
	}
	return v, nil
}

func init() {
	Root.AddCommand(GCD)
}
