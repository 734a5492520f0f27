package command

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/coinbase/cb-gcd-go/pkg/gcd"
	"github.com/coinbase/cb-gcd-go/pkg/gcd/logging"
)

var (
	configPath string
	kernelMode string
	verbose    bool

	engine *gcd.Engine

	Root = &cobra.Command{
		Use:           "cbgcd",
		Short:         "Computes greatest common divisors of arbitrary-precision integers.",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := gcd.DefaultConfig()
			if configPath != "" {
				loaded, err := gcd.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("kernel") {
				cfg.KernelMode = gcd.KernelMode(kernelMode)
			}
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			cfg.Logger = logging.New(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			e, err := gcd.New(cfg)
			if err != nil {
				return err
			}
			engine = e
			return nil
		},
	}
)

func init() {
	Root.PersistentFlags().StringVar(&configPath, "config", configPath,
		"path to a TOML tuning file")
	Root.PersistentFlags().StringVar(&kernelMode, "kernel", string(gcd.KernelAuto),
		"word kernel: auto, native or arithmetic")
	Root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", verbose,
		"log engine diagnostics at debug level")
}
