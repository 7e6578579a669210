package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"binimg/carrier"
	"binimg/internal/logger"
)

const (
	defaultGenerateWidth  = 400
	defaultGenerateHeight = 200
)

type generateOptions struct {
	width  int
	height int
	seed   int64
}

func newGenerateCmd(g *globalOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <output>",
		Short: "Write a synthetic PNG carrier",
		Long: `Write a flat-coloured PNG with a random alpha channel, useful for trying
binimg without a photo at hand. The output is always PNG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := g.setup(); err != nil {
				return err
			}
			if opts.width <= 0 || opts.height <= 0 {
				return fmt.Errorf("width and height must be positive, got %dx%d", opts.width, opts.height)
			}
			seed := opts.seed
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}

			c := carrier.Generate(opts.width, opts.height, seed)
			if err := c.Save(args[0]); err != nil {
				return err
			}
			logger.Info("Carrier generated",
				logger.KeyOutput, args[0],
				logger.KeyCarrierLen, c.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %dx%d carrier to %s (%d carrier bytes)\n",
				opts.width, opts.height, args[0], c.Len())
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", defaultGenerateWidth, "image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", defaultGenerateHeight, "image height in pixels")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed for the alpha channel (default: time-based)")

	return cmd
}
