package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"binimg/carrier"
	"binimg/internal/logger"
	"binimg/internal/pipeline"
)

type decodeOptions struct {
	decompress bool
}

func newDecodeCmd(g *globalOptions) *cobra.Command {
	opts := &decodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode <container> [output]",
		Short: "Extract a hidden file",
		Long: `Extract the file hidden in a container.

Without an output path the file is written to the current directory as
decoded.<stored name>.

Examples:
  binimg decode photo.stego.png
  binimg decode song.stego.wav notes.txt --decompress`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			return runDecode(cmd, g, opts, args[0], output)
		},
	}

	cmd.Flags().BoolVar(&opts.decompress, "decompress", false, "decompress payloads stored with a .zst name")

	return cmd
}

func runDecode(cmd *cobra.Command, g *globalOptions, opts *decodeOptions, containerPath, output string) error {
	cfg, err := g.setup()
	if err != nil {
		return err
	}

	c, err := carrier.Load(containerPath)
	if err != nil {
		return err
	}

	popts := pipelineOptions(cfg, nil)
	popts.Decompress = opts.decompress

	res, err := pipeline.Decode(c, popts)
	if err != nil {
		return err
	}

	if output == "" {
		output = res.File.Name
	}
	if err := res.File.Save(output); err != nil {
		return err
	}
	logger.Info("Payload written", logger.KeyOutput, output)

	printTable(cmd.OutOrStdout(), [][2]string{
		{"Output", output},
		{"Stored name", res.Stored},
		{"Size", strconv.Itoa(len(res.File.Data)) + " bytes"},
		{"BLAKE3", res.Digest},
	})
	return nil
}
