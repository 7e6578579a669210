package commands

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"binimg/carrier"
	"binimg/internal/logger"
	"binimg/internal/pipeline"
	"binimg/payload"
)

type encodeOptions struct {
	output   string
	name     string
	compress bool
}

func newEncodeCmd(g *globalOptions) *cobra.Command {
	opts := &encodeOptions{}

	cmd := &cobra.Command{
		Use:   "encode <container> <input>",
		Short: "Hide a file inside a carrier",
		Long: `Hide the input file, and its name, inside the container.

The rest of the carrier is filled with repeated copies of the payload. The
result is written to <container>.stego.<ext>, where <ext> is png for images and wav for audio.

Examples:
  # Hide notes.txt in photo.jpg, writing photo.stego.png
  binimg encode photo.jpg notes.txt

  # Store under another name, compressed
  binimg encode song.wav notes.txt --name todo.txt --compress -o out.wav`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, g, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path (default: <container>.stego.<ext>)")
	cmd.Flags().StringVar(&opts.name, "name", "", "name to store instead of the input's base name")
	cmd.Flags().BoolVar(&opts.compress, "compress", false, "zstd-compress the input before hiding it")

	return cmd
}

func runEncode(cmd *cobra.Command, g *globalOptions, opts *encodeOptions, containerPath, inputPath string) error {
	cfg, err := g.setup()
	if err != nil {
		return err
	}

	c, err := carrier.Load(containerPath)
	if err != nil {
		return err
	}
	f, err := payload.Load(inputPath)
	if err != nil {
		return err
	}
	if opts.name != "" {
		f.Name = opts.name
	}

	logger.Debug("Carrier loaded",
		logger.KeyCarrier, containerPath,
		logger.KeyFormat, c.Format,
		logger.KeyCarrierLen, c.Len())

	popts := pipelineOptions(cfg, nil)
	if cmd.Flags().Changed("compress") {
		popts.Compress = opts.compress
	}

	res, err := pipeline.Encode(c, f, popts)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = stegoPath(containerPath, c.OutputExt())
	}
	if err := c.Save(output); err != nil {
		return err
	}
	logger.Info("Stego carrier written", logger.KeyOutput, output)

	printTable(cmd.OutOrStdout(), [][2]string{
		{"Output", output},
		{"Stored name", res.Stats.Name},
		{"Payload", fmt.Sprintf("%d bytes", res.Size)},
		{"Carrier", fmt.Sprintf("%d bytes (%s)", c.Len(), c.Format)},
		{"Redundant copies", strconv.Itoa(res.Stats.Copies)},
		{"PSNR", formatPSNR(res.PSNR)},
		{"BLAKE3", res.Digest},
	})
	return nil
}

// stegoPath turns dir/photo.jpg into dir/photo.stego.png.
func stegoPath(containerPath, ext string) string {
	base := strings.TrimSuffix(containerPath, filepath.Ext(containerPath))
	return base + ".stego" + ext
}

func formatPSNR(psnr float64) string {
	if math.IsInf(psnr, 1) {
		return "inf"
	}
	return strconv.FormatFloat(psnr, 'f', 2, 64) + " dB"
}
