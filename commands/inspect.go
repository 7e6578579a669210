package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"binimg/carrier"
	"binimg/internal/pipeline"
)

func newInspectCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <container>",
		Short: "Print the header of a container without extracting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.setup()
			if err != nil {
				return err
			}

			c, err := carrier.Load(args[0])
			if err != nil {
				return err
			}
			h, err := pipeline.Inspect(c, pipelineOptions(cfg, nil))
			if err != nil {
				return err
			}

			printTable(cmd.OutOrStdout(), [][2]string{
				{"Stored name", h.Name},
				{"Payload length", strconv.Itoa(h.PayloadLen) + " bytes"},
				{"Payload offset", strconv.Itoa(h.Offset)},
				{"Carrier bytes", strconv.Itoa(c.Len())},
			})
			return nil
		},
	}
}
