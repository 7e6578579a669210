package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"binimg/carrier"
	"binimg/internal/pipeline"
)

func newCapacityCmd(g *globalOptions) *cobra.Command {
	var nameLength int

	cmd := &cobra.Command{
		Use:   "capacity <container>",
		Short: "Show how large a file a carrier can hold",
		Long: `Show the carrier size, the header cost and the largest payload the
container can hold under a name of --name-length bytes (default: the length
of the configured default name).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.setup()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("name-length") {
				nameLength = len(cfg.Encode.DefaultName)
			}

			c, err := carrier.Load(args[0])
			if err != nil {
				return err
			}
			r, err := pipeline.Capacity(c, nameLength)
			if err != nil {
				return err
			}

			printTable(cmd.OutOrStdout(), [][2]string{
				{"Format", r.Format + " (" + r.Kind + ")"},
				{"Carrier bytes", strconv.Itoa(r.CarrierBytes)},
				{"Components", strconv.Itoa(r.Components)},
				{"Units", strconv.Itoa(r.Units)},
				{"Name length", strconv.Itoa(r.NameLength)},
				{"Header cost", strconv.FormatUint(r.HeaderCost, 10)},
				{"Max payload", strconv.Itoa(r.MaxPayload) + " bytes"},
			})
			return nil
		},
	}

	cmd.Flags().IntVar(&nameLength, "name-length", 0, "length of the name to be stored")

	return cmd
}
