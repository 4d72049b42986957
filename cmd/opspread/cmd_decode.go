package main

import (
	"encoding/json"
	"fmt"

	"github.com/nvandessel/opspread/internal/pauli"
	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <pauli-string>",
		Short: "Show the composition and support of a Pauli string",
		Long: `Tally a literal Pauli string (letters I, X, Y, Z, any case) the same way
'opspread run' tallies the evolved operator.

Example:
  opspread decode IXYZI`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			labels, err := pauli.Parse(args[0])
			if err != nil {
				return err
			}
			counts := pauli.Tally(labels)
			left, right, ok := pauli.Support(labels)

			out := cmd.OutOrStdout()
			if jsonOut {
				result := map[string]interface{}{
					"pauli":  pauli.String(labels),
					"length": len(labels),
					"counts": counts,
					"weight": counts.Weight(),
				}
				if ok {
					result["left"] = left
					result["right"] = right
				}
				return json.NewEncoder(out).Encode(result)
			}

			fmt.Fprintf(out, "Pauli:   %s\n", pauli.String(labels))
			fmt.Fprintf(out, "Length:  %d\n", len(labels))
			fmt.Fprintf(out, "Counts:  I=%d X=%d Y=%d Z=%d\n", counts[pauli.I], counts[pauli.X], counts[pauli.Y], counts[pauli.Z])
			fmt.Fprintf(out, "Weight:  %d\n", counts.Weight())
			if ok {
				fmt.Fprintf(out, "Support: [%d, %d]\n", left, right)
			} else {
				fmt.Fprintln(out, "Support: (identity)")
			}
			return nil
		},
	}
}
