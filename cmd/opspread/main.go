package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	// A missing .env is not an error; OPSPREAD_* variables may come from the shell.
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "opspread",
		Short: "Operator spreading in random Clifford circuits",
		Long: `opspread evolves a Pauli operator on a qubit chain through periods of
random two-qubit Clifford gates laid out in a brickwork pattern, and reports
the operator after every period.

The operator is tracked in a binary symplectic tableau, so chains of
hundreds of sites run in milliseconds.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newDecodeCmd(),
		newGatesCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			if jsonOut {
				json.NewEncoder(out).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(out, "opspread version %s\n", version)
			}
		},
	}
}
