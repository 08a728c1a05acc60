package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youruser/cardforge/internal/cards"
)

// langsCmd lists the available translations
var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List available translations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		langs, err := cards.Sources{Root: sourcesPath}.Languages()
		if err != nil {
			return err
		}
		for _, l := range langs {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(langsCmd)
}
