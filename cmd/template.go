package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/dsamentor/internal/lang"
)

var templateCmd = &cobra.Command{
	Use:       "template <language>",
	Short:     "Print the starter solution for a language",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"python", "java", "cpp"},
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := lang.ParseSupported(args[0])
		if err != nil {
			return err
		}
		text := lang.Starter(l)
		if mustBool(cmd, "blank") {
			text = lang.Reset(l)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	templateCmd.Flags().Bool("blank", false, "Print the empty template instead of the demo solution")
}
