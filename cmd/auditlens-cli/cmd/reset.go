package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"auditlens/internal/application/commands"
	"auditlens/internal/logging"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset --yes",
	Short: "Remove every imported log group",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return errors.New("reset removes every log group in this session: pass --yes to confirm")
		}

		ctx := logging.WithOperation(cmd.Context(), "reset")
		result, err := commands.NewResetCommand(st).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "confirm the reset")
	rootCmd.AddCommand(resetCmd)
}
