package cmd

import (
	"errors"
	"fmt"
	"strings"

	"chatbot/internal/service"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	var showRule bool

	cmd := &cobra.Command{
		Use:         "ask [message...]",
		Short:       "Print the reply for a message without logging it",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfig": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			if message == "" {
				return errors.New("no message provided")
			}
			reply := service.NewResponder().Match(message)
			if showRule {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] ", reply.Rule)
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showRule, "rule", false, "prefix the reply with the name of the matched rule")
	return cmd
}
