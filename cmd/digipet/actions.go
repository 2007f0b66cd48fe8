package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cbodonnell/digipet/pkg/client"
	"github.com/cbodonnell/digipet/pkg/digipet"
	"github.com/cbodonnell/digipet/pkg/messages"
	"github.com/spf13/cobra"
)

var (
	serverURL    string
	historyLimit int
)

func defaultServerURL() string {
	if v := os.Getenv("DIGIPET_SERVER_URL"); v != "" {
		return v
	}
	return "http://localhost:9090"
}

func newClient() *client.Client {
	return client.New(serverURL, nil)
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), client.DefaultTimeout)
}

func printResponse(out io.Writer, response *messages.Response) {
	fmt.Fprintln(out, response.Message)
	if response.Digipet != nil {
		printPet(out, "  ", *response.Digipet)
	}
}

func printPet(out io.Writer, indent string, pet digipet.Pet) {
	fmt.Fprintf(out, "%shappiness:  %3d\n", indent, pet.Happiness)
	fmt.Fprintf(out, "%snutrition:  %3d\n", indent, pet.Nutrition)
	fmt.Fprintf(out, "%sdiscipline: %3d\n", indent, pet.Discipline)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your digipet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		response, err := newClient().Digipet(ctx)
		if err != nil {
			return err
		}
		printResponse(cmd.OutOrStdout(), response)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent actions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		events, err := newClient().History(ctx, historyLimit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, event := range events {
			result := "ok"
			if !event.Legal {
				result = "rejected: " + event.Reason
			}
			at := time.UnixMilli(event.Timestamp).Format(time.RFC3339)
			fmt.Fprintf(out, "%s %-6s %s\n", at, event.Action, result)
		}
		return nil
	},
}

// newActionCmd builds the subcommand performing action.
func newActionCmd(action digipet.Action) *cobra.Command {
	return &cobra.Command{
		Use:   string(action),
		Short: fmt.Sprintf("%s your digipet", action),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			response, err := newClient().Do(ctx, action)
			if err != nil {
				return err
			}
			printResponse(cmd.OutOrStdout(), response)
			return nil
		},
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server-url", defaultServerURL(), "Digipet server URL")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of actions to show")

	rootCmd.AddCommand(statusCmd, historyCmd)
	for _, action := range digipet.Actions() {
		rootCmd.AddCommand(newActionCmd(action))
	}
}
