package cli

import (
	"fmt"

	"github.com/soyeahso/crowelogic-gateway/internal/api"
	"github.com/soyeahso/crowelogic-gateway/internal/client"
	"github.com/spf13/cobra"
)

func addURLFlag(cmd *cobra.Command, url *string) {
	cmd.Flags().StringVar(url, "url", "", "gateway base URL (default $"+client.EnvURL+")")
}

func newHealthCmd() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that a gateway is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(url)
			if err != nil {
				return err
			}
			status, err := c.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status)
			return nil
		},
	}
	addURLFlag(cmd, &url)
	return cmd
}

func newChatCmd() *cobra.Command {
	var url, system string
	cmd := &cobra.Command{
		Use:   "chat <prompt>",
		Short: "Send a chat prompt through the gateway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(url)
			if err != nil {
				return err
			}
			log.Debug().Int("promptLen", len(args[0])).Msg("sending chat")
			out, err := c.Chat(cmd.Context(), args[0], system)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	addURLFlag(cmd, &url)
	cmd.Flags().StringVarP(&system, "system", "s", "", "system prompt")
	return cmd
}

func newAgentCmd() *cobra.Command {
	var url, system, file string
	cmd := &cobra.Command{
		Use:   "agent <agent> <prompt>",
		Short: "Run a named agent through the gateway",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(url)
			if err != nil {
				return err
			}
			log.Debug().Str("agent", args[0]).Msg("running agent")
			out, err := c.Agent(cmd.Context(), api.AgentRequest{
				Agent:    args[0],
				Prompt:   args[1],
				FilePath: file,
				System:   system,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	addURLFlag(cmd, &url)
	cmd.Flags().StringVarP(&file, "file", "f", "", "file for the agent to work on")
	cmd.Flags().StringVarP(&system, "system", "s", "", "system prompt")
	return cmd
}

func newDoctorCmd() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run the CLI's diagnostics through the gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(url)
			if err != nil {
				return err
			}
			out, err := c.Doctor(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	addURLFlag(cmd, &url)
	return cmd
}
