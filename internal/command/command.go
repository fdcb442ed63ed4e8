package command

import (
	commandHandler "employeehub/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(NewCommand, commandHandler.NewSeedHandler)

type Command struct {
	seedCommandHandler *commandHandler.SeedHandler
}

// NewCommand .
func NewCommand(
	seedCommandHandler *commandHandler.SeedHandler,
) *Command {
	return &Command{
		seedCommandHandler: seedCommandHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	opts := commandHandler.SeedOptions{}
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "wait for the service to become healthy and load sample employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := command.seedCommandHandler.Seed(cmd.Context(), opts)
			if err != nil {
				return err
			}
			cmd.Printf("seed finished: %d created, %d failed\n", result.Created, result.Failed)
			return nil
		},
	}
	seedCmd.Flags().StringVar(&opts.BaseURL, "url", "http://localhost:8080", "service base url")
	seedCmd.Flags().StringVar(&opts.File, "file", "", "JSON array of employees to create instead of the built-in samples")
	seedCmd.Flags().DurationVar(&opts.Wait, "wait", commandHandler.DefaultSeedWait, "how long to wait for /health")

	rootCmd.AddCommand(seedCmd)
}
