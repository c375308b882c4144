package commands

import (
	"github.com/spf13/cobra"

	"github.com/pgazmuri/agentswarm/coordinator"
	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/specialist"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the pharmacy benefits assistant",
	Long: `Starts an interactive session with the healthcare deployment:
pricing, authentication, pharmacy, benefits and clinical specialists behind a
routing coordinator.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)
		m := setupMetrics(cfg, logger)

		client, err := newCompletionClient(cfg)
		if err != nil {
			return err
		}

		coord := coordinator.New(client, func(o *coordinator.Options) {
			if cfg.MaxHandoffs > 0 {
				o.MaxHandoffs = cfg.MaxHandoffs
			}
			o.Logger = logger
			o.Metrics = m
		})
		specialist.RegisterHealthcare(coord, specialist.Config{
			Client:            client,
			Mode:              core.AddressingDirect,
			MaxToolIterations: cfg.MaxToolIterations,
			Logger:            logger,
			Metrics:           m,
		})

		return runREPL(coord, "Pharmacy Benefits Assistant", []string{
			`"How much does metformin cost?"`,
			`"Is my Lipitor refill ready?"`,
			`"Does my plan cover Humira?"`,
		})
	},
}
