package commands

import (
	"github.com/spf13/cobra"

	"github.com/pgazmuri/agentswarm/coordinator"
	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/specialist"
)

var itopsCmd = &cobra.Command{
	Use:   "itops",
	Short: "Start the IT incident response assistant",
	Long: `Starts an interactive session with the IT operations deployment:
investigator, remediation and analysis specialists behind a routing
coordinator, working against a simulated incident.`,
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
		specialist.RegisterITOps(coord, specialist.Config{
			Client:            client,
			Mode:              core.AddressingDirect,
			MaxToolIterations: cfg.MaxToolIterations,
			Logger:            logger,
			Metrics:           m,
		})

		return runREPL(coord, "IT Incident Response Assistant", []string{
			`"Users are reporting timeouts on the web tier, what's going on?"`,
			`"Why is SQL-PROD-01 unreachable?"`,
		})
	},
}
