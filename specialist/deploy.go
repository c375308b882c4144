package specialist

import (
	"github.com/pgazmuri/agentswarm/coordinator"
	"github.com/pgazmuri/agentswarm/services"
)

// RegisterHealthcare wires the pharmacy benefits roster into a coordinator.
// The returned services are shared between agents so tests and CLI commands
// can inspect their state.
func RegisterHealthcare(c *coordinator.Coordinator, cfg Config) {
	pbm := services.NewPBM(func(o *services.PBMOptions) {
		o.Client = cfg.Client
		if cfg.Logger != nil {
			o.Logger = cfg.Logger
		}
	})
	members := services.NewMembers()
	network := services.NewPharmacyNetwork()
	clinical := services.NewClinical()
	calc := services.NewCalculator()

	c.Register(NewPricing(cfg, pbm, members, calc), PricingDescription)
	c.Register(NewAuthentication(cfg, members), AuthenticationDescription)
	c.Register(NewPharmacy(cfg, network), PharmacyDescription)
	c.Register(NewBenefits(cfg, members, pbm), BenefitsDescription)
	c.Register(NewClinical(cfg, clinical), ClinicalDescription)
}

// RegisterITOps wires the incident response roster into a coordinator and
// returns the shared simulated environment so callers can inspect recorded
// actions and resolution state.
func RegisterITOps(c *coordinator.Coordinator, cfg Config) *services.ITOps {
	ops := services.NewITOps(cfg.Logger)
	var env services.ITEnvironment

	c.Register(NewInvestigator(cfg, ops, env), InvestigatorDescription)
	c.Register(NewRemediation(cfg, ops), RemediationDescription)
	c.Register(NewAnalysis(cfg), AnalysisDescription)
	return ops
}
