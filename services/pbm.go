package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/logging"
	"github.com/pgazmuri/agentswarm/model"
)

// PBMOptions configures the mock pharmacy benefit manager.
type PBMOptions struct {
	// Client, when set, is used to synthesize realistic lookup and pricing
	// payloads. Failures fall back to the built-in fixtures, so the service
	// works offline.
	Client model.CompletionClient
	Logger logging.Logger
}

// PBM is a simulated pharmacy benefit manager backing the healthcare
// specialists. All methods are safe for concurrent use.
type PBM struct {
	client model.CompletionClient
	logger logging.Logger
}

// NewPBM constructs the mock PBM service.
func NewPBM(optFns ...func(o *PBMOptions)) *PBM {
	opts := PBMOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &PBM{client: opts.Client, logger: opts.Logger}
}

// NDCLookup resolves a drug query to candidate drug codes. With a completion
// client configured it asks the model for realistic candidates; otherwise,
// or on any failure, it serves the built-in fixture table.
func (p *PBM) NDCLookup(ctx context.Context, query string, mode SearchMode) NDCLookupResult {
	if p.client != nil {
		if result, err := p.generateLookup(ctx, query, mode); err == nil {
			return result
		} else {
			p.logger.Warn("pbm.ndc_lookup.generate_failed", "error", err.Error())
		}
	}
	return p.fallbackLookup(query, mode)
}

func (p *PBM) generateLookup(ctx context.Context, query string, mode SearchMode) (NDCLookupResult, error) {
	prompt := fmt.Sprintf(`You are a pharmaceutical database API. Generate a realistic JSON response for an NDC lookup.
Query: %q
Search mode: %s

Return 3-6 realistic drugs that could match this query. Each drug has fields:
ndc (format 12345-678-90), drug_name, strength, dosage_form, brand_generic ("brand" or "generic"), match (0.0-1.0).

Return only the JSON array of drugs, no other text.`, query, mode)

	raw, err := p.completeJSON(ctx, prompt)
	if err != nil {
		return NDCLookupResult{}, err
	}
	var records []DrugRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return NDCLookupResult{}, fmt.Errorf("parse lookup payload: %w", err)
	}
	return NDCLookupResult{
		Results: records,
		Context: fmt.Sprintf("NDC lookup performed for %q using %s mode. Found %d results.", query, mode, len(records)),
	}, nil
}

var fixtureDrugs = map[string][]DrugRecord{
	"metformin": {
		{NDC: "00093-7267-01", DrugName: "Metformin HCl 500 mg", Strength: "500 mg", DosageForm: "tablet", BrandGeneric: "generic", Match: 0.95},
		{NDC: "00093-7268-01", DrugName: "Metformin HCl 850 mg", Strength: "850 mg", DosageForm: "tablet", BrandGeneric: "generic", Match: 0.90},
		{NDC: "00003-0284-11", DrugName: "Glucophage 500 mg", Strength: "500 mg", DosageForm: "tablet", BrandGeneric: "brand", Match: 0.85},
	},
	"lipitor": {
		{NDC: "00071-0155-23", DrugName: "Lipitor 20 mg", Strength: "20 mg", DosageForm: "tablet", BrandGeneric: "brand", Match: 0.98},
		{NDC: "00093-7270-01", DrugName: "Atorvastatin 20 mg", Strength: "20 mg", DosageForm: "tablet", BrandGeneric: "generic", Match: 0.85},
	},
	"advair": {
		{NDC: "00173-0715-20", DrugName: "Advair Diskus 250/50", Strength: "250/50 mcg", DosageForm: "inhalation powder", BrandGeneric: "brand", Match: 0.95},
	},
}

func (p *PBM) fallbackLookup(query string, mode SearchMode) NDCLookupResult {
	queryLower := strings.ToLower(query)
	var results []DrugRecord
	for name, records := range fixtureDrugs {
		if strings.Contains(queryLower, name) || strings.Contains(name, queryLower) {
			results = append(results, records...)
		}
	}
	if len(results) == 0 {
		results = []DrugRecord{
			{NDC: "12345-678-90", DrugName: "Generic Drug A", Strength: "10 mg", DosageForm: "tablet", BrandGeneric: "generic", Match: 0.6},
			{NDC: "12345-678-91", DrugName: "Brand Drug B", Strength: "20 mg", DosageForm: "capsule", BrandGeneric: "brand", Match: 0.5},
		}
	}
	return NDCLookupResult{
		Results: results,
		Context: fmt.Sprintf("Fallback NDC lookup for %q using %s mode. Found %d results.", query, mode, len(results)),
	}
}

// CalculateRxPrice produces a full pricing breakdown for a fill. With a
// completion client configured the breakdown is synthesized; otherwise it
// is derived deterministically from the drug code so tests are stable.
func (p *PBM) CalculateRxPrice(ctx context.Context, ndc, memberID string) RxPrice {
	if p.client != nil {
		if price, err := p.generatePrice(ctx, ndc, memberID); err == nil {
			return price
		} else {
			p.logger.Warn("pbm.rx_price.generate_failed", "error", err.Error())
		}
	}
	return p.fallbackPrice(ndc, memberID)
}

func (p *PBM) generatePrice(ctx context.Context, ndc, memberID string) (RxPrice, error) {
	prompt := fmt.Sprintf(`You are a PBM pricing system. Generate a realistic prescription pricing response.

NDC: %s
Member ID: %s

Use realistic pharmaceutical pricing (generic $5-50 member cost, brand $25-200, specialty $100-500+),
dispensing fees of $1-3, formulary tiers 1-4, days supply of 30/60/90.

Return ONLY a valid JSON object with fields: member_cost, plan_paid, pricing_basis, drug_cost,
dispensing_fee, total_cost, copay, coinsurance, deductible_applied, oop_applied, formulary_tier,
formulary_status, days_supply, quantity, refills_remaining, coupon_eligible, coupon_discount,
notes, warnings, context. The context field explains step by step how the member cost was derived.`, ndc, memberID)

	raw, err := p.completeJSON(ctx, prompt)
	if err != nil {
		return RxPrice{}, err
	}
	var price RxPrice
	if err := json.Unmarshal([]byte(raw), &price); err != nil {
		return RxPrice{}, fmt.Errorf("parse pricing payload: %w", err)
	}
	return price, nil
}

func (p *PBM) fallbackPrice(ndc, memberID string) RxPrice {
	// Derive stable numbers from the code so repeated calls agree.
	var seed int
	for _, r := range ndc {
		seed += int(r)
	}
	drugCost := 15.0 + float64(seed%486)
	dispensingFee := 1.50 + float64(seed%150)/100
	totalCost := round2(drugCost + dispensingFee)

	coinsurance := 0.20
	copay := round2(minFloat(35.0, drugCost*0.25))
	memberCost := round2(maxFloat(minFloat(copay, drugCost*coinsurance), 1.0))
	planPaid := round2(maxFloat(totalCost-memberCost, 0))

	tier := fmt.Sprintf("Tier %d", seed%4+1)
	return RxPrice{
		MemberCost:       memberCost,
		PlanPaid:         planPaid,
		PricingBasis:     "AWP-15%",
		DrugCost:         round2(drugCost),
		DispensingFee:    round2(dispensingFee),
		TotalCost:        totalCost,
		Copay:            copay,
		Coinsurance:      coinsurance,
		FormularyTier:    tier,
		FormularyStatus:  "covered",
		DaysSupply:       30,
		Quantity:         30,
		RefillsRemaining: seed % 6,
		CouponEligible:   seed%2 == 0,
		Notes:            "Fallback pricing calculation",
		Warnings:         []string{"Generated using fallback pricing system"},
		Context:          fmt.Sprintf("Fallback price calculated for NDC %s for member %s.", ndc, memberID),
	}
}

var alternativeMap = map[string][]string{
	"00093-7267-01": {"00093-7268-01", "00003-0284-11", "60505-0234-01"},
	"00071-0155-23": {"00093-7270-01", "16729-0123-01", "43063-0456-12"},
	"00173-0715-20": {"00078-0123-45", "54868-0789-01"},
}

// FormularyAlternatives returns alternative drug codes covered under a plan.
func (p *PBM) FormularyAlternatives(planID, ndc string) ([]string, string) {
	alternatives := alternativeMap[ndc]
	if len(alternatives) == 0 {
		if parts := strings.Split(ndc, "-"); len(parts) == 3 {
			alternatives = []string{parts[0] + "-1001-10", parts[0] + "-1002-20"}
		}
	}
	context := fmt.Sprintf("Formulary alternatives found for NDC %s under plan %s. Found %d alternatives.",
		ndc, planID, len(alternatives))
	return alternatives, context
}

// completeJSON runs one completion and strips markdown fencing from the reply.
func (p *PBM) completeJSON(ctx context.Context, prompt string) (string, error) {
	req := model.Request{
		Entries: []core.Entry{core.NewUserTurn(prompt)},
	}
	respCh, errCh := p.client.Generate(ctx, req)
	var final model.Response
	for r := range respCh {
		if !r.Partial {
			final = r
		}
	}
	if err := <-errCh; err != nil {
		return "", err
	}
	return stripFence(final.Content), nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
