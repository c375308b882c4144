package services

import (
	"fmt"
	"sort"
	"strings"
)

// Clinical answers drug safety questions: interactions, alternatives,
// dosing and coverage criteria. Data is a small curated fixture set.
type Clinical struct {
	interactions map[string]DrugInteraction
	alternatives map[string][]string
	dosing       map[string]string
	criteria     map[string]string
}

// NewClinical builds the clinical knowledge base.
func NewClinical() *Clinical {
	return &Clinical{
		interactions: map[string]DrugInteraction{
			pairKey("warfarin", "aspirin"): {
				DrugA: "warfarin", DrugB: "aspirin", Severity: "major",
				Description:    "Combined use substantially increases bleeding risk.",
				Recommendation: "Avoid combination unless directed by the prescriber; monitor INR closely.",
			},
			pairKey("metformin", "contrast dye"): {
				DrugA: "metformin", DrugB: "contrast dye", Severity: "moderate",
				Description:    "Iodinated contrast can precipitate lactic acidosis in metformin users.",
				Recommendation: "Hold metformin 48 hours around contrast imaging.",
			},
			pairKey("lisinopril", "potassium"): {
				DrugA: "lisinopril", DrugB: "potassium", Severity: "moderate",
				Description:    "ACE inhibitors with potassium supplements can cause hyperkalemia.",
				Recommendation: "Monitor serum potassium; avoid salt substitutes.",
			},
		},
		alternatives: map[string][]string{
			"lipitor":    {"atorvastatin (generic)", "rosuvastatin", "pravastatin"},
			"nexium":     {"esomeprazole (generic)", "omeprazole", "pantoprazole"},
			"advair":     {"fluticasone/salmeterol (generic)", "Symbicort", "Breo Ellipta"},
			"metformin":  {"metformin ER", "glipizide", "sitagliptin"},
		},
		dosing: map[string]string{
			"metformin": "Start 500 mg twice daily with meals; titrate weekly to max 2550 mg/day. Reduce in renal impairment.",
			"lipitor":   "10-80 mg once daily at any time of day. Start 10-20 mg for most indications.",
			"warfarin":  "Individualized by INR target; typical start 2-5 mg daily with INR checks every 2-3 days initially.",
		},
		criteria: map[string]string{
			"humira":   "Requires prior authorization: documented failure of two conventional DMARDs and TB screening.",
			"ozempic":  "Requires type 2 diabetes diagnosis and metformin trial unless contraindicated.",
			"lipitor":  "No clinical criteria; covered on all plan formularies as Tier 2.",
		},
	}
}

// CheckInteractions evaluates every pair of the given drugs.
func (c *Clinical) CheckInteractions(drugs []string) []DrugInteraction {
	var found []DrugInteraction
	for i := 0; i < len(drugs); i++ {
		for j := i + 1; j < len(drugs); j++ {
			if inter, ok := c.interactions[pairKey(drugs[i], drugs[j])]; ok {
				found = append(found, inter)
			}
		}
	}
	return found
}

// TherapeuticAlternatives lists substitutes for a drug.
func (c *Clinical) TherapeuticAlternatives(drug string) ([]string, bool) {
	alts, ok := c.alternatives[strings.ToLower(strings.TrimSpace(drug))]
	return alts, ok
}

// DosingGuidance returns dosing notes for a drug.
func (c *Clinical) DosingGuidance(drug string) (string, bool) {
	guidance, ok := c.dosing[strings.ToLower(strings.TrimSpace(drug))]
	return guidance, ok
}

// ClinicalCriteria returns the coverage criteria for a drug.
func (c *Clinical) ClinicalCriteria(drug string) string {
	if criteria, ok := c.criteria[strings.ToLower(strings.TrimSpace(drug))]; ok {
		return criteria
	}
	return fmt.Sprintf("No special clinical criteria on file for %s.", drug)
}

// CheckAllergies flags known cross-sensitivities between a drug and the
// member's recorded allergies.
func (c *Clinical) CheckAllergies(drug string, allergies []string) map[string]any {
	drugLower := strings.ToLower(drug)
	var alerts []string
	for _, allergy := range allergies {
		a := strings.ToLower(allergy)
		if strings.Contains(drugLower, a) {
			alerts = append(alerts, fmt.Sprintf("%s matches recorded allergy %q", drug, allergy))
		}
		if a == "penicillin" && strings.Contains(drugLower, "cephalexin") {
			alerts = append(alerts, "Possible cross-reactivity between penicillin allergy and cephalosporins")
		}
	}
	return map[string]any{
		"drug":    drug,
		"alerts":  alerts,
		"safe":    len(alerts) == 0,
		"checked": allergies,
	}
}

func pairKey(a, b string) string {
	pair := []string{strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))}
	sort.Strings(pair)
	return pair[0] + "|" + pair[1]
}
