package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// -------------------- PBM --------------------

func TestNDCLookupFixture(t *testing.T) {
	pbm := NewPBM()

	result := pbm.NDCLookup(context.Background(), "metformin", SearchModeSearch)
	assert.NotEmpty(t, result.Results)
	assert.Equal(t, "00093-7267-01", result.Results[0].NDC)

	// Unknown drugs still return candidates.
	result = pbm.NDCLookup(context.Background(), "obscuredrug", SearchModeSearch)
	assert.NotEmpty(t, result.Results)
}

func TestCalculateRxPriceDeterministic(t *testing.T) {
	pbm := NewPBM()

	a := pbm.CalculateRxPrice(context.Background(), "00093-7267-01", "DEMO123456")
	b := pbm.CalculateRxPrice(context.Background(), "00093-7267-01", "DEMO123456")
	assert.Equal(t, a, b)

	assert.Greater(t, a.MemberCost, 0.0)
	assert.GreaterOrEqual(t, a.TotalCost, a.MemberCost)
	assert.InDelta(t, a.TotalCost, a.MemberCost+a.PlanPaid, 0.011)
	assert.Equal(t, 30, a.DaysSupply)
}

func TestFormularyAlternatives(t *testing.T) {
	pbm := NewPBM()

	alts, _ := pbm.FormularyAlternatives("PLAN-GOLD-2025", "00093-7267-01")
	assert.NotEmpty(t, alts)

	// Unmapped codes get synthesized alternatives from the labeler segment.
	alts, _ = pbm.FormularyAlternatives("PLAN-GOLD-2025", "99999-111-22")
	assert.Len(t, alts, 2)
	assert.Contains(t, alts[0], "99999-")
}

// -------------------- Members --------------------

func TestVerifyIdentity(t *testing.T) {
	m := NewMembers()

	ok := m.VerifyIdentity("DEMO123456", "1985-03-15")
	assert.Equal(t, true, ok["verified"])
	assert.Equal(t, "PLAN-GOLD-2025", ok["plan_id"])

	bad := m.VerifyIdentity("DEMO123456", "1990-01-01")
	assert.Equal(t, false, bad["verified"])

	unknown := m.VerifyIdentity("NOBODY", "1985-03-15")
	assert.Equal(t, false, unknown["verified"])
}

func TestMFAFlow(t *testing.T) {
	m := NewMembers()

	sent := m.SendMFACode("DEMO123456", "sms")
	assert.Equal(t, true, sent["sent"])

	wrong := m.VerifyMFACode("DEMO123456", "000000")
	assert.Equal(t, false, wrong["verified"])

	right := m.VerifyMFACode("DEMO123456", "123456")
	assert.Equal(t, true, right["verified"])

	// Codes are single use.
	again := m.VerifyMFACode("DEMO123456", "123456")
	assert.Equal(t, false, again["verified"])
}

func TestCheckEligibilityAndBenefits(t *testing.T) {
	m := NewMembers()

	elig := m.CheckEligibility("DEMO123456")
	assert.True(t, elig.Eligible)
	assert.Equal(t, "PLAN-GOLD-2025", elig.PlanID)

	plan, ok := m.GetPlanBenefits("PLAN-GOLD-2025")
	assert.True(t, ok)
	assert.Equal(t, float64(10), plan.TierCopays["Tier 1"])

	_, ok = m.GetPlanBenefits("PLAN-NONE")
	assert.False(t, ok)
}

// -------------------- Pharmacy network --------------------

func TestPrescriptionStatus(t *testing.T) {
	n := NewPharmacyNetwork()

	rx, ok := n.PrescriptionStatus("RX1001")
	assert.True(t, ok)
	assert.Equal(t, "ready_for_pickup", rx.Status)

	_, ok = n.PrescriptionStatus("RX9999")
	assert.False(t, ok)
}

func TestRequestRefill(t *testing.T) {
	n := NewPharmacyNetwork()

	before, _ := n.PrescriptionStatus("RX1002")
	result := n.RequestRefill("RX1002")
	assert.Equal(t, true, result["accepted"])

	after, _ := n.PrescriptionStatus("RX1002")
	assert.Equal(t, before.RefillsLeft-1, after.RefillsLeft)
}

func TestRequestRefillExhausted(t *testing.T) {
	n := NewPharmacyNetwork()

	// RX1003 has no refills left; the request is rejected.
	result := n.RequestRefill("RX1003")
	assert.Equal(t, false, result["accepted"])
}

func TestFindPharmacies(t *testing.T) {
	n := NewPharmacyNetwork()
	pharmacies := n.FindPharmacies("")
	assert.NotEmpty(t, pharmacies)
}

// -------------------- Clinical --------------------

func TestCheckInteractions(t *testing.T) {
	c := NewClinical()

	hits := c.CheckInteractions([]string{"warfarin", "aspirin"})
	assert.Len(t, hits, 1)
	assert.Equal(t, "major", hits[0].Severity)

	// Order does not matter.
	hits = c.CheckInteractions([]string{"aspirin", "warfarin"})
	assert.Len(t, hits, 1)

	none := c.CheckInteractions([]string{"metformin", "lipitor"})
	assert.Empty(t, none)
}

func TestCheckAllergies(t *testing.T) {
	c := NewClinical()

	result := c.CheckAllergies("cephalexin", []string{"penicillin"})
	safe, _ := result["safe"].(bool)
	assert.False(t, safe)

	result = c.CheckAllergies("metformin", []string{"penicillin"})
	safe, _ = result["safe"].(bool)
	assert.True(t, safe)
}

// -------------------- Calculator --------------------

func TestCalculator(t *testing.T) {
	c := NewCalculator()

	assert.Equal(t, 3.0, c.Add(1, 2))
	assert.Equal(t, 20.0, c.Percentage(100, 20))
	assert.Equal(t, 10.0, c.ApplyMinimum(5, 10))
	assert.Equal(t, 35.0, c.ApplyMaximum(50, 35))

	q, err := c.Divide(5, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2.5, q)

	_, err = c.Divide(1, 0)
	assert.Error(t, err)
}
