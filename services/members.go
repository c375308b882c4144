package services

import (
	"fmt"
	"sync"
)

// Members is the membership directory behind authentication, eligibility and
// benefit lookups. The demo member DEMO123456 (DOB 1985-03-15) always
// verifies; MFA codes are accepted when they match the issued code.
type Members struct {
	mu      sync.Mutex
	members map[string]*Member
	plans   map[string]PlanBenefits
	mfa     map[string]string
}

// NewMembers builds the directory with its demo fixtures.
func NewMembers() *Members {
	return &Members{
		members: map[string]*Member{
			"DEMO123456": {
				MemberID:    "DEMO123456",
				FirstName:   "Demo",
				LastName:    "User",
				DateOfBirth: "1985-03-15",
				PlanID:      "PLAN-GOLD-2025",
				Phone:       "555-0100",
			},
			"MEM789012": {
				MemberID:    "MEM789012",
				FirstName:   "Jordan",
				LastName:    "Alvarez",
				DateOfBirth: "1972-11-02",
				PlanID:      "PLAN-SILVER-2025",
				Phone:       "555-0170",
			},
		},
		plans: map[string]PlanBenefits{
			"PLAN-GOLD-2025": {
				PlanID:        "PLAN-GOLD-2025",
				PlanName:      "Gold PPO",
				Deductible:    500,
				DeductibleMet: 200,
				OOPMax:        3000,
				OOPMet:        450,
				TierCopays: map[string]float64{
					"Tier 1": 10, "Tier 2": 30, "Tier 3": 60, "Tier 4": 120,
				},
				MailOrderDiscount: 0.10,
				PriorAuthRequired: []string{"specialty biologics", "quantities over 90 days"},
			},
			"PLAN-SILVER-2025": {
				PlanID:        "PLAN-SILVER-2025",
				PlanName:      "Silver HMO",
				Deductible:    1500,
				DeductibleMet: 1500,
				OOPMax:        6000,
				OOPMet:        2100,
				TierCopays: map[string]float64{
					"Tier 1": 15, "Tier 2": 45, "Tier 3": 90, "Tier 4": 200,
				},
				MailOrderDiscount: 0.05,
				PriorAuthRequired: []string{"brand drugs with generic equivalents", "specialty biologics"},
			},
		},
		mfa: make(map[string]string),
	}
}

// VerifyIdentity checks a member id and date of birth against the directory.
func (m *Members) VerifyIdentity(memberID, dateOfBirth string) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.members[memberID]
	if !ok || member.DateOfBirth != dateOfBirth {
		return map[string]any{
			"verified":  false,
			"member_id": memberID,
			"message":   "Identity verification failed. Please check the member ID and date of birth.",
			"needs_mfa": false,
		}
	}
	member.Verified = true
	return map[string]any{
		"verified":  true,
		"member_id": memberID,
		"name":      member.FirstName + " " + member.LastName,
		"plan_id":   member.PlanID,
		"needs_mfa": false,
	}
}

// SendMFACode issues a one-time code for the member via the given method.
// The mock always issues "123456".
func (m *Members) SendMFACode(memberID, method string) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.members[memberID]; !ok {
		return map[string]any{"sent": false, "message": fmt.Sprintf("Unknown member %s", memberID)}
	}
	m.mfa[memberID] = "123456"
	return map[string]any{
		"sent":    true,
		"method":  method,
		"message": fmt.Sprintf("A verification code was sent via %s.", method),
	}
}

// VerifyMFACode checks a one-time code previously issued for the member.
func (m *Members) VerifyMFACode(memberID, code string) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	issued, ok := m.mfa[memberID]
	if !ok || issued != code {
		return map[string]any{"verified": false, "message": "The code is incorrect or expired."}
	}
	delete(m.mfa, memberID)
	if member, exists := m.members[memberID]; exists {
		member.Verified = true
	}
	return map[string]any{"verified": true, "member_id": memberID}
}

// CheckEligibility reports plan eligibility for a member.
func (m *Members) CheckEligibility(memberID string) EligibilityResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.members[memberID]
	if !ok {
		return EligibilityResult{
			MemberID: memberID,
			Eligible: false,
			Context:  fmt.Sprintf("No member found with id %s.", memberID),
		}
	}
	return EligibilityResult{
		MemberID:      memberID,
		Eligible:      true,
		PlanID:        member.PlanID,
		EffectiveDate: "2025-01-01",
		TermDate:      "2025-12-31",
		Context:       fmt.Sprintf("Member %s is eligible under plan %s.", memberID, member.PlanID),
	}
}

// GetPlanBenefits returns the cost sharing structure for a plan.
func (m *Members) GetPlanBenefits(planID string) (PlanBenefits, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	plan, ok := m.plans[planID]
	if ok {
		plan.Context = fmt.Sprintf("Benefit structure for plan %s (%s).", plan.PlanID, plan.PlanName)
	}
	return plan, ok
}

// GetUtilization summarizes a member's year-to-date spending.
func (m *Members) GetUtilization(memberID string) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.members[memberID]
	if !ok {
		return map[string]any{"member_id": memberID, "error": "member not found"}
	}
	plan := m.plans[member.PlanID]
	return map[string]any{
		"member_id":        memberID,
		"plan_id":          member.PlanID,
		"deductible":       plan.Deductible,
		"deductible_met":   plan.DeductibleMet,
		"oop_max":          plan.OOPMax,
		"oop_met":          plan.OOPMet,
		"claims_ytd":       7,
		"total_spend_ytd":  1240.50,
		"member_spend_ytd": plan.OOPMet,
	}
}

// IsVerified reports whether the member has completed identity verification.
func (m *Members) IsVerified(memberID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.members[memberID]
	return ok && member.Verified
}
