package services

// SearchMode selects exact or fuzzy matching for drug lookups.
type SearchMode string

const (
	SearchModeExact  SearchMode = "exact"
	SearchModeSearch SearchMode = "search"
)

// DrugRecord is one row of a drug code lookup.
type DrugRecord struct {
	NDC          string  `json:"ndc"`
	DrugName     string  `json:"drug_name"`
	Strength     string  `json:"strength"`
	DosageForm   string  `json:"dosage_form"`
	BrandGeneric string  `json:"brand_generic"`
	Match        float64 `json:"match"`
}

// NDCLookupResult is the response of a drug code lookup.
type NDCLookupResult struct {
	Results []DrugRecord `json:"result"`
	Context string       `json:"context"`
}

// RxPrice is the full pricing breakdown for one prescription fill.
type RxPrice struct {
	MemberCost        float64  `json:"member_cost"`
	PlanPaid          float64  `json:"plan_paid"`
	PricingBasis      string   `json:"pricing_basis"`
	DrugCost          float64  `json:"drug_cost"`
	DispensingFee     float64  `json:"dispensing_fee"`
	TotalCost         float64  `json:"total_cost"`
	Copay             float64  `json:"copay"`
	Coinsurance       float64  `json:"coinsurance,omitempty"`
	DeductibleApplied float64  `json:"deductible_applied"`
	OOPApplied        float64  `json:"oop_applied"`
	FormularyTier     string   `json:"formulary_tier"`
	FormularyStatus   string   `json:"formulary_status"`
	DaysSupply        int      `json:"days_supply"`
	Quantity          int      `json:"quantity"`
	RefillsRemaining  int      `json:"refills_remaining"`
	CouponEligible    bool     `json:"coupon_eligible"`
	CouponDiscount    float64  `json:"coupon_discount,omitempty"`
	Notes             string   `json:"notes,omitempty"`
	Warnings          []string `json:"warnings,omitempty"`
	Context           string   `json:"context"`
}

// Member is a plan member on file.
type Member struct {
	MemberID    string `json:"member_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	PlanID      string `json:"plan_id"`
	Phone       string `json:"phone"`
	Verified    bool   `json:"verified"`
}

// EligibilityResult reports plan eligibility for a member.
type EligibilityResult struct {
	MemberID      string `json:"member_id"`
	Eligible      bool   `json:"eligible"`
	PlanID        string `json:"plan_id"`
	EffectiveDate string `json:"effective_date"`
	TermDate      string `json:"term_date"`
	Context       string `json:"context"`
}

// PlanBenefits describes a plan's cost sharing structure.
type PlanBenefits struct {
	PlanID            string             `json:"plan_id"`
	PlanName          string             `json:"plan_name"`
	Deductible        float64            `json:"deductible"`
	DeductibleMet     float64            `json:"deductible_met"`
	OOPMax            float64            `json:"oop_max"`
	OOPMet            float64            `json:"oop_met"`
	TierCopays        map[string]float64 `json:"tier_copays"`
	MailOrderDiscount float64            `json:"mail_order_discount"`
	PriorAuthRequired []string           `json:"prior_auth_required"`
	Context           string             `json:"context"`
}

// Prescription is one prescription on a member's profile.
type Prescription struct {
	RxNumber    string `json:"rx_number"`
	DrugName    string `json:"drug_name"`
	NDC         string `json:"ndc"`
	Status      string `json:"status"`
	Pharmacy    string `json:"pharmacy"`
	RefillsLeft int    `json:"refills_left"`
	LastFilled  string `json:"last_filled"`
	ReadyDate   string `json:"ready_date,omitempty"`
}

// Pharmacy is a dispensing location.
type Pharmacy struct {
	NPI     string `json:"npi"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Open24h bool   `json:"open_24h"`
}

// DrugInteraction describes one interaction between two drugs.
type DrugInteraction struct {
	DrugA          string `json:"drug_a"`
	DrugB          string `json:"drug_b"`
	Severity       string `json:"severity"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}
