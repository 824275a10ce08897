package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// OfferCatalog – static lender product table evaluated against a trust score
// ---------------------------------------------------------------------------

// LoanOffer is one eligible lender product, priced for a specific farmer.
type LoanOffer struct {
	OfferID            string          `json:"offer_id"`
	LenderName         string          `json:"lender_name"`
	LenderType         string          `json:"lender_type"`
	LoanAmountMin      decimal.Decimal `json:"loan_amount_min"`
	LoanAmountMax      decimal.Decimal `json:"loan_amount_max"`
	InterestRatePct    decimal.Decimal `json:"interest_rate"`
	DurationMonths     int             `json:"duration_months"`
	EMIPerLakh         decimal.Decimal `json:"emi_per_lakh"`
	ProcessingFeePct   decimal.Decimal `json:"processing_fee_percent"`
	CollateralRequired string          `json:"collateral_required"`
	Features           []string        `json:"features"`
	Eligibility        string          `json:"eligibility"`
	Recommended        bool            `json:"recommended"`
}

// OfferSheet is the full response for an offer generation request. When no
// product matches, Offers is empty and ImprovementTips carries remediation
// guidance instead.
type OfferSheet struct {
	FarmerID        string
	FarmerName      string
	TrustScore      int
	RiskLevel       valueobject.RiskLevel
	TotalLandAcres  decimal.Decimal
	Offers          []LoanOffer
	ImprovementTips []string
	Note            string
}

// loanProduct is a catalog entry. Amount caps scale with landholding up to a
// hard ceiling; interest rates step down at the product's rate threshold.
type loanProduct struct {
	offerID        string
	lenderName     string
	lenderType     string
	minScore       int
	maxScoreExcl   int // 0 means no upper bound
	amountMin      int64
	capPerAcre     int64
	capCeiling     int64
	baseRatePct    string
	betterRatePct  string
	betterRateFrom int
	durationMonths int
	emiPerLakh     int64
	processingPct  string
	collateral     string
	features       []string
	eligibility    string
	recommendMin   int
	recommendMax   int // 0 means no upper bound
}

// catalog is ordered by product tier; the final sort on the sheet is by
// recommendation then rate.
var catalog = []loanProduct{
	{
		offerID:        "KCC-001",
		lenderName:     "Government Kisan Credit Card",
		lenderType:     "Government",
		minScore:       40,
		amountMin:      10_000,
		capPerAcre:     50_000,
		capCeiling:     300_000,
		baseRatePct:    "7.0",
		durationMonths: 12,
		emiPerLakh:     8_600,
		processingPct:  "0",
		collateral:     "Hypothecation of crops",
		features: []string{
			"Interest subvention benefit",
			"Prompt repayment incentive (3% reduction)",
			"Flexible repayment based on harvest",
			"No processing fee",
		},
		eligibility:  "Available for all farmers with land records",
		recommendMin: 60,
	},
	{
		offerID:        "COOP-001",
		lenderName:     "District Cooperative Bank",
		lenderType:     "Cooperative",
		minScore:       50,
		amountMin:      25_000,
		capPerAcre:     75_000,
		capCeiling:     500_000,
		baseRatePct:    "10.5",
		betterRatePct:  "9.5",
		betterRateFrom: 70,
		durationMonths: 24,
		emiPerLakh:     4_650,
		processingPct:  "0.5",
		collateral:     "Land papers or FD",
		features: []string{
			"Lower interest rates for members",
			"Flexible repayment schedule",
			"Quick approval process",
			"Local branch support",
		},
		eligibility:  "Membership in cooperative required",
		recommendMin: 65,
		recommendMax: 75,
	},
	{
		offerID:        "RRB-001",
		lenderName:     "Regional Rural Bank",
		lenderType:     "Bank",
		minScore:       45,
		amountMin:      50_000,
		capPerAcre:     100_000,
		capCeiling:     1_000_000,
		baseRatePct:    "11.5",
		betterRatePct:  "10.0",
		betterRateFrom: 75,
		durationMonths: 36,
		emiPerLakh:     3_230,
		processingPct:  "1.0",
		collateral:     "Land mortgage",
		features: []string{
			"Longer repayment tenure",
			"Government-backed",
			"Agricultural insurance options",
			"Subsidy schemes available",
		},
		eligibility:  "Trust score above 45",
		recommendMin: 70,
	},
	{
		offerID:        "COMM-001",
		lenderName:     "SBI Agri Loan",
		lenderType:     "Commercial Bank",
		minScore:       70,
		amountMin:      100_000,
		capPerAcre:     150_000,
		capCeiling:     2_000_000,
		baseRatePct:    "11.75",
		betterRatePct:  "10.5",
		betterRateFrom: 80,
		durationMonths: 48,
		emiPerLakh:     2_560,
		processingPct:  "1.5",
		collateral:     "Land + Crop insurance",
		features: []string{
			"Higher loan amounts",
			"Competitive interest rates",
			"Digital loan management",
			"Crop insurance bundled",
			"Overdraft facility",
		},
		eligibility:  "Trust score 70+ and verified land ownership",
		recommendMin: 80,
	},
	{
		offerID:        "NBFC-001",
		lenderName:     "AgriFintech Solutions",
		lenderType:     "NBFC",
		minScore:       30,
		maxScoreExcl:   70,
		amountMin:      20_000,
		capPerAcre:     60_000,
		capCeiling:     300_000,
		baseRatePct:    "16.5",
		betterRatePct:  "14.5",
		betterRateFrom: 50,
		durationMonths: 18,
		emiPerLakh:     6_110,
		processingPct:  "2.0",
		collateral:     "Post-dated cheques",
		features: []string{
			"Quick disbursement (24-48 hours)",
			"Minimal documentation",
			"Mobile-first application",
			"Flexible eligibility",
		},
		eligibility:  "Trust score 30+, Aadhaar verification",
		recommendMin: 40,
		recommendMax: 60,
	},
}

// improvementTips is returned when no product matches the score.
var improvementTips = []string{
	"Register all your farms with complete details",
	"Add GPS coordinates to farms",
	"Record crop cultivation and harvest data",
	"Complete your profile verification",
}

const offerSheetNote = "Interest rates and loan amounts are indicative and subject to lender approval"

// GenerateOffers evaluates the catalog against the farmer's current score and
// landholding. A farmer with zero registered acres still receives product
// listings when the score qualifies, with an amount cap of zero.
func GenerateOffers(farmer model.Farmer, farms []model.Farm) OfferSheet {
	score := farmer.TrustScore
	totalLand := decimal.Zero
	for _, f := range farms {
		totalLand = totalLand.Add(f.LandSizeAcres)
	}

	var offers []LoanOffer
	for _, p := range catalog {
		if score < p.minScore {
			continue
		}
		if p.maxScoreExcl > 0 && score >= p.maxScoreExcl {
			continue
		}
		offers = append(offers, p.price(score, totalLand))
	}

	sheet := OfferSheet{
		FarmerID:       farmer.ID,
		FarmerName:     farmer.FullName,
		TrustScore:     score,
		RiskLevel:      farmer.RiskLevel,
		TotalLandAcres: totalLand,
		Offers:         offers,
		Note:           offerSheetNote,
	}

	if len(offers) == 0 {
		sheet.ImprovementTips = improvementTips
		return sheet
	}

	sort.SliceStable(sheet.Offers, func(i, j int) bool {
		a, b := sheet.Offers[i], sheet.Offers[j]
		if a.Recommended != b.Recommended {
			return a.Recommended
		}
		return a.InterestRatePct.LessThan(b.InterestRatePct)
	})

	return sheet
}

// price instantiates the product for a specific score and landholding.
func (p loanProduct) price(score int, totalLandAcres decimal.Decimal) LoanOffer {
	amountCap := totalLandAcres.Mul(decimal.NewFromInt(p.capPerAcre))
	ceiling := decimal.NewFromInt(p.capCeiling)
	if amountCap.GreaterThan(ceiling) {
		amountCap = ceiling
	}

	rate := decimal.RequireFromString(p.baseRatePct)
	if p.betterRatePct != "" && score >= p.betterRateFrom {
		rate = decimal.RequireFromString(p.betterRatePct)
	}

	recommended := score >= p.recommendMin
	if p.recommendMax > 0 && score >= p.recommendMax {
		recommended = false
	}

	return LoanOffer{
		OfferID:            p.offerID,
		LenderName:         p.lenderName,
		LenderType:         p.lenderType,
		LoanAmountMin:      decimal.NewFromInt(p.amountMin),
		LoanAmountMax:      amountCap,
		InterestRatePct:    rate,
		DurationMonths:     p.durationMonths,
		EMIPerLakh:         decimal.NewFromInt(p.emiPerLakh),
		ProcessingFeePct:   decimal.RequireFromString(p.processingPct),
		CollateralRequired: p.collateral,
		Features:           p.features,
		Eligibility:        p.eligibility,
		Recommended:        recommended,
	}
}
