package domain

// Preferences accepted by the tenure recommender.
const (
	PreferenceMinimizeInterest = "minimize_interest"
	PreferenceMinimizePayment  = "minimize_payment"
	PreferenceBalanced         = "balanced"
)

type TenureRecommendationInput struct {
	Principal         float64 `json:"principal"`
	AnnualRate        float64 `json:"rate"`
	MinTenureMonths   int     `json:"minTenureMonths"`
	MaxTenureMonths   int     `json:"maxTenureMonths"`
	MaxMonthlyPayment float64 `json:"maxMonthlyPayment"`
	Preference        string  `json:"preference"`
}

type TenureRecommendation struct {
	TenureMonths   int     `json:"tenureMonths"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	Score          float64 `json:"score"`
	Reason         string  `json:"reason"`
}

type TenureRecommendationResult struct {
	RecommendedTenure int                    `json:"recommendedTenure"`
	Recommendations   []TenureRecommendation `json:"recommendations"`
}
