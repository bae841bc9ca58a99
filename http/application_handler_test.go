package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongApplication = `{
	"fullName": "Asha Rao",
	"loanPurpose": "home renovation",
	"currentSalary": "80000",
	"previousSalary": "70000",
	"employmentType": "permanent",
	"experience": 6,
	"existingEmis": "5000",
	"creditCardDebt": "0",
	"ownsHouse": "yes",
	"groceryExpense": 8000,
	"mallVisits": 0,
	"investmentHabit": "moderate",
	"monthlySavings": "15000",
	"desiredAmount": "200000"
}`

type submissionBody struct {
	Application struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"application"`
	Assessment struct {
		ID         string                 `json:"id"`
		Assessment map[string]interface{} `json:"assessment"`
	} `json:"assessment"`
	Loan *struct {
		ID         string `json:"id"`
		LoanNumber string `json:"loanNumber"`
	} `json:"loan"`
}

func submit(t *testing.T, srv *testServer, user, body string) submissionBody {
	t.Helper()
	w := srv.do(http.MethodPost, "/api/loan-applications", user, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var got submissionBody
	decodeBody(t, w, &got)
	return got
}

func TestSubmitApplication_Approved(t *testing.T) {
	srv := newTestServer(t, 100, nil)

	got := submit(t, srv, "user-1", strongApplication)

	assert.Equal(t, "approved", got.Application.Status)
	assessment := got.Assessment.Assessment
	assert.Equal(t, true, assessment["isEligible"])
	assert.Equal(t, "low", assessment["riskLevel"])
	assert.Equal(t, float64(100), assessment["overallRiskScore"])
	assert.Equal(t, float64(24), assessment["tenure"])
	assert.Contains(t, assessment, "approvedAmount")
	assert.Contains(t, assessment, "incomeStabilityScore")
	assert.Equal(t, []interface{}{}, assessment["negativeFactors"])
	require.NotNil(t, got.Loan)
	assert.Regexp(t, `^QL\d{10}$`, got.Loan.LoanNumber)
}

func TestSubmitApplication_RejectedOmitsTerms(t *testing.T) {
	srv := newTestServer(t, 100, nil)

	got := submit(t, srv, "user-1", `{
		"currentSalary": 30000, "employmentType": "permanent", "experience": 6,
		"existingEmis": 20000, "creditCardDebt": 10000, "ownsHouse": "family",
		"groceryExpense": 3000, "investmentHabit": "none", "desiredAmount": 100000
	}`)

	assert.Equal(t, "rejected", got.Application.Status)
	assessment := got.Assessment.Assessment
	assert.Equal(t, false, assessment["isEligible"])
	assert.Equal(t, "68.33", assessment["debtToIncomeRatio"])
	for _, field := range []string{"approvedAmount", "interestRate", "tenure", "monthlyEmi"} {
		assert.NotContains(t, assessment, field)
	}
	assert.Nil(t, got.Loan)
}

func TestSubmitApplication_InvalidProfile(t *testing.T) {
	srv := newTestServer(t, 100, nil)

	w := srv.do(http.MethodPost, "/api/loan-applications", "user-1", `{
		"currentSalary": "80000", "employmentType": "permanent", "experience": 6,
		"ownsHouse": "perhaps", "groceryExpense": "8000", "investmentHabit": "moderate",
		"desiredAmount": "200000"
	}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body errorBody
	decodeBody(t, w, &body)
	assert.Equal(t, "INVALID_PROFILE", body.Error.Code)
	assert.Contains(t, body.Error.Details, "ownsHouse")
}

func TestSubmitApplication_RequiresUser(t *testing.T) {
	srv := newTestServer(t, 100, nil)

	w := srv.do(http.MethodPost, "/api/loan-applications", "", strongApplication)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApplicationQueries(t *testing.T) {
	srv := newTestServer(t, 100, nil)
	sub := submit(t, srv, "user-1", strongApplication)

	w := srv.do(http.MethodGet, "/api/loan-applications", "user-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var apps []map[string]interface{}
	decodeBody(t, w, &apps)
	require.Len(t, apps, 1)
	assert.Equal(t, sub.Application.ID, apps[0]["id"])

	w = srv.do(http.MethodGet, "/api/loan-applications/"+sub.Application.ID, "user-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var detail map[string]json.RawMessage
	decodeBody(t, w, &detail)
	assert.Contains(t, detail, "assessment")

	w = srv.do(http.MethodGet, "/api/loan-applications/"+sub.Application.ID, "user-2", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(http.MethodGet, "/api/loan-applications/unknown", "user-1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(http.MethodGet, "/api/active-loans", "user-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var loans []map[string]interface{}
	decodeBody(t, w, &loans)
	require.Len(t, loans, 1)

	w = srv.do(http.MethodGet, "/api/active-loans/"+sub.Loan.ID+"/schedule", "user-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var schedule []map[string]interface{}
	decodeBody(t, w, &schedule)
	assert.Len(t, schedule, 24)

	w = srv.do(http.MethodGet, "/api/active-loans/unknown/schedule", "user-1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(http.MethodGet, "/api/dashboard/stats", "user-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]interface{}
	decodeBody(t, w, &stats)
	assert.Equal(t, float64(1), stats["activeLoansCount"])
	assert.Equal(t, "180000", stats["totalOutstanding"])
	assert.NotNil(t, stats["nextDueDate"])
}

func TestDashboardStats_Empty(t *testing.T) {
	srv := newTestServer(t, 100, nil)

	w := srv.do(http.MethodGet, "/api/dashboard/stats", "user-9", "")

	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]interface{}
	decodeBody(t, w, &stats)
	assert.Equal(t, float64(0), stats["activeLoansCount"])
	assert.Equal(t, "0", stats["totalOutstanding"])
	assert.Nil(t, stats["nextDueDate"])
}
