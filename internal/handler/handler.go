package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/lalax124/arthaai/internal/charts"
	"github.com/lalax124/arthaai/internal/finance"
	"github.com/lalax124/arthaai/internal/models"
	"github.com/lalax124/arthaai/internal/service"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg, Kind: string(finance.ErrInvalidInput)})
}

// writeError maps engine and store errors onto HTTP statuses
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var fe *finance.Error
	switch {
	case errors.As(err, &fe):
		status := http.StatusBadRequest
		if fe.Kind == finance.ErrNoData {
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorResponse{Error: fe.Message, Kind: string(fe.Kind)})
	case errors.Is(err, sql.ErrNoRows):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, service.ErrAdvisorNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		h.log.Errorf("Request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func userID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func floatQuery(r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CreateUser resolves a username to a user, creating it on first use
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		h.badRequest(w, "username is required")
		return
	}

	user, err := h.svc.GetOrCreateUser(r.Context(), req.Username, req.Email)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Snapshot returns the user's latest stored financial state
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	snapshot, err := h.svc.Snapshot(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// SaveIncome records a new income amount
func (h *Handler) SaveIncome(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
		Source string  `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	if req.Amount < 0 {
		h.badRequest(w, "amount must not be negative")
		return
	}

	if err := h.svc.SaveIncome(r.Context(), id, req.Amount, req.Source); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"amount": req.Amount})
}

// GetIncome returns the latest recorded income
func (h *Handler) GetIncome(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	amount, err := h.svc.LatestIncome(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"amount": amount})
}

func (h *Handler) replaceCategories(w http.ResponseWriter, r *http.Request,
	replace func(r *http.Request, id int64, m *models.CategoryMap) error) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	m := models.NewCategoryMap()
	if err := json.NewDecoder(r.Body).Decode(m); err != nil {
		h.badRequest(w, "body must be an object of name to amount")
		return
	}

	if err := replace(r, id, m); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request,
	get func(r *http.Request, id int64) (*models.CategoryMap, error)) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	m, err := get(r, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) ReplaceExpenses(w http.ResponseWriter, r *http.Request) {
	h.replaceCategories(w, r, func(r *http.Request, id int64, m *models.CategoryMap) error {
		return h.svc.ReplaceExpenses(r.Context(), id, m)
	})
}

func (h *Handler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	h.getCategories(w, r, func(r *http.Request, id int64) (*models.CategoryMap, error) {
		return h.svc.Expenses(r.Context(), id)
	})
}

func (h *Handler) ReplaceAssets(w http.ResponseWriter, r *http.Request) {
	h.replaceCategories(w, r, func(r *http.Request, id int64, m *models.CategoryMap) error {
		return h.svc.ReplaceAssets(r.Context(), id, m)
	})
}

func (h *Handler) GetAssets(w http.ResponseWriter, r *http.Request) {
	h.getCategories(w, r, func(r *http.Request, id int64) (*models.CategoryMap, error) {
		return h.svc.Assets(r.Context(), id)
	})
}

func (h *Handler) ReplaceLiabilities(w http.ResponseWriter, r *http.Request) {
	h.replaceCategories(w, r, func(r *http.Request, id int64, m *models.CategoryMap) error {
		return h.svc.ReplaceLiabilities(r.Context(), id, m)
	})
}

func (h *Handler) GetLiabilities(w http.ResponseWriter, r *http.Request) {
	h.getCategories(w, r, func(r *http.Request, id int64) (*models.CategoryMap, error) {
		return h.svc.Liabilities(r.Context(), id)
	})
}

// ReplaceGoals stores the user's financial goals as a full replacement
func (h *Handler) ReplaceGoals(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	var goals []models.Goal
	if err := json.NewDecoder(r.Body).Decode(&goals); err != nil {
		h.badRequest(w, "body must be an array of goals")
		return
	}

	if err := h.svc.ReplaceGoals(r.Context(), id, goals); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	goals, err := h.svc.Goals(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

// ReplacePortfolio stores the user's holdings as a full replacement
func (h *Handler) ReplacePortfolio(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	var holdings []models.Holding
	if err := json.NewDecoder(r.Body).Decode(&holdings); err != nil {
		h.badRequest(w, "body must be an array of holdings")
		return
	}

	if err := h.svc.ReplacePortfolio(r.Context(), id, holdings); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, holdings)
}

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	holdings, err := h.svc.Portfolio(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, holdings)
}

// BudgetSummary returns income, expenses, remainder and savings rate
func (h *Handler) BudgetSummary(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	summary, err := h.svc.BudgetSummary(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// NetWorth returns assets, liabilities and the difference
func (h *Handler) NetWorth(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	result, err := h.svc.NetWorth(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Ratios returns debt-to-income and emergency-fund ratios
func (h *Handler) Ratios(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	monthlyDebt, _ := floatQuery(r, "monthly_debt")
	emergencyFund, _ := floatQuery(r, "emergency_fund")

	result, err := h.svc.Ratios(r.Context(), id, monthlyDebt, emergencyFund)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type loanRequest struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	Years      int     `json:"years"`
}

type loanResponse struct {
	MonthlyPayment float64                   `json:"monthly_payment"`
	TotalPaid      float64                   `json:"total_paid"`
	TotalInterest  float64                   `json:"total_interest"`
	Schedule       []finance.AmortizationRow `json:"schedule"`
}

// AnalyzeLoan computes the payment and amortization schedule for a loan
func (h *Handler) AnalyzeLoan(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	if req.Principal < 0 || req.AnnualRate < 0 {
		h.badRequest(w, "principal and rate must not be negative")
		return
	}
	if req.Years <= 0 {
		h.badRequest(w, "term must be at least one year")
		return
	}

	payment := finance.MonthlyPayment(req.Principal, req.AnnualRate, req.Years)
	schedule := finance.AmortizationSchedule(req.Principal, req.AnnualRate, req.Years)

	totalInterest := 0.0
	for _, row := range schedule {
		totalInterest += row.Interest
	}

	writeJSON(w, http.StatusOK, loanResponse{
		MonthlyPayment: payment,
		TotalPaid:      payment * float64(req.Years*12),
		TotalInterest:  totalInterest,
		Schedule:       schedule,
	})
}

type investmentRequest struct {
	Initial             float64 `json:"initial"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	Years               int     `json:"years"`
	AnnualRate          float64 `json:"annual_rate"`
}

type investmentResponse struct {
	FinalAmount        float64                   `json:"final_amount"`
	TotalContributions float64                   `json:"total_contributions"`
	TotalEarnings      float64                   `json:"total_earnings"`
	Projection         []finance.ProjectionPoint `json:"projection"`
}

// AnalyzeInvestment projects investment growth over time
func (h *Handler) AnalyzeInvestment(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	if req.Initial < 0 || req.MonthlyContribution < 0 {
		h.badRequest(w, "amounts must not be negative")
		return
	}
	if req.Years < 0 {
		h.badRequest(w, "years must not be negative")
		return
	}

	final, contributions, earnings := finance.InvestmentReturns(req.Initial, req.MonthlyContribution, req.Years, req.AnnualRate)
	writeJSON(w, http.StatusOK, investmentResponse{
		FinalAmount:        final,
		TotalContributions: contributions,
		TotalEarnings:      earnings,
		Projection:         finance.GrowthProjection(req.Initial, req.MonthlyContribution, req.Years, req.AnnualRate),
	})
}

// AnalyzeRetirement evaluates retirement readiness
func (h *Handler) AnalyzeRetirement(w http.ResponseWriter, r *http.Request) {
	var req finance.RetirementInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	analysis, err := finance.AnalyzeRetirement(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// AnalyzeMortgage sweeps home prices and reports affordability. Omitted
// tax, insurance and PMI inputs fall back to defaults.
func (h *Handler) AnalyzeMortgage(w http.ResponseWriter, r *http.Request) {
	var req finance.MortgageInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	if req.PropertyTaxRate == 0 {
		req.PropertyTaxRate = finance.DefaultPropertyTaxRate
	}
	if req.MonthlyInsurance == 0 {
		req.MonthlyInsurance = finance.DefaultMonthlyInsurance
	}
	if req.PMIRate == 0 {
		req.PMIRate = finance.DefaultPMIRate
	}

	analysis, err := finance.AnalyzeMortgage(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// StockMetrics returns price, return windows and fundamentals for a ticker
func (h *Handler) StockMetrics(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	metrics, err := h.svc.StockMetrics(r.Context(), ticker)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

// PortfolioMetrics values the stored portfolio at current prices
func (h *Handler) PortfolioMetrics(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	metrics, err := h.svc.PortfolioMetrics(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

// Advise answers a free-form question with the user's data as context
func (h *Handler) Advise(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		h.badRequest(w, "question is required")
		return
	}

	answer, err := h.svc.Advise(r.Context(), id, req.Question)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// AnalyzeBudget returns a structured budget analysis
func (h *Handler) AnalyzeBudget(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	advice, err := h.svc.AnalyzeBudget(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, advice)
}

// InvestmentAdvice returns advice for a risk tolerance and horizon
func (h *Handler) InvestmentAdvice(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	var req struct {
		RiskTolerance string `json:"risk_tolerance"`
		Horizon       string `json:"horizon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	answer, err := h.svc.InvestmentAdvice(r.Context(), id, req.RiskTolerance, req.Horizon)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// Insights lists stored insights, newest first
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.badRequest(w, "invalid limit")
			return
		}
	}

	insights, err := h.svc.Insights(r.Context(), id, r.URL.Query().Get("type"), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// GrowthChart renders an investment growth projection as PNG
func (h *Handler) GrowthChart(w http.ResponseWriter, r *http.Request) {
	initial, _ := floatQuery(r, "initial")
	monthly, _ := floatQuery(r, "monthly_contribution")
	rate, _ := floatQuery(r, "annual_rate")
	years, err := strconv.Atoi(r.URL.Query().Get("years"))
	if err != nil || years <= 0 {
		h.badRequest(w, "years must be a positive integer")
		return
	}
	if initial < 0 || monthly < 0 {
		h.badRequest(w, "amounts must not be negative")
		return
	}

	png, err := charts.RenderGrowthChart(finance.GrowthProjection(initial, monthly, years, rate))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writePNG(w, png)
}

// AmortizationChart renders a loan balance curve as PNG
func (h *Handler) AmortizationChart(w http.ResponseWriter, r *http.Request) {
	principal, ok := floatQuery(r, "principal")
	if !ok || principal <= 0 {
		h.badRequest(w, "principal must be positive")
		return
	}
	rate, _ := floatQuery(r, "annual_rate")
	years, err := strconv.Atoi(r.URL.Query().Get("years"))
	if err != nil || years <= 0 {
		h.badRequest(w, "years must be a positive integer")
		return
	}

	png, err := charts.RenderAmortizationChart(finance.AmortizationSchedule(principal, rate, years))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writePNG(w, png)
}

// ExpensesChart renders the user's expense breakdown as a pie chart
func (h *Handler) ExpensesChart(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}

	expenses, err := h.svc.Expenses(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	png, err := charts.RenderExpensePie(expenses)
	if err != nil {
		// Nothing to plot means no stored expenses
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Kind: string(finance.ErrNoData)})
		return
	}
	writePNG(w, png)
}

// Health reports service liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
