package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lalax124/arthaai/internal/finance"
	"github.com/lalax124/arthaai/internal/models"
	"github.com/lalax124/arthaai/internal/repository"
)

// ErrAdvisorNotConfigured is returned when an advisory operation is
// requested without a GEMINI_API_KEY
var ErrAdvisorNotConfigured = errors.New("advisory gateway is not configured")

// Insight types recorded in the store
const (
	InsightAdvice           = "advice"
	InsightBudgetAnalysis   = "budget_analysis"
	InsightInvestmentAdvice = "investment_advice"
)

// MarketData is the market data gateway used for portfolio and stock
// valuation
type MarketData interface {
	History(ctx context.Context, ticker, period string) ([]models.PriceBar, error)
	Info(ctx context.Context, ticker string) (*models.TickerInfo, error)
}

// Advisor is the language-model advisory gateway
type Advisor interface {
	Advise(ctx context.Context, query string, snapshot *models.FinancialSnapshot) (string, error)
	AnalyzeBudget(ctx context.Context, income float64, expenses *models.CategoryMap) (*models.BudgetAdvice, error)
	InvestmentAdvice(ctx context.Context, risk, horizon string, current *models.CategoryMap) (string, error)
}

// Mailer sends summary emails
type Mailer interface {
	SendMonthlySummary(to, username string, summary finance.BudgetSummary, netWorth finance.NetWorthResult) error
}

// RatiosResult carries the requested financial ratios; a nil field means
// the ratio was undefined for the inputs
type RatiosResult struct {
	DebtToIncome        *float64 `json:"debt_to_income"`
	EmergencyFundMonths *float64 `json:"emergency_fund_months"`
}

// Service handles business logic
type Service struct {
	repo    *repository.Repository
	market  MarketData
	advisor Advisor
	mailer  Mailer
	log     *logrus.Logger
}

// NewService initializes a new service. advisor and mailer may be nil
// when the respective gateway is not configured.
func NewService(repo *repository.Repository, market MarketData, advisor Advisor, mailer Mailer, log *logrus.Logger) *Service {
	return &Service{repo: repo, market: market, advisor: advisor, mailer: mailer, log: log}
}

// GetOrCreateUser returns the user for a username, creating it if needed
func (s *Service) GetOrCreateUser(ctx context.Context, username, email string) (*models.User, error) {
	user, err := s.repo.GetOrCreateUser(ctx, username, email)
	if err != nil {
		return nil, err
	}
	s.log.Infof("User resolved: %s (id %d)", user.Username, user.ID)
	return user, nil
}

// SaveIncome records a new income amount for a user
func (s *Service) SaveIncome(ctx context.Context, userID int64, amount float64, source string) error {
	return s.repo.SaveIncome(ctx, userID, amount, source)
}

// Snapshot assembles the latest stored financial state of a user
func (s *Service) Snapshot(ctx context.Context, userID int64) (*models.FinancialSnapshot, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	income, err := s.repo.LatestIncome(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.GetExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}
	assets, err := s.repo.GetAssets(ctx, userID)
	if err != nil {
		return nil, err
	}
	liabilities, err := s.repo.GetLiabilities(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.repo.GetGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	portfolio, err := s.repo.GetPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.FinancialSnapshot{
		UserID:      userID,
		Income:      income,
		Expenses:    expenses,
		Assets:      assets,
		Liabilities: liabilities,
		Goals:       goals,
		Portfolio:   portfolio,
	}, nil
}

// BudgetSummary computes the budget summary from the stored income and
// expenses
func (s *Service) BudgetSummary(ctx context.Context, userID int64) (*finance.BudgetSummary, error) {
	income, err := s.repo.LatestIncome(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.GetExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := finance.SummarizeBudget(income, expenses)
	return &summary, nil
}

// NetWorth computes net worth from the stored assets and liabilities
func (s *Service) NetWorth(ctx context.Context, userID int64) (*finance.NetWorthResult, error) {
	assets, err := s.repo.GetAssets(ctx, userID)
	if err != nil {
		return nil, err
	}
	liabilities, err := s.repo.GetLiabilities(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := finance.NetWorth(assets, liabilities)
	return &result, nil
}

// Ratios computes debt-to-income and emergency-fund ratios against the
// stored income and expenses. Undefined ratios come back as nil fields.
func (s *Service) Ratios(ctx context.Context, userID int64, monthlyDebt, emergencyFund float64) (*RatiosResult, error) {
	income, err := s.repo.LatestIncome(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.GetExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &RatiosResult{}
	if dti, ok := finance.DebtToIncomeRatio(monthlyDebt, income); ok {
		result.DebtToIncome = &dti
	}
	if months, ok := finance.EmergencyFundRatio(emergencyFund, expenses.Sum()); ok {
		result.EmergencyFundMonths = &months
	}
	return result, nil
}

// StockMetrics fetches a year of history plus descriptive info for a
// ticker and derives its metrics. Missing info is tolerated; missing
// history is a no-data error from the engine.
func (s *Service) StockMetrics(ctx context.Context, ticker string) (*finance.StockMetrics, error) {
	bars, err := s.market.History(ctx, ticker, "1y")
	if err != nil {
		return nil, fmt.Errorf("market data gateway: %w", err)
	}

	info, err := s.market.Info(ctx, ticker)
	if err != nil {
		// Descriptive metadata is optional; metrics degrade gracefully
		s.log.Warnf("No ticker info for %s: %v", ticker, err)
		info = nil
	}

	return finance.StockMetricsFromHistory(ticker, bars, info)
}

// PortfolioMetrics values the stored portfolio at the latest close per
// holding. Holdings whose price cannot be fetched are skipped.
func (s *Service) PortfolioMetrics(ctx context.Context, userID int64) (*finance.PortfolioMetrics, error) {
	holdings, err := s.repo.GetPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(holdings))
	for _, h := range holdings {
		if _, ok := prices[h.Ticker]; ok {
			continue
		}
		bars, err := s.market.History(ctx, h.Ticker, "1d")
		if err != nil || len(bars) == 0 {
			s.log.Warnf("Skipping holding %s: no price available", h.Ticker)
			continue
		}
		prices[h.Ticker] = bars[len(bars)-1].Close
	}

	metrics := finance.CalculatePortfolioMetrics(holdings, prices)
	return &metrics, nil
}

// Advise forwards a question plus the user's snapshot to the advisory
// gateway and records the answer as an insight
func (s *Service) Advise(ctx context.Context, userID int64, question string) (string, error) {
	if s.advisor == nil {
		return "", ErrAdvisorNotConfigured
	}

	snapshot, err := s.Snapshot(ctx, userID)
	if err != nil {
		return "", err
	}

	answer, err := s.advisor.Advise(ctx, question, snapshot)
	if err != nil {
		return "", fmt.Errorf("advisory gateway: %w", err)
	}

	if err := s.repo.SaveInsight(ctx, userID, InsightAdvice, answer); err != nil {
		s.log.Errorf("Failed to store advice insight for user %d: %v", userID, err)
	}
	return answer, nil
}

// AnalyzeBudget requests a structured budget analysis and records it
func (s *Service) AnalyzeBudget(ctx context.Context, userID int64) (*models.BudgetAdvice, error) {
	if s.advisor == nil {
		return nil, ErrAdvisorNotConfigured
	}

	income, err := s.repo.LatestIncome(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.GetExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}

	advice, err := s.advisor.AnalyzeBudget(ctx, income, expenses)
	if err != nil {
		return nil, fmt.Errorf("advisory gateway: %w", err)
	}

	content, err := json.Marshal(advice)
	if err == nil {
		if err := s.repo.SaveInsight(ctx, userID, InsightBudgetAnalysis, string(content)); err != nil {
			s.log.Errorf("Failed to store budget insight for user %d: %v", userID, err)
		}
	}
	return advice, nil
}

// InvestmentAdvice requests investment advice against the user's stored
// assets and records it
func (s *Service) InvestmentAdvice(ctx context.Context, userID int64, risk, horizon string) (string, error) {
	if s.advisor == nil {
		return "", ErrAdvisorNotConfigured
	}

	assets, err := s.repo.GetAssets(ctx, userID)
	if err != nil {
		return "", err
	}

	answer, err := s.advisor.InvestmentAdvice(ctx, risk, horizon, assets)
	if err != nil {
		return "", fmt.Errorf("advisory gateway: %w", err)
	}

	if err := s.repo.SaveInsight(ctx, userID, InsightInvestmentAdvice, answer); err != nil {
		s.log.Errorf("Failed to store investment insight for user %d: %v", userID, err)
	}
	return answer, nil
}

// Insights returns the latest stored insights for a user
func (s *Service) Insights(ctx context.Context, userID int64, insightType string, limit int) ([]models.Insight, error) {
	return s.repo.GetInsights(ctx, userID, insightType, limit)
}

// ReplaceExpenses stores a user's expenses
func (s *Service) ReplaceExpenses(ctx context.Context, userID int64, expenses *models.CategoryMap) error {
	return s.repo.ReplaceExpenses(ctx, userID, expenses)
}

// Expenses returns a user's stored expenses
func (s *Service) Expenses(ctx context.Context, userID int64) (*models.CategoryMap, error) {
	return s.repo.GetExpenses(ctx, userID)
}

// ReplaceAssets stores a user's assets
func (s *Service) ReplaceAssets(ctx context.Context, userID int64, assets *models.CategoryMap) error {
	return s.repo.ReplaceAssets(ctx, userID, assets)
}

// Assets returns a user's stored assets
func (s *Service) Assets(ctx context.Context, userID int64) (*models.CategoryMap, error) {
	return s.repo.GetAssets(ctx, userID)
}

// ReplaceLiabilities stores a user's liabilities
func (s *Service) ReplaceLiabilities(ctx context.Context, userID int64, liabilities *models.CategoryMap) error {
	return s.repo.ReplaceLiabilities(ctx, userID, liabilities)
}

// Liabilities returns a user's stored liabilities
func (s *Service) Liabilities(ctx context.Context, userID int64) (*models.CategoryMap, error) {
	return s.repo.GetLiabilities(ctx, userID)
}

// ReplaceGoals stores a user's financial goals
func (s *Service) ReplaceGoals(ctx context.Context, userID int64, goals []models.Goal) error {
	return s.repo.ReplaceGoals(ctx, userID, goals)
}

// Goals returns a user's stored goals
func (s *Service) Goals(ctx context.Context, userID int64) ([]models.Goal, error) {
	return s.repo.GetGoals(ctx, userID)
}

// ReplacePortfolio stores a user's investment portfolio
func (s *Service) ReplacePortfolio(ctx context.Context, userID int64, holdings []models.Holding) error {
	return s.repo.ReplacePortfolio(ctx, userID, holdings)
}

// Portfolio returns a user's stored portfolio
func (s *Service) Portfolio(ctx context.Context, userID int64) ([]models.Holding, error) {
	return s.repo.GetPortfolio(ctx, userID)
}

// LatestIncome returns the most recent stored income for a user
func (s *Service) LatestIncome(ctx context.Context, userID int64) (float64, error) {
	return s.repo.LatestIncome(ctx, userID)
}

// SendMonthlySummaries emails every user with an address their budget
// summary and net worth. Failures for one user do not stop the rest.
func (s *Service) SendMonthlySummaries(ctx context.Context) {
	if s.mailer == nil {
		s.log.Debug("Mailer not configured, skipping monthly summaries")
		return
	}

	users, err := s.repo.ListUsersWithEmail(ctx)
	if err != nil {
		s.log.Errorf("Failed to list users for monthly summaries: %v", err)
		return
	}

	for _, u := range users {
		summary, err := s.BudgetSummary(ctx, u.ID)
		if err != nil {
			s.log.Errorf("Failed to compute summary for user %d: %v", u.ID, err)
			continue
		}
		netWorth, err := s.NetWorth(ctx, u.ID)
		if err != nil {
			s.log.Errorf("Failed to compute net worth for user %d: %v", u.ID, err)
			continue
		}
		if err := s.mailer.SendMonthlySummary(u.Email, u.Username, *summary, *netWorth); err != nil {
			s.log.Errorf("Failed to email summary to user %d: %v", u.ID, err)
		}
	}
	s.log.Infof("Monthly summaries processed for %d users", len(users))
}
