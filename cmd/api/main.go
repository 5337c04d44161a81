package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/lalax124/arthaai/internal/config"
	"github.com/lalax124/arthaai/internal/handler"
	"github.com/lalax124/arthaai/internal/integrations/advisor"
	"github.com/lalax124/arthaai/internal/integrations/marketdata"
	"github.com/lalax124/arthaai/internal/integrations/rates"
	"github.com/lalax124/arthaai/internal/repository"
	"github.com/lalax124/arthaai/internal/service"
	"github.com/lalax124/arthaai/internal/utils/email"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	ctx := context.Background()

	repo := repository.NewRepository(db)
	if err := repo.InitSchema(ctx); err != nil {
		logger.Fatalf("Failed to initialize schema: %v", err)
	}

	// Gateways
	market := marketdata.NewClient(cfg, logger)
	ratesClient := rates.NewClient(cfg, logger)

	var adv service.Advisor
	if cfg.GeminiAPIKey != "" {
		client, err := advisor.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Fatalf("Failed to initialize advisory gateway: %v", err)
		}
		adv = client
	} else {
		logger.Warn("GEMINI_API_KEY not set, advisory endpoints disabled")
	}

	var mailer service.Mailer
	if cfg.SMTPConfigured() {
		mailer = email.NewSender(cfg, logger)
	}

	// Initialize layers
	svc := service.NewService(repo, market, adv, mailer, logger)
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/users", h.CreateUser).Methods("POST")
	r.HandleFunc("/users/{id}/snapshot", h.Snapshot).Methods("GET")
	r.HandleFunc("/users/{id}/income", h.SaveIncome).Methods("PUT")
	r.HandleFunc("/users/{id}/income", h.GetIncome).Methods("GET")
	r.HandleFunc("/users/{id}/expenses", h.ReplaceExpenses).Methods("PUT")
	r.HandleFunc("/users/{id}/expenses", h.GetExpenses).Methods("GET")
	r.HandleFunc("/users/{id}/assets", h.ReplaceAssets).Methods("PUT")
	r.HandleFunc("/users/{id}/assets", h.GetAssets).Methods("GET")
	r.HandleFunc("/users/{id}/liabilities", h.ReplaceLiabilities).Methods("PUT")
	r.HandleFunc("/users/{id}/liabilities", h.GetLiabilities).Methods("GET")
	r.HandleFunc("/users/{id}/goals", h.ReplaceGoals).Methods("PUT")
	r.HandleFunc("/users/{id}/goals", h.GetGoals).Methods("GET")
	r.HandleFunc("/users/{id}/portfolio", h.ReplacePortfolio).Methods("PUT")
	r.HandleFunc("/users/{id}/portfolio", h.GetPortfolio).Methods("GET")
	r.HandleFunc("/users/{id}/summary", h.BudgetSummary).Methods("GET")
	r.HandleFunc("/users/{id}/networth", h.NetWorth).Methods("GET")
	r.HandleFunc("/users/{id}/ratios", h.Ratios).Methods("GET")
	r.HandleFunc("/analysis/loan", h.AnalyzeLoan).Methods("POST")
	r.HandleFunc("/analysis/investment", h.AnalyzeInvestment).Methods("POST")
	r.HandleFunc("/analysis/retirement", h.AnalyzeRetirement).Methods("POST")
	r.HandleFunc("/analysis/mortgage", h.AnalyzeMortgage).Methods("POST")
	r.HandleFunc("/stocks/{ticker}/metrics", h.StockMetrics).Methods("GET")
	r.HandleFunc("/users/{id}/portfolio/metrics", h.PortfolioMetrics).Methods("GET")
	r.HandleFunc("/users/{id}/advice", h.Advise).Methods("POST")
	r.HandleFunc("/users/{id}/advice/budget", h.AnalyzeBudget).Methods("POST")
	r.HandleFunc("/users/{id}/advice/investment", h.InvestmentAdvice).Methods("POST")
	r.HandleFunc("/users/{id}/insights", h.Insights).Methods("GET")
	r.HandleFunc("/charts/investment-growth.png", h.GrowthChart).Methods("GET")
	r.HandleFunc("/charts/amortization.png", h.AmortizationChart).Methods("GET")
	r.HandleFunc("/users/{id}/charts/expenses.png", h.ExpensesChart).Methods("GET")
	// ECB reference rates endpoint
	r.HandleFunc("/rates", func(w http.ResponseWriter, r *http.Request) {
		daily, err := ratesClient.Daily(r.Context())
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get reference rates: %v", err), http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(daily)
	}).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")

	// Monthly summary emails
	if mailer != nil {
		c := cron.New()
		if _, err := c.AddFunc(cfg.SummaryCron, func() {
			svc.SendMonthlySummaries(context.Background())
		}); err != nil {
			logger.Fatalf("Failed to schedule monthly summaries: %v", err)
		}
		c.Start()
		defer c.Stop()
		logger.Infof("Monthly summaries scheduled: %s", cfg.SummaryCron)
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
