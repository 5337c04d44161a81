package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/lalax124/arthaai/internal/config"
	"github.com/lalax124/arthaai/internal/finance"
	"github.com/lalax124/arthaai/internal/utils"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendMonthlySummary sends a user their budget summary and net worth
func (s *Sender) SendMonthlySummary(to, username string, summary finance.BudgetSummary, netWorth finance.NetWorthResult) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Your Financial Summary for %s", time.Now().Format("January 2006"))

	body := fmt.Sprintf(
		"Dear %s,\n\n", username,
	)
	body += fmt.Sprintf(
		"Here is your monthly financial summary.\n\n"+
			"Income: %s\n"+
			"Total expenses: %s\n"+
			"Remaining: %s\n"+
			"Savings rate: %.1f%%\n\n"+
			"Assets: %s\n"+
			"Liabilities: %s\n"+
			"Net worth: %s\n",
		utils.FormatCurrency(summary.Income),
		utils.FormatCurrency(summary.TotalExpenses),
		utils.FormatCurrency(summary.Remaining),
		summary.SavingsRate,
		utils.FormatCurrency(netWorth.AssetsTotal),
		utils.FormatCurrency(netWorth.LiabilitiesTotal),
		utils.FormatCurrency(netWorth.NetWorth),
	)
	body += "\nBest regards,\nArtha"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send summary to %s: %v", to, err)
		return fmt.Errorf("failed to send summary email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
