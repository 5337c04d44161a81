// Package advisor provides the Gemini-backed financial advisory gateway.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/lalax124/arthaai/internal/models"
)

const systemPrompt = `You are a helpful financial advisor named ARTHA. You are an expert in personal finance, budgeting, and investment.
Provide clear, concise, and actionable advice.`

// Client handles integration with the Gemini API
type Client struct {
	client *genai.Client
	model  string
	log    *logrus.Logger
}

// NewClient initializes a new advisory client
func NewClient(ctx context.Context, apiKey, model string, log *logrus.Logger) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client: genaiClient,
		model:  model,
		log:    log,
	}, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		TopP:            genai.Ptr[float32](1),
		TopK:            genai.Ptr[float32](1),
		MaxOutputTokens: 2048,
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text, nil
}

// Advise answers a free-text question, optionally grounded in the
// user's financial snapshot
func (c *Client) Advise(ctx context.Context, query string, snapshot *models.FinancialSnapshot) (string, error) {
	prompt := systemPrompt + "\n\n"
	if snapshot != nil {
		contextJSON, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to serialize financial context: %w", err)
		}
		prompt += "Financial context:\n" + string(contextJSON) + "\n\n"
	}
	prompt += "Question: " + query

	c.log.Debugf("Requesting advice from model %s", c.model)
	return c.generate(ctx, prompt)
}

// AnalyzeBudget asks the model for a structured budget analysis
func (c *Client) AnalyzeBudget(ctx context.Context, income float64, expenses *models.CategoryMap) (*models.BudgetAdvice, error) {
	budgetData := map[string]any{
		"salary_per_month": income,
		"expenses":         expenses,
	}
	dataJSON, err := json.MarshalIndent(budgetData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize budget data: %w", err)
	}

	prompt := fmt.Sprintf(`%s

Analyze the following budget data and provide:
1. An overall analysis of the budget.
2. Specific recommendations for improvement.
3. Areas where the user can potentially save more.
4. A breakdown of the expenses.
Budget Data: %s
Return in JSON format with keys overall_analysis, recommendations, improvements, expense_breakdown.
The recommendations and improvements values are arrays of strings; expense_breakdown maps category names to a short comment.`,
		systemPrompt, dataJSON)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseBudgetAdvice(text), nil
}

// parseBudgetAdvice decodes the model's JSON reply, repairing common LLM
// JSON defects first. A reply that still cannot be decoded is preserved
// verbatim in the Raw field rather than discarded.
func parseBudgetAdvice(text string) *models.BudgetAdvice {
	advice := &models.BudgetAdvice{}

	repaired, err := jsonrepair.RepairJSON(text)
	if err == nil && json.Unmarshal([]byte(repaired), advice) == nil && advice.OverallAnalysis != "" {
		return advice
	}

	return &models.BudgetAdvice{Raw: text}
}

// InvestmentAdvice asks for investment advice given risk tolerance,
// horizon and current investments
func (c *Client) InvestmentAdvice(ctx context.Context, risk, horizon string, current *models.CategoryMap) (string, error) {
	investmentData := map[string]any{
		"risk_involved":       risk,
		"investment_horizon":  horizon,
		"current_investments": current,
	}
	dataJSON, err := json.MarshalIndent(investmentData, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize investment data: %w", err)
	}

	prompt := fmt.Sprintf(`%s

Provide investment advice based on the following information:
%s
Consider the risk involved, investment horizon, and current investments.`,
		systemPrompt, dataJSON)

	return c.generate(ctx, prompt)
}
