package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/ashmitsharp/treasury-api/internal/models"
)

// FallbackReply is returned when the model answers with no text
const FallbackReply = "متأسفانه پاسخی دریافت نشد."

// NoContextText is used when neither the caller nor the server has financial data
const NoContextText = "اطلاعات مالی در دسترس نیست"

// GenAIChatClient sends chat prompts to a generative model
type GenAIChatClient struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

// NewGenAIChatClient creates a chat client.
// baseURL may be empty to use the default endpoint.
func NewGenAIChatClient(ctx context.Context, apiKey, baseURL, model string, maxTokens int32) (*GenAIChatClient, error) {
	if model == "" {
		return nil, fmt.Errorf("model cannot be empty")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GenAIChatClient{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Complete sends one user message under a system prompt and returns the model text
func (c *GenAIChatClient) Complete(ctx context.Context, systemPrompt, message string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		MaxOutputTokens:   c.maxTokens,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(message), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}

// BuildChatContext summarizes the snapshot as text for the model, rendering amounts in mode
func BuildChatContext(snap *models.Snapshot, mode models.CurrencyMode, f *MoneyFormatter) string {
	if snap == nil || len(snap.Accounts) == 0 {
		return ""
	}

	kpis := BuildKPISummary(snap)
	var b strings.Builder
	fmt.Fprintf(&b, "Total balance: %s\n", f.FormatWithLabel(kpis.TotalBalance, mode))
	fmt.Fprintf(&b, "Blocked amount: %s\n", f.FormatWithLabel(kpis.TotalBlocked, mode))
	fmt.Fprintf(&b, "Available balance: %s\n", f.FormatWithLabel(kpis.AvailableBalance, mode))
	fmt.Fprintf(&b, "Available liquidity: %s\n", f.FormatWithLabel(kpis.AvailableLiquidity, mode))
	fmt.Fprintf(&b, "Due today: %s\n", f.FormatWithLabel(kpis.DueToday, mode))
	fmt.Fprintf(&b, "Overdue: %s\n", f.FormatWithLabel(kpis.Overdue, mode))
	fmt.Fprintf(&b, "Bank accounts: %d\n", kpis.AccountCount)
	return b.String()
}

// ChatSystemPrompt frames the model as a treasury analyst answering in Persian
func ChatSystemPrompt(financialContext string) string {
	if strings.TrimSpace(financialContext) == "" {
		financialContext = NoContextText
	}
	return "You are an AI assistant specialised in financial analysis and treasury management.\n" +
		"Answer the user's questions about financial data, cash-flow forecasting, liquidity " +
		"management and related topics.\n" +
		"Answers must be professional and written in Persian.\n\n" +
		"Current financial information:\n" + financialContext
}
