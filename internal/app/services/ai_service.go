package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/infrastructures"
)

// aiModels is the ordered fallback chain. Each model gets up to
// aiMaxAttempts tries before the next one is consulted.
var aiModels = []string{
	"gemini-2.0-flash-lite",
	"gemini-2.0-flash",
	"gemini-1.5-flash",
}

const (
	aiMaxAttempts  = 3
	aiRetryBackoff = 3 * time.Second
)

const chatSystemPrompt = `You are the assistant for a government-services transaction tracking portal.
Be brief and helpful.
Available services include: license issuance, registration renewals, government paperwork, and similar requests.
Transaction statuses: new, awaiting quote, awaiting payment, awaiting ministry visit, approved, rejected, closed.
If a client asks about the status of their transaction, ask them for the transaction number and phone number so they can use the lookup feature.`

type AIService struct {
	gemini             *infrastructures.GeminiClient
	reportService      *ReportService
	transactionService *TransactionService
}

func NewAIService(
	gemini *infrastructures.GeminiClient,
	reportService *ReportService,
	transactionService *TransactionService,
) *AIService {
	return &AIService{
		gemini:             gemini,
		reportService:      reportService,
		transactionService: transactionService,
	}
}

// ask walks the model fallback chain. Rate-limit failures back off
// 3s x attempt and retry the same model; anything else moves to the next
// model immediately. Exhausting every model surfaces one coarse error.
func (s *AIService) ask(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for _, model := range aiModels {
		for attempt := 1; attempt <= aiMaxAttempts; attempt++ {
			reply, err := s.gemini.GenerateContent(ctx, model, prompt)
			if err == nil {
				return reply, nil
			}
			lastErr = err
			logrus.Warnf("AI attempt %d with %s failed: %v", attempt, model, err)

			var apiErr *infrastructures.GeminiAPIError
			if stderrors.As(err, &apiErr) && apiErr.IsRateLimited() {
				select {
				case <-time.After(time.Duration(attempt) * aiRetryBackoff):
				case <-ctx.Done():
					return "", errors.NewServiceUnavailableError(ctx.Err(), "AI request cancelled")
				}
				continue
			}
			break // non-quota error, try next model
		}
	}

	return "", errors.NewServiceUnavailableError(lastErr, "All AI models are busy right now. Please try again shortly.")
}

// Chat answers a free-form visitor question.
func (s *AIService) Chat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", errors.NewBadRequestError("Message is required")
	}

	prompt := fmt.Sprintf("%s\n\nClient question: %s", chatSystemPrompt, message)
	return s.ask(ctx, prompt)
}

// Summarize produces an executive summary of the current transaction load.
func (s *AIService) Summarize(ctx context.Context) (string, error) {
	stats, err := s.reportService.Stats()
	if err != nil {
		return "", err
	}

	transactions, err := s.transactionService.Search("", "")
	if err != nil {
		return "", err
	}
	if len(transactions) > 10 {
		transactions = transactions[:10]
	}

	var recent strings.Builder
	for _, txn := range transactions {
		fmt.Fprintf(&recent, "%s: %s - %s\n", txn.Number, txn.Service, txn.Status)
	}

	prompt := fmt.Sprintf(`You are a data analyst for a government-services transaction tracking portal.
Summarize the current state of the transactions briefly and clearly.

Statistics:
- Total transactions: %d
- Transactions this week: %d
- By status: %v
- Most requested services: %v

Last %d transactions:
%s
Provide an executive summary with recommendations for improving throughput.`,
		stats.Total, stats.RecentWeek, stats.ByStatus, stats.TopServices,
		len(transactions), recent.String())

	return s.ask(ctx, prompt)
}
