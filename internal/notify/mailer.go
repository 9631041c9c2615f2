package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/x67digital/raffle/pkg/clients"
	"go.uber.org/zap"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// APIMailer delivers email through an HTTP email provider (Resend-style
// JSON API).
type APIMailer struct {
	url    string
	apiKey string
	from   string
	client clients.HTTPClientI
}

func NewAPIMailer(url, apiKey, from string, client clients.HTTPClientI) *APIMailer {
	return &APIMailer{
		url:    url,
		apiKey: apiKey,
		from:   from,
		client: client,
	}
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *APIMailer) Send(ctx context.Context, to, subject, html string) error {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+m.apiKey)
	body := emailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		statusCode, respBody, err := m.client.PostJSON(m.url, headers, body)
		if err == nil && statusCode < http.StatusMultipleChoices {
			zap.L().Info("email sent", zap.String("to", to), zap.String("subject", subject))
			return nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("email provider returned %d: %s", statusCode, respBody)
		}
		if attempt < maxRetries {
			time.Sleep(retryInterval * time.Duration(attempt))
		}
	}
	return fmt.Errorf("failed to send email to %s after %d retries: %w", to, maxRetries, lastErr)
}

// LogMailer is the no-credentials fallback: message metadata goes to the log.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, _ string) error {
	zap.L().Info("email delivery disabled", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func orderConfirmedBody(ev OrderConfirmedEvent) (subject, html string) {
	numbers := make([]string, len(ev.TicketNumbers))
	for i, n := range ev.TicketNumbers {
		numbers[i] = fmt.Sprintf("%d", n)
	}
	subject = fmt.Sprintf("Order Confirmed - x67 Digital #%d", ev.OrderID)
	html = fmt.Sprintf(`<h1>Order Confirmed!</h1>
<p>Hi %s,</p>
<p>Your ticket purchase has been confirmed:</p>
<ul>
<li><strong>Order ID:</strong> %d</li>
<li><strong>Competition:</strong> %s</li>
<li><strong>Tickets:</strong> %d</li>
<li><strong>Ticket Numbers:</strong> %s</li>
<li><strong>Total:</strong> £%.2f</li>
</ul>
<p>Good luck!</p>
<p>The x67 Digital Team</p>`,
		ev.FullName, ev.OrderID, ev.CompetitionTitle, ev.Quantity, strings.Join(numbers, ", "), ev.TotalPrice)
	return subject, html
}

func winnerDrawnBody(ev WinnerDrawnEvent) (subject, html string) {
	subject = fmt.Sprintf("Congratulations! You Won - %s!", ev.CompetitionTitle)
	html = fmt.Sprintf(`<h1>CONGRATULATIONS!</h1>
<p>Hi %s,</p>
<p>We are thrilled to inform you that you are the WINNER of:</p>
<h2>%s</h2>
<p><strong>Prize Value:</strong> £%.2f</p>
<p><strong>Winning Ticket:</strong> #%d</p>
<p>Our team will be in touch shortly to arrange delivery of your prize.</p>
<p>Thank you for playing with x67 Digital!</p>`,
		ev.FullName, ev.CompetitionTitle, ev.PrizeValue, ev.WinningTicket)
	return subject, html
}
