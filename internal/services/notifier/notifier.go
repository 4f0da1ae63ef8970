// Package notifier отправляет администратору фонда письма о новых
// пожертвованиях и сообщениях обратной связи.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/textproto"
	"strings"

	"github.com/magabrotheeeer/foundation-backend/internal/lib/smtp"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
	"github.com/magabrotheeeer/foundation-backend/internal/rabbitmq"
)

// Transport открывает SMTP-сессию.
type Transport interface {
	Connect() (smtp.Client, error)
	From() string
}

// Service формирует и отправляет уведомления.
type Service struct {
	transport Transport
	to        string
	log       *slog.Logger
}

// New создает Service, письма уходят на адрес to.
func New(log *slog.Logger, transport Transport, to string) *Service {
	return &Service{transport: transport, to: to, log: log}
}

// DonationCreated обрабатывает событие donation.created.
func (s *Service) DonationCreated(_ context.Context, body []byte) error {
	const op = "notifier.DonationCreated"

	var d models.Donation
	if err := json.Unmarshal(body, &d); err != nil {
		return fmt.Errorf("%s: %w: %v", op, rabbitmq.ErrMalformed, err)
	}

	subject := fmt.Sprintf("New donation: %.2f %s", d.Amount, d.Currency)
	var text strings.Builder
	fmt.Fprintf(&text, "Donation #%d received.\n\n", d.ID)
	fmt.Fprintf(&text, "Donor: %s <%s>\n", d.DonorName, d.DonorEmail)
	fmt.Fprintf(&text, "Amount: %.2f %s\n", d.Amount, d.Currency)
	fmt.Fprintf(&text, "Status: %s\n", d.Status)
	if d.TransactionID != nil {
		fmt.Fprintf(&text, "Transaction: %s\n", *d.TransactionID)
	}
	if d.Message != nil && *d.Message != "" {
		fmt.Fprintf(&text, "\nMessage:\n%s\n", *d.Message)
	}

	if err := s.send(subject, text.String()); err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	s.log.Info("donation notification sent", slog.Int64("donation_id", d.ID))
	return nil
}

// ContactCreated обрабатывает событие contact.created.
func (s *Service) ContactCreated(_ context.Context, body []byte) error {
	const op = "notifier.ContactCreated"

	var m models.ContactMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return fmt.Errorf("%s: %w: %v", op, rabbitmq.ErrMalformed, err)
	}

	subject := "New contact message"
	if m.Subject != nil && *m.Subject != "" {
		subject += ": " + *m.Subject
	}
	var text strings.Builder
	fmt.Fprintf(&text, "Message #%d from %s <%s>\n", m.ID, m.Name, m.Email)
	if m.Phone != nil && *m.Phone != "" {
		fmt.Fprintf(&text, "Phone: %s\n", *m.Phone)
	}
	fmt.Fprintf(&text, "\n%s\n", m.Message)

	if err := s.send(subject, text.String()); err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	s.log.Info("contact notification sent", slog.Int64("message_id", m.ID))
	return nil
}

func (s *Service) send(subject, text string) error {
	from := s.transport.From()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + s.to,
		"Subject: " + sanitizeHeader(subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		text,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err = client.Mail(from); err != nil {
		return err
	}
	if err = client.Rcpt(s.to); err != nil {
		return err
	}
	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		_ = wc.Close()
		return err
	}
	if err = wc.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// classify помечает отказы SMTP с кодом 5xx как окончательные.
func classify(err error) error {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) && tpErr.Code >= 500 {
		return fmt.Errorf("%w: %w", rabbitmq.ErrPermanent, err)
	}
	return err
}

// sanitizeHeader не дает пользовательскому тексту добавить заголовки письма.
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
