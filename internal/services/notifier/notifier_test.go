package notifier

import (
	"context"
	"errors"
	"io"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/foundation-backend/internal/lib/sl"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/smtp"
	"github.com/magabrotheeeer/foundation-backend/internal/rabbitmq"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) From() string {
	return m.Called().String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error { return m.Called(from).Error(0) }
func (m *MockSMTPClient) Rcpt(to string) error   { return m.Called(to).Error(0) }
func (m *MockSMTPClient) Quit() error            { return m.Called().Error(0) }
func (m *MockSMTPClient) Close() error           { return m.Called().Error(0) }

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

// bufWriter копит тело письма.
type bufWriter struct {
	data   []byte
	closed bool
}

func (w *bufWriter) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *bufWriter) Close() error {
	w.closed = true
	return nil
}

const adminEmail = "admin@hiphopfoundation.org"

func expectDelivery(tr *MockTransport) (*MockSMTPClient, *bufWriter) {
	client := new(MockSMTPClient)
	w := &bufWriter{}
	tr.On("From").Return("noreply@hiphopfoundation.org")
	tr.On("Connect").Return(client, nil).Once()
	client.On("Mail", "noreply@hiphopfoundation.org").Return(nil).Once()
	client.On("Rcpt", adminEmail).Return(nil).Once()
	client.On("Data").Return(w, nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil).Once()
	return client, w
}

func TestService_DonationCreated(t *testing.T) {
	tr := new(MockTransport)
	client, w := expectDelivery(tr)
	svc := New(sl.Discard(), tr, adminEmail)

	body := []byte(`{"id":12,"amount":25.5,"currency":"USD","donor_name":"Jay","donor_email":"jay@example.com","status":"pending","transaction_id":"tx-1","message":"keep it up"}`)
	require.NoError(t, svc.DonationCreated(context.Background(), body))

	msg := string(w.data)
	assert.True(t, w.closed)
	assert.Contains(t, msg, "To: "+adminEmail)
	assert.Contains(t, msg, "Subject: New donation: 25.50 USD")
	assert.Contains(t, msg, "Donor: Jay <jay@example.com>")
	assert.Contains(t, msg, "Transaction: tx-1")
	assert.Contains(t, msg, "keep it up")
	tr.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestService_ContactCreated(t *testing.T) {
	tr := new(MockTransport)
	client, w := expectDelivery(tr)
	svc := New(sl.Discard(), tr, adminEmail)

	body := []byte(`{"id":3,"name":"Nas","email":"nas@example.com","subject":"Collab\r\nBcc: evil@example.com","message":"Let's talk"}`)
	require.NoError(t, svc.ContactCreated(context.Background(), body))

	msg := string(w.data)
	assert.Contains(t, msg, "Subject: New contact message: Collab  Bcc: evil@example.com\r\n")
	assert.NotContains(t, msg, "\r\nBcc:")
	assert.Contains(t, msg, "Message #3 from Nas <nas@example.com>")
	assert.Contains(t, msg, "Let's talk")
	client.AssertExpectations(t)
}

func TestService_MalformedBody(t *testing.T) {
	tr := new(MockTransport)
	svc := New(sl.Discard(), tr, adminEmail)

	err := svc.DonationCreated(context.Background(), []byte("not json"))
	require.ErrorIs(t, err, rabbitmq.ErrMalformed)

	err = svc.ContactCreated(context.Background(), []byte("{"))
	require.ErrorIs(t, err, rabbitmq.ErrMalformed)
	tr.AssertNotCalled(t, "Connect")
}

func TestService_SMTPFailures(t *testing.T) {
	body := []byte(`{"id":1,"name":"A","email":"a@example.com","message":"hi"}`)

	t.Run("connect", func(t *testing.T) {
		tr := new(MockTransport)
		tr.On("From").Return("noreply@hiphopfoundation.org")
		tr.On("Connect").Return(nil, errors.New("connection refused")).Once()

		err := New(sl.Discard(), tr, adminEmail).ContactCreated(context.Background(), body)
		require.Error(t, err)
		assert.NotErrorIs(t, err, rabbitmq.ErrMalformed)
		assert.NotErrorIs(t, err, rabbitmq.ErrPermanent)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("recipient rejected", func(t *testing.T) {
		tr := new(MockTransport)
		client := new(MockSMTPClient)
		tr.On("From").Return("noreply@hiphopfoundation.org")
		tr.On("Connect").Return(client, nil).Once()
		client.On("Mail", "noreply@hiphopfoundation.org").Return(nil).Once()
		client.On("Rcpt", adminEmail).Return(&textproto.Error{Code: 550, Msg: "mailbox unavailable"}).Once()
		client.On("Close").Return(nil).Once()

		err := New(sl.Discard(), tr, adminEmail).ContactCreated(context.Background(), body)
		require.ErrorIs(t, err, rabbitmq.ErrPermanent)
		var tpErr *textproto.Error
		require.ErrorAs(t, err, &tpErr)
		assert.Equal(t, 550, tpErr.Code)
		client.AssertExpectations(t)
		client.AssertNotCalled(t, "Data")
	})

	t.Run("recipient deferred", func(t *testing.T) {
		tr := new(MockTransport)
		client := new(MockSMTPClient)
		tr.On("From").Return("noreply@hiphopfoundation.org")
		tr.On("Connect").Return(client, nil).Once()
		client.On("Mail", "noreply@hiphopfoundation.org").Return(nil).Once()
		client.On("Rcpt", adminEmail).Return(&textproto.Error{Code: 451, Msg: "try again later"}).Once()
		client.On("Close").Return(nil).Once()

		err := New(sl.Discard(), tr, adminEmail).ContactCreated(context.Background(), body)
		require.Error(t, err)
		assert.NotErrorIs(t, err, rabbitmq.ErrPermanent)
	})
}
