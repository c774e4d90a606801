package lead

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-site-api/internal/config"
	"studio-site-api/internal/infrastructure/email"
	"studio-site-api/internal/infrastructure/sheets"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []email.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg email.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "msg_1", nil
}

type appendCall struct {
	endpoint string
	secret   string
	row      sheets.Row
}

type fakeSheets struct {
	mu    sync.Mutex
	calls []appendCall
	err   error
}

func (f *fakeSheets) Append(_ context.Context, endpoint, secret string, row sheets.Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, appendCall{endpoint: endpoint, secret: secret, row: row})
	return f.err
}

func newTestService(m email.Mailer, s SheetAppender, cfg config.SheetsConfig) *Service {
	svc := NewService(m, s, &cfg)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600)) }
	svc.newID = func() string { return "req-1" }
	return svc
}

func TestJoinWaitlist_SendsEscapedMail(t *testing.T) {
	m := &fakeMailer{}
	id, err := newTestService(m, nil, config.SheetsConfig{}).JoinWaitlist(context.Background(), WaitlistInput{
		Name:  "<b>Ann</b>",
		Email: "ann@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg_1", id)

	require.Len(t, m.sent, 1)
	assert.Contains(t, m.sent[0].HTML, "&lt;b&gt;Ann&lt;/b&gt;")
	assert.Contains(t, m.sent[0].HTML, "ann@example.com")
}

func TestJoinWaitlist_BlankNameUsesDash(t *testing.T) {
	m := &fakeMailer{}
	_, err := newTestService(m, nil, config.SheetsConfig{}).JoinWaitlist(context.Background(), WaitlistInput{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Contains(t, m.sent[0].HTML, "<strong>Name:</strong> —")
}

func TestJoinWaitlist_RequiresEmail(t *testing.T) {
	m := &fakeMailer{}
	_, err := newTestService(m, nil, config.SheetsConfig{}).JoinWaitlist(context.Background(), WaitlistInput{Name: "Ann", Email: "  "})

	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"email"}, missing.Fields)
	assert.Empty(t, m.sent)
}

func TestJoinWaitlist_MailFailure(t *testing.T) {
	boom := errors.New("resend down")
	_, err := newTestService(&fakeMailer{err: boom}, nil, config.SheetsConfig{}).JoinWaitlist(context.Background(), WaitlistInput{Email: "a@b.co"})

	var derr *DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.ErrorIs(t, err, boom)
}

func TestJoinWaitlist_SheetFailureIgnored(t *testing.T) {
	s := &fakeSheets{err: errors.New("sheet down")}
	id, err := newTestService(&fakeMailer{}, s, config.SheetsConfig{WaitlistWebhookURL: "https://sheet"}).
		JoinWaitlist(context.Background(), WaitlistInput{Name: "Ann", Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, "msg_1", id)

	require.Len(t, s.calls, 1)
	assert.Equal(t, "https://sheet", s.calls[0].endpoint)
	assert.Equal(t, "a@b.co", s.calls[0].row["email"])
	assert.Equal(t, "2026-03-01T11:00:00Z", s.calls[0].row["timestamp"])
}

func TestRequestProposal_Success(t *testing.T) {
	s := &fakeSheets{}
	svc := newTestService(&fakeMailer{}, s, config.SheetsConfig{ProposalWebhookURL: "https://hook", ProposalSecret: "sec"})

	receipt, err := svc.RequestProposal(context.Background(), ProposalInput{
		OwnerName:    " Ann ",
		Email:        "ann@example.com",
		BusinessName: "Acme",
		ServiceArea:  "Austin",
	})
	require.NoError(t, err)
	assert.Equal(t, "req-1", receipt.RequestID)
	assert.Equal(t, "Request received — check your inbox shortly.", receipt.Message)

	require.Len(t, s.calls, 1)
	call := s.calls[0]
	assert.Equal(t, "https://hook", call.endpoint)
	assert.Equal(t, "sec", call.secret)
	assert.Equal(t, sheets.Row{
		"ownerName":    "Ann",
		"email":        "ann@example.com",
		"businessName": "Acme",
		"serviceArea":  "Austin",
		"industry":     "",
		"source":       "proposal_page_form",
		"timestamp":    "2026-03-01T11:00:00Z",
	}, call.row)
}

func TestRequestProposal_MissingFields(t *testing.T) {
	s := &fakeSheets{}
	_, err := newTestService(&fakeMailer{}, s, config.SheetsConfig{ProposalWebhookURL: "https://hook"}).
		RequestProposal(context.Background(), ProposalInput{Email: "a@b.co", ServiceArea: " "})

	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"ownerName", "businessName", "serviceArea"}, missing.Fields)
	assert.Empty(t, s.calls)
}

func TestRequestProposal_NotConfigured(t *testing.T) {
	_, err := newTestService(&fakeMailer{}, &fakeSheets{}, config.SheetsConfig{}).
		RequestProposal(context.Background(), ProposalInput{OwnerName: "a", Email: "b", BusinessName: "c", ServiceArea: "d"})
	assert.ErrorIs(t, err, sheets.ErrNotConfigured)
}

func TestRequestProposal_WebhookRejected(t *testing.T) {
	rej := &sheets.RejectedError{Status: 500, Message: "Sheets webhook failed (500). oops"}
	_, err := newTestService(&fakeMailer{}, &fakeSheets{err: rej}, config.SheetsConfig{ProposalWebhookURL: "https://hook"}).
		RequestProposal(context.Background(), ProposalInput{OwnerName: "a", Email: "b", BusinessName: "c", ServiceArea: "d", Source: "landing"})

	var got *sheets.RejectedError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, rej.Message, got.Message)
}
