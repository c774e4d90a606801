// Package lead 处理站点的线索表单：候补名单与方案申请
package lead

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"studio-site-api/internal/config"
	"studio-site-api/internal/infrastructure/email"
	"studio-site-api/internal/infrastructure/sheets"
	"studio-site-api/pkg/logger"
	"studio-site-api/pkg/metrics"
)

const (
	defaultProposalSource = "proposal_page_form"
	waitlistSource        = "waitlist_form"
	proposalReceivedMsg   = "Request received — check your inbox shortly."
)

// SheetAppender 表格 webhook 端口
type SheetAppender interface {
	Append(ctx context.Context, endpoint, secret string, row sheets.Row) error
}

type WaitlistInput struct {
	Name  string
	Email string
}

type ProposalInput struct {
	OwnerName    string
	Email        string
	BusinessName string
	ServiceArea  string
	Industry     string
	Source       string
}

// ProposalReceipt 方案申请回执
type ProposalReceipt struct {
	RequestID string
	Message   string
}

type Service struct {
	mailer email.Mailer
	sheets SheetAppender
	cfg    config.SheetsConfig

	now   func() time.Time
	newID func() string
}

func NewService(mailer email.Mailer, appender SheetAppender, cfg *config.SheetsConfig) *Service {
	return &Service{
		mailer: mailer,
		sheets: appender,
		cfg:    *cfg,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// JoinWaitlist 发送通知邮件，同时（若已配置）追加到候补名单表格；表格失败只记录日志
func (s *Service) JoinWaitlist(ctx context.Context, in WaitlistInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	addr := strings.TrimSpace(in.Email)
	if addr == "" {
		return "", &MissingFieldsError{Fields: []string{"email"}}
	}

	var (
		g         errgroup.Group
		messageID string
	)
	g.Go(func() error {
		id, err := s.mailer.Send(ctx, email.Message{HTML: waitlistHTML(name, addr)})
		if err != nil {
			return &DeliveryError{Err: err}
		}
		messageID = id
		return nil
	})
	if url := strings.TrimSpace(s.cfg.WaitlistWebhookURL); url != "" && s.sheets != nil {
		g.Go(func() error {
			row := sheets.Row{
				"name":      name,
				"email":     addr,
				"source":    waitlistSource,
				"timestamp": s.timestamp(),
			}
			if err := s.sheets.Append(ctx, url, s.cfg.ProposalSecret, row); err != nil {
				logger.Warn(ctx, "waitlist sheet append failed", "error", err.Error())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.LeadSubmissionsTotal.WithLabelValues("waitlist", "failed").Inc()
		logger.Error(ctx, "waitlist signup failed", err)
		return "", err
	}

	metrics.LeadSubmissionsTotal.WithLabelValues("waitlist", "ok").Inc()
	logger.Info(ctx, "waitlist signup received", "message_id", messageID)
	return messageID, nil
}

// RequestProposal 校验字段后以 GET 调用方案申请 webhook
func (s *Service) RequestProposal(ctx context.Context, in ProposalInput) (*ProposalReceipt, error) {
	in = ProposalInput{
		OwnerName:    strings.TrimSpace(in.OwnerName),
		Email:        strings.TrimSpace(in.Email),
		BusinessName: strings.TrimSpace(in.BusinessName),
		ServiceArea:  strings.TrimSpace(in.ServiceArea),
		Industry:     strings.TrimSpace(in.Industry),
		Source:       strings.TrimSpace(in.Source),
	}
	if in.Source == "" {
		in.Source = defaultProposalSource
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"ownerName", in.OwnerName},
		{"email", in.Email},
		{"businessName", in.BusinessName},
		{"serviceArea", in.ServiceArea},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	endpoint := strings.TrimSpace(s.cfg.ProposalWebhookURL)
	if endpoint == "" || s.sheets == nil {
		return nil, sheets.ErrNotConfigured
	}

	row := sheets.Row{
		"ownerName":    in.OwnerName,
		"email":        in.Email,
		"businessName": in.BusinessName,
		"serviceArea":  in.ServiceArea,
		"industry":     in.Industry,
		"source":       in.Source,
		"timestamp":    s.timestamp(),
	}
	if err := s.sheets.Append(ctx, endpoint, s.cfg.ProposalSecret, row); err != nil {
		metrics.LeadSubmissionsTotal.WithLabelValues("proposal", "failed").Inc()
		logger.Error(ctx, "proposal webhook failed", err, "source", in.Source)
		return nil, err
	}

	metrics.LeadSubmissionsTotal.WithLabelValues("proposal", "ok").Inc()
	receipt := &ProposalReceipt{RequestID: s.newID(), Message: proposalReceivedMsg}
	logger.Info(ctx, "proposal request received", "request_id", receipt.RequestID, "source", in.Source)
	return receipt, nil
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func waitlistHTML(name, addr string) string {
	if name == "" {
		name = "—"
	}
	return fmt.Sprintf("<p><strong>Name:</strong> %s</p>\n<p><strong>Email:</strong> %s</p>",
		html.EscapeString(name), html.EscapeString(addr))
}
