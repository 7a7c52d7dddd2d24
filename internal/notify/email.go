package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"path/filepath"
	"strings"

	"topcv-crawler/internal/crawler"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("topcv-crawler/notify")

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type Options struct {
	Smtp SmtpConfig `json:"smtp"`
	To   []string   `json:"to"`
	// Attach sends the written output files along with the summary.
	Attach bool `json:"attach"`
}

func (o Options) Enabled() bool {
	return o.Smtp.Server != "" && len(o.To) > 0
}

// Report builds the e-mail announcing a finished run.
func Report(opts Options, runId string, result crawler.Result, files []string) (*email.Email, error) {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("TopCV Crawler <%s>", opts.Smtp.EmailAddress)
	mail.To = opts.To

	status := "ok"
	if result.Err() != nil {
		status = "partial"
	}
	mail.Subject = fmt.Sprintf(
		"[topcv-crawler] %s: %d jobs (%s)",
		result.CrawlDate, len(result.Records), status,
	)

	body := &bytes.Buffer{}
	fmt.Fprintf(body, "Run %s finished.\n\n", runId)
	WriteSummary(body, result)
	if len(files) > 0 {
		body.WriteString("\nFiles:\n")
		for _, f := range files {
			fmt.Fprintf(body, "  %s\n", filepath.Base(f))
		}
	}
	mail.Text = body.Bytes()

	if opts.Attach {
		for _, f := range files {
			_, err := mail.AttachFile(f)
			if err != nil {
				return nil, fmt.Errorf("attach %s: %w", f, err)
			}
		}
	}
	return mail, nil
}

// Send delivers mail over smtp, retrying without auth for relays that do
// not support it.
func Send(ctx context.Context, config SmtpConfig, mail *email.Email) error {
	_, span := tracer.Start(ctx, "Send")
	defer span.End()

	addr := fmt.Sprintf("%s:%d", config.Server, config.Port)
	err := mail.Send(
		addr,
		smtp.PlainAuth("", config.EmailAddress, config.Password, config.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}
	return nil
}
