package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"littlestar/internal/models"
)

// EmailService delivers the daily learning report to parents via Amazon
// SES. When no from-address is configured the service runs disabled and
// every send is skipped with a log line instead of an error.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates the email service. An empty fromEmail yields a
// disabled service rather than an error so the rest of the app can run
// without SES credentials.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled reports whether sends will actually go out.
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendDailyReport sends one child's daily summary to their parent.
func (s *EmailService) SendDailyReport(ctx context.Context, summary models.DailySummary) error {
	subject := fmt.Sprintf("Daily Learning Report for %s - %s",
		summary.ChildName, summary.Date.Format("Jan 02, 2006"))
	return s.send(ctx, summary.ParentEmail, subject,
		dailyReportHTML(summary), dailyReportText(summary))
}

// SendTestEmail sends a short delivery-check message, used by the admin
// dashboard to verify SES configuration.
func (s *EmailService) SendTestEmail(ctx context.Context, toEmail string) error {
	subject := "Little Star Test Email"
	text := "This is a test email from Little Star. If you are reading this, email delivery is working."
	html := "<p>" + text + "</p>"
	return s.send(ctx, toEmail, subject, html, text)
}

func (s *EmailService) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): to=%s, subject=%s", toEmail, subject)
		return nil
	}

	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}

func dailyReportHTML(summary models.DailySummary) string {
	var activities strings.Builder
	for _, a := range summary.Activities {
		fmt.Fprintf(&activities, `
		<div class="activity">
			<strong>%s</strong>: %s<br>
			<span style="color: #666;">%s · %d seconds</span>
		</div>`,
			a.ActivityType, a.ActivityTitle, a.Timestamp.Format("3:04 PM"), a.TimeSpentSeconds)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Daily Learning Report - %s</title>
	<style>
		body { font-family: Arial, sans-serif; margin: 20px; background-color: #f5f5f5; }
		.header { background-color: #4CAF50; color: white; padding: 20px; border-radius: 10px; margin-bottom: 20px; }
		.content { background-color: white; padding: 20px; border-radius: 10px; box-shadow: 0 2px 5px rgba(0,0,0,0.1); }
		.activity { background-color: #f9f9f9; padding: 15px; margin: 10px 0; border-radius: 5px; border-left: 4px solid #4CAF50; }
		.footer { margin-top: 30px; font-size: 12px; color: #666; text-align: center; }
	</style>
</head>
<body>
	<div class="header">
		<h1>📚 Daily Learning Report</h1>
		<p><strong>Child:</strong> %s (Age: %d)</p>
		<p><strong>Date:</strong> %s</p>
		<p><strong>Language:</strong> %s</p>
	</div>
	<div class="content">
		<p>Hi %s,</p>
		<p>Here is what %s learned today:</p>
		<ul>
			<li>Topics viewed: %d</li>
			<li>Questions asked: %d</li>
			<li>Blogs read: %d</li>
			<li>Total time spent: %d minutes</li>
		</ul>
		%s
	</div>
	<div class="footer">
		<p>This is an automated email from Little Star. Please do not reply.</p>
	</div>
</body>
</html>
`, summary.ChildName, summary.ChildName, summary.ChildAge,
		summary.Date.Format("January 02, 2006"), summary.Language,
		parentGreetingName(summary), summary.ChildName,
		summary.TopicsViewed, summary.QuestionsAsked, summary.BlogsRead,
		summary.TotalTimeSpentMinutes, activities.String())
}

func dailyReportText(summary models.DailySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily Learning Report\n\n")
	fmt.Fprintf(&b, "Child: %s (Age: %d)\n", summary.ChildName, summary.ChildAge)
	fmt.Fprintf(&b, "Date: %s\n\n", summary.Date.Format("January 02, 2006"))
	fmt.Fprintf(&b, "Hi %s,\n\nHere is what %s learned today:\n", parentGreetingName(summary), summary.ChildName)
	fmt.Fprintf(&b, "- Topics viewed: %d\n", summary.TopicsViewed)
	fmt.Fprintf(&b, "- Questions asked: %d\n", summary.QuestionsAsked)
	fmt.Fprintf(&b, "- Blogs read: %d\n", summary.BlogsRead)
	fmt.Fprintf(&b, "- Total time spent: %d minutes\n\n", summary.TotalTimeSpentMinutes)
	for _, a := range summary.Activities {
		fmt.Fprintf(&b, "%s  %s: %s (%d seconds)\n",
			a.Timestamp.Format("3:04 PM"), a.ActivityType, a.ActivityTitle, a.TimeSpentSeconds)
	}
	b.WriteString("\n---\nThis is an automated email from Little Star. Please do not reply.\n")
	return b.String()
}

func parentGreetingName(summary models.DailySummary) string {
	if summary.ParentName != "" {
		return summary.ParentName
	}
	return "there"
}
