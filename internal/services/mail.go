package services

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendSubmissionEmail notifies a dataset's configured recipients that a new
// record was submitted.
func SendSubmissionEmail(recipients []string, datasetName, recordID string) error {
	from := mail.NewEmail("CHWOne", "notifications@chwone.org")
	subject := fmt.Sprintf("New submission in %s", datasetName)

	htmlContent := fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h2 style="color: #2c3e50;">New Dataset Submission</h2>
			<p>A new record has been submitted to <strong>%s</strong>.</p>
			<p>Record ID: <code>%s</code></p>
			<p>You are receiving this because submission notifications are enabled for this dataset.</p>
		</div>
        `, datasetName, recordID)

	plainTextContent := fmt.Sprintf("A new record (%s) has been submitted to %s.", recordID, datasetName)

	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	for _, recipient := range recipients {
		to := mail.NewEmail("", recipient)
		message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
		if _, err := client.Send(message); err != nil {
			return err
		}
	}
	return nil
}
