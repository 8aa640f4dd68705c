package email

import (
	"bytes"
	"html/template"

	"sporthall/internal/domain/feedback"
)

var feedbackTmpl = template.Must(template.New("feedback").Parse(`<h2>Новое сообщение с сайта</h2>
<p><strong>Имя:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Сообщение:</strong></p>
<p style="white-space: pre-wrap">{{.Message}}</p>`))

// FeedbackNotification builds the facility-inbox email for a new visitor message.
// Replies go straight to the visitor.
// PRE: s has been validated
func FeedbackNotification(to string, s feedback.Submission) (SendRequest, error) {
	var buf bytes.Buffer
	if err := feedbackTmpl.Execute(&buf, s); err != nil {
		return SendRequest{}, err
	}
	return SendRequest{
		To:      []string{to},
		Subject: "Обратная связь: " + s.Name,
		HTML:    buf.String(),
		ReplyTo: s.Email,
	}, nil
}
