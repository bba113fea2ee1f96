package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/Masterminds/sprig/v3"
)

var resetPasswordTemplate = template.Must(
	template.New("reset_password").Funcs(sprig.HtmlFuncMap()).Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>{{ .AppName | title }} Password Reset</h2>
  <p>Hi {{ .Name | default "there" }},</p>
  <p>We received a request to reset the password for your account. Click the button below to choose a new password. This link expires in {{ .ExpiresIn }}.</p>
  <p style="margin: 24px 0;">
    <a href="{{ .ResetURL }}" style="background-color: #1976d2; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 4px;">Reset password</a>
  </p>
  <p>If the button does not work, copy this link into your browser:</p>
  <p><a href="{{ .ResetURL }}">{{ .ResetURL }}</a></p>
  <p>If you did not request a reset, you can ignore this email. Your password will not change.</p>
</body>
</html>
`))

// ResetPasswordData fills the password reset email template.
type ResetPasswordData struct {
	AppName   string
	Name      string
	ResetURL  string
	ExpiresIn string
}

// RenderResetPassword renders the reset email ready to send.
func RenderResetPassword(to string, data ResetPasswordData) (*Message, error) {
	var buf bytes.Buffer
	if err := resetPasswordTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render reset password email: %w", err)
	}

	html := buf.String()
	return &Message{
		To:       to,
		Subject:  fmt.Sprintf("%s - Reset your password", data.AppName),
		HTMLBody: html,
		TextBody: stripHTML(html),
	}, nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTML produces the text/plain alternative from the HTML body.
func stripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&#34;", `"`)
	s = strings.ReplaceAll(s, "&#39;", "'")
	return strings.Join(strings.Fields(s), " ")
}
