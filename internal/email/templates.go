package email

import (
	"bytes"
	"fmt"
	"html/template"
)

type actionData struct {
	ActionURL  string
	ActionText string
	Intro      string
}

var verificationTemplate = template.Must(template.New("verification").Parse(`
<html>
<body style="font-family: sans-serif">
  <p>Welcome to our application! Please verify your email address by clicking the following link:</p>
  <p><a href="{{.ActionURL}}">{{.ActionText}}</a></p>
  <p>The link is valid for 24 hours.</p>
</body>
</html>`))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`
<html>
<body style="font-family: sans-serif">
  <p>Forgot your password? Submit a PATCH request with your new password to the link below.</p>
  <p><a href="{{.ActionURL}}">{{.ActionText}}</a></p>
  <p>If you didn't forget your password, please ignore this email.</p>
</body>
</html>`))

// renderActionTemplate produces the html body plus a plain-text fallback.
func renderActionTemplate(tmpl *template.Template, data actionData) (body, html string, err error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render template %s: %w", tmpl.Name(), err)
	}
	body = fmt.Sprintf("%s: %s", data.ActionText, data.ActionURL)
	return body, buf.String(), nil
}
