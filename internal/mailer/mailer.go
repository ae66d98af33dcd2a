package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

const (
	FromName                  = "Storefront"
	maxRetries                = 3
	OrderConfirmationTemplate = "order_confirmation.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) error
}

// render executes the subject and body blocks of a template. data is exposed
// to the template as .Data next to .Username.
func render(templateFile, username string, data any) (subject, body string, err error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return "", "", fmt.Errorf("parse %s: %w", templateFile, err)
	}

	vars := struct {
		Username string
		Data     any
	}{username, data}

	var s, b bytes.Buffer
	if err := tmpl.ExecuteTemplate(&s, "subject", vars); err != nil {
		return "", "", fmt.Errorf("render subject: %w", err)
	}
	if err := tmpl.ExecuteTemplate(&b, "body", vars); err != nil {
		return "", "", fmt.Errorf("render body: %w", err)
	}
	return s.String(), b.String(), nil
}
