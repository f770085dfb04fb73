package notify

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	tmplAdminInvitation      = "admin_invitation"
	tmplMemberInvitation     = "member_invitation"
	tmplMemberApproved       = "member_approved"
	tmplRegistrationReceived = "registration_received"
)

var subjects = map[string]string{
	tmplAdminInvitation:      "You're invited to the %s admin console",
	tmplMemberInvitation:     "Set up your %s partner account",
	tmplMemberApproved:       "Your %s partner account is approved",
	tmplRegistrationReceived: "New %s partner registration",
}

var (
	textTemplates *texttemplate.Template
	htmlTemplates *htmltemplate.Template
)

func humanTime(t time.Time) string {
	return t.UTC().Format("Mon 2 Jan 2006 15:04 MST")
}

func init() {
	funcs := map[string]any{"humanTime": humanTime}

	textTemplates = texttemplate.Must(texttemplate.New("text").Funcs(funcs).ParseFS(templateFiles, "templates/*.txt"))
	htmlTemplates = htmltemplate.Must(htmltemplate.New("html").Funcs(funcs).ParseFS(templateFiles, "templates/*.html"))
}

func render(name string, data any) (text, html string, err error) {
	var tb, hb bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&tb, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("render %s text: %w", name, err)
	}
	if err := htmlTemplates.ExecuteTemplate(&hb, name+".html", data); err != nil {
		return "", "", fmt.Errorf("render %s html: %w", name, err)
	}
	return tb.String(), hb.String(), nil
}
