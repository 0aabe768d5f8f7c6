package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"birthday_reminder/internal/domain/birthday"
)

var birthdayEmailTemplate = template.Must(template.New("birthday").Parse(`<html>
<body style="font-family: 'Outfit', Arial, sans-serif; background-color: #FFFDF5; padding: 40px;">
  <div style="max-width: 600px; margin: 0 auto; background: white; border: 3px solid black; padding: 30px; box-shadow: 8px 8px 0px 0px black;">
    <h1 style="font-family: 'Lexend Mega', sans-serif; color: #FF6B6B; margin: 0 0 20px 0;">🎉 BIRTHDAY ALERT!</h1>
    <div style="background: #A3E635; border: 2px solid black; padding: 20px; margin: 20px 0;">
      <h2 style="margin: 0; color: #1A1A1A;">{{.Name}}</h2>
      <p style="margin: 5px 0; font-size: 14px;">Relationship: {{.Relation}}</p>
      {{- if .HasAge}}
      <p style="margin: 5px 0; font-size: 14px;">Turning: {{.Age}} years old</p>
      {{- end}}
    </div>
    {{- if .CustomMessage}}
    <p style="font-style: italic; background: #FFE66D; padding: 15px; border: 2px solid black;">{{.CustomMessage}}</p>
    {{- end}}
    <p style="color: #666;">Don't forget to send your wishes! 🎁</p>
    <div style="margin-top: 30px; padding-top: 20px; border-top: 2px dashed black;">
      <p style="font-size: 12px; color: #999;">Sent by Birthday Reminder App</p>
    </div>
  </div>
</body>
</html>`))

type emailData struct {
	Name          string
	Relation      string
	Age           int
	HasAge        bool
	CustomMessage string
}

// RenderBirthdayMessage builds the reminder email for b. The age line is left out
// when the birth year is unknown or the stored date cannot be parsed.
func RenderBirthdayMessage(b *birthday.Birthday, cfg *Config, now time.Time) (*Message, error) {
	data := emailData{
		Name:          b.Name,
		Relation:      b.Relation,
		CustomMessage: strings.TrimSpace(b.CustomMessage),
	}
	if bd, err := b.ParsedBirthDate(); err == nil {
		data.Age, data.HasAge = bd.AgeIn(now.Year())
	}

	var body bytes.Buffer
	if err := birthdayEmailTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("rendering birthday email: %w", err)
	}

	return &Message{
		From:    cfg.SenderAddress,
		To:      cfg.ResolveRecipients(),
		Subject: fmt.Sprintf("🎂 Birthday Reminder: %s's Birthday is Today!", b.Name),
		HTML:    body.String(),
	}, nil
}

// RenderBirthdayText is the plain-text variant used for chat mirrors.
func RenderBirthdayText(b *birthday.Birthday, now time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎉 Birthday today: %s (%s)", b.Name, b.Relation)
	if bd, err := b.ParsedBirthDate(); err == nil {
		if age, ok := bd.AgeIn(now.Year()); ok {
			fmt.Fprintf(&sb, ", turning %d", age)
		}
	}
	if msg := strings.TrimSpace(b.CustomMessage); msg != "" {
		sb.WriteString("\n\n")
		sb.WriteString(msg)
	}
	return sb.String()
}
