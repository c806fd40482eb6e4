package mailer

import (
	"bytes"
	"fmt"
	"mime"
	"strings"
	"text/template"
	"time"
)

const subject = "Confirmation de votre réservation de jus de pomme"

var weekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

var months = [...]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"}

var bodyTemplate = template.Must(template.New("confirmation").Parse(`Bonjour {{.FirstName}} {{.LastName}},

Votre réservation est confirmée.

  Lieu : {{.Location}}
  Date : {{.Date}}
  Quand : {{.When}}
  Quantité : {{.Quantity}} cubi(s) de 5 L
  Téléphone : {{.Phone}}
{{- if .Comment}}
  Commentaire : {{.Comment}}
{{- end}}

Vous pouvez consulter, modifier ou annuler votre réservation jusqu'au début du créneau :
{{.ManageURL}}

Code de réservation : {{.Token}}

Merci pour votre soutien !
{{.Brand}}
`))

// FormatWhen дата и время по-французски, например "mercredi 1 octobre 2025 à 09:15"
func FormatWhen(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%s %d %s %d à %s", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year(), t.Format("15:04"))
}

// render собирает RFC 5322 сообщение в UTF-8
func render(from, fromName string, c Confirmation, loc *time.Location) ([]byte, error) {
	r := c.Reservation
	comment := ""
	if r.Comment != nil {
		comment = *r.Comment
	}

	var body bytes.Buffer
	err := bodyTemplate.Execute(&body, map[string]interface{}{
		"FirstName": r.FirstName,
		"LastName":  r.LastName,
		"Location":  r.Location,
		"Date":      r.Date,
		"When":      FormatWhen(r.StartAt, loc),
		"Quantity":  r.Quantity,
		"Phone":     r.Phone,
		"Comment":   comment,
		"ManageURL": c.ManageURL(),
		"Token":     r.Token,
		"Brand":     fromName,
	})
	if err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	sender := from
	if fromName != "" {
		sender = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", fromName), from)
	}
	fmt.Fprintf(&msg, "From: %s\r\n", sender)
	fmt.Fprintf(&msg, "To: %s\r\n", c.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	msg.WriteString(strings.ReplaceAll(body.String(), "\n", "\r\n"))

	return msg.Bytes(), nil
}
