package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"bookingwizard/models"
)

var bookingEmailTemplate = template.Must(template.New("booking").Funcs(template.FuncMap{
	"orDash": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "—"
		}
		return s
	},
}).Parse(`<h2>New booking request from {{.Name}}</h2>
<p><strong>Contact:</strong> {{.ContactMethod}} — {{.ContactDetail}}</p>
<p><strong>Address:</strong> {{orDash .Address}}</p>
<p><strong>Service:</strong> {{.Service}}</p>
<p><strong>Preferred time:</strong> {{orDash .PreferredTime}}</p>
<p><strong>Notes:</strong> {{orDash .Notes}}</p>
<p><strong>Other preferences:</strong> {{orDash .OtherPreferences}}</p>
<p><strong>Sensory preferences:</strong> {{.Sensory}}</p>`))

type bookingEmailView struct {
	models.BookingNotification
	Sensory string
}

// BookingEmailSubject is the subject line of the booking email.
func BookingEmailSubject(n models.BookingNotification) string {
	return fmt.Sprintf("New booking request from %s", n.Name)
}

// RenderBookingEmail renders the HTML body of the booking email. All values
// are HTML escaped.
func RenderBookingEmail(n models.BookingNotification) (string, error) {
	sensory := "None"
	if selected := n.Sensory.Selected(); len(selected) > 0 {
		sensory = strings.Join(selected, ", ")
	}

	var buf bytes.Buffer
	if err := bookingEmailTemplate.Execute(&buf, bookingEmailView{BookingNotification: n, Sensory: sensory}); err != nil {
		return "", fmt.Errorf("failed to render booking email: %w", err)
	}
	return buf.String(), nil
}
