package mails

// Payload is what the mail relay delivers: a destination, a fixed
// subject and an HTML body.
type Payload struct {
	To      string
	Subject string
	HTML    string
}
