package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// The API process only ever enqueues jobs; rendering and delivery happen in
// cmd/email_worker.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeJob builds the registration welcome email.
func WelcomeJob(to string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to soundem",
		Text: "Your soundem account is ready.\n\n" +
			"Log in with this email address to start building your library and " +
			"favoriting songs.",
	}
}
