package notify

import "intersify/internal/domain/application"

// statusMessages is the student-facing explanation for each status. One entry
// per declared status; completeness is enforced by a test.
var statusMessages = map[application.Status]string{
	application.StatusApplied:            "Your application is being reviewed.",
	application.StatusShortlisted:        "Congratulations! Your application has been shortlisted for further review.",
	application.StatusInterviewScheduled: "Great news! An interview has been scheduled. Please check your dashboard for details.",
	application.StatusInterviewCompleted: "Your interview has been completed. We will update you with the results soon.",
	application.StatusOfferMade:          "Congratulations! You have received an offer for this position.",
	application.StatusAccepted:           "Welcome to the team! Your application has been accepted.",
	application.StatusRejected:           "Thank you for your application. Unfortunately, we have decided to proceed with other candidates.",
	application.StatusWithdrawn:          "Your application has been withdrawn.",
	application.StatusCompleted:          "Your internship is complete. A certificate can now be issued.",
}

// StatusMessage returns the human-readable explanation for a status.
func StatusMessage(status application.Status) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return "Your application is being reviewed."
}
