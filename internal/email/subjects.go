package email

const (
	subjectBookingConfirmationFmt = "Your booking with %s is confirmed"
	subjectBookingCancelledFmt    = "Your booking with %s was cancelled"
)
