package models

type MessageKind string

const (
	SelectionMessage    MessageKind = "selection"
	RejectionMessage    MessageKind = "rejection"
	ConfirmationMessage MessageKind = "interview_confirmation"
)

type Message struct {
	Kind      MessageKind
	Recipient string
	Subject   string
	Body      string
}

type MeetingRequest struct {
	Title    string
	Slot     InterviewSlot
	Attendee string
}
