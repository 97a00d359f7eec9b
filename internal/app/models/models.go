package models

// RoleType defines the user role type
type RoleType string

const (
	RoleTeacher RoleType = "TEACHER"
	RoleStudent RoleType = "STUDENT"
)

// InvitationStatus represents the lifecycle state of a class invitation
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationRejected InvitationStatus = "REJECTED"
)

// IsValid reports whether s is one of the known statuses.
func (s InvitationStatus) IsValid() bool {
	return s == InvitationPending || s == InvitationAccepted || s == InvitationRejected
}

// IsTerminal reports whether the status admits no further transitions.
func (s InvitationStatus) IsTerminal() bool {
	return s == InvitationAccepted || s == InvitationRejected
}

// CanTransitionTo reports whether a transition from s to target is allowed.
// The only legal transitions are PENDING -> ACCEPTED and PENDING -> REJECTED.
func (s InvitationStatus) CanTransitionTo(target InvitationStatus) bool {
	if s != InvitationPending {
		return false
	}
	return target == InvitationAccepted || target == InvitationRejected
}

// PostKind distinguishes plain announcements from tasks requiring submissions
type PostKind string

const (
	PostAnnouncement PostKind = "ANNOUNCEMENT"
	PostTask         PostKind = "TASK"
)

// NotificationType categorizes system-generated notifications
type NotificationType string

const (
	NotificationNewTask          NotificationType = "NEW_TASK"
	NotificationSubmissionGraded NotificationType = "SUBMISSION_GRADED"
	NotificationInvitation       NotificationType = "INVITATION"
)

// Submission status labels used in exported reports
const (
	SubmissionStatusDelivered = "Entregada"
	SubmissionStatusPending   = "Pendiente"
)
