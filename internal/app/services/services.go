package services

// Services defined in this package:
// - AuthService: Handles authentication and user registration
// - ClassService: Handles classes, join codes and roster membership
// - InvitationService: Handles the invitation lifecycle
// - PostService: Handles class feeds (announcements and tasks)
// - SubmissionService: Handles task submissions and grading
// - NotificationService: Handles the notification inbox and real-time pushes
// - ExportService: Handles grade report exports
