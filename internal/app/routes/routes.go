package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dromero/aulasync/internal/app/controllers"
	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/app/models/dto"
	"github.com/dromero/aulasync/internal/middleware"
	"github.com/dromero/aulasync/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	classController *controllers.ClassController,
	invitationController *controllers.InvitationController,
	postController *controllers.PostController,
	submissionController *controllers.SubmissionController,
	notificationController *controllers.NotificationController,
	exportController *controllers.ExportController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh-token", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/profile", authController.GetProfile)

		teacherOnly := authMiddleware.RoleRequired(string(models.RoleTeacher))
		studentOnly := authMiddleware.RoleRequired(string(models.RoleStudent))

		// Class routes
		classes := authenticated.Group("/classes")
		{
			classes.GET("", classController.ListClasses)
			classes.POST("", teacherOnly, classController.CreateClass)
			classes.POST("/join", studentOnly, classController.JoinClass)

			classes.GET("/:id", classController.GetClass)
			classes.PUT("/:id", teacherOnly, classController.UpdateClass)
			classes.DELETE("/:id", teacherOnly, classController.DeleteClass)

			// Roster management. DELETE on the collection removes the caller,
			// DELETE on a member removes that student (owner only).
			classes.GET("/:id/members", classController.GetRoster)
			classes.DELETE("/:id/members", studentOnly, classController.LeaveClass)
			classes.DELETE("/:id/members/:studentId", teacherOnly, classController.RemoveMember)

			// Invitations issued for the class
			classes.POST("/:id/invitations", teacherOnly, invitationController.InviteStudent)
			classes.GET("/:id/invitations", teacherOnly, invitationController.ListClassInvitations)

			// Class feed
			classes.POST("/:id/posts", teacherOnly, postController.CreatePost)
			classes.GET("/:id/posts", postController.GetFeed)

			// Grade report download
			classes.GET("/:id/export", teacherOnly, exportController.ExportClassReport)
		}

		// Invitation routes for the invited student
		invitations := authenticated.Group("/invitations")
		{
			invitations.GET("", studentOnly, invitationController.ListMyInvitations)
			invitations.POST("/:id/accept", studentOnly, invitationController.AcceptInvitation)
			invitations.POST("/:id/reject", studentOnly, invitationController.RejectInvitation)
		}

		// Post routes
		posts := authenticated.Group("/posts")
		{
			posts.GET("/:id", postController.GetPost)
			posts.PUT("/:id", teacherOnly, postController.UpdatePost)
			posts.DELETE("/:id", teacherOnly, postController.DeletePost)

			// Submissions for a task
			posts.POST("/:id/submissions", studentOnly, submissionController.Submit)
			posts.GET("/:id/submissions", teacherOnly, submissionController.ListForTask)
			posts.GET("/:id/submissions/me", studentOnly, submissionController.GetOwnSubmission)

			posts.GET("/:id/export", teacherOnly, exportController.ExportTaskReport)
		}

		// Grading
		authenticated.PUT("/submissions/:id/grade", teacherOnly, submissionController.GradeSubmission)

		// Notification inbox and real-time stream
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.ListNotifications)
			notifications.GET("/ws", wsHandler.HandleConnection)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
