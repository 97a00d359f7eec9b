package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/dromero/aulasync/internal/app/models"
	appRepos "github.com/dromero/aulasync/internal/app/repositories"
	"golang.org/x/crypto/bcrypt"
)

// CreateDefaultData creates demo accounts for local development if they don't
// exist yet. Moved from bootstrap package.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (demo accounts)...")
	var finalErr error // To collect potential errors without stopping the process

	// --- Demo Teacher Account --- //
	teacherEmail := "teacher@aulasync.app"
	exists, err := userRepo.EmailExists(ctx, teacherEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if demo teacher exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating demo teacher account...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Teacher123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing demo teacher password")
			finalErr = errors.Join(finalErr, err)
		} else {
			teacher := &appModels.User{
				Email:     teacherEmail,
				Password:  string(hashedPassword),
				FirstName: "Marta",
				LastName:  "Delgado",
				Role:      appModels.RoleTeacher,
				IsActive:  true,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}

			teacherID, err := userRepo.CreateUser(ctx, teacher)
			if err != nil {
				lgr.Error().Err(err).Msg("Error creating demo teacher user")
				finalErr = errors.Join(finalErr, err)
			} else {
				profile := &appModels.Teacher{
					UserID:     teacherID,
					Specialty:  "Mathematics",
					Department: "Science",
				}
				if err := userRepo.CreateTeacher(ctx, profile); err != nil {
					lgr.Error().Err(err).Msg("Error creating demo teacher profile")
					finalErr = errors.Join(finalErr, err)
				} else {
					lgr.Info().Int64("teacherID", teacherID).Msg("Demo teacher account created successfully")
				}
			}
		}
	} else {
		lgr.Info().Msg("Demo teacher already exists, skipping creation")
	}

	// --- Demo Student Account --- //
	studentEmail := "student@aulasync.app"
	exists, err = userRepo.EmailExists(ctx, studentEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if demo student exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating demo student account...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Student123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing demo student password")
			finalErr = errors.Join(finalErr, err)
		} else {
			student := &appModels.User{
				Email:     studentEmail,
				Password:  string(hashedPassword),
				FirstName: "Pablo",
				LastName:  "Serrano",
				Role:      appModels.RoleStudent,
				IsActive:  true,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}

			studentID, err := userRepo.CreateUser(ctx, student)
			if err != nil {
				lgr.Error().Err(err).Msg("Error creating demo student user")
				finalErr = errors.Join(finalErr, err)
			} else {
				enrollment := "A2025-0001"
				profile := &appModels.Student{
					UserID:           studentID,
					EnrollmentNumber: &enrollment,
				}
				if err := userRepo.CreateStudent(ctx, profile); err != nil {
					lgr.Error().Err(err).Msg("Error creating demo student profile")
					finalErr = errors.Join(finalErr, err)
				} else {
					lgr.Info().Int64("studentID", studentID).Msg("Demo student account created successfully")
				}
			}
		}
	} else {
		lgr.Info().Msg("Demo student already exists, skipping creation")
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr // Return collected errors, if any
}
