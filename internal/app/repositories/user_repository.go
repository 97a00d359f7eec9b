package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/app/repositories/user"
)

// UserRepository combines all user-related repositories
type UserRepository struct {
	common  *user.Repository
	student *user.StudentRepository
	teacher *user.TeacherRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		common:  user.NewRepository(db),
		student: user.NewStudentRepository(db),
		teacher: user.NewTeacherRepository(db),
	}
}

// CreateUser creates a new user
func (r *UserRepository) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	return r.common.CreateUser(ctx, u)
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.common.GetUserByEmail(ctx, email)
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.common.GetUserByID(ctx, id)
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.common.EmailExists(ctx, email)
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	return r.common.UpdateLastLogin(ctx, userID)
}

// UpdateProfile updates a user's basic profile information
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string) error {
	return r.common.UpdateUserProfile(ctx, userID, firstName, lastName)
}

// DeleteUser deletes a user
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	return r.common.DeleteUser(ctx, id)
}

// CreateStudent creates a new student profile
func (r *UserRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	return r.student.CreateStudent(ctx, student)
}

// GetStudentByUserID retrieves a student profile by user ID
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.student.GetStudentByUserID(ctx, userID)
}

// EnrollmentNumberExists checks if an enrollment number already exists
func (r *UserRepository) EnrollmentNumberExists(ctx context.Context, enrollmentNumber string) (bool, error) {
	return r.student.EnrollmentNumberExists(ctx, enrollmentNumber)
}

// CreateTeacher creates a new teacher profile
func (r *UserRepository) CreateTeacher(ctx context.Context, teacher *models.Teacher) error {
	return r.teacher.CreateTeacher(ctx, teacher)
}

// GetTeacherByUserID retrieves a teacher profile by user ID
func (r *UserRepository) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	return r.teacher.GetTeacherByUserID(ctx, userID)
}
