package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/dromero/aulasync/internal/app/auth"
	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/app/models/dto"
	"github.com/dromero/aulasync/internal/app/repositories"
	"github.com/dromero/aulasync/internal/db"
	"github.com/dromero/aulasync/internal/pkg/apperrors"
	"github.com/dromero/aulasync/internal/pkg/dberrors"
	"github.com/dromero/aulasync/internal/pkg/helpers"
	"github.com/dromero/aulasync/internal/pkg/joincode"
)

// maxJoinCodeAttempts bounds the retry loop on join code collisions. The
// code space is ~2.2e9, so hitting this many collisions in a row means
// something is wrong with the generator, not bad luck.
const maxJoinCodeAttempts = 5

// ClassService handles class and roster operations
type ClassService struct {
	classRepo  *repositories.ClassRepository
	memberRepo *repositories.ClassMemberRepository
	userRepo   *repositories.UserRepository
	database   *db.PostgresDB
	authz      *auth.AuthorizationService
	logger     zerolog.Logger
}

// NewClassService creates a new ClassService
func NewClassService(
	classRepo *repositories.ClassRepository,
	memberRepo *repositories.ClassMemberRepository,
	userRepo *repositories.UserRepository,
	database *db.PostgresDB,
	authz *auth.AuthorizationService,
	logger zerolog.Logger,
) *ClassService {
	return &ClassService{
		classRepo:  classRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		database:   database,
		authz:      authz,
		logger:     logger,
	}
}

// CreateClass creates a class owned by the teacher with a fresh join code.
// Code uniqueness is enforced by the database; on a collision a new code is
// drawn and the insert retried.
func (s *ClassService) CreateClass(ctx context.Context, teacherID int64, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	if err := s.authz.ValidateTeacher(ctx, teacherID); err != nil {
		return nil, err
	}

	class := &models.Class{
		Name:      req.Name,
		TeacherID: teacherID,
	}

	for attempt := 0; attempt < maxJoinCodeAttempts; attempt++ {
		code, err := joincode.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate join code: %w", err)
		}
		class.JoinCode = code

		id, err := s.classRepo.Create(ctx, class)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "classes_join_code_key") {
				s.logger.Warn().Str("code", code).Int("attempt", attempt+1).Msg("Join code collision, retrying")
				continue
			}
			return nil, err
		}

		class.ID = id
		s.logger.Info().Int64("classID", id).Int64("teacherID", teacherID).Msg("Class created")

		created, err := s.classRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return s.toClassResponse(created, teacherID), nil
	}

	return nil, apperrors.ErrJoinCodeExhausted
}

// GetClass retrieves a class visible to the caller. The join code is only
// included for the owning teacher.
func (s *ClassService) GetClass(ctx context.Context, classID, userID int64) (*dto.ClassResponse, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	if class.TeacherID != userID {
		isMember, err := s.memberRepo.IsMember(ctx, classID, userID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, auth.ErrPermissionDenied
		}
	}

	return s.toClassResponse(class, userID), nil
}

// ListClasses retrieves the caller's classes: owned classes for a teacher,
// enrolled classes for a student.
func (s *ClassService) ListClasses(ctx context.Context, userID int64, page, pageSize int) (*dto.ClassListResponse, error) {
	user, err := s.authz.GetUserInfo(ctx, userID)
	if err != nil {
		return nil, err
	}

	var classes []*models.Class
	var total int64
	if user.Role == models.RoleTeacher {
		classes, total, err = s.classRepo.GetByTeacher(ctx, userID, page, pageSize)
	} else {
		classes, total, err = s.classRepo.GetByStudent(ctx, userID, page, pageSize)
	}
	if err != nil {
		return nil, err
	}

	resp := &dto.ClassListResponse{
		Classes:        make([]dto.ClassResponse, 0, len(classes)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, class := range classes {
		resp.Classes = append(resp.Classes, *s.toClassResponse(class, userID))
	}

	return resp, nil
}

// UpdateClass renames a class. Only the owning teacher may rename.
func (s *ClassService) UpdateClass(ctx context.Context, classID, teacherID int64, req *dto.UpdateClassRequest) (*dto.ClassResponse, error) {
	if _, err := s.authz.ValidateClassOwnership(ctx, classID, teacherID); err != nil {
		return nil, err
	}

	if err := s.classRepo.UpdateName(ctx, classID, req.Name); err != nil {
		return nil, err
	}

	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	return s.toClassResponse(class, teacherID), nil
}

// DeleteClass deletes a class and everything hanging off it
func (s *ClassService) DeleteClass(ctx context.Context, classID, teacherID int64) error {
	if _, err := s.authz.ValidateClassOwnership(ctx, classID, teacherID); err != nil {
		return err
	}

	if err := s.classRepo.Delete(ctx, classID); err != nil {
		return err
	}

	s.logger.Info().Int64("classID", classID).Int64("teacherID", teacherID).Msg("Class deleted")
	return nil
}

// JoinByCode enrolls a student in the class matching the code. Joining a
// class the student is already in is a conflict, and the membership insert
// plus the counter update commit together.
func (s *ClassService) JoinByCode(ctx context.Context, studentID int64, code string) (*dto.ClassResponse, error) {
	if !joincode.IsValid(code) {
		return nil, apperrors.NewBadRequestError("join code must be 6 characters from [0-9A-Z]")
	}

	user, err := s.authz.GetUserInfo(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("only students can join classes")
	}

	class, err := s.classRepo.GetByJoinCode(ctx, code)
	if err != nil {
		return nil, err
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		added, err := s.memberRepo.Add(ctx, tx, class.ID, studentID)
		if err != nil {
			return err
		}
		if !added {
			return apperrors.ErrAlreadyMember
		}
		return s.classRepo.IncrementStudentCount(ctx, tx, class.ID, 1)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("classID", class.ID).Int64("studentID", studentID).Msg("Student joined class by code")

	joined, err := s.classRepo.GetByID(ctx, class.ID)
	if err != nil {
		return nil, err
	}
	return s.toClassResponse(joined, studentID), nil
}

// RemoveMember takes a student off the roster. Removing a student who is
// not a member is a silent no-op.
func (s *ClassService) RemoveMember(ctx context.Context, classID, teacherID, studentID int64) error {
	if _, err := s.authz.ValidateClassOwnership(ctx, classID, teacherID); err != nil {
		return err
	}

	return s.removeMembership(ctx, classID, studentID)
}

// LeaveClass lets a student leave a class. Like RemoveMember, leaving a
// class the student is not in is a no-op.
func (s *ClassService) LeaveClass(ctx context.Context, classID, studentID int64) error {
	if _, err := s.classRepo.GetByID(ctx, classID); err != nil {
		return err
	}

	return s.removeMembership(ctx, classID, studentID)
}

func (s *ClassService) removeMembership(ctx context.Context, classID, studentID int64) error {
	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		removed, err := s.memberRepo.Remove(ctx, tx, classID, studentID)
		if err != nil {
			return err
		}
		if !removed {
			return nil
		}
		return s.classRepo.IncrementStudentCount(ctx, tx, classID, -1)
	})
}

// GetRoster retrieves the members of a class. Visible to the owning teacher
// and to enrolled students.
func (s *ClassService) GetRoster(ctx context.Context, classID, userID int64) (*dto.RosterResponse, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	if class.TeacherID != userID {
		isMember, err := s.memberRepo.IsMember(ctx, classID, userID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, auth.ErrPermissionDenied
		}
	}

	members, err := s.memberRepo.GetRoster(ctx, classID)
	if err != nil {
		return nil, err
	}

	resp := &dto.RosterResponse{
		ClassID: classID,
		Members: make([]dto.MemberResponse, 0, len(members)),
	}
	for _, member := range members {
		m := dto.MemberResponse{
			StudentID: member.StudentID,
			JoinedAt:  member.JoinedAt,
		}
		if member.Student != nil {
			m.FirstName = member.Student.FirstName
			m.LastName = member.Student.LastName
			m.Email = member.Student.Email
		}
		if student, err := s.userRepo.GetStudentByUserID(ctx, member.StudentID); err == nil {
			m.EnrollmentNumber = student.EnrollmentNumber
		} else if !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		resp.Members = append(resp.Members, m)
	}

	return resp, nil
}

// toClassResponse maps a class to its DTO, hiding the join code from
// everyone but the owning teacher
func (s *ClassService) toClassResponse(class *models.Class, viewerID int64) *dto.ClassResponse {
	resp := &dto.ClassResponse{
		ID:           class.ID,
		Name:         class.Name,
		TeacherID:    class.TeacherID,
		StudentCount: class.StudentCount,
		CreatedAt:    class.CreatedAt,
	}
	if class.Teacher != nil {
		resp.TeacherName = class.Teacher.FullName()
	}
	if class.TeacherID == viewerID {
		resp.JoinCode = class.JoinCode
	}
	return resp
}
