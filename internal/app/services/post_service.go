package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/dromero/aulasync/internal/app/auth"
	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/app/models/dto"
	"github.com/dromero/aulasync/internal/app/repositories"
	"github.com/dromero/aulasync/internal/db"
	"github.com/dromero/aulasync/internal/pkg/helpers"
)

// PostService handles class feeds
type PostService struct {
	postRepo      *repositories.PostRepository
	memberRepo    *repositories.ClassMemberRepository
	fileRepo      *repositories.FileRepository
	notifications *NotificationService
	database      *db.PostgresDB
	authz         *auth.AuthorizationService
	logger        zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo *repositories.PostRepository,
	memberRepo *repositories.ClassMemberRepository,
	fileRepo *repositories.FileRepository,
	notifications *NotificationService,
	database *db.PostgresDB,
	authz *auth.AuthorizationService,
	logger zerolog.Logger,
) *PostService {
	return &PostService{
		postRepo:      postRepo,
		memberRepo:    memberRepo,
		fileRepo:      fileRepo,
		notifications: notifications,
		database:      database,
		authz:         authz,
		logger:        logger,
	}
}

// CreatePost publishes a post in a class feed. Only the owning teacher may
// post. Publishing a task fans out a NEW_TASK notification to every student
// on the roster, in the same transaction as the post itself.
func (s *PostService) CreatePost(ctx context.Context, classID, authorID int64, req *dto.CreatePostRequest, attachmentFileID *int64) (*dto.PostResponse, error) {
	class, err := s.authz.ValidateClassOwnership(ctx, classID, authorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ClassID:          classID,
		AuthorID:         authorID,
		Kind:             req.Kind,
		Title:            req.Title,
		Body:             req.Body,
		DueDate:          req.DueDate,
		AttachmentFileID: attachmentFileID,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		id, err := s.postRepo.Create(ctx, post)
		if err != nil {
			return err
		}
		post.ID = id

		if !post.IsTask() {
			return nil
		}

		memberIDs, err := s.memberRepo.GetMemberIDs(ctx, classID)
		if err != nil {
			return err
		}
		if len(memberIDs) == 0 {
			return nil
		}

		title := post.Body
		if post.Title != nil {
			title = *post.Title
		}
		content := fmt.Sprintf("New task in %s: %s", class.Name, title)

		notifications := make([]*models.Notification, 0, len(memberIDs))
		for _, memberID := range memberIDs {
			notifications = append(notifications, &models.Notification{
				RecipientID: memberID,
				Type:        models.NotificationNewTask,
				Content:     content,
				ReferenceID: &post.ID,
			})
		}
		return s.notifications.NotifyBatch(ctx, tx, notifications)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("postID", post.ID).Int64("classID", classID).
		Str("kind", string(post.Kind)).Msg("Post published")

	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return s.toPostResponse(ctx, created), nil
}

// GetFeed retrieves a class feed, visible to the owner and roster members
func (s *PostService) GetFeed(ctx context.Context, classID, userID int64, filter *dto.PostFilterRequest) (*dto.PostListResponse, error) {
	if err := s.validateFeedAccess(ctx, classID, userID); err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = helpers.DefaultPage
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > helpers.MaxPageSize {
		pageSize = helpers.DefaultPageSize
	}

	posts, total, err := s.postRepo.GetByClass(ctx, classID, filter.Kind, page, pageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.PostListResponse{
		Posts:          make([]dto.PostResponse, 0, len(posts)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, post := range posts {
		resp.Posts = append(resp.Posts, *s.toPostResponse(ctx, post))
	}

	return resp, nil
}

// GetPost retrieves a single post, visible to the owner and roster members
func (s *PostService) GetPost(ctx context.Context, postID, userID int64) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.validateFeedAccess(ctx, post.ClassID, userID); err != nil {
		return nil, err
	}

	return s.toPostResponse(ctx, post), nil
}

// UpdatePost edits a post. Only the teacher owning the class may edit.
func (s *PostService) UpdatePost(ctx context.Context, postID, teacherID int64, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.authz.ValidatePostOwnership(ctx, postID, teacherID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = req.Title
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.DueDate != nil {
		post.DueDate = req.DueDate
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	updated, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.toPostResponse(ctx, updated), nil
}

// DeletePost removes a post and, for tasks, its submissions
func (s *PostService) DeletePost(ctx context.Context, postID, teacherID int64) error {
	if _, err := s.authz.ValidatePostOwnership(ctx, postID, teacherID); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.logger.Info().Int64("postID", postID).Msg("Post deleted")
	return nil
}

// validateFeedAccess allows the owning teacher and roster members through
func (s *PostService) validateFeedAccess(ctx context.Context, classID, userID int64) error {
	class, err := s.authz.ValidateClassOwnership(ctx, classID, userID)
	if err == nil && class != nil {
		return nil
	}
	if err != nil && err != auth.ErrPermissionDenied {
		return err
	}

	isMember, err := s.memberRepo.IsMember(ctx, classID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return auth.ErrPermissionDenied
	}
	return nil
}

func (s *PostService) toPostResponse(ctx context.Context, post *models.Post) *dto.PostResponse {
	resp := &dto.PostResponse{
		ID:        post.ID,
		ClassID:   post.ClassID,
		AuthorID:  post.AuthorID,
		Kind:      string(post.Kind),
		Title:     post.Title,
		Body:      post.Body,
		DueDate:   post.DueDate,
		CreatedAt: post.CreatedAt,
	}
	if post.Author != nil {
		resp.AuthorName = post.Author.FullName()
	}
	if post.AttachmentFileID != nil {
		if file, err := s.fileRepo.GetByID(ctx, *post.AttachmentFileID); err == nil {
			resp.Attachment = toFileResponse(file)
		} else {
			s.logger.Warn().Err(err).Int64("fileID", *post.AttachmentFileID).Msg("Failed to load post attachment")
		}
	}
	return resp
}

func toFileResponse(file *models.File) *dto.FileResponse {
	return &dto.FileResponse{
		ID:           file.ID,
		FileName:     file.FileName,
		FileURL:      file.FileURL,
		FileSize:     file.FileSize,
		FileType:     file.FileType,
		ResourceType: string(file.ResourceType),
		CreatedAt:    file.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
