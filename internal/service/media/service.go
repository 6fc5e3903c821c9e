package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"cargobridge/internal/config"
	"cargobridge/internal/domain"
	"cargobridge/internal/repository"
)

const (
	maxFileSize  = 20 << 20
	urlExpiry    = 15 * time.Minute
	pathTemplate = "attachments/%s/%s/%s"
)

var (
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrEntityNotFound     = errors.New("attachment target not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidEntity      = errors.New("invalid attachment entity type")
	ErrFileTooLarge       = errors.New("file exceeds the size limit")
)

type Service interface {
	Upload(ctx context.Context, user *domain.User, entity domain.AttachmentEntity, entityID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Attachment, error)
	ListForEntity(ctx context.Context, user *domain.User, entity domain.AttachmentEntity, entityID uuid.UUID) ([]domain.Attachment, error)
	Delete(ctx context.Context, user *domain.User, id uuid.UUID) error
}

type service struct {
	attachmentRepo repository.AttachmentRepository
	ticketRepo     repository.TicketRepository
	caseRepo       repository.LegalCaseRepository
	minioClient    *minio.Client
	cfg            *config.Config
	log            *zap.Logger
}

func NewService(attachmentRepo repository.AttachmentRepository, ticketRepo repository.TicketRepository, caseRepo repository.LegalCaseRepository, minioClient *minio.Client, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		attachmentRepo: attachmentRepo,
		ticketRepo:     ticketRepo,
		caseRepo:       caseRepo,
		minioClient:    minioClient,
		cfg:            cfg,
		log:            logger,
	}
}

func (s *service) Upload(ctx context.Context, user *domain.User, entity domain.AttachmentEntity, entityID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Attachment, error) {
	if !entity.IsValid() {
		return nil, ErrInvalidEntity
	}
	if fileSize > maxFileSize {
		return nil, ErrFileTooLarge
	}
	if err := s.checkEntityAccess(ctx, user, entity, entityID); err != nil {
		return nil, err
	}

	attachmentID := uuid.New()
	storagePath := fmt.Sprintf(pathTemplate, entity, entityID, attachmentID)

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	att := &domain.Attachment{
		ID:          attachmentID,
		EntityType:  string(entity),
		EntityID:    entityID,
		UploadedBy:  user.ID,
		FileName:    fileName,
		FileSize:    fileSize,
		MimeType:    mimeType,
		StoragePath: storagePath,
	}

	if err := s.attachmentRepo.Create(ctx, att); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	att.URL = s.presignURL(ctx, att)
	return att, nil
}

func (s *service) ListForEntity(ctx context.Context, user *domain.User, entity domain.AttachmentEntity, entityID uuid.UUID) ([]domain.Attachment, error) {
	if !entity.IsValid() {
		return nil, ErrInvalidEntity
	}
	if err := s.checkEntityAccess(ctx, user, entity, entityID); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.ListByEntity(ctx, string(entity), entityID)
	if err != nil {
		return nil, err
	}

	for i := range attachments {
		attachments[i].URL = s.presignURL(ctx, &attachments[i])
	}
	return attachments, nil
}

func (s *service) Delete(ctx context.Context, user *domain.User, id uuid.UUID) error {
	att, err := s.attachmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if att == nil {
		return ErrAttachmentNotFound
	}
	if att.UploadedBy != user.ID && !user.HasRole(string(domain.RoleAdmin)) {
		return ErrAccessDenied
	}

	if err := s.attachmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, att.StoragePath, minio.RemoveObjectOptions{})
	return nil
}

// checkEntityAccess reuses the parent entity's access rules: tickets are
// visible to their owner plus agents, cases to their customer plus lawyers.
func (s *service) checkEntityAccess(ctx context.Context, user *domain.User, entity domain.AttachmentEntity, entityID uuid.UUID) error {
	switch entity {
	case domain.AttachTicket:
		t, err := s.ticketRepo.GetByID(ctx, entityID)
		if err != nil {
			return err
		}
		if t == nil {
			return ErrEntityNotFound
		}
		if !user.HasRole(string(domain.RoleAgent)) && t.UserID != user.ID {
			return ErrAccessDenied
		}
	case domain.AttachCase:
		lc, err := s.caseRepo.GetByID(ctx, entityID)
		if err != nil {
			return err
		}
		if lc == nil {
			return ErrEntityNotFound
		}
		if !user.HasRole(string(domain.RoleLawyer)) && lc.CustomerID != user.ID {
			return ErrAccessDenied
		}
	default:
		return ErrInvalidEntity
	}
	return nil
}

// presignURL returns a short-lived download link. The bucket is private;
// a failed presign leaves the URL empty rather than failing the request.
func (s *service) presignURL(ctx context.Context, att *domain.Attachment) string {
	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", fmt.Sprintf(`attachment; filename="%s"`, att.FileName))

	presigned, err := s.minioClient.PresignedGetObject(ctx, s.cfg.MinIOBucket, att.StoragePath, urlExpiry, reqParams)
	if err != nil {
		s.log.Warn("presign attachment url", zap.String("attachment_id", att.ID.String()), zap.Error(err))
		return ""
	}
	return presigned.String()
}
