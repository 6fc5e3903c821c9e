package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cargobridge/internal/domain"
	"cargobridge/internal/realtime"
	"cargobridge/internal/repository"
)

var (
	ErrThreadNotFound = errors.New("thread not found")
	ErrNotAMember     = errors.New("not a member of this thread")
	ErrNoMembers      = errors.New("thread needs at least one other member")
)

type Service interface {
	CreateThread(ctx context.Context, creator *domain.User, input domain.CreateThreadInput) (*domain.ThreadOverview, error)
	ListThreads(ctx context.Context, userID uuid.UUID) ([]domain.ThreadOverview, error)
	SendMessage(ctx context.Context, sender *domain.User, threadID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error)
	ListMessages(ctx context.Context, user *domain.User, threadID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error)
	MarkThreadRead(ctx context.Context, user *domain.User, threadID uuid.UUID) error
}

type service struct {
	threadRepo repository.ThreadRepository
	userRepo   repository.UserRepository
	publisher  realtime.Publisher
	log        *zap.Logger
}

func NewService(threadRepo repository.ThreadRepository, userRepo repository.UserRepository, publisher realtime.Publisher, logger *zap.Logger) Service {
	return &service{
		threadRepo: threadRepo,
		userRepo:   userRepo,
		publisher:  publisher,
		log:        logger,
	}
}

// CreateThread opens a conversation and posts its first message in one
// call; an empty thread is never visible to anyone.
func (s *service) CreateThread(ctx context.Context, creator *domain.User, input domain.CreateThreadInput) (*domain.ThreadOverview, error) {
	memberIDs := []uuid.UUID{creator.ID}
	for _, id := range input.MemberIDs {
		if id == creator.ID {
			continue
		}
		member, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, errors.New("member does not exist")
		}
		memberIDs = append(memberIDs, id)
	}
	if len(memberIDs) < 2 {
		return nil, ErrNoMembers
	}

	thread := &domain.Thread{
		ID:        uuid.New(),
		Title:     input.Title,
		CreatedBy: creator.ID,
	}
	if err := s.threadRepo.CreateThread(ctx, thread, memberIDs); err != nil {
		return nil, err
	}

	if _, err := s.SendMessage(ctx, creator, thread.ID, domain.SendMessageInput{Body: input.Body}); err != nil {
		return nil, err
	}

	members, err := s.threadRepo.GetMembers(ctx, thread.ID)
	if err != nil {
		return nil, err
	}

	fresh, err := s.threadRepo.GetThread(ctx, thread.ID)
	if err != nil {
		return nil, err
	}
	if fresh != nil {
		thread = fresh
	}

	return &domain.ThreadOverview{Thread: *thread, Members: members}, nil
}

func (s *service) ListThreads(ctx context.Context, userID uuid.UUID) ([]domain.ThreadOverview, error) {
	return s.threadRepo.ListThreadsForUser(ctx, userID)
}

func (s *service) SendMessage(ctx context.Context, sender *domain.User, threadID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error) {
	isMember, err := s.threadRepo.IsMember(ctx, threadID, sender.ID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotAMember
	}

	msg := &domain.Message{
		ID:       uuid.New(),
		ThreadID: threadID,
		SenderID: sender.ID,
		Body:     input.Body,
	}
	if err := s.threadRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.publishToRecipients(ctx, msg)
	return msg, nil
}

func (s *service) ListMessages(ctx context.Context, user *domain.User, threadID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error) {
	isMember, err := s.threadRepo.IsMember(ctx, threadID, user.ID)
	if err != nil {
		return domain.PaginatedResponse[domain.Message]{}, err
	}
	if !isMember {
		return domain.PaginatedResponse[domain.Message]{}, ErrNotAMember
	}

	params.Validate()
	messages, total, err := s.threadRepo.ListMessages(ctx, threadID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Message]{}, err
	}
	return domain.NewPaginatedResponse(messages, params.Page, params.PageSize, total), nil
}

func (s *service) MarkThreadRead(ctx context.Context, user *domain.User, threadID uuid.UUID) error {
	isMember, err := s.threadRepo.IsMember(ctx, threadID, user.ID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotAMember
	}
	return s.threadRepo.MarkThreadRead(ctx, threadID, user.ID, time.Now())
}

// publishToRecipients emits one targeted event per member other than the
// sender, so each recipient's feed and sockets get poked individually.
func (s *service) publishToRecipients(ctx context.Context, msg *domain.Message) {
	members, err := s.threadRepo.GetMembers(ctx, msg.ThreadID)
	if err != nil {
		s.log.Warn("fetch members for message event", zap.String("thread_id", msg.ThreadID.String()), zap.Error(err))
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("marshal message event", zap.Error(err))
		return
	}

	for _, member := range members {
		if member.UserID == msg.SenderID {
			continue
		}
		userID := member.UserID
		s.publisher.Publish(ctx, realtime.Event{
			Type:    realtime.EventInsert,
			Table:   realtime.TableMessages,
			UserID:  &userID,
			Payload: payload,
		})
	}
}
