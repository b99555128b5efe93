package service

import (
	"context"
	"strings"

	"socialfeed/internal/identity"
	"socialfeed/internal/models"
)

type MessageService interface {
	SendMessage(ctx context.Context, caller, receiver identity.Principal, content string) (*models.Message, error)
	GetMessages(ctx context.Context, caller, other identity.Principal) ([]models.Message, error)
}

type messageService struct {
	*core
}

func NewMessageService(c *core) MessageService {
	return &messageService{core: c}
}

func (s *messageService) SendMessage(ctx context.Context, caller, receiver identity.Principal, content string) (*models.Message, error) {
	if err := authenticate(caller); err != nil {
		return nil, err
	}

	if err := validPeer(receiver); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("сообщение не может быть пустым")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	message := &models.Message{
		Sender:    caller,
		Receiver:  receiver,
		Content:   content,
		CreatedAt: s.now(),
	}

	if err := s.repo.Message.Create(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

// GetMessages returns the conversation in both directions, oldest first.
func (s *messageService) GetMessages(ctx context.Context, caller, other identity.Principal) ([]models.Message, error) {
	if err := authenticate(caller); err != nil {
		return nil, err
	}

	if err := validPeer(other); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Message.GetConversation(ctx, caller, other)
}

func validPeer(p identity.Principal) error {
	if p.IsAnonymous() {
		return invalid("не указан получатель")
	}
	if _, err := identity.Parse(p.String()); err != nil {
		return invalid("%v", err)
	}
	return nil
}
