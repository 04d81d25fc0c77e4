package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"cadastro/internal/models"
	"cadastro/internal/repositories"
)

// ClientStore is the persistence the client service needs. Lookups return
// nil, nil when nothing matches.
type ClientStore interface {
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	GetByEmail(ctx context.Context, email string) (*models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Notifier is told about newly registered clients.
type Notifier interface {
	SendClientWelcome(client *models.Client) error
}

type ClientService struct {
	Repo     ClientStore
	notifier Notifier
	log      *logrus.Logger
}

func NewClientService(repo ClientStore, notifier Notifier, log *logrus.Logger) *ClientService {
	return &ClientService{Repo: repo, notifier: notifier, log: log}
}

// Create stores a new client. The input must already be validated.
func (s *ClientService) Create(ctx context.Context, in models.ClientInput) (*models.Client, error) {
	existing, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	client := &models.Client{ID: uuid.New()}
	client.Apply(in)
	if err := s.Repo.Create(ctx, client); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"client_id": client.ID, "email": client.Email}).Info("[client][create] ok")
	s.notify(client)
	return client, nil
}

func (s *ClientService) notify(client *models.Client) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendClientWelcome(client); err != nil {
		s.log.WithError(err).WithField("client_id", client.ID).Warn("[client][create] welcome email failed")
	}
}

// FindAll returns every client, newest first.
func (s *ClientService) FindAll(ctx context.Context) ([]models.Client, error) {
	return s.Repo.List(ctx)
}

func (s *ClientService) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	return client, nil
}

// Update replaces every field of an existing client. The email is only
// re-checked for uniqueness when it changes.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, in models.ClientInput) (*models.Client, error) {
	client, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != client.Email {
		other, err := s.Repo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, ErrDuplicateEmail
		}
	}

	client.Apply(in)
	if err := s.Repo.Update(ctx, client); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUniqueViolation):
			return nil, ErrDuplicateEmail
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	s.log.WithField("client_id", client.ID).Info("[client][update] ok")
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete client %s: %w", id, err)
	}
	if !deleted {
		return ErrClientNotFound
	}
	s.log.WithField("client_id", id).Info("[client][delete] ok")
	return nil
}
