package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"studiosync/internal/credential"
	"studiosync/internal/model"
	"studiosync/internal/repository"
	"studiosync/internal/storage"
)

// clientPrefix is the blob storage namespace of one client's documents.
func clientPrefix(clientID string) string {
	return "client_" + clientID + "/"
}

// ProvisionResult carries the outcome of provisioning a client. TempSecret is
// the only place the plaintext onboarding password ever leaves the system; it
// is not persisted, not logged, and cannot be retrieved again.
type ProvisionResult struct {
	Client       *model.Client `json:"client"`
	TempUsername string        `json:"temp_username"`
	TempSecret   string        `json:"temp_secret"`
}

// ClientService defines the tenant lifecycle use cases: provisioning a client
// together with its gated account, editing business fields, listing for the
// admin view, and cascade deletion.
type ClientService interface {
	// Provision creates the client entity and its inactive account, and
	// returns the one-time temporary credentials.
	Provision(ctx context.Context, companyName, vat, email, username string) (*ProvisionResult, error)

	// Update mutates company name, VAT and email only. The account and its
	// credentials are immutable through this path.
	Update(ctx context.Context, id, companyName, vat, email string) (*model.Client, error)

	// Delete removes the client's blob namespace, then its metadata rows
	// (documents and account go with the client via schema cascade). If the
	// blob removal fails nothing is deleted from the database.
	Delete(ctx context.Context, id string) error

	// List returns all clients for the admin table.
	List(ctx context.Context) ([]model.Client, error)
}

type clientService struct {
	clients repository.ClientRepository
	users   repository.UserRepository
	store   storage.Storage
	hasher  credential.Hasher
}

// NewClientService constructs a ClientService.
func NewClientService(clients repository.ClientRepository, users repository.UserRepository, store storage.Storage, hasher credential.Hasher) ClientService {
	return &clientService{clients: clients, users: users, store: store, hasher: hasher}
}

func (s *clientService) Provision(ctx context.Context, companyName, vat, email, username string) (*ProvisionResult, error) {
	if companyName == "" || vat == "" || username == "" {
		return nil, fmt.Errorf("%w: company name, vat and username are required", ErrProvisioningFailed)
	}

	// Pre-checks give precise duplicate errors; the unique indexes still
	// back them up against concurrent inserts.
	if _, err := s.clients.FindByVAT(ctx, vat); err == nil {
		return nil, ErrDuplicateEntity
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check vat: %w", err)
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrDuplicateEntity
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	client, err := s.clients.Create(ctx, &model.Client{
		ID:          uuid.New().String(),
		CompanyName: companyName,
		VATNumber:   vat,
		Email:       email,
		Status:      "active",
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEntity
		}
		return nil, fmt.Errorf("%w: create client: %v", ErrProvisioningFailed, err)
	}

	secret, err := credential.IssueTemporary()
	if err != nil {
		s.compensate(ctx, client.ID)
		return nil, fmt.Errorf("%w: issue temporary secret", ErrProvisioningFailed)
	}
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		s.compensate(ctx, client.ID)
		return nil, fmt.Errorf("%w: hash temporary secret", ErrProvisioningFailed)
	}

	clientID := client.ID
	user, err := s.users.Create(ctx, &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleClient,
		ClientID:     &clientID,
		Active:       false,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// The client row is already visible; take it back before failing so
		// the operation has no partial effect.
		s.compensate(ctx, client.ID)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEntity
		}
		return nil, fmt.Errorf("%w: create account: %v", ErrProvisioningFailed, err)
	}

	return &ProvisionResult{
		Client:       client,
		TempUsername: user.Username,
		TempSecret:   secret,
	}, nil
}

// compensate removes a freshly created client after a later provisioning step
// failed. Best effort: if this delete also fails the client row remains, but
// the caller still sees the provisioning failure.
func (s *clientService) compensate(ctx context.Context, clientID string) {
	_ = s.clients.Delete(ctx, clientID)
}

func (s *clientService) Update(ctx context.Context, id, companyName, vat, email string) (*model.Client, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}

	client.CompanyName = companyName
	client.VATNumber = vat
	client.Email = email

	if err := s.clients.Update(ctx, client); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateEntity
		default:
			return nil, fmt.Errorf("update client: %w", err)
		}
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}

	if _, err := s.clients.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("find client: %w", err)
	}

	// Blobs first. If the namespace cannot be removed the metadata cascade
	// must not run: an orphaned blob is tolerable garbage, a metadata row
	// pointing at missing bytes is not.
	if err := s.store.DeletePrefix(ctx, clientPrefix(id)); err != nil {
		return fmt.Errorf("%w: remove storage namespace: %v", ErrCascadeFailed, err)
	}

	if err := s.clients.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: delete client rows: %v", ErrCascadeFailed, err)
	}
	return nil
}

func (s *clientService) List(ctx context.Context) ([]model.Client, error) {
	return s.clients.List(ctx)
}
