package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"studiosync/internal/model"
	"studiosync/internal/repository"
	"studiosync/internal/storage"
)

// DocumentService defines the use cases for handling client documents.
// Uploads and deletes keep the metadata row and the blob in lockstep: a row
// is only visible while its bytes exist, compensated in both directions.
type DocumentService interface {
	// Upload streams the content into the client's storage namespace, then
	// records metadata. If the metadata insert fails the blob is removed
	// again so no orphan survives the failure.
	Upload(ctx context.Context, clientID string, r io.Reader, originalName string, contentType string, size int64) (*model.Document, error)

	// ListByClient returns the client's documents with label info, newest first.
	ListByClient(ctx context.Context, clientID string) ([]model.Document, error)

	// Download returns the document metadata and a streaming reader over its bytes.
	Download(ctx context.Context, id string) (io.ReadCloser, *model.Document, error)

	// UpdateLabel sets or clears (nil) the document's label.
	UpdateLabel(ctx context.Context, id string, labelID *string) error

	// Delete removes the blob and the metadata row, in that order, if the
	// requesting account is allowed to. Idempotent: a second call reports
	// the document as missing, never a broken blob reference.
	Delete(ctx context.Context, id, requesterUserID string) error
}

type documentService struct {
	store   storage.Storage
	docs    repository.DocumentRepository
	clients repository.ClientRepository
	users   repository.UserRepository
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(store storage.Storage, docs repository.DocumentRepository, clients repository.ClientRepository, users repository.UserRepository) DocumentService {
	return &documentService{store: store, docs: docs, clients: clients, users: users}
}

// storedName derives a collision-resistant filename: unix timestamp, a random
// hex suffix, and the original extension. The user-supplied name itself is
// never used as a path component.
func storedName(originalName string) (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%d_%s%s", time.Now().Unix(), hex.EncodeToString(b), ext), nil
}

func (s *documentService) Upload(ctx context.Context, clientID string, r io.Reader, originalName string, contentType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if clientID == "" {
		return nil, ErrIDRequired
	}

	// The owning client must exist; documents never dangle.
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}

	name, err := storedName(originalName)
	if err != nil {
		return nil, fmt.Errorf("generate stored name: %w", err)
	}
	key := clientPrefix(clientID) + name

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: upload blob: %v", ErrStorageFailure, err)
	}

	doc := &model.Document{
		ID:           uuid.New().String(),
		ClientID:     clientID,
		Filename:     name,
		OriginalName: originalName,
		StoragePath:  objInfo.Key,
		ContentType:  contentType,
		Size:         objInfo.Size,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// Rollback: remove the blob so it does not outlive the failed insert.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) ListByClient(ctx context.Context, clientID string) ([]model.Document, error) {
	if clientID == "" {
		return nil, ErrIDRequired
	}
	return s.docs.ListByClient(ctx, clientID)
}

func (s *documentService) Download(ctx context.Context, id string) (io.ReadCloser, *model.Document, error) {
	if id == "" {
		return nil, nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("find document: %w", err)
	}

	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		// Metadata without bytes means a prior partial failure; report the
		// document missing rather than leaking the storage error.
		return nil, nil, ErrNotFound
	}
	return rc, doc, nil
}

func (s *documentService) UpdateLabel(ctx context.Context, id string, labelID *string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.docs.UpdateLabel(ctx, id, labelID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update label: %w", err)
	}
	return nil
}

func (s *documentService) Delete(ctx context.Context, id, requesterUserID string) error {
	if id == "" || requesterUserID == "" {
		return ErrIDRequired
	}

	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("find document: %w", err)
	}

	requester, err := s.users.FindByID(ctx, requesterUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("find requester: %w", err)
	}

	if !CanDeleteDocument(requester.Identity(), doc) {
		return ErrForbidden
	}

	// Blob first; the backends tolerate an already-absent blob, so a delete
	// retried after a partial failure still converges.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("%w: delete blob: %v", ErrStorageFailure, err)
	}
	return s.docs.Delete(ctx, id)
}
