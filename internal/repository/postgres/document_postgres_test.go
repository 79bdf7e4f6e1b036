package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"studiosync/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:           "doc-uuid",
		ClientID:     "client-uuid",
		Filename:     "1693500000_a1b2c3d4e5f6a7b8.pdf",
		OriginalName: "invoice.pdf",
		StoragePath:  "client_client-uuid/1693500000_a1b2c3d4e5f6a7b8.pdf",
		ContentType:  "application/pdf",
		Size:         123,
		CreatedAt:    now,
	}

	rows := sqlmock.NewRows([]string{"id", "client_id", "file_name", "original_name", "storage_path", "file_type", "file_size", "label_id", "created_at"}).
		AddRow(doc.ID, doc.ClientID, doc.Filename, doc.OriginalName, doc.StoragePath, doc.ContentType, doc.Size, nil, doc.CreatedAt)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.ClientID, doc.Filename, doc.OriginalName, doc.StoragePath, doc.ContentType, doc.Size, nil, doc.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	assert.Nil(t, result.LabelID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "client_id", "file_name", "original_name", "storage_path", "file_type", "file_size", "label_id", "created_at"}).
			AddRow("doc-id", "client-id", "stored.pdf", "invoice.pdf", "client_client-id/stored.pdf", "application/pdf", 100, nil, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents").
			WithArgs("doc-id").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "doc-id")

		assert.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, "doc-id", doc.ID)
		assert.Equal(t, "invoice.pdf", doc.OriginalName)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_ListByClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("with labels", func(t *testing.T) {
		name := "Invoice"
		color := "#e74c3c"
		labelID := "label-id"
		rows := sqlmock.NewRows([]string{"id", "client_id", "file_name", "original_name", "storage_path", "file_type", "file_size", "label_id", "created_at", "name", "color_code"}).
			AddRow("doc-1", "client-id", "a.pdf", "first.pdf", "client_client-id/a.pdf", "application/pdf", 10, labelID, time.Now(), name, color).
			AddRow("doc-2", "client-id", "b.pdf", "second.pdf", "client_client-id/b.pdf", "application/pdf", 20, nil, time.Now(), nil, nil)

		mock.ExpectQuery("SELECT (.+) FROM documents d").
			WithArgs("client-id").
			WillReturnRows(rows)

		docs, err := repo.ListByClient(ctx, "client-id")

		assert.NoError(t, err)
		assert.Len(t, docs, 2)
		assert.Equal(t, &name, docs[0].LabelName)
		assert.Equal(t, &color, docs[0].LabelColor)
		assert.Nil(t, docs[1].LabelID)
		assert.Nil(t, docs[1].LabelName)
	})

	t.Run("empty result", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "client_id", "file_name", "original_name", "storage_path", "file_type", "file_size", "label_id", "created_at", "name", "color_code"})

		mock.ExpectQuery("SELECT (.+) FROM documents d").
			WithArgs("empty-client").
			WillReturnRows(rows)

		docs, err := repo.ListByClient(ctx, "empty-client")

		assert.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Len(t, docs, 0)
	})
}

func TestDocumentPostgres_UpdateLabel(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("assign", func(t *testing.T) {
		labelID := "label-id"
		mock.ExpectExec("UPDATE documents SET label_id").
			WithArgs(labelID, "doc-id").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateLabel(ctx, "doc-id", &labelID)
		assert.NoError(t, err)
	})

	t.Run("clear", func(t *testing.T) {
		mock.ExpectExec("UPDATE documents SET label_id").
			WithArgs(nil, "doc-id").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateLabel(ctx, "doc-id", nil)
		assert.NoError(t, err)
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec("UPDATE documents SET label_id").
			WithArgs(nil, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateLabel(ctx, "missing", nil)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("existing row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents").
			WithArgs("doc-id").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(ctx, "doc-id")
		assert.NoError(t, err)
	})

	t.Run("missing row is not an error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, "missing")
		assert.NoError(t, err)
	})
}
