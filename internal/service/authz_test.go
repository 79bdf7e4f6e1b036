package service

import (
	"testing"

	"studiosync/internal/model"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCanDeleteDocument(t *testing.T) {
	doc := &model.Document{ID: "d1", ClientID: "c1"}

	tests := []struct {
		name     string
		identity *model.Identity
		want     bool
	}{
		{
			name:     "admin can delete any document",
			identity: &model.Identity{ID: "u1", Role: model.RoleAdmin},
			want:     true,
		},
		{
			name:     "owning client can delete",
			identity: &model.Identity{ID: "u2", Role: model.RoleClient, ClientID: strPtr("c1")},
			want:     true,
		},
		{
			name:     "other client cannot delete",
			identity: &model.Identity{ID: "u3", Role: model.RoleClient, ClientID: strPtr("c2")},
			want:     false,
		},
		{
			name:     "client without client reference cannot delete",
			identity: &model.Identity{ID: "u4", Role: model.RoleClient},
			want:     false,
		},
		{
			name:     "unknown role cannot delete",
			identity: &model.Identity{ID: "u5", Role: model.Role("superuser"), ClientID: strPtr("c1")},
			want:     false,
		},
		{
			name:     "nil identity cannot delete",
			identity: nil,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDeleteDocument(tt.identity, doc))
		})
	}
}

func TestCanDeleteDocument_NilDocument(t *testing.T) {
	admin := &model.Identity{ID: "u1", Role: model.RoleAdmin}
	assert.False(t, CanDeleteDocument(admin, nil))
}
