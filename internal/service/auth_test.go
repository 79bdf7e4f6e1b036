package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"studiosync/internal/credential"
	"studiosync/internal/model"
	repoMocks "studiosync/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testHasher uses bcrypt's minimum cost to keep hashing cheap in tests.
func testHasher() credential.Hasher { return credential.NewHasher(4) }

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hasher := testHasher()

	hash, err := hasher.Hash("correct-pass")
	require.NoError(t, err)

	clientID := "client-1"
	storedUser := &model.User{
		ID:           "user-1",
		Username:     "acme1",
		PasswordHash: hash,
		Role:         model.RoleClient,
		ClientID:     &clientID,
		Active:       false,
	}

	tests := []struct {
		name       string
		username   string
		secret     string
		setupMocks func(mUsers *repoMocks.MockUserRepository)
		wantErr    error
		checkRes   func(t *testing.T, id *model.Identity)
	}{
		{
			name:     "happy path returns full descriptor",
			username: "acme1",
			secret:   "correct-pass",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByUsername", ctx, "acme1").Return(storedUser, nil)
			},
			checkRes: func(t *testing.T, id *model.Identity) {
				assert.Equal(t, "user-1", id.ID)
				assert.Equal(t, "acme1", id.Username)
				assert.Equal(t, model.RoleClient, id.Role)
				require.NotNil(t, id.ClientID)
				assert.Equal(t, "client-1", *id.ClientID)
				assert.False(t, id.Active)
			},
		},
		{
			name:     "wrong password",
			username: "acme1",
			secret:   "wrong-pass",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByUsername", ctx, "acme1").Return(storedUser, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown username is indistinguishable from wrong password",
			username: "nobody",
			secret:   "whatever",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByUsername", ctx, "nobody").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "case-sensitive username lookup",
			username: "Acme1",
			secret:   "correct-pass",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByUsername", ctx, "Acme1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "repository error is wrapped, not credentials",
			username: "acme1",
			secret:   "correct-pass",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByUsername", ctx, "acme1").Return(nil, errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mUsers := new(repoMocks.MockUserRepository)
			tt.setupMocks(mUsers)

			svc := NewAuthService(mUsers, hasher)
			id, err := svc.Login(ctx, tt.username, tt.secret)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, ErrInvalidCredentials) {
					assert.ErrorIs(t, err, ErrInvalidCredentials)
				}
				assert.Nil(t, id)
			} else {
				require.NoError(t, err)
				tt.checkRes(t, id)
			}
			mUsers.AssertExpectations(t)
		})
	}
}

func TestAuthService_SetupPassword(t *testing.T) {
	ctx := context.Background()
	hasher := testHasher()

	t.Run("weak password rejected without touching the store", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, hasher)

		err := svc.SetupPassword(ctx, "user-1", "short12")
		assert.ErrorIs(t, err, ErrWeakCredential)
		mUsers.AssertNotCalled(t, "SetPassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown account", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("SetPassword", ctx, "ghost", mock.AnythingOfType("string")).Return(sql.ErrNoRows)
		svc := NewAuthService(mUsers, hasher)

		err := svc.SetupPassword(ctx, "ghost", "LongEnough1")
		assert.ErrorIs(t, err, ErrUnknownAccount)
		mUsers.AssertExpectations(t)
	})

	t.Run("stores a verifiable digest, never the plaintext", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		var storedHash string
		mUsers.On("SetPassword", ctx, "user-1", mock.MatchedBy(func(h string) bool {
			storedHash = h
			return h != "LongEnough1" && h != ""
		})).Return(nil)
		svc := NewAuthService(mUsers, hasher)

		require.NoError(t, svc.SetupPassword(ctx, "user-1", "LongEnough1"))
		assert.True(t, hasher.Verify("LongEnough1", storedHash))
		assert.False(t, hasher.Verify("other", storedHash))
		mUsers.AssertExpectations(t)
	})

	t.Run("rotation on an active account is allowed", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("SetPassword", ctx, "user-1", mock.AnythingOfType("string")).Return(nil).Twice()
		svc := NewAuthService(mUsers, hasher)

		require.NoError(t, svc.SetupPassword(ctx, "user-1", "FirstPassword"))
		require.NoError(t, svc.SetupPassword(ctx, "user-1", "SecondPassword"))
		mUsers.AssertExpectations(t)
	})

	t.Run("missing id", func(t *testing.T) {
		svc := NewAuthService(new(repoMocks.MockUserRepository), hasher)
		assert.ErrorIs(t, svc.SetupPassword(ctx, "", "LongEnough1"), ErrIDRequired)
	})
}

func TestAuthService_TempCredentialFlow(t *testing.T) {
	// End-to-end over the credential package: a freshly issued temporary
	// secret authenticates until the permanent password replaces it.
	ctx := context.Background()
	hasher := testHasher()

	secret, err := credential.IssueTemporary()
	require.NoError(t, err)
	require.Len(t, secret, 8)

	tempHash, err := hasher.Hash(secret)
	require.NoError(t, err)

	clientID := "client-1"
	user := &model.User{
		ID:           "user-1",
		Username:     "acme1",
		PasswordHash: tempHash,
		Role:         model.RoleClient,
		ClientID:     &clientID,
		Active:       false,
	}

	mUsers := new(repoMocks.MockUserRepository)
	mUsers.On("FindByUsername", ctx, "acme1").Return(user, nil)
	svc := NewAuthService(mUsers, hasher)

	id, err := svc.Login(ctx, "acme1", secret)
	require.NoError(t, err)
	assert.False(t, id.Active)

	// Simulate the activation flip the repository would perform.
	mUsers2 := new(repoMocks.MockUserRepository)
	mUsers2.On("SetPassword", ctx, "user-1", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			user.PasswordHash = args.String(2)
			user.Active = true
		}).Return(nil)
	require.NoError(t, NewAuthService(mUsers2, hasher).SetupPassword(ctx, "user-1", "LongEnough1"))

	mUsers3 := new(repoMocks.MockUserRepository)
	mUsers3.On("FindByUsername", ctx, "acme1").Return(user, nil)
	svc3 := NewAuthService(mUsers3, hasher)

	_, err = svc3.Login(ctx, "acme1", secret)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "old temporary secret must stop working")

	id, err = svc3.Login(ctx, "acme1", "LongEnough1")
	require.NoError(t, err)
	assert.True(t, id.Active)
}
