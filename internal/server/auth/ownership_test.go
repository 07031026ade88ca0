package auth

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func TestCheckOwnership(t *testing.T) {
	t.Parallel()

	note := &models.Note{ID: "n1", UserID: "alice"}

	tests := []struct {
		name      string
		note      *models.Note
		requester string
		want      error
	}{
		{"owner", note, "alice", nil},
		{"other user", note, "bob", common.ErrorUnauthorized},
		{"anonymous", note, "", common.ErrorUnauthorized},
		{"missing note", nil, "alice", common.ErrorNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckOwnership(tt.note, tt.requester)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserIDContext(t *testing.T) {
	t.Parallel()

	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	ctx := ContextWithUserID(context.Background(), "u1")
	id, ok := UserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", id)

	_, ok = UserIDFromContext(ContextWithUserID(context.Background(), ""))
	assert.False(t, ok)
}
