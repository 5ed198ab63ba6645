package feedbackController

import (
	"context"
	"strings"
	"testing"

	. "kardetailing/internal/models"
	"kardetailing/internal/repositories/memory"
	"kardetailing/internal/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(name string, isAdmin bool) *User {
	return &User{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		Email:         "member@example.com",
		Name:          name,
		IsAdmin:       isAdmin,
	}
}

func TestSubmit_Validation(t *testing.T) {
	controller := New(memory.New())
	author := newUser("Jane", false)

	tests := []struct {
		name    string
		req     SubmitFeedbackRequest
		wantErr bool
	}{
		{"minimum rating", SubmitFeedbackRequest{Rating: 1, Comment: "ok"}, false},
		{"maximum rating", SubmitFeedbackRequest{Rating: 5, Comment: "great"}, false},
		{"rating zero", SubmitFeedbackRequest{Rating: 0, Comment: "ok"}, true},
		{"rating six", SubmitFeedbackRequest{Rating: 6, Comment: "ok"}, true},
		{"blank comment", SubmitFeedbackRequest{Rating: 3, Comment: "   "}, true},
		{"exactly 200 characters", SubmitFeedbackRequest{Rating: 3, Comment: strings.Repeat("a", 200)}, false},
		{"201 characters", SubmitFeedbackRequest{Rating: 3, Comment: strings.Repeat("a", 201)}, true},
		{"200 multibyte characters", SubmitFeedbackRequest{Rating: 3, Comment: strings.Repeat("é", 200)}, false},
		{"padding does not count", SubmitFeedbackRequest{Rating: 3, Comment: "  " + strings.Repeat("a", 200) + "  "}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.Submit(context.Background(), author, tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmit_StoresSnapshot(t *testing.T) {
	controller := New(memory.New())
	ctx := context.Background()

	named, err := controller.Submit(ctx, newUser("Jane", false), SubmitFeedbackRequest{Rating: 4, Comment: "  Spotless!  "})
	require.NoError(t, err)
	assert.Equal(t, "Jane", named.Name)
	assert.Equal(t, "Spotless!", named.Comment)
	require.NotNil(t, named.UserID)
	assert.False(t, named.CreatedAt.IsZero())

	anonymous, err := controller.Submit(ctx, newUser("", false), SubmitFeedbackRequest{Rating: 2, Comment: "slow"})
	require.NoError(t, err)
	assert.Equal(t, "member@example.com", anonymous.Name)
}

func TestList_NewestFirst(t *testing.T) {
	controller := New(memory.New())
	ctx := context.Background()
	author := newUser("Jane", false)

	for _, comment := range []string{"first", "second", "third"} {
		_, err := controller.Submit(ctx, author, SubmitFeedbackRequest{Rating: 5, Comment: comment})
		require.NoError(t, err)
	}

	list, err := controller.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Comment)
	assert.Equal(t, "first", list[2].Comment)
}

func TestDelete(t *testing.T) {
	controller := New(memory.New())
	ctx := context.Background()
	member := newUser("Jane", false)
	admin := newUser("Boss", true)

	entry, err := controller.Submit(ctx, member, SubmitFeedbackRequest{Rating: 5, Comment: "nice"})
	require.NoError(t, err)

	err = controller.Delete(ctx, member, entry.ID.String())
	assert.ErrorIs(t, err, types.ErrForbidden)

	require.NoError(t, controller.Delete(ctx, admin, entry.ID.String()))

	list, err := controller.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, controller.Delete(ctx, admin, entry.ID.String()), types.ErrNotFound)
	assert.ErrorIs(t, controller.Delete(ctx, admin, "bogus"), types.ErrNotFound)
}
