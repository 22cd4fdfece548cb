package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

func TestNotify_RejectsUnknownType(t *testing.T) {
	svc := NewNotificationService(nil, nil, nil)

	_, err := svc.Notify(1, models.NotificationType("calificacion_chat"), "x", NotificationRefs{})
	assert.Error(t, err)

	n, err := svc.Notify(1, models.NotificationNewChat, "x", NotificationRefs{})
	require.NoError(t, err)
	assert.False(t, n.Read)
	assert.Equal(t, int64(1), n.StudentID)
}

func TestFanout_ExcludesActor(t *testing.T) {
	svc := NewNotificationService(nil, nil, nil)
	participants := []models.ChatParticipant{
		{StudentID: 1, Role: models.RoleAuthor},
		{StudentID: 2, Role: models.RoleReceiver},
		{StudentID: 3, Role: models.RoleReceiver},
	}

	notes, err := svc.Fanout(participants, 2, models.NotificationNewMessage, "m", NotificationRefs{})
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, int64(1), notes[0].StudentID)
	assert.Equal(t, int64(3), notes[1].StudentID)
}

func TestFanout_UnknownTypeBuildsNothing(t *testing.T) {
	svc := NewNotificationService(nil, nil, nil)
	participants := []models.ChatParticipant{{StudentID: 1}, {StudentID: 2}}

	notes, err := svc.Fanout(participants, 2, models.NotificationType("otro"), "m", NotificationRefs{})
	assert.Error(t, err)
	assert.Nil(t, notes)
}

func TestMarkRead_OnlyOwnNotification(t *testing.T) {
	env := newExchangeEnv()
	ctx := context.Background()
	a, _, _ := openChat(t, env)

	aNotes := env.db.notificationsFor(a.ID)
	require.Len(t, aNotes, 1)

	_, err := env.notifications.MarkRead(ctx, "key-b", aNotes[0].ID)
	assert.ErrorIs(t, err, apperror.ErrNotificationNotFound)

	_, err = env.notifications.MarkRead(ctx, "key-a", 12345)
	assert.ErrorIs(t, err, apperror.ErrNotificationNotFound)

	read, err := env.notifications.MarkRead(ctx, "key-a", aNotes[0].ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	count, err := env.notifications.CountUnread(ctx, "key-a")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkAllRead(t *testing.T) {
	env := newExchangeEnv()
	ctx := context.Background()
	a, _, chat := openChat(t, env)
	_, err := env.messages.SendMessage(ctx, "key-b", chat.ID, "uno")
	require.NoError(t, err)
	_, err = env.messages.SendMessage(ctx, "key-b", chat.ID, "dos")
	require.NoError(t, err)

	count, err := env.notifications.CountUnread(ctx, "key-a")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	updated, err := env.notifications.MarkAllRead(ctx, "key-a")
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)

	for _, n := range env.db.notificationsFor(a.ID) {
		assert.True(t, n.Read)
	}

	// повторный вызов тоже успешен
	updated, err = env.notifications.MarkAllRead(ctx, "key-a")
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestListNotifications_NewestFirst(t *testing.T) {
	env := newExchangeEnv()
	ctx := context.Background()
	_, _, chat := openChat(t, env)
	_, err := env.messages.SendMessage(ctx, "key-b", chat.ID, "hola")
	require.NoError(t, err)

	list, err := env.notifications.ListNotifications(ctx, "key-a")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.NotificationNewMessage, list[0].Type)
	assert.Equal(t, models.NotificationNewChat, list[1].Type)

	_, err = env.notifications.ListNotifications(ctx, "")
	assert.ErrorIs(t, err, apperror.ErrMissingCredential)
}

func TestPublish_NilPusher(t *testing.T) {
	svc := NewNotificationService(nil, nil, nil)
	assert.NotPanics(t, func() {
		svc.Publish([]models.Notification{{StudentID: 1, Type: models.NotificationNewChat}})
	})
}
