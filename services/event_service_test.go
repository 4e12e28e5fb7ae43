package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra-api/dto"
	"github.com/eventra-api/models"
	"github.com/eventra-api/repositories"
)

func newEventService(t *testing.T) (*EventService, *fakeImageStore) {
	t.Helper()
	images := &fakeImageStore{}
	return NewEventService(repositories.NewEventRepository(setupTestDB(t)), images), images
}

var (
	organizerPrincipal = Principal{ID: "org-1", Role: models.RoleOrganizer}
	adminPrincipal     = Principal{ID: "adm-1", Role: models.RoleAdmin}
)

func TestEventService_Create(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)

	t.Run("organizer owns the created event", func(t *testing.T) {
		svc, _ := newEventService(t)

		event, err := svc.Create(context.Background(), organizerPrincipal, dto.CreateEventRequest{
			Name: "Summit",
			Date: future,
		})
		require.NoError(t, err)
		assert.Equal(t, organizerPrincipal.ID, event.OrganizerID)
		assert.Equal(t, models.EventStatusActive, event.Status)
	})

	t.Run("participant may not create events", func(t *testing.T) {
		svc, _ := newEventService(t)

		_, err := svc.Create(context.Background(), Principal{ID: "p1", Role: models.RoleParticipant},
			dto.CreateEventRequest{Name: "Nope", Date: future})
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("duplicate active name", func(t *testing.T) {
		svc, _ := newEventService(t)

		_, err := svc.Create(context.Background(), organizerPrincipal, dto.CreateEventRequest{Name: "Twin", Date: future})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), organizerPrincipal, dto.CreateEventRequest{Name: "Twin", Date: future})
		assert.ErrorIs(t, err, models.ErrConflict)
	})
}

func TestEventService_Update(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)

	t.Run("owning organizer and admin may update, others may not", func(t *testing.T) {
		svc, _ := newEventService(t)
		event, err := svc.Create(context.Background(), organizerPrincipal, dto.CreateEventRequest{Name: "Editable", Date: future})
		require.NoError(t, err)

		desc := "updated"
		require.NoError(t, svc.Update(context.Background(), organizerPrincipal, event.ID, dto.UpdateEventRequest{Description: &desc}))
		require.NoError(t, svc.Update(context.Background(), adminPrincipal, event.ID, dto.UpdateEventRequest{Description: &desc}))

		err = svc.Update(context.Background(), Principal{ID: "org-2", Role: models.RoleOrganizer}, event.ID,
			dto.UpdateEventRequest{Description: &desc})
		assert.ErrorIs(t, err, models.ErrForbidden)
	})
}

func TestEventService_SoftDelete(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)

	svc, _ := newEventService(t)
	event, err := svc.Create(context.Background(), organizerPrincipal, dto.CreateEventRequest{Name: "Doomed", Date: future})
	require.NoError(t, err)

	err = svc.SoftDelete(context.Background(), Principal{ID: "org-2", Role: models.RoleOrganizer}, event.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	require.NoError(t, svc.SoftDelete(context.Background(), organizerPrincipal, event.ID))

	_, err = svc.Get(context.Background(), event.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Gone from the default listing, visible via the inactive filter
	active, err := svc.List(context.Background(), dto.EventFilter{})
	require.NoError(t, err)
	assert.Empty(t, active.Items)

	inactive, err := svc.List(context.Background(), dto.EventFilter{Status: models.EventStatusInactive})
	require.NoError(t, err)
	assert.Len(t, inactive.Items, 1)
}

func TestEventService_UpdateImage(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)

	svc, images := newEventService(t)
	event, err := svc.Create(context.Background(), organizerPrincipal, dto.CreateEventRequest{Name: "Pictured", Date: future})
	require.NoError(t, err)

	url, err := svc.UpdateImage(context.Background(), organizerPrincipal, event.ID, []byte("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, 1, images.uploads)

	stored, err := svc.Get(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, url, stored.ImageURL)

	// A second upload replaces and cleans up the first image
	_, err = svc.UpdateImage(context.Background(), organizerPrincipal, event.ID, []byte("newer image bytes"))
	require.NoError(t, err)
	require.Len(t, images.deleted, 1)
	assert.Equal(t, url, images.deleted[0])

	_, err = svc.UpdateImage(context.Background(), Principal{ID: "p1", Role: models.RoleParticipant}, event.ID, nil)
	assert.ErrorIs(t, err, models.ErrForbidden)
}
