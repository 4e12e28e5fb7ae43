package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eventra-api/dto"
	"github.com/eventra-api/models"
	"github.com/eventra-api/repositories"
)

type registrationTestEnv struct {
	svc    *RegistrationService
	events *repositories.EventRepository
	users  *repositories.UserRepository
	mailer *fakeMailer
	db     *gorm.DB
}

func newRegistrationEnv(t *testing.T) *registrationTestEnv {
	t.Helper()

	db := setupTestDB(t)
	m := &fakeMailer{enabled: true}
	users := repositories.NewUserRepository(db)
	events := repositories.NewEventRepository(db)
	registrations := repositories.NewRegistrationRepository(db)

	return &registrationTestEnv{
		svc:    NewRegistrationService(registrations, events, users, NewNotifier(m)),
		events: events,
		users:  users,
		mailer: m,
		db:     db,
	}
}

func (env *registrationTestEnv) seedParticipant(t *testing.T, email string) Principal {
	t.Helper()
	user := models.User{
		Name:     "Pat Participant",
		Email:    email,
		Password: "hashed",
		Role:     models.RoleParticipant,
		IsActive: true,
	}
	require.NoError(t, env.users.Create(context.Background(), &user))
	return Principal{ID: user.ID, Role: user.Role}
}

func (env *registrationTestEnv) seedEvent(t *testing.T, name string, date time.Time) models.Event {
	t.Helper()
	event := models.Event{
		Name:        name,
		Date:        date,
		OrganizerID: "11111111-1111-1111-1111-111111111111",
		Status:      models.EventStatusActive,
	}
	require.NoError(t, env.events.Create(context.Background(), &event))
	return event
}

func TestRegistrationService_Create(t *testing.T) {
	future := time.Now().Add(72 * time.Hour)

	t.Run("participant registers for an upcoming event", func(t *testing.T) {
		env := newRegistrationEnv(t)
		p := env.seedParticipant(t, "pat@example.com")
		event := env.seedEvent(t, "Go Meetup", future)

		reg, err := env.svc.Create(context.Background(), p, event.ID)
		require.NoError(t, err)
		assert.Equal(t, event.ID, reg.EventID)
		assert.Equal(t, p.ID, reg.ParticipantID)

		require.Len(t, env.mailer.sent, 1)
		assert.Equal(t, "Registration Confirmed", env.mailer.sent[0].Subject)
	})

	t.Run("admins may not register", func(t *testing.T) {
		env := newRegistrationEnv(t)
		event := env.seedEvent(t, "Admin Day", future)

		_, err := env.svc.Create(context.Background(), Principal{ID: "a1", Role: models.RoleAdmin}, event.ID)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("unknown event is invalid input", func(t *testing.T) {
		env := newRegistrationEnv(t)
		p := env.seedParticipant(t, "pat@example.com")

		_, err := env.svc.Create(context.Background(), p, "no-such-event")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("past event is invalid input", func(t *testing.T) {
		env := newRegistrationEnv(t)
		p := env.seedParticipant(t, "pat@example.com")
		event := env.seedEvent(t, "Yesterday's Gig", time.Now().Add(-time.Hour))

		_, err := env.svc.Create(context.Background(), p, event.ID)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("soft-deleted event is invalid input", func(t *testing.T) {
		env := newRegistrationEnv(t)
		p := env.seedParticipant(t, "pat@example.com")
		event := env.seedEvent(t, "Cancelled Show", future)
		require.NoError(t, env.events.SoftDelete(context.Background(), event.ID))

		_, err := env.svc.Create(context.Background(), p, event.ID)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("double registration is a conflict", func(t *testing.T) {
		env := newRegistrationEnv(t)
		p := env.seedParticipant(t, "pat@example.com")
		event := env.seedEvent(t, "Popular Event", future)

		_, err := env.svc.Create(context.Background(), p, event.ID)
		require.NoError(t, err)

		_, err = env.svc.Create(context.Background(), p, event.ID)
		assert.ErrorIs(t, err, models.ErrConflict)
	})
}

func TestRegistrationService_Cancel(t *testing.T) {
	future := time.Now().Add(72 * time.Hour)

	t.Run("participant cancels their own registration", func(t *testing.T) {
		env := newRegistrationEnv(t)
		p := env.seedParticipant(t, "pat@example.com")
		event := env.seedEvent(t, "Changeable Plans", future)

		reg, err := env.svc.Create(context.Background(), p, event.ID)
		require.NoError(t, err)

		require.NoError(t, env.svc.Cancel(context.Background(), p, reg.ID))
		assert.Equal(t, "Registration Cancelled", env.mailer.sent[len(env.mailer.sent)-1].Subject)

		// Cancelled registrations disappear from the listing
		list, err := env.svc.List(context.Background(), p, dto.RegistrationFilter{})
		require.NoError(t, err)
		assert.Empty(t, list.Items)

		// And the spot can be taken again
		_, err = env.svc.Create(context.Background(), p, event.ID)
		assert.NoError(t, err)
	})

	t.Run("someone else's registration is off limits", func(t *testing.T) {
		env := newRegistrationEnv(t)
		owner := env.seedParticipant(t, "owner@example.com")
		other := env.seedParticipant(t, "other@example.com")
		event := env.seedEvent(t, "Exclusive Event", future)

		reg, err := env.svc.Create(context.Background(), owner, event.ID)
		require.NoError(t, err)

		err = env.svc.Cancel(context.Background(), other, reg.ID)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("unknown registration", func(t *testing.T) {
		env := newRegistrationEnv(t)
		p := env.seedParticipant(t, "pat@example.com")

		err := env.svc.Cancel(context.Background(), p, "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestRegistrationService_List(t *testing.T) {
	env := newRegistrationEnv(t)
	p := env.seedParticipant(t, "busy@example.com")

	future := time.Now().Add(24 * time.Hour)
	for i := 0; i < 12; i++ {
		event := env.seedEvent(t, "Series "+string(rune('A'+i)), future.Add(time.Duration(i)*time.Hour))
		_, err := env.svc.Create(context.Background(), p, event.ID)
		require.NoError(t, err)
	}

	list, err := env.svc.List(context.Background(), p, dto.RegistrationFilter{
		PageRequest: dto.PageRequest{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Len(t, list.Items, 10)
	assert.EqualValues(t, 12, list.Meta.TotalItems)
	require.NotNil(t, list.Meta.NextPage)
	assert.Equal(t, 2, *list.Meta.NextPage)
}
