package services

import (
	"fmt"

	"github.com/eventra-api/models"
)

// Principal is the authenticated actor performing an operation, as extracted
// from the verified JWT. Authorization checks are pure functions of
// (principal, target, operation); a denial is always an explicit
// models.ErrForbidden, never a silent no-op.
type Principal struct {
	ID   string
	Role models.Role
}

// IsAdmin reports whether the principal has the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// CanAccessUser allows a user to read, update or delete their own record;
// admins may access any user
func CanAccessUser(p Principal, targetUserID string) error {
	if p.ID == targetUserID || p.IsAdmin() {
		return nil
	}
	return fmt.Errorf("you can only access your own user record: %w", models.ErrForbidden)
}

// EffectiveUserListRole resolves the role filter a principal is allowed to
// list. Admins list any role (or all when unfiltered); organizers always see
// participants only, whatever filter they asked for; everyone else is denied.
func EffectiveUserListRole(p Principal, requested models.Role) (models.Role, error) {
	switch p.Role {
	case models.RoleAdmin:
		return requested, nil
	case models.RoleOrganizer:
		return models.RoleParticipant, nil
	default:
		return "", fmt.Errorf("listing users requires the admin or organizer role: %w", models.ErrForbidden)
	}
}

// CanCreateEvent restricts event creation to organizers and admins
func CanCreateEvent(p Principal) error {
	if p.Role == models.RoleOrganizer || p.IsAdmin() {
		return nil
	}
	return fmt.Errorf("creating events requires the organizer or admin role: %w", models.ErrForbidden)
}

// CanManageEvent allows updating or deleting an event by its owning
// organizer or by an admin
func CanManageEvent(p Principal, event models.Event) error {
	if p.IsAdmin() || event.OrganizerID == p.ID {
		return nil
	}
	return fmt.Errorf("you are not the organizer of this event: %w", models.ErrForbidden)
}

// CanRegister restricts event registration to participants and organizers
func CanRegister(p Principal) error {
	if p.Role == models.RoleParticipant || p.Role == models.RoleOrganizer {
		return nil
	}
	return fmt.Errorf("registering requires the participant or organizer role: %w", models.ErrForbidden)
}

// CanCancelRegistration allows cancelling only by the participant who
// created the registration
func CanCancelRegistration(p Principal, registration models.Registration) error {
	if registration.ParticipantID == p.ID {
		return nil
	}
	return fmt.Errorf("you can only cancel your own registration: %w", models.ErrForbidden)
}
