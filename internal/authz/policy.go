// Package authz holds the pure role policy for the dashboard. Decisions are
// computed from a resolved actor and never touch storage, so callers can (and
// must) authorize before performing any resource lookup.
package authz

import "github.com/mentron-app/mentron-api/internal/models"

// Action enumerates everything an actor can ask the API to do.
type Action string

const (
	ActionCalendarList   Action = "calendar:list"
	ActionCalendarCreate Action = "calendar:create"
	ActionCalendarDelete Action = "calendar:delete"

	ActionNotificationsView Action = "notifications:view"
	ActionAnnounce          Action = "notifications:announce"

	ActionSettingsView   Action = "settings:view"
	ActionSettingsUpdate Action = "settings:update"

	ActionHierarchyView Action = "hierarchy:view"

	ActionSearch        Action = "search"
	ActionAnalyticsView Action = "analytics:view"
	ActionExport        Action = "analytics:export"
)

// ScopeKind classifies how far a granted action reaches.
type ScopeKind int

const (
	// ScopeNone is the zero scope carried by denials.
	ScopeNone ScopeKind = iota
	// ScopeOwn limits the action to records owned by OwnerID.
	ScopeOwn
	// ScopeDepartment limits the action to records matching Department
	// (an equality filter, not a hierarchy walk).
	ScopeDepartment
	// ScopeAll grants unrestricted reach.
	ScopeAll
)

// Scope is the listing filter attached to an allow decision.
type Scope struct {
	Kind       ScopeKind
	OwnerID    string
	Department string
	// Year further narrows department scope for student actors; zero
	// means no year filter.
	Year int
}

// ResourceRef carries the attributes of the target record that the policy
// needs. It never implies the record exists.
type ResourceRef struct {
	OwnerID    string
	Department string
}

// Decision is the outcome of a policy evaluation.
type Decision struct {
	Allowed bool
	Scope   Scope
	Reason  string
}

func allow(scope Scope) Decision {
	return Decision{Allowed: true, Scope: scope}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Authorize evaluates the role policy for the given actor, action and target.
// Unknown actions and unknown roles are denied.
func Authorize(actor models.Actor, action Action, ref ResourceRef) Decision {
	switch action {
	case ActionCalendarDelete, ActionCalendarCreate, ActionAnnounce:
		// Coarse admin privileges: ownership of the target is irrelevant.
		if actor.IsAdmin() {
			return allow(Scope{Kind: ScopeAll})
		}
		return deny("admin role required")

	case ActionCalendarList:
		switch actor.Role {
		case models.RoleChairman:
			return allow(Scope{Kind: ScopeAll})
		case models.RoleExecom:
			return allow(Scope{Kind: ScopeDepartment, Department: actor.Department})
		case models.RoleStudent:
			return allow(Scope{Kind: ScopeDepartment, Department: actor.Department, Year: actor.Year})
		}
		return deny("unknown role")

	case ActionNotificationsView:
		switch actor.Role {
		case models.RoleChairman, models.RoleExecom, models.RoleStudent:
			return allow(Scope{Kind: ScopeOwn, OwnerID: actor.ID})
		}
		return deny("unknown role")

	case ActionSettingsView, ActionSettingsUpdate:
		if !actor.IsAdmin() {
			return deny("admin role required")
		}
		if ref.OwnerID != actor.ID {
			return deny("settings are self-managed")
		}
		return allow(Scope{Kind: ScopeOwn, OwnerID: actor.ID})

	case ActionHierarchyView:
		switch actor.Role {
		case models.RoleChairman:
			return allow(Scope{Kind: ScopeAll})
		case models.RoleExecom:
			if ref.Department != "" && ref.Department != actor.Department {
				return deny("department out of scope")
			}
			return allow(Scope{Kind: ScopeDepartment, Department: actor.Department})
		}
		return deny("admin role required")

	case ActionSearch:
		switch actor.Role {
		case models.RoleChairman, models.RoleExecom, models.RoleStudent:
			return allow(Scope{Kind: ScopeAll})
		}
		return deny("unknown role")

	case ActionAnalyticsView, ActionExport:
		if actor.IsAdmin() {
			return allow(Scope{Kind: ScopeAll})
		}
		return deny("admin role required")
	}

	return deny("no rule for action")
}
