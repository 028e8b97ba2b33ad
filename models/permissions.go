package models

// Permission resources and actions checked by the admin middleware.
const (
	ResourceHotels   = "hotels"
	ResourceUsers    = "users"
	ResourceBookings = "bookings"
	ResourceAdmins   = "admins"
	ResourceReports  = "reports"

	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Permissions maps resource -> action -> allowed.
type Permissions map[string]map[string]bool

func (p Permissions) Allows(resource, action string) bool {
	actions, ok := p[resource]
	if !ok {
		return false
	}
	return actions[action]
}

func crud(view, create, edit, del bool) map[string]bool {
	return map[string]bool{ActionView: view, ActionCreate: create, ActionEdit: edit, ActionDelete: del}
}

func viewOnly(view bool) map[string]bool {
	return map[string]bool{ActionView: view}
}

// DefaultPermissions returns the permission set a new admin of the given role
// starts with. Unknown roles get the support set.
func DefaultPermissions(role string) Permissions {
	switch role {
	case AdminRoleSuperAdmin:
		return Permissions{
			ResourceHotels:   crud(true, true, true, true),
			ResourceUsers:    crud(true, true, true, true),
			ResourceBookings: crud(true, true, true, true),
			ResourceAdmins:   crud(true, true, true, true),
			ResourceReports:  viewOnly(true),
		}
	case AdminRoleAdmin:
		return Permissions{
			ResourceHotels:   crud(true, true, true, true),
			ResourceUsers:    crud(true, false, true, false),
			ResourceBookings: crud(true, true, true, false),
			ResourceAdmins:   crud(false, false, false, false),
			ResourceReports:  viewOnly(true),
		}
	case AdminRoleManager:
		return Permissions{
			ResourceHotels:   crud(true, true, true, false),
			ResourceUsers:    crud(true, false, false, false),
			ResourceBookings: crud(true, true, true, false),
			ResourceAdmins:   crud(false, false, false, false),
			ResourceReports:  viewOnly(true),
		}
	case AdminRoleFinance:
		return Permissions{
			ResourceHotels:   crud(true, false, false, false),
			ResourceUsers:    crud(true, false, false, false),
			ResourceBookings: crud(true, false, false, false),
			ResourceAdmins:   crud(false, false, false, false),
			ResourceReports:  viewOnly(true),
		}
	case AdminRoleHotelOwner:
		return Permissions{
			ResourceHotels:   crud(true, true, true, false),
			ResourceUsers:    crud(false, false, false, false),
			ResourceBookings: crud(true, false, true, false),
			ResourceAdmins:   crud(false, false, false, false),
			ResourceReports:  viewOnly(false),
		}
	default:
		return Permissions{
			ResourceHotels:   crud(true, false, false, false),
			ResourceUsers:    crud(true, false, false, false),
			ResourceBookings: crud(true, false, true, false),
			ResourceAdmins:   crud(false, false, false, false),
			ResourceReports:  viewOnly(false),
		}
	}
}
