// Package authz implements role based access control as a declarative
// permission table. Anything not listed in the table is denied.
package authz

import "campusboard/internal/models"

// Action identifies a privileged operation.
type Action string

const (
	ActionDeletePost   Action = "delete-post"
	ActionDeleteReport Action = "delete-report"
	ActionViewReports  Action = "view-reports"
	ActionSyncReports  Action = "sync-reports"
	ActionSanctionUser Action = "sanction-user"
	ActionManageUsers  Action = "manage-users"
)

type grant struct {
	role   string
	action Action
}

// permissions is the single source of truth for role capabilities.
// Default deny: a (role, action) pair absent from this table is rejected.
var permissions = map[grant]bool{
	{models.RoleModerator, ActionDeletePost}:   true,
	{models.RoleModerator, ActionDeleteReport}: true,
	{models.RoleModerator, ActionViewReports}:  true,
	{models.RoleModerator, ActionSyncReports}:  true,
	{models.RoleModerator, ActionSanctionUser}: true,

	{models.RoleAdmin, ActionDeletePost}:   true,
	{models.RoleAdmin, ActionDeleteReport}: true,
	{models.RoleAdmin, ActionViewReports}:  true,
	{models.RoleAdmin, ActionSyncReports}:  true,
	{models.RoleAdmin, ActionSanctionUser}: true,
	{models.RoleAdmin, ActionManageUsers}:  true,
}

// Allowed reports whether any of the given roles grants the action.
func Allowed(roles []string, action Action) bool {
	for _, r := range roles {
		if permissions[grant{r, action}] {
			return true
		}
	}
	return false
}
