// Package authz holds the static authorization table: which roles may
// perform which operation. It is a pure predicate with no side effects,
// evaluated before any handler or service body runs.
package authz

import "digilocker/internal/domain/model"

type Operation string

const (
	OpListOwnDocuments  Operation = "documents.list"
	OpGetOwnDocument    Operation = "documents.get"
	OpCreateDocument    Operation = "documents.create"
	OpUpdateOwnDocument Operation = "documents.update"
	OpDeleteOwnDocument Operation = "documents.delete"
	OpSearchDocuments   Operation = "documents.search"
	OpVerifyDocument    Operation = "documents.verify"
	OpRejectDocument    Operation = "documents.reject"
	OpListUnverified    Operation = "documents.list_unverified"
	OpListUsers         Operation = "users.list"
	OpGetUser           Operation = "users.get"
	OpDeleteUser        Operation = "users.delete"
)

var table = map[Operation][]string{
	OpListOwnDocuments:  {model.RoleUser, model.RoleModerator, model.RoleAdmin},
	OpGetOwnDocument:    {model.RoleUser, model.RoleModerator, model.RoleAdmin},
	OpCreateDocument:    {model.RoleUser, model.RoleModerator, model.RoleAdmin},
	OpUpdateOwnDocument: {model.RoleUser, model.RoleModerator, model.RoleAdmin},
	OpDeleteOwnDocument: {model.RoleUser, model.RoleModerator, model.RoleAdmin},
	OpSearchDocuments:   {model.RoleUser, model.RoleModerator, model.RoleAdmin},
	OpVerifyDocument:    {model.RoleModerator, model.RoleAdmin},
	OpRejectDocument:    {model.RoleModerator, model.RoleAdmin},
	OpListUnverified:    {model.RoleModerator, model.RoleAdmin},
	OpListUsers:         {model.RoleAdmin},
	OpGetUser:           {model.RoleAdmin},
	OpDeleteUser:        {model.RoleAdmin},
}

// Permitted reports whether any of the caller's roles allows the operation.
// Unknown operations are denied.
func Permitted(op Operation, roles []string) bool {
	allowed, ok := table[op]
	if !ok {
		return false
	}
	for _, have := range roles {
		for _, want := range allowed {
			if have == want {
				return true
			}
		}
	}
	return false
}
