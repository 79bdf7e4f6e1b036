package service

import "studiosync/internal/model"

// CanDeleteDocument is the authorization policy for document deletion: admins
// may delete any document, clients only their own. A client identity without
// a client reference can never match and is always denied.
//
// Listing and label assignment are deliberately not gated here: the UI only
// exposes a client's own document ids, and that trust boundary is owned by
// the collaborator, not re-checked in this core.
func CanDeleteDocument(identity *model.Identity, doc *model.Document) bool {
	if identity == nil || doc == nil {
		return false
	}
	switch identity.Role {
	case model.RoleAdmin:
		return true
	case model.RoleClient:
		return identity.ClientID != nil && *identity.ClientID == doc.ClientID
	default:
		return false
	}
}
