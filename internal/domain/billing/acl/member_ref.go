// Package acl is the anti-corruption layer between the billing bounded
// context and the membership context. Billing only ever needs to know that a
// member exists within the caller's tenant; everything else about members
// stays outside this context.
package acl

import (
	"context"

	"github.com/google/uuid"
)

// MemberRef is billing's minimal view of a gym member
type MemberRef struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	BranchID uuid.UUID
	FullName string
}

// MemberDirectory resolves member references within a tenant. A member
// belonging to a different tenant resolves to nil, indistinguishable from a
// missing member.
type MemberDirectory interface {
	FindMemberRef(ctx context.Context, tenantID, memberID uuid.UUID) (*MemberRef, error)
}
