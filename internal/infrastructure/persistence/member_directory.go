package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gymops/backend/internal/domain/billing/acl"
	"github.com/gymops/backend/internal/infrastructure/persistence/models"
)

// GormMemberDirectory implements acl.MemberDirectory over the members table.
// It is billing's only read path into the membership context.
type GormMemberDirectory struct {
	db *gorm.DB
}

// NewGormMemberDirectory creates a new GormMemberDirectory
func NewGormMemberDirectory(db *gorm.DB) *GormMemberDirectory {
	return &GormMemberDirectory{db: db}
}

// FindMemberRef resolves a member within the tenant's scope. A member
// belonging to another tenant resolves to nil, same as a missing one.
func (d *GormMemberDirectory) FindMemberRef(ctx context.Context, tenantID, memberID uuid.UUID) (*acl.MemberRef, error) {
	var model models.MemberModel
	if err := d.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, memberID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &acl.MemberRef{
		ID:       model.ID,
		TenantID: model.TenantID,
		BranchID: model.BranchID,
		FullName: model.FullName,
	}, nil
}

// Ensure GormMemberDirectory implements MemberDirectory
var _ acl.MemberDirectory = (*GormMemberDirectory)(nil)
