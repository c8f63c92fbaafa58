package po

import (
	"time"

	"storefront/domain/user"
)

type UserPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Phone     string    `gorm:"size:50"`
	Address   string    `gorm:"size:500"`
	ZipCode   string    `gorm:"size:20"`
	Role      string    `gorm:"size:20;not null;default:user"`
	IsActive  bool      `gorm:"default:true"`
	Version   int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserPO) TableName() string {
	return "users"
}

func FromUserDomain(u *user.User) *UserPO {
	dto := u.ToDTO()
	return &UserPO{
		ID:        dto.ID,
		Name:      dto.Name,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Address:   dto.Address,
		ZipCode:   dto.ZipCode,
		Role:      dto.Role,
		IsActive:  dto.IsActive,
		Version:   dto.Version,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	}
}

func (po *UserPO) ToDomain() *user.User {
	return user.RebuildFromDTO(user.ReconstructionDTO{
		ID:        po.ID,
		Name:      po.Name,
		Email:     po.Email,
		Phone:     po.Phone,
		Address:   po.Address,
		ZipCode:   po.ZipCode,
		Role:      po.Role,
		IsActive:  po.IsActive,
		Version:   po.Version,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	})
}
