// Package user holds the administrator use cases over customer profiles.
package user

import (
	"context"
	"time"

	"storefront/domain/shared"
	"storefront/domain/user"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// ApplicationService admin user management
type ApplicationService struct {
	users user.Repository
	uow   shared.UnitOfWork
}

func NewApplicationService(users user.Repository, uow shared.UnitOfWork) *ApplicationService {
	return &ApplicationService{users: users, uow: uow}
}

// UpdateUserRequest nil fields are left unchanged
type UpdateUserRequest struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	ZipCode   string    `json:"zip_code,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserPage one page of users plus paging metadata
type UserPage struct {
	Users      []UserResponse
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

func (s *ApplicationService) ListUsers(ctx context.Context, principal shared.Principal, page, limit int) (*UserPage, error) {
	if err := principal.RequireAdmin(); err != nil {
		return nil, err
	}
	pr := shared.NewPageRequest(page, limit)
	users, total, err := s.users.List(ctx, pr)
	if err != nil {
		return nil, err
	}

	result := &UserPage{
		Users:      make([]UserResponse, 0, len(users)),
		Page:       pr.Page,
		Limit:      pr.Limit,
		Total:      total,
		TotalPages: pr.TotalPages(total),
	}
	for _, u := range users {
		result.Users = append(result.Users, toUserResponse(u))
	}
	return result, nil
}

// UpdateUser changes role and/or active flag; role must be user or admin
func (s *ApplicationService) UpdateUser(ctx context.Context, principal shared.Principal, userID string, req UpdateUserRequest) (*UserResponse, error) {
	if err := principal.RequireAdmin(); err != nil {
		return nil, err
	}

	var u *user.User
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		u, err = s.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if req.Role != nil {
			if err := u.ChangeRole(shared.Role(*req.Role)); err != nil {
				return err
			}
		}
		if req.IsActive != nil {
			if *req.IsActive {
				u.Activate()
			} else {
				u.Deactivate()
			}
		}
		return s.users.Save(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("User updated by admin",
		zap.String("user_id", userID),
		zap.String("role", string(u.Role())),
		zap.Bool("is_active", u.IsActive()),
		zap.String("admin_id", principal.UserID))

	resp := toUserResponse(u)
	return &resp, nil
}

func toUserResponse(u *user.User) UserResponse {
	contact := u.Contact()
	return UserResponse{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email().Value(),
		Phone:     contact.Phone,
		Address:   contact.Address,
		ZipCode:   contact.ZipCode,
		Role:      string(u.Role()),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}
