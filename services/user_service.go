package services

import (
	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/apperr"
	"github.com/MrTch0o/APPUAIFOOD-sub000/repository"
)

// UserService is the admin side of account management.
type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

type AdminUpdateUserReq struct {
	Role     *entity.Role `json:"role" binding:"omitempty,oneof=CLIENT RESTAURANT_OWNER ADMIN"`
	IsActive *bool        `json:"isActive"`
}

type UserListOut struct {
	Items []entity.User `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (s *UserService) List(page, limit int) (*UserListOut, error) {
	items, total, err := s.Repo.List(page, limit)
	if err != nil {
		return nil, err
	}
	return &UserListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *UserService) Get(id uint) (*entity.User, error) {
	u, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	return u, nil
}

func (s *UserService) Update(actor entity.Actor, id uint, req *AdminUpdateUserReq) (*entity.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if u.ID == actor.UserID && (req.Role != nil && *req.Role != entity.RoleAdmin || req.IsActive != nil && !*req.IsActive) {
		return nil, apperr.BadRequest("admins cannot demote or disable themselves")
	}

	updates := map[string]any{}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, apperr.BadRequest("unknown role")
		}
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := s.Repo.Update(u.ID, updates); err != nil {
			return nil, err
		}
	}
	return s.Get(u.ID)
}

func (s *UserService) Delete(actor entity.Actor, id uint) error {
	if id == actor.UserID {
		return apperr.BadRequest("admins cannot delete themselves")
	}
	u, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.Repo.Delete(u.ID)
}
