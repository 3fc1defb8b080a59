package service

import (
	"gamifyiq-backend/internal/db"
	"gamifyiq-backend/internal/model"
	"gamifyiq-backend/internal/repository"
)

// UserProfile is the profile payload with aggregate stats attached.
type UserProfile struct {
	User  *model.User   `json:"user"`
	Stats *ProgressData `json:"stats"`
}

type UserService interface {
	GetAllUsers() ([]model.User, error)
	GetProfile(userID uint) (*UserProfile, error)
	UpdateProfile(userID uint, name string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetAllUsers() ([]model.User, error) {
	users, err := s.userRepo.GetAllUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (s *userService) GetProfile(userID uint) (*UserProfile, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""

	stats, err := GenerateProgressData(db.GetDB(), userID)
	if err != nil {
		return nil, err
	}

	return &UserProfile{User: user, Stats: stats}, nil
}

func (s *userService) UpdateProfile(userID uint, name string) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	if err := s.userRepo.UpdateUser(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}
