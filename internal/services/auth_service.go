package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobhub_backend/internal/auth"
	"jobhub_backend/internal/email"
	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, req *dto.ChangePasswordRequest) error
}

type AuthServiceImpl struct {
	users       repositories.UserRepository
	customers   repositories.CustomerRepository
	freelancers repositories.FreelancerRepository
	tx          repositories.TxRunner
	notifier    *Notifier
}

func NewAuthService(
	users repositories.UserRepository,
	customers repositories.CustomerRepository,
	freelancers repositories.FreelancerRepository,
	tx repositories.TxRunner,
	notifier *Notifier,
) AuthService {
	return &AuthServiceImpl{
		users:       users,
		customers:   customers,
		freelancers: freelancers,
		tx:          tx,
		notifier:    notifier,
	}
}

// Register creates the user document together with its role profile and links
// the two inside one transaction. Admins are seeded at startup, never
// self-registered.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	role := models.UserRole(req.Role)
	if !role.Valid() || role == models.UserRoleAdmin {
		return nil, apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Age:          req.Age,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		PhoneNumber:  req.PhoneNumber,
		Role:         role,
		Image:        models.DefaultImage,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
		switch role {
		case models.UserRoleCustomer:
			customer := &models.Customer{UserID: user.ID}
			if err := s.customers.Create(ctx, customer); err != nil {
				return err
			}
			if err := s.users.SetCustomerRef(ctx, user.ID, customer.ID); err != nil {
				return err
			}
			user.CustomerID = &customer.ID
		case models.UserRoleFreelancer:
			freelancer := &models.Freelancer{UserID: user.ID}
			if err := s.freelancers.Create(ctx, freelancer); err != nil {
				return err
			}
			if err := s.users.SetFreelancerRef(ctx, user.ID, freelancer.ID); err != nil {
				return err
			}
			user.FreelancerID = &freelancer.ID
		}
		return nil
	})
	if err != nil {
		return nil, mapUserRepoError(err)
	}

	s.notifier.Dispatch([]Notification{{
		To:       []string{user.Email},
		Subject:  "Welcome!",
		Template: email.TemplateWelcome,
		Data:     email.TemplateData{"Name": user.FirstName},
	}})

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID.Hex(), "role", req.Role)
	return s.issueToken(user)
}

// Login authenticates by email or username. Unknown identifier and wrong
// password produce the same error so the response does not leak which part
// failed.
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmailOrUsername(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.issueToken(user)
}

func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID primitive.ObjectID, req *dto.ChangePasswordRequest) error {
	if req.Password != req.ConfirmPassword {
		return apperrors.InvalidArgument("auth", "password confirmation does not match")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return mapUserRepoError(err)
	}
	if !auth.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return mapUserRepoError(err)
	}

	s.notifier.Dispatch([]Notification{{
		To:       []string{user.Email},
		Subject:  "Password updated",
		Template: email.TemplatePasswordChanged,
		Data:     email.TemplateData{"Name": user.FirstName},
	}})
	return nil
}

func (s *AuthServiceImpl) issueToken(user *models.User) (*dto.LoginResponse, error) {
	token, err := auth.GenerateToken(user.ID.Hex(), string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.LoginResponse{
		AccessToken: token,
		Role:        string(user.Role),
		User:        dto.NewUserResponse(user),
	}, nil
}

func mapUserRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.NotFound("user", "user not found")
	case errors.Is(err, repositories.ErrEmailTaken):
		return apperrors.ErrEmailAlreadyExists
	case errors.Is(err, repositories.ErrUsernameTaken):
		return apperrors.ErrUsernameAlreadyExists
	default:
		return apperrors.DatabaseError(err)
	}
}
