package usecase

import (
	"errors"
	"fmt"
	"io"
	"time"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/repo/persistent"
	"loyaltypro/pkg/jwt"
	"loyaltypro/pkg/logger"
	"loyaltypro/pkg/storage"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type ProfileUpdate struct {
	Name      *string
	LastName  *string
	Phone     *string
	Birthday  *time.Time
	AvatarURL *string
}

type AuthUseCase interface {
	Login(email, password string) (*entity.User, string, error)
	GetUser(userID string) (*entity.User, error)
	UpdateProfile(userID string, update ProfileUpdate) (*entity.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	UploadAvatar(userID string, fileReader io.Reader, fileKey, contentType string) (*entity.User, error)
}

type authUseCase struct {
	userRepo      persistent.UserRepository
	jwtService    *jwt.Service
	storageClient *storage.Client
	avatarsBucket string
	logger        *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	storageClient *storage.Client,
	avatarsBucket string,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:      userRepo,
		jwtService:    jwtService,
		storageClient: storageClient,
		avatarsBucket: avatarsBucket,
		logger:        logger,
	}
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", fmt.Errorf("account is deactivated")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.TenantID, user.Role)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) UpdateProfile(userID string, update ProfileUpdate) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Birthday != nil {
		user.Birthday = update.Birthday
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to update profile")
	}

	user.Password = ""
	return user, nil
}

func (uc *authUseCase) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return fmt.Errorf("failed to change password")
	}

	if err := uc.userRepo.UpdatePassword(userID, string(hashedPassword)); err != nil {
		uc.logger.Error("Failed to update password for user %s: %v", userID, err)
		return fmt.Errorf("failed to change password")
	}

	return nil
}

func (uc *authUseCase) UploadAvatar(userID string, fileReader io.Reader, fileKey, contentType string) (*entity.User, error) {
	avatarURL, err := uc.storageClient.UploadFile(uc.avatarsBucket, fileKey, fileReader, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, fmt.Errorf("failed to upload avatar")
	}

	return uc.UpdateProfile(userID, ProfileUpdate{AvatarURL: &avatarURL})
}
