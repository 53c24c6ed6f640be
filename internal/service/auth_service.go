package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"code-playground-be/internal/dto"
	"code-playground-be/internal/entity"
	"code-playground-be/internal/repository/specification"
	"code-playground-be/internal/repository/unitofwork"
	"code-playground-be/pkg/autherr"
	"code-playground-be/pkg/events"
	pktNats "code-playground-be/pkg/nats"
	"code-playground-be/pkg/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	// SignUp and SignIn take the caller's independently computed email
	// well-formedness flag. When it is false the credential store is not
	// touched at all and both return (nil, nil).
	SignUp(ctx context.Context, req *dto.RegisterRequest, emailValid bool) (*dto.LoginResponse, error)
	SignIn(ctx context.Context, req *dto.LoginRequest, emailValid bool, ipAddress, userAgent string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	sessions       *session.Registry
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, sessions *session.Registry) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		sessions:       sessions,
	}
}

func (s *authService) SignUp(ctx context.Context, req *dto.RegisterRequest, emailValid bool) (*dto.LoginResponse, error) {
	if !emailValid {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherr.Classify(autherr.ErrEmailInUse)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: &hashStr,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	// Accounts are usable immediately; the sign-up flow signs the user
	// straight in.
	signedToken, err := s.issueAccessToken(user)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.UserLogin(user.Id, "signup"))

	return &dto.LoginResponse{
		AccessToken: signedToken,
		User:        toUserDTO(user),
	}, nil
}

func (s *authService) SignIn(ctx context.Context, req *dto.LoginRequest, emailValid bool, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	if !emailValid {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherr.Classify(autherr.ErrUserNotFound)
	}

	// Federated-only accounts have no password to compare against.
	if user.PasswordHash == nil {
		return nil, autherr.Classify(autherr.ErrWrongPassword)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, autherr.Classify(autherr.ErrWrongPassword)
	}

	signedToken, err := s.issueAccessToken(user)
	if err != nil {
		return nil, err
	}

	var rawRefreshToken string
	if req.RememberMe {
		rawRefreshToken = uuid.New().String()

		hasher := sha256.New()
		hasher.Write([]byte(rawRefreshToken))
		tokenHash := hex.EncodeToString(hasher.Sum(nil))

		refreshTokenEntity := &entity.UserRefreshToken{
			Id:        uuid.New(),
			UserId:    user.Id,
			TokenHash: tokenHash,
			ExpiresAt: time.Now().Add(time.Hour * 24 * 30),
			Revoked:   false,
			CreatedAt: time.Now(),
			IpAddress: ipAddress,
			UserAgent: userAgent,
		}

		if err := uow.UserRepository().CreateRefreshToken(ctx, refreshTokenEntity); err != nil {
			return nil, fmt.Errorf("failed to create session: %v", err)
		}
	}

	s.publish(ctx, events.UserLogin(user.Id, userAgent))

	return &dto.LoginResponse{
		AccessToken:  signedToken,
		RefreshToken: rawRefreshToken,
		User:         toUserDTO(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	hasher := sha256.New()
	hasher.Write([]byte(refreshToken))
	tokenHash := hex.EncodeToString(hasher.Sum(nil))

	token, err := uow.UserRepository().FindRefreshToken(ctx, specification.ByTokenHash{Hash: tokenHash})
	if err != nil {
		return err
	}

	if err := uow.UserRepository().RevokeRefreshToken(ctx, tokenHash); err != nil {
		return err
	}

	if token != nil {
		// Live connections learn about the logout through their session
		// trackers; each one redirects its client to the auth view.
		if s.sessions != nil {
			s.sessions.Revoke(token.UserId)
		}
		s.publish(ctx, events.UserLogout(token.UserId))
	}
	return nil
}

func (s *authService) issueAccessToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return token.SignedString([]byte(secret))
}

func (s *authService) publish(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", event.EventType(), err)
	}
}

func toUserDTO(user *entity.User) dto.UserDTO {
	return dto.UserDTO{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
	}
}
