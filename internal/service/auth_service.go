package service

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"docuchat-be/internal/dto"
	"docuchat-be/internal/entity"
	"docuchat-be/internal/pkg/apperrors"
	"docuchat-be/internal/repository/memory"
	"docuchat-be/internal/repository/specification"
	"docuchat-be/internal/repository/unitofwork"
)

const guestSessionTTL = 7 * 24 * time.Hour

type IAuthService interface {
	CreateGuestSession(ctx context.Context) (*dto.GuestSessionResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, principal Principal) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	sessionCache *memory.GuestSessionCache
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, sessionCache *memory.GuestSessionCache) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		sessionCache: sessionCache,
	}
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return []byte(secret)
}

func signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// CreateGuestSession mints an anonymous identity. Guests get the full
// pipeline under stricter quotas; the returned token authenticates every
// subsequent call.
func (s *authService) CreateGuestSession(ctx context.Context) (*dto.GuestSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	expiresAt := time.Now().Add(guestSessionTTL)
	guest := &entity.Guest{
		Id:        uuid.New(),
		SessionId: uuid.New().String(),
		CreatedAt: time.Now(),
		ExpiresAt: &expiresAt,
	}

	if err := uow.GuestRepository().Create(ctx, guest); err != nil {
		return nil, err
	}
	s.sessionCache.Save(guest)

	token, err := signToken(jwt.MapClaims{
		"guest_id": guest.Id.String(),
		"exp":      expiresAt.Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.GuestSessionResponse{
		GuestId:   guest.Id,
		SessionId: guest.SessionId,
		Token:     token,
		ExpiresAt: guest.ExpiresAt,
	}, nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: &hashStr,
		FullName:     req.FullName,
		CreatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{Id: user.Id, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if user == nil {
		return nil, errors.New("invalid credentials")
	}

	if user.PasswordHash == nil {
		return nil, errors.New("user registered via OAuth")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := signToken(jwt.MapClaims{
		"user_id": user.Id.String(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			Id:        user.Id,
			Email:     user.Email,
			FullName:  user.FullName,
			AvatarURL: user.AvatarURL,
		},
	}, nil
}

func (s *authService) Me(ctx context.Context, principal Principal) (*dto.UserResponse, error) {
	if principal.UserId == nil {
		return nil, &apperrors.NotFoundError{Resource: "user"}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindById(ctx, *principal.UserId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &apperrors.NotFoundError{Resource: "user"}
	}

	return &dto.UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
	}, nil
}
