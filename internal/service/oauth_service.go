package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"docuchat-be/internal/dto"
	"docuchat-be/internal/entity"
	"docuchat-be/internal/repository/specification"
	"docuchat-be/internal/repository/unitofwork"
)

type IOAuthService interface {
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code string) (*dto.LoginResponse, error)
}

type oauthService struct {
	uowFactory   unitofwork.RepositoryFactory
	googleConfig *oauth2.Config
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, clientID, clientSecret, redirectURL string) IOAuthService {
	return &oauthService{
		uowFactory: uowFactory,
		googleConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

type googleUserInfo struct {
	Id      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *oauthService) GetGoogleLoginURL(state string) string {
	return s.googleConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *oauthService) HandleGoogleCallback(ctx context.Context, code string) (*dto.LoginResponse, error) {
	token, err := s.googleConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.findOrCreateUser(ctx, uow, info)
	if err != nil {
		return nil, err
	}

	signed, err := signToken(jwt.MapClaims{
		"user_id": user.Id.String(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: signed,
		User: dto.UserResponse{
			Id:        user.Id,
			Email:     user.Email,
			FullName:  user.FullName,
			AvatarURL: user.AvatarURL,
		},
	}, nil
}

func (s *oauthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.googleConfig.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google user info: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse google user info: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google user info missing email")
	}
	return &info, nil
}

// findOrCreateUser links by provider account first, then by email, and
// creates a password-less user as a last resort.
func (s *oauthService) findOrCreateUser(ctx context.Context, uow unitofwork.UnitOfWork, info *googleUserInfo) (*entity.User, error) {
	provider, err := uow.UserRepository().FindUserProvider(ctx, "google", info.Id)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		return uow.UserRepository().FindById(ctx, provider.UserId)
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: info.Email})
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if user == nil {
		avatar := info.Picture
		user = &entity.User{
			Id:        uuid.New(),
			Email:     info.Email,
			FullName:  info.Name,
			AvatarURL: &avatar,
			CreatedAt: time.Now(),
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
	}

	if err := uow.UserRepository().SaveUserProvider(ctx, &entity.UserProvider{
		Id:             uuid.New(),
		UserId:         user.Id,
		ProviderName:   "google",
		ProviderUserId: info.Id,
		AvatarURL:      info.Picture,
		CreatedAt:      time.Now(),
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}
