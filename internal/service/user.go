package service

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/barberin/internal/auth"
	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/metrics"
	"github.com/BruksfildServices01/barberin/internal/models"
	"github.com/BruksfildServices01/barberin/internal/validators"
)

// UserRepository finders return (nil, nil) when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Update(ctx context.Context, id uint, fields map[string]any) (bool, error)
	List(ctx context.Context, offset, limit int) ([]models.User, int64, error)
}

type RegisterUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Address   string
	AgeRange  string
}

// UserPatch carries the fields to change; nil means untouched.
type UserPatch struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	Address         *string
	AgeRange        *string
	ProfilePhotoURL *string
}

func (p UserPatch) fields() map[string]any {
	f := map[string]any{}
	setIf(f, "first_name", p.FirstName)
	setIf(f, "last_name", p.LastName)
	setIf(f, "phone", p.Phone)
	setIf(f, "address", p.Address)
	setIf(f, "age_range", p.AgeRange)
	setIf(f, "profile_photo_url", p.ProfilePhotoURL)
	return f
}

// GoogleProfile is the identity returned by Google's userinfo endpoint.
type GoogleProfile struct {
	ID         string
	Email      string
	GivenName  string
	FamilyName string
	Picture    string
}

type UserSession struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type UserService struct {
	repo   UserRepository
	tokens TokenIssuer
	emails EmailChecker
}

func NewUserService(repo UserRepository, tokens TokenIssuer, emails EmailChecker) *UserService {
	return &UserService{repo: repo, tokens: tokens, emails: emails}
}

func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*models.User, error) {
	email := validators.NormalizeEmail(in.Email)
	if err := checkEmailDomain(ctx, s.emails, email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Address:      in.Address,
		AgeRange:     in.AgeRange,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	metrics.Registrations.WithLabelValues(string(auth.RoleUser)).Inc()
	return u, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*UserSession, error) {
	u, err := s.repo.FindByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil || !checkPassword(u.PasswordHash, password) {
		metrics.Logins.WithLabelValues(string(auth.RoleUser), "failed").Inc()
		return nil, errInvalidCredentials
	}
	return s.session(u)
}

// LoginWithGoogle signs in the account linked to the Google profile,
// linking an existing account with the same email or creating a new one.
func (s *UserService) LoginWithGoogle(ctx context.Context, p GoogleProfile) (*UserSession, error) {
	if p.ID == "" || p.Email == "" {
		return nil, httperr.Unauthorized("Google account has no verified email")
	}

	u, err := s.repo.FindByGoogleID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if u == nil {
		email := validators.NormalizeEmail(p.Email)
		u, err = s.repo.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}

		googleID := p.ID
		switch {
		case u != nil:
			link := map[string]any{"google_id": googleID}
			if u.ProfilePhotoURL == "" && p.Picture != "" {
				link["profile_photo_url"] = p.Picture
				u.ProfilePhotoURL = p.Picture
			}
			if _, err := s.repo.Update(ctx, u.ID, link); err != nil {
				return nil, err
			}
			u.GoogleID = &googleID
		default:
			u = &models.User{
				FirstName:       validators.SanitizeString(p.GivenName),
				LastName:        validators.SanitizeString(p.FamilyName),
				Email:           email,
				GoogleID:        &googleID,
				ProfilePhotoURL: p.Picture,
			}
			if err := s.repo.Create(ctx, u); err != nil {
				return nil, err
			}
			metrics.Registrations.WithLabelValues(string(auth.RoleUser)).Inc()
		}
	}

	return s.session(u)
}

func (s *UserService) session(u *models.User) (*UserSession, error) {
	token, err := s.tokens.Issue(u.ID, auth.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	metrics.Logins.WithLabelValues(string(auth.RoleUser), "ok").Inc()
	return &UserSession{Token: token, User: u}, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update reports false when no user has the given id.
func (s *UserService) Update(ctx context.Context, id uint, patch UserPatch) (bool, error) {
	return s.repo.Update(ctx, id, patch.fields())
}

func (s *UserService) List(ctx context.Context, page, limit int) (*Page[models.User], error) {
	page, limit = NormalizePage(page, limit)
	items, total, err := s.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.User{}
	}
	return &Page[models.User]{Items: items, Page: page, Limit: limit, Total: total}, nil
}

func setIf[T any](m map[string]any, column string, v *T) {
	if v != nil {
		m[column] = *v
	}
}
