package user

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
	"github.com/MikeMC777/tienda-ecom/internal/identity"
)

type TokenIssuer interface {
	Issue(userID string, role identity.Role) (identity.Token, error)
}

var errBadCredentials = apperr.Unauthorized("invalid credentials")

type Service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// Register creates a customer account. A duplicate email is a Conflict.
func (s *Service) Register(ctx context.Context, in RegisterRequest) (*User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperr.Validation("email and password are required")
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		if isTooLong(err) {
			return nil, apperr.Validation("password is too long")
		}
		return nil, apperr.Wrap(apperr.KindInternal, err, "hash password")
	}
	u := &User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		Role:         identity.RoleCustomer,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	log.Printf("[user] registered id=%s", u.ID)
	return u, nil
}

// Authenticate implements identity.Authenticator.
func (s *Service) Authenticate(ctx context.Context, email, password string) (identity.Token, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return identity.Token{}, errBadCredentials
		}
		return identity.Token{}, err
	}
	if !CheckPassword(u.PasswordHash, password) {
		return identity.Token{}, errBadCredentials
	}
	return s.tokens.Issue(u.ID, u.Role)
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, normalizeEmail(email))
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// UpdateProfile applies a self-service patch. Email and role are not
// editable here.
func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileRequest) (*User, error) {
	p := Patch{Phone: in.Phone, Address: in.Address}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Validation("name cannot be blank")
		}
		p.Name = &name
	}
	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			if isTooLong(err) {
				return nil, apperr.Validation("password is too long")
			}
			return nil, apperr.Wrap(apperr.KindInternal, err, "hash password")
		}
		p.PasswordHash = &hash
	}
	if p.Empty() {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, p)
}
