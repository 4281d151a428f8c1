package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tmurzenkov/circulation-service/internal/errs"
	"github.com/tmurzenkov/circulation-service/internal/model"
	"github.com/tmurzenkov/circulation-service/internal/repository"
	"github.com/tmurzenkov/circulation-service/pkg/validate"
)

// CredentialHasher is the opaque credential capability consumed by the
// registry.
type CredentialHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}

// Registry owns account identity, credentials, role and status flags.
type Registry struct {
	log      *zap.Logger
	repo     repository.AccountRepository
	hasher   CredentialHasher
	validate *validate.Validator
}

func NewRegistry(repo repository.AccountRepository, hasher CredentialHasher, log *zap.Logger) *Registry {
	return &Registry{
		log:      log,
		repo:     repo,
		hasher:   hasher,
		validate: validate.New(),
	}
}

func (s *Registry) Register(ctx context.Context, username, password string, role model.Role) (model.Account, error) {
	req := model.RegisterRequest{Username: username, Password: password, Role: role}
	if err := s.validate.Validate(req); err != nil {
		return model.Account{}, errors.Wrap(errs.ErrValidation, err.Error())
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return model.Account{}, errors.Wrap(err, "hash credential")
	}

	acc, err := s.repo.Create(ctx, username, hashed, role)
	if err != nil {
		return model.Account{}, err
	}
	s.log.Info("account registered",
		zap.Int("id", acc.ID), zap.String("role", string(acc.Role)))
	return acc, nil
}

// Authenticate maps both an unknown username and a credential mismatch to
// ErrInvalidCredentials, so callers cannot enumerate usernames.
func (s *Registry) Authenticate(ctx context.Context, username, password string) (model.Account, error) {
	acc, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Account{}, errs.ErrInvalidCredentials
		}
		return model.Account{}, err
	}
	if !s.hasher.Verify(password, acc.Password) {
		return model.Account{}, errs.ErrInvalidCredentials
	}
	return acc, nil
}

func (s *Registry) Get(ctx context.Context, id int) (model.Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Registry) List(ctx context.Context) ([]model.Account, error) {
	return s.repo.List(ctx)
}

func (s *Registry) SetStatus(ctx context.Context, id int, upd model.StatusUpdate) error {
	return s.repo.SetStatus(ctx, id, upd)
}

func (s *Registry) EditProfile(ctx context.Context, id int, upd model.AccountUpdate) error {
	if upd.Role != nil && !upd.Role.Valid() {
		return errors.Wrap(errs.ErrValidation, "unknown role")
	}
	return s.repo.Update(ctx, id, upd)
}

func (s *Registry) ChangeCredential(ctx context.Context, id int, newPassword string) error {
	if newPassword == "" {
		return errors.Wrap(errs.ErrValidation, "password must not be empty")
	}
	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return errors.Wrap(err, "hash credential")
	}
	return s.repo.SetPassword(ctx, id, hashed)
}

// Delete removes the account. Any loans still open are force-closed so the
// books become available again; closed history is kept. The returned count
// tells the operator how many loans were closed this way.
func (s *Registry) Delete(ctx context.Context, id int) (int, error) {
	closed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if closed > 0 {
		s.log.Warn("account deleted with open loans; loans force-closed",
			zap.Int("id", id), zap.Int("closedLoans", closed))
	}
	return closed, nil
}
