package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// UserUpdate carries a partial update for a user. Nil fields are left
// untouched.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// Empty reports whether the update touches no fields.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Password == nil
}

// UserService provides user-related operations. Users are addressed by
// their public external identifier.
type UserService interface {
	// RegisterUser creates a new user with a freshly generated external
	// ID and a bcrypt-hashed password.
	// Returns store.ErrEmailExists if the email is already taken.
	RegisterUser(ctx context.Context, name, email, password string) (*domain.User, error)

	// GetUser retrieves a user by external ID.
	// Returns store.ErrUserNotFound if the user does not exist.
	GetUser(ctx context.Context, externalID string) (*domain.User, error)

	// ListUsers returns all users ordered by creation time.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// UpdateUser applies a partial update to the user.
	// Returns store.ErrUserNotFound if the user does not exist and
	// store.ErrEmailExists on an email conflict.
	UpdateUser(ctx context.Context, externalID string, update UserUpdate) (*domain.User, error)

	// DeleteUser removes a user. The user's memberships are removed in
	// the same transaction by the store's cascade rules.
	// Returns store.ErrUserNotFound if the user does not exist.
	DeleteUser(ctx context.Context, externalID string) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	db         *sql.DB
	userStore  store.UserStore
	bcryptCost int
	logger     *slog.Logger
}

// NewUserService creates a new UserService. A non-positive bcryptCost
// falls back to bcrypt.DefaultCost.
func NewUserService(db *sql.DB, userStore store.UserStore, bcryptCost int, logger *slog.Logger) *UserServiceImpl {
	if db == nil {
		panic("db cannot be nil")
	}
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &UserServiceImpl{
		db:         db,
		userStore:  userStore,
		bcryptCost: bcryptCost,
		logger:     logger.With("component", "user_service"),
	}
}

// Ensure UserServiceImpl implements UserService
var _ UserService = (*UserServiceImpl)(nil)

// RegisterUser implements UserService.RegisterUser
func (s *UserServiceImpl) RegisterUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	externalID, err := GenerateExternalID(ctx, s.userStore.ExternalIDExists)
	if err != nil {
		s.logger.Error("failed to generate user external ID", "error", err)
		return nil, NewServiceError("user_service", "register_user", "failed to generate external ID", err)
	}

	user, err := domain.NewUser(externalID, name, email, password)
	if err != nil {
		s.logger.Warn("user validation failed during registration", "error", err)
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, NewServiceError("user_service", "register_user", "failed to hash password", err)
	}
	user.HashedPassword = string(hashed)
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		s.logger.Error("failed to create user",
			"error", err,
			"user_id", user.ID)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered successfully",
		"user_id", user.ID,
		"external_id", user.ExternalID)
	return user, nil
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, externalID string) (*domain.User, error) {
	user, err := s.userStore.GetByExternalID(ctx, externalID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"external_id", externalID)
		}
		return nil, fmt.Errorf("retrieving user: %w", err)
	}
	return user, nil
}

// ListUsers implements UserService.ListUsers
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// UpdateUser implements UserService.UpdateUser
// The full user is loaded inside the transaction, the partial update is
// applied, and the complete object is written back.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	externalID string,
	update UserUpdate,
) (*domain.User, error) {
	// An empty update has nothing to write; skip the transaction.
	if update.Empty() {
		return s.GetUser(ctx, externalID)
	}

	var updated *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByExternalID(ctx, externalID)
		if err != nil {
			return fmt.Errorf("retrieving user for update: %w", err)
		}

		if update.Name != nil {
			user.Name = *update.Name
		}
		if update.Email != nil {
			user.Email = *update.Email
		}
		if update.Password != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), s.bcryptCost)
			if err != nil {
				return NewServiceError("user_service", "update_user", "failed to hash password", err)
			}
			user.HashedPassword = string(hashed)
		}
		user.UpdatedAt = time.Now().UTC()

		if err := txStore.Update(ctx, user); err != nil {
			return fmt.Errorf("saving user update: %w", err)
		}

		updated = user
		return nil
	})

	if err != nil {
		if !store.IsNotFoundError(err) && !store.IsDuplicateError(err) {
			s.logger.Error("failed to update user",
				"error", err,
				"external_id", externalID)
		}
		return nil, err
	}

	s.logger.Info("user updated successfully",
		"user_id", updated.ID,
		"external_id", updated.ExternalID)
	return updated, nil
}

// DeleteUser implements UserService.DeleteUser
func (s *UserServiceImpl) DeleteUser(ctx context.Context, externalID string) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByExternalID(ctx, externalID)
		if err != nil {
			return fmt.Errorf("retrieving user for delete: %w", err)
		}

		// Memberships cascade with the user row.
		return txStore.Delete(ctx, user.ID)
	})

	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to delete user",
				"error", err,
				"external_id", externalID)
		}
		return err
	}

	s.logger.Info("user deleted successfully", "external_id", externalID)
	return nil
}
