// Package auth validates credentials against the built-in demo set and the
// persisted registered-users collection, and owns the session's current-user
// slot. Login, Register and Logout are the only writers of the currentUser
// key.
package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/session"
	"complainthub/backend/internal/storage"
)

var (
	// ErrInvalidCredentials is a result, not an exception: login failures
	// surface as a user-visible message.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserExists rejects a duplicate registration; the collection is left
	// unchanged.
	ErrUserExists = errors.New("user with this email already exists")
)

// Service implements login, registration and logout.
type Service struct {
	store *storage.Store
	state *session.State
	seed  []models.User
	log   *logging.Logger

	// Latency is the fixed artificial delay before login/register return,
	// emulating network latency. Once started it always completes; there is
	// no abort path.
	Latency time.Duration

	now func() time.Time
}

// NewService builds the auth service. The demo seed is an explicit input and
// is never persisted.
func NewService(store *storage.Store, state *session.State, seed []models.User, log *logging.Logger) *Service {
	return &Service{
		store: store,
		state: state,
		seed:  seed,
		log:   log,
		now:   time.Now,
	}
}

// Login checks the demo set first, then the registered users; the first match
// on email plus password wins. Success sets and persists the session user
// with the credential hash stripped.
func (s *Service) Login(ctx context.Context, email, password string) (*models.PublicUser, error) {
	s.simulateLatency()

	if user, ok := matchCredentials(s.seed, email, password); ok {
		return s.establish(ctx, user)
	}

	registered, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	if user, ok := matchCredentials(registered, email, password); ok {
		return s.establish(ctx, user)
	}

	s.log.Info("login rejected", "email", email)
	return nil, ErrInvalidCredentials
}

// Register appends a new user record and logs it in. The email comparison is
// a case-sensitive exact match. Password length is validated by the caller
// before invocation.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.PublicUser, error) {
	s.simulateLatency()

	registered, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range registered {
		if u.Email == email {
			return nil, ErrUserExists
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := models.User{
		ID:           now.UnixMilli(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		CreatedAt:    now,
	}

	registered = append(registered, user)
	if err := s.store.SaveUsers(ctx, registered); err != nil {
		return nil, err
	}

	s.log.Info("user registered", "email", email, "id", user.ID)
	return s.establish(ctx, user)
}

// Logout clears the session user and the persisted currentUser key.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.state.ClearUser(ctx); err != nil {
		return err
	}
	s.log.Info("logout")
	return nil
}

func (s *Service) establish(ctx context.Context, user models.User) (*models.PublicUser, error) {
	pub := user.Public()
	if err := s.state.SetUser(ctx, &pub); err != nil {
		return nil, err
	}
	s.log.Info("login", "email", pub.Email, "role", pub.Role)
	return &pub, nil
}

func (s *Service) simulateLatency() {
	if s.Latency > 0 {
		time.Sleep(s.Latency)
	}
}

func matchCredentials(users []models.User, email, password string) (models.User, bool) {
	for _, u := range users {
		if u.Email == email && CheckPassword(u.PasswordHash, password) {
			return u, true
		}
	}
	return models.User{}, false
}

// HashPassword bcrypt-hashes a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
