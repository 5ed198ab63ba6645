package authController

import (
	"context"
	"errors"
	"strings"
	"time"

	. "kardetailing/internal/models"
	"kardetailing/internal/repositories"
	"kardetailing/internal/services"
	"kardetailing/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

const (
	msgFieldsRequired     = "All fields required."
	msgInvalidCredentials = "Invalid email or password."
)

type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
	CompareMissing(password string)
}

// AuthController handles registration, login and session resolution
type AuthController struct {
	userRepo repositories.UserRepository
	password passwordHasher
	session  *services.SessionService
	now      func() time.Time
	log      logger.Logger
}

type AuthControllerInterface interface {
	Register(ctx context.Context, req CredentialsRequest) (*User, error)
	Login(ctx context.Context, req CredentialsRequest) (*LoginResult, error)
	CurrentUser(ctx context.Context, token string) (*User, error)
	ListUsers(ctx context.Context, actor *User) ([]UserProfile, error)
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	User    *User
	Session services.Session
}

func New(
	repos repositories.Repository,
	services services.Service,
) AuthControllerInterface {
	return &AuthController{
		userRepo: repos.User,
		password: services.Password,
		session:  services.Session,
		now:      time.Now,
		log:      logger.New("authController"),
	}
}

func (req CredentialsRequest) validate() (string, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return "", types.Wrap(types.ErrValidation, msgFieldsRequired)
	}
	return email, nil
}

// Register creates a non-admin account. It does not start a session.
func (c *AuthController) Register(ctx context.Context, req CredentialsRequest) (*User, error) {
	log := c.log.TraceFromContext(ctx).Function("Register")

	email, err := req.validate()
	if err != nil {
		return nil, err
	}

	hash, err := c.password.Hash(req.Password)
	if err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	user := &User{Email: email, PasswordHash: hash}
	if err := c.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, types.ErrDuplicateIdentifier) {
			log.Info("registration rejected, email already in use")
			return nil, err
		}
		return nil, log.Err("failed to create user", err)
	}

	log.Info("user registered", "userID", user.ID)
	return user, nil
}

// Login verifies the credentials and signs a session. An unknown email and a
// wrong password produce the same error.
func (c *AuthController) Login(ctx context.Context, req CredentialsRequest) (*LoginResult, error) {
	log := c.log.TraceFromContext(ctx).Function("Login")

	email, err := req.validate()
	if err != nil {
		return nil, err
	}

	user, err := c.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			// Same bcrypt cost as a wrong password.
			c.password.CompareMissing(req.Password)
			return nil, types.Wrap(types.ErrInvalidCredentials, msgInvalidCredentials)
		}
		return nil, log.Err("failed to look up user", err)
	}

	ok, err := c.password.Compare(user.PasswordHash, req.Password)
	if err != nil {
		return nil, log.Err("failed to verify password", err, "userID", user.ID)
	}
	if !ok {
		log.Info("login rejected", "userID", user.ID)
		return nil, types.Wrap(types.ErrInvalidCredentials, msgInvalidCredentials)
	}

	session, err := c.session.Issue(user)
	if err != nil {
		return nil, log.Err("failed to issue session", err, "userID", user.ID)
	}

	loggedInAt := c.now()
	if err := c.userRepo.UpdateLastLogin(ctx, user.ID, loggedInAt); err != nil {
		log.Warn("failed to record last login", "userID", user.ID, "error", err)
	} else {
		user.MarkLoggedIn(loggedInAt)
	}

	log.Info("user logged in", "userID", user.ID)
	return &LoginResult{User: user, Session: session}, nil
}

// CurrentUser resolves a session token to its account. A token for an
// account that no longer exists is an invalid session.
func (c *AuthController) CurrentUser(ctx context.Context, token string) (*User, error) {
	log := c.log.TraceFromContext(ctx).Function("CurrentUser")

	userID, err := c.session.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := c.lookup(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			log.Info("session references unknown user", "userID", userID)
			return nil, types.Wrap(types.ErrInvalidSession, "Invalid session")
		}
		return nil, log.Err("failed to load session user", err, "userID", userID)
	}

	return user, nil
}

func (c *AuthController) lookup(ctx context.Context, userID uuid.UUID) (*User, error) {
	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (c *AuthController) ListUsers(ctx context.Context, actor *User) ([]UserProfile, error) {
	log := c.log.TraceFromContext(ctx).Function("ListUsers")

	if actor == nil || !actor.IsAdmin {
		return nil, types.Wrap(types.ErrForbidden, "Admin access required")
	}

	users, err := c.userRepo.List(ctx)
	if err != nil {
		return nil, log.Err("failed to list users", err)
	}

	profiles := make([]UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.ToProfile())
	}

	return profiles, nil
}
