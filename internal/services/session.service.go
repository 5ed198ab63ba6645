package services

import (
	"errors"
	"time"

	"kardetailing/config"
	. "kardetailing/internal/models"
	"kardetailing/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const SESSION_ISSUER = "kardetailing"

type SessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Session is a freshly signed token and the moment it stops being accepted.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    logger.Logger
}

func NewSessionService(config config.Config) *SessionService {
	return &SessionService{
		secret: []byte(config.SessionSecret),
		ttl:    time.Duration(config.SessionTTLHours) * time.Hour,
		now:    time.Now,
		log:    logger.New("sessionService"),
	}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func (s *SessionService) Issue(user *User) (Session, error) {
	log := s.log.Function("Issue")

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    SESSION_ISSUER,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: user.Email,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return Session{}, log.Err("failed to sign session token", err, "userID", user.ID)
	}

	return Session{Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify checks the signature, issuer and expiry and returns the account id
// the token was issued for. Every rejection is ErrInvalidSession.
func (s *SessionService) Verify(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, types.Wrap(types.ErrUnauthenticated, "Not logged in")
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(SESSION_ISSUER),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.log.Function("Verify").Debug("session token expired")
		}
		return uuid.Nil, types.Wrap(types.ErrInvalidSession, "Invalid session")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, types.Wrap(types.ErrInvalidSession, "Invalid session")
	}

	return userID, nil
}
