package services

import (
	"errors"

	logger "github.com/Bparsons0904/goLogger"
	"golang.org/x/crypto/bcrypt"
)

// missingAccountSecret is hashed once per service so lookups for unknown
// accounts can burn the same bcrypt work as a real comparison.
const missingAccountSecret = "kardetailing-missing-account"

type PasswordService struct {
	cost        int
	missingHash []byte
	log         logger.Logger
}

func NewPasswordService(cost int) *PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	s := &PasswordService{
		cost: cost,
		log:  logger.New("passwordService"),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(missingAccountSecret), cost)
	if err != nil {
		s.log.Function("NewPasswordService").Warn("failed to prepare missing account hash", "error", err)
	}
	s.missingHash = hash

	return s
}

func (s *PasswordService) Hash(password string) (string, error) {
	log := s.log.Function("Hash")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", log.Err("failed to hash password", err)
	}

	return string(hash), nil
}

// Compare reports whether password matches hash. A mismatch is not an error;
// only a corrupt hash is.
func (s *PasswordService) Compare(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, s.log.Function("Compare").Err("failed to compare password hash", err)
	}
}

// CompareMissing is called instead of Compare when no account matches.
func (s *PasswordService) CompareMissing(password string) {
	_ = bcrypt.CompareHashAndPassword(s.missingHash, []byte(password))
}
