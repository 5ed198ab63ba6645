package seed

import (
	"fmt"
	"testing"

	"kardetailing/config"
	"kardetailing/internal/database"
	. "kardetailing/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSeed(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	sqlDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	db := database.FromGorm(sqlDB)
	require.NoError(t, db.MigrateModels())
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{BcryptCost: bcrypt.MinCost}
	log := logger.New("test")

	require.NoError(t, Seed(sqlDB, cfg, log))
	require.NoError(t, Seed(sqlDB, cfg, log))

	var users, bookings, feedback int64
	require.NoError(t, sqlDB.Model(&User{}).Count(&users).Error)
	require.NoError(t, sqlDB.Model(&Booking{}).Count(&bookings).Error)
	require.NoError(t, sqlDB.Model(&Feedback{}).Count(&feedback).Error)

	assert.Equal(t, int64(len(demoUsers())), users)
	assert.Equal(t, int64(3), bookings)
	assert.Equal(t, int64(2), feedback)

	var maria User
	require.NoError(t, sqlDB.First(&maria, "email = ?", "maria@example.com").Error)
	assert.False(t, maria.IsAdmin)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(maria.PasswordHash), []byte(DEMO_PASSWORD)))

	var completed int64
	require.NoError(t, sqlDB.Model(&Booking{}).Where("status = ?", BookingStatusCompleted).Count(&completed).Error)
	assert.Equal(t, int64(1), completed)
}
