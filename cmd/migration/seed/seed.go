package seed

import (
	"errors"
	"time"

	"kardetailing/config"
	"kardetailing/internal/assessment"
	. "kardetailing/internal/models"
	"kardetailing/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DEMO_PASSWORD = "password"

type demoBooking struct {
	daysFromNow int
	time        string
	category    assessment.Category
	serviceType assessment.ServiceType
	notes       string
	status      BookingStatus
}

type demoUser struct {
	user     User
	bookings []demoBooking
	feedback *Feedback
}

func demoUsers() []demoUser {
	return []demoUser{
		{
			user: User{
				Email:         "maria@example.com",
				Name:          "Maria Santos",
				ContactNumber: "0917 555 0101",
				Address:       "12 Mabini St, Quezon City",
			},
			bookings: []demoBooking{
				{
					daysFromNow: -14,
					time:        "09:00 AM",
					category:    assessment.CategoryModerate,
					serviceType: assessment.ServiceTypeBoth,
					status:      BookingStatusCompleted,
				},
				{
					daysFromNow: 3,
					time:        "02:00 PM",
					category:    assessment.CategoryLight,
					serviceType: assessment.ServiceTypeExterior,
					notes:       "White sedan, parked in the basement",
					status:      BookingStatusPending,
				},
			},
			feedback: &Feedback{Rating: 5, Comment: "Car looks brand new. Will book again."},
		},
		{
			user: User{
				Email:         "jun@example.com",
				Name:          "Jun Reyes",
				ContactNumber: "0918 555 0202",
				Address:       "45 Rizal Ave, Marikina",
			},
			bookings: []demoBooking{
				{
					daysFromNow: 7,
					time:        "08:00 AM",
					category:    assessment.CategorySevere,
					serviceType: assessment.ServiceTypeInterior,
					notes:       "Caught in the flood last week",
					status:      BookingStatusPending,
				},
			},
			feedback: &Feedback{Rating: 4, Comment: "Great job on the seats, a bit late arriving."},
		},
		{
			user: User{Email: "guest@example.com"},
		},
	}
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	hash, err := services.NewPasswordService(config.BcryptCost).Hash(DEMO_PASSWORD)
	if err != nil {
		return log.Err("failed to hash demo password", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	for _, demo := range demoUsers() {
		user := demo.user

		var existing User
		err := db.First(&existing, "email = ?", user.Email).Error
		if err == nil {
			log.Info("User already exists", "email", user.Email)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return log.Err("failed to look up user", err, "email", user.Email)
		}

		user.PasswordHash = hash
		log.Info("Seeding user", "email", user.Email)
		if err := db.Create(&user).Error; err != nil {
			return log.Err("failed to create user", err, "email", user.Email)
		}

		for _, b := range demo.bookings {
			booking := Booking{
				UserID:  user.ID,
				Name:    user.DisplayName(),
				Contact: user.ContactNumber,
				Date:    datatypes.Date(today.AddDate(0, 0, b.daysFromNow)),
				Time:    b.time,
				Service: assessment.ServiceLabel(b.category, b.serviceType),
				Notes:   b.notes,
				Status:  b.status,
			}
			if err := db.Create(&booking).Error; err != nil {
				return log.Err("failed to create booking", err, "email", user.Email)
			}
		}

		if demo.feedback != nil {
			feedback := *demo.feedback
			feedback.UserID = &user.ID
			feedback.Name = user.DisplayName()
			if err := db.Create(&feedback).Error; err != nil {
				return log.Err("failed to create feedback", err, "email", user.Email)
			}
		}
	}

	log.Info("Development data seeded")
	return nil
}
