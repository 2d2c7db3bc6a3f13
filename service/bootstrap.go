package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ankh-social/ankh-backend/model"
	Logger "github.com/ankh-social/ankh-backend/utils/log"
)

// The operator account is seeded explicitly at startup rather than being
// conjured inside the login path. Login treats it like any other user.
const operatorUserId = "admin"

// BootstrapConfig describes the seeded operator account.
type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
	AdminBio      string
}

// BootstrapConfigFromEnv reads the operator identity from the environment,
// keeping the historical defaults of the product when unset.
func BootstrapConfigFromEnv() BootstrapConfig {
	cfg := BootstrapConfig{
		AdminEmail:    os.Getenv("ANKH_ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ANKH_ADMIN_PASSWORD"),
		AdminName:     os.Getenv("ANKH_ADMIN_NAME"),
		AdminBio:      os.Getenv("ANKH_ADMIN_BIO"),
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = "admin@ankh.io"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "Ankh@Creator2025!"
	}
	if cfg.AdminName == "" {
		cfg.AdminName = "صانع البرنامج"
	}
	if cfg.AdminBio == "" {
		cfg.AdminBio = "أنا صانع هذه الشبكة الأزلية."
	}
	return cfg
}

// Bootstrap seeds the operator account once. It is idempotent: when the
// account already exists the collection is left untouched, including any
// profile edits made since the first seed.
func (s *Service) Bootstrap(ctx context.Context, cfg BootstrapConfig) error {
	seeded := false
	err := s.store.MutateUsers(ctx, func(users []model.User) ([]model.User, error) {
		for _, u := range users {
			if u.Id == operatorUserId {
				return users, nil
			}
		}
		seeded = true
		return append(users, model.User{
			Id:        operatorUserId,
			Name:      cfg.AdminName,
			Email:     cfg.AdminEmail,
			Password:  cfg.AdminPassword,
			Bio:       cfg.AdminBio,
			BirthDate: "1990-01-01",
			Followers: []string{},
			Following: []string{},
			JoinedAt:  time.Now(),
			Verified:  model.VerificationYellow,
		}), nil
	})
	if err != nil {
		return err
	}

	if seeded {
		Logger.LogV2.Info(fmt.Sprintf("seeded operator account %s", cfg.AdminEmail))
	}
	return nil
}
