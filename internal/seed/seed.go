// Package seed loads reference data (sectors and users) from a YAML fixture.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"annonces-api/internal/domain"
	"annonces-api/internal/service"
)

// Fixture is the on-disk seed format.
type Fixture struct {
	Sectors []string      `yaml:"sectors"`
	Users   []UserFixture `yaml:"users"`
}

type UserFixture struct {
	Username string   `yaml:"username"`
	Wants    []string `yaml:"wants"`
	CanDo    []string `yaml:"canDo"`
}

// Load parses a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.UnmarshalStrict(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &fx, nil
}

// Apply ensures every sector exists and registers every user. Users whose
// username is already taken are skipped.
func Apply(ctx context.Context, fx *Fixture, sectors service.SectorService, users service.UserService, logger *logrus.Logger) ([]domain.User, error) {
	for _, name := range fx.Sectors {
		sector, err := sectors.Ensure(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("ensure sector %q: %w", name, err)
		}
		logger.WithField("sector", sector.Name).Debug("sector ready")
	}

	created := make([]domain.User, 0, len(fx.Users))
	for _, u := range fx.Users {
		user, err := users.Register(ctx, u.Username, u.Wants, u.CanDo)
		if err != nil {
			if errors.Is(err, service.ErrUserAlreadyExists) {
				logger.WithField("username", u.Username).Warn("user already exists, skipping")
				continue
			}
			return nil, fmt.Errorf("register user %q: %w", u.Username, err)
		}
		logger.WithFields(logrus.Fields{
			"username": user.Username,
			"token":    user.Token,
		}).Info("user registered")
		created = append(created, *user)
	}
	return created, nil
}
