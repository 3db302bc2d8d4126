package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFixture []byte

// Fixture is the demo data set loaded by the seed command.
type Fixture struct {
	Users []UserFixture `yaml:"users"`
	Turfs []TurfFixture `yaml:"turfs"`
}

type UserFixture struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Admin    bool   `yaml:"admin,omitempty"`
}

type TurfFixture struct {
	Name         string        `yaml:"name"`
	Location     string        `yaml:"location"`
	PricePerSlot int           `yaml:"price_per_slot"`
	Slots        []SlotFixture `yaml:"slots"`
}

// SlotFixture starts Offset after the seeding hour. BookedBy names a
// fixture user who holds a deposit-paid booking on it.
type SlotFixture struct {
	Offset   time.Duration `yaml:"offset"`
	BookedBy string        `yaml:"booked_by,omitempty"`
	FullPaid bool          `yaml:"full_paid,omitempty"`
}

// Default returns the embedded demo fixture.
func Default() (*Fixture, error) {
	return Parse(defaultFixture)
}

func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixture) validate() error {
	var errs []error

	emails := make(map[string]bool, len(f.Users))
	for i, u := range f.Users {
		email := strings.ToLower(strings.TrimSpace(u.Email))
		if email == "" {
			errs = append(errs, fmt.Errorf("users[%d]: email is required", i))
			continue
		}
		if emails[email] {
			errs = append(errs, fmt.Errorf("users[%d]: duplicate email %q", i, email))
		}
		if len(u.Password) < 6 {
			errs = append(errs, fmt.Errorf("users[%d]: password must be at least 6 characters", i))
		}
		emails[email] = true
	}

	for i, t := range f.Turfs {
		if t.Name == "" || t.Location == "" {
			errs = append(errs, fmt.Errorf("turfs[%d]: name and location are required", i))
		}
		if t.PricePerSlot < 0 {
			errs = append(errs, fmt.Errorf("turfs[%d]: negative price", i))
		}
		for j, s := range t.Slots {
			if s.Offset <= 0 {
				errs = append(errs, fmt.Errorf("turfs[%d].slots[%d]: offset must be positive", i, j))
			}
			if s.BookedBy != "" && !emails[strings.ToLower(s.BookedBy)] {
				errs = append(errs, fmt.Errorf("turfs[%d].slots[%d]: unknown user %q", i, j, s.BookedBy))
			}
			if s.FullPaid && s.BookedBy == "" {
				errs = append(errs, fmt.Errorf("turfs[%d].slots[%d]: full_paid without booked_by", i, j))
			}
		}
	}

	return errors.Join(errs...)
}
