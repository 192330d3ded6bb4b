package credentials

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// DefaultExpiryDays applies when the document omits cookie.expiry_days.
const DefaultExpiryDays = 30

// Cookie holds the session cookie settings shared by every user.
type Cookie struct {
	Name       string  `yaml:"name"`
	Key        string  `yaml:"key"`
	ExpiryDays float64 `yaml:"expiry_days"`
}

// Expiry converts ExpiryDays into a duration.
func (c Cookie) Expiry() time.Duration {
	return time.Duration(c.ExpiryDays * float64(24*time.Hour))
}

// Record is one user entry together with the cookie settings it signs with.
type Record struct {
	Username     string
	DisplayName  string
	PasswordHash string
	Cookie       Cookie
}

type document struct {
	Credentials struct {
		Usernames map[string]struct {
			Name     string `yaml:"name"`
			Password string `yaml:"password"`
		} `yaml:"usernames"`
	} `yaml:"credentials"`
	Cookie Cookie `yaml:"cookie"`
}

// Store is the immutable in-memory form of the credential document.
type Store struct {
	records map[string]Record
	cookie  Cookie
}

// LoadFile reads and parses the credential document at path.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return Parse(data)
}

// Parse decodes a credential document. Usernames are matched case-insensitively.
func Parse(data []byte) (*Store, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}

	c := doc.Cookie
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, fmt.Errorf("%w: cookie.name is required", ErrInvalidDocument)
	}
	if c.Key == "" {
		return nil, fmt.Errorf("%w: cookie.key is required", ErrInvalidDocument)
	}
	if c.ExpiryDays < 0 {
		return nil, fmt.Errorf("%w: cookie.expiry_days must not be negative", ErrInvalidDocument)
	}
	if c.ExpiryDays == 0 {
		c.ExpiryDays = DefaultExpiryDays
	}

	if len(doc.Credentials.Usernames) == 0 {
		return nil, fmt.Errorf("%w: no users defined", ErrInvalidDocument)
	}

	records := make(map[string]Record, len(doc.Credentials.Usernames))
	for name, u := range doc.Credentials.Usernames {
		username := normalize(name)
		if username == "" {
			return nil, fmt.Errorf("%w: empty username", ErrInvalidDocument)
		}
		if _, dup := records[username]; dup {
			return nil, fmt.Errorf("%w: duplicate username %q", ErrInvalidDocument, username)
		}
		if _, err := bcrypt.Cost([]byte(u.Password)); err != nil {
			return nil, fmt.Errorf("%w: user %q: password is not a bcrypt hash", ErrInvalidDocument, username)
		}
		displayName := strings.TrimSpace(u.Name)
		if displayName == "" {
			displayName = username
		}
		records[username] = Record{
			Username:     username,
			DisplayName:  displayName,
			PasswordHash: u.Password,
			Cookie:       c,
		}
	}

	return &Store{records: records, cookie: c}, nil
}

// Authenticate verifies password for username.
// Any failure returns ErrInvalidCredentials so callers cannot tell unknown users from bad passwords.
func (s *Store) Authenticate(username, password string) (Record, error) {
	username = normalize(username)
	if username == "" || password == "" {
		return Record{}, ErrInvalidCredentials
	}

	rec, ok := s.records[username]
	if !ok {
		// keep timing close to the known-user path
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return Record{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return Record{}, ErrInvalidCredentials
	}
	return rec, nil
}

// Lookup returns the record for username.
func (s *Store) Lookup(username string) (Record, bool) {
	rec, ok := s.records[normalize(username)]
	return rec, ok
}

// Cookie returns the shared cookie settings.
func (s *Store) Cookie() Cookie {
	return s.cookie
}

// Usernames returns the configured usernames in sorted order.
func (s *Store) Usernames() []string {
	return slices.Sorted(maps.Keys(s.records))
}

func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("propdocs-unknown-user"), bcrypt.DefaultCost)
	return h
})
