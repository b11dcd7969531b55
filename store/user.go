package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// UserStore is a whole-file JSON store of user records keyed by username.
// Every operation loads the full file and every mutation rewrites it. There is
// no locking: two requests racing on the same file can lose an update. The
// service runs single-writer, so this is a documented limitation rather than
// something the store guards against.
type UserStore struct {
	path string
}

type userFile struct {
	Users []User `json:"users"`
}

// NewUserStore creates a user store backed by the JSON file at path.
func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

func (s *UserStore) load() (*userFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read user store: %w", err)
	}
	var f userFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse user store: %w", err)
	}
	return &f, nil
}

func (s *UserStore) write(f *userFile) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write user store: %w", err)
	}
	return nil
}

// Get returns the user with the given username, or found=false if absent.
func (s *UserStore) Get(username string) (User, bool, error) {
	f, err := s.load()
	if err != nil {
		return User{}, false, err
	}
	for _, u := range f.Users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

// GetOrCreate returns the stored user or a fresh zero-score record. A created
// record is not persisted until an explicit Save.
func (s *UserStore) GetOrCreate(username string) (User, error) {
	u, found, err := s.Get(username)
	if err != nil {
		return User{}, err
	}
	if found {
		return u, nil
	}
	return User{Username: username}, nil
}

// Save upserts the user by username and rewrites the whole file.
func (s *UserStore) Save(user User) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	updated := false
	for i, u := range f.Users {
		if u.Username == user.Username {
			f.Users[i] = user
			updated = true
			break
		}
	}
	if !updated {
		f.Users = append(f.Users, user)
	}
	return s.write(f)
}

// All returns every user record in store order.
func (s *UserStore) All() ([]User, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return f.Users, nil
}
