package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Credentials is the on-disk store of authenticated profiles.
type Credentials struct {
	CurrentProfile string              `yaml:"current_profile"`
	Profiles       map[string]*Profile `yaml:"profiles"`
	path           string
}

// Profile holds the backend URL and tokens obtained by "auth login".
type Profile struct {
	APIURL       string `yaml:"api_url"`
	AccessToken  string `yaml:"access_token"`
	RefreshToken string `yaml:"refresh_token,omitempty"`
}

// DefaultCredentials returns an empty store with the default profile
// selected.
func DefaultCredentials() *Credentials {
	return &Credentials{
		CurrentProfile: "default",
		Profiles:       make(map[string]*Profile),
	}
}

// LoadCredentials reads the credentials file, falling back to an empty
// store when the file does not exist yet.
func LoadCredentials(credFile string) (*Credentials, error) {
	if credFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		credFile = filepath.Join(home, ".crestline", "credentials.yaml")
	}

	creds := DefaultCredentials()
	creds.path = credFile

	data, err := os.ReadFile(credFile)
	if err != nil {
		if os.IsNotExist(err) {
			return creds, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, creds); err != nil {
		return nil, err
	}

	return creds, nil
}

// Save writes the store back to disk, creating the directory with owner-
// only permissions since it holds tokens.
func (c *Credentials) Save() error {
	if c.path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(home, ".crestline", "credentials.yaml")
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, data, 0600)
}

// SaveProfile stores a freshly obtained token under the named profile and
// makes it current.
func (c *Credentials) SaveProfile(name, apiURL, accessToken, refreshToken string) error {
	if c.Profiles == nil {
		c.Profiles = make(map[string]*Profile)
	}

	c.Profiles[name] = &Profile{
		APIURL:       apiURL,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	c.CurrentProfile = name
	return c.Save()
}

// GetProfile returns the named profile, or the current one when name is
// empty.
func (c *Credentials) GetProfile(name string) (*Profile, error) {
	if name == "" {
		name = c.CurrentProfile
	}

	profile, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile '%s' not found", name)
	}

	return profile, nil
}

// RemoveProfile deletes the named profile and clears the current profile
// selection if it pointed at it.
func (c *Credentials) RemoveProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile '%s' not found", name)
	}

	delete(c.Profiles, name)

	if c.CurrentProfile == name {
		c.CurrentProfile = ""
	}

	return c.Save()
}
