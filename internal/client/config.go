package client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lostandfound/lostandfound/pkg/lfclient"
	"github.com/pkg/errors"
)

const credentialsfile = ".lostandfound"

// A Config holds client's configuration.
type Config struct {
	Endpoint string `json:"endpoint"`
	UserID   string `json:"user_id"`
}

// Remove removes the credential files from the current directory.
func Remove() error {
	return os.Remove(credentialsfile)
}

// Load gets the configuration from the current folder according to `credentialsfile` const.
func Load() (Config, error) {
	var cfg Config

	payload, err := os.ReadFile(credentialsfile)
	if err != nil {
		return cfg, errors.Wrap(err, "could not read credentials file")
	}

	err = json.Unmarshal(payload, &cfg)
	return cfg, errors.Wrap(err, "could not parse config")
}

// Save stores the configuration in the current folder according to `credentialsfile` const.
func Save(cfg Config) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "could not serialize config")
	}

	fmt.Println("Storing credentials in current directory as " + credentialsfile)
	return errors.Wrap(os.WriteFile(credentialsfile, payload, 0o600), "could not store credentials")
}

// Connect returns a client using the stored identity.
func Connect() (lfclient.Client, error) {
	cfg, err := Load()
	if err != nil {
		return nil, errors.Wrap(err, "could not load config")
	}

	client, err := lfclient.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach lostandfound endpoint")
	}
	client.SetIdentity(cfg.UserID)
	return client, nil
}
