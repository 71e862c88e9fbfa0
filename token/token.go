// Package token persists the VNDB API token in the system keyring.
package token

import (
	"fmt"

	"github.com/avndb-cli/avndb/log"
	"github.com/zalando/go-keyring"
)

const (
	// keyringService is the generic service identifier for the system keyring.
	keyringService = "avndb"
	// keyringUser is the specific key used for storing the VNDB API token.
	keyringUser = "vndb_token"
)

// Set saves the API token to the system keyring.
func Set(token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		log.Error("Failed to save token to keyring: " + err.Error())
		return err
	}
	return nil
}

// Get retrieves the API token from the system keyring.
func Get() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		// Common before the first login, so not an error-level event.
		log.Infof("No token found in keyring: %v", err)
		return "", err
	}
	return token, nil
}

// Delete removes the API token from the system keyring.
func Delete() error {
	if err := keyring.Delete(keyringService, keyringUser); err != nil {
		log.Error("Failed to delete token from keyring: " + err.Error())
		return err
	}
	return nil
}
