package authentication

// Token storage for the CLI. The access token comes from the identity
// provider; we keep it in the OS keyring rather than a dotfile.

import (
	"encoding/json"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "mealbridge-cli"
	tokenKey    = "auth_token"
)

type StoredCredentials struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

func StoreTokens(creds *StoredCredentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return keyring.Set(serviceName, tokenKey, string(data))
}

func GetTokens() (*StoredCredentials, error) {
	value, err := keyring.Get(serviceName, tokenKey)
	if err != nil {
		return nil, err
	}

	var creds StoredCredentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func DeleteTokens() error {
	return keyring.Delete(serviceName, tokenKey)
}
