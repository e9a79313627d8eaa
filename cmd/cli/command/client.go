package command

import (
	"errors"

	"yamdb/cmd/cli/authentication"
	"yamdb/cmd/cli/command/client"
)

// GetAuthenticatedClient returns a client carrying the token stored for --api.
func GetAuthenticatedClient() (*client.HTTPClient, error) {
	session, err := authentication.LoadSession(apiURL)
	if err != nil {
		if errors.Is(err, authentication.ErrNoSession) {
			return nil, errors.New("not logged in, run: yamdbctl auth token")
		}
		return nil, err
	}
	httpClient := client.NewHTTPClient(apiURL)
	httpClient.SetToken(session.Token)
	return httpClient, nil
}

// GetClient uses the stored token when there is one; reads work anonymously.
func GetClient() *client.HTTPClient {
	if httpClient, err := GetAuthenticatedClient(); err == nil {
		return httpClient
	}
	return client.NewHTTPClient(apiURL)
}
