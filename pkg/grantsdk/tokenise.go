package grantsdk

import (
	"errors"
	"fmt"
	"net/url"
)

// Tokenise attaches an encoded grant token to a URL as the named query
// parameter, producing the link a recipient clicks. Existing query
// parameters on baseURL are preserved; an existing value under param is
// replaced.
func Tokenise(baseURL, param, encoded string) (string, error) {
	if param == "" {
		return "", errors.New("grantsdk: token parameter name must not be empty")
	}
	if encoded == "" {
		return "", errors.New("grantsdk: encoded token must not be empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("grantsdk: invalid base url: %w", err)
	}

	q := u.Query()
	q.Set(param, encoded)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
