package grantsdk

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenise(t *testing.T) {
	t.Parallel()

	link, err := Tokenise("https://example.com/unsubscribe", "rt", "aaa.bbb.ccc")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/unsubscribe?rt=aaa.bbb.ccc", link)
}

func TestTokenisePreservesQuery(t *testing.T) {
	t.Parallel()

	link, err := Tokenise("https://example.com/u?list=news", "rt", "aaa.bbb.ccc")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, "news", u.Query().Get("list"))
	require.Equal(t, "aaa.bbb.ccc", u.Query().Get("rt"))
}

func TestTokeniseReplacesExistingParam(t *testing.T) {
	t.Parallel()

	link, err := Tokenise("https://example.com/u?rt=old", "rt", "new.token.sig")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, []string{"new.token.sig"}, u.Query()["rt"])
}

func TestTokeniseValidation(t *testing.T) {
	t.Parallel()

	_, err := Tokenise("https://example.com", "", "aaa.bbb.ccc")
	require.Error(t, err)

	_, err = Tokenise("https://example.com", "rt", "")
	require.Error(t, err)

	_, err = Tokenise("://bad", "rt", "aaa.bbb.ccc")
	require.Error(t, err)
}
