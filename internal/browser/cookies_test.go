package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCookies_MissingFile(t *testing.T) {
	cookies, err := LoadCookies(filepath.Join(t.TempDir(), "nope.json"))
	assert.NoError(t, err)
	assert.Empty(t, cookies)
}

func TestLoadCookies_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

	_, err := LoadCookies(path)
	assert.Error(t, err)
}

func TestLoadCookies_ConvertsFields(t *testing.T) {
	raw := `[{
		"name": "c_user",
		"value": "100001234567890",
		"domain": ".facebook.com",
		"path": "/",
		"expires": 1893456000,
		"httpOnly": true,
		"secure": true,
		"sameSite": "None"
	}]`
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0600))

	cookies, err := LoadCookies(path)
	require.NoError(t, err)
	require.Len(t, cookies, 1)

	c := cookies[0]
	assert.Equal(t, "c_user", c.Name)
	assert.Equal(t, "100001234567890", c.Value)
	assert.Equal(t, ".facebook.com", *c.Domain)
	assert.Equal(t, "/", *c.Path)
	assert.Equal(t, float64(1893456000), *c.Expires)
	assert.True(t, *c.HttpOnly)
	assert.True(t, *c.Secure)
	assert.Equal(t, playwright.SameSiteAttributeNone, c.SameSite)
}

func TestSaveCookies_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies", "facebook_cookies.json")

	live := []playwright.Cookie{
		{
			Name:     "xs",
			Value:    "session-token",
			Domain:   ".facebook.com",
			Path:     "/",
			Expires:  1893456000,
			HttpOnly: true,
			Secure:   true,
			SameSite: playwright.SameSiteAttributeLax,
		},
	}

	require.NoError(t, SaveCookies(path, live))

	//file must not be world-readable: cookies are credentials
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	cookies, err := LoadCookies(path)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "xs", cookies[0].Name)
	assert.Equal(t, ".facebook.com", *cookies[0].Domain)
	assert.Equal(t, playwright.SameSiteAttributeLax, cookies[0].SameSite)
}
