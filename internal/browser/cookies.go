package browser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"
)

//Cookie represents a browser cookie persisted as JSON. The file format
//matches what browser devtools exporters write, so a cookie dump from a
//manual login session can be dropped into the cookies directory as-is.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite"`
}

// LoadCookies reads a cookie JSON file and converts it for injection into a
// playwright browser context. A missing file returns an empty slice.
func LoadCookies(path string) ([]playwright.OptionalCookie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cookies []Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, fmt.Errorf("parse cookie file %s: %w", path, err)
	}

	pwCookies := make([]playwright.OptionalCookie, len(cookies))
	for i, c := range cookies {
		pwCookies[i] = c.ToPlaywright()
	}
	return pwCookies, nil
}

// SaveCookies persists the live session cookies back to disk so the
// authenticated session survives container restarts.
func SaveCookies(path string, cookies []playwright.Cookie) error {
	out := make([]Cookie, len(cookies))
	for i, c := range cookies {
		out[i] = fromPlaywright(c)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cookies: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create cookie directory: %w", err)
	}

	//0600: session cookies are credentials
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write cookie file %s: %w", path, err)
	}
	return nil
}

func (c Cookie) ToPlaywright() playwright.OptionalCookie {
	pwCookie := playwright.OptionalCookie{
		Name:   c.Name,
		Value:  c.Value,
		Domain: playwright.String(c.Domain),
		Path:   playwright.String(c.Path),
	}

	if c.Expires > 0 {
		pwCookie.Expires = playwright.Float(c.Expires)
	}

	if c.HTTPOnly {
		pwCookie.HttpOnly = playwright.Bool(true)
	}

	if c.Secure {
		pwCookie.Secure = playwright.Bool(true)
	}

	switch c.SameSite {
	case "Lax":
		pwCookie.SameSite = playwright.SameSiteAttributeLax
	case "Strict":
		pwCookie.SameSite = playwright.SameSiteAttributeStrict
	case "None":
		pwCookie.SameSite = playwright.SameSiteAttributeNone
	}

	return pwCookie
}

func fromPlaywright(pc playwright.Cookie) Cookie {
	c := Cookie{
		Name:     pc.Name,
		Value:    pc.Value,
		Domain:   pc.Domain,
		Path:     pc.Path,
		Expires:  pc.Expires,
		HTTPOnly: pc.HttpOnly,
		Secure:   pc.Secure,
	}
	if pc.SameSite != nil {
		c.SameSite = string(*pc.SameSite)
	}
	return c
}
