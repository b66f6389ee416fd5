package logging

import (
	"net/url"
	"strings"
)

// SecretKeyPatterns contains substrings that indicate a key likely contains sensitive data.
// Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"API_KEY",
}

// secretQueryParams are query parameters commonly used to authenticate
// private feed URLs.
var secretQueryParams = []string{
	"token",
	"key",
	"apikey",
	"api_key",
	"access_token",
	"auth",
	"secret",
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskURL redacts credentials from URLs.
// Passwords in user info (user:pass@host) and values of known secret query
// parameters (?token=...) are masked. Strings that do not parse as absolute
// URLs are returned unchanged.
func MaskURL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}

	changed := false

	if parsed.User != nil {
		if password, ok := parsed.User.Password(); ok && password != "" {
			parsed.User = url.UserPassword(parsed.User.Username(), MaskValue(password))
			changed = true
		}
	}

	if parsed.RawQuery != "" {
		query := parsed.Query()
		for name, values := range query {
			if !isSecretParam(name) {
				continue
			}
			for i, v := range values {
				values[i] = MaskValue(v)
			}
			changed = true
		}
		if changed {
			parsed.RawQuery = query.Encode()
		}
	}

	if !changed {
		return rawURL
	}
	return parsed.String()
}

// ShouldMask returns true if the key name suggests it contains sensitive data.
// Matching is case-insensitive.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

func isSecretParam(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range secretQueryParams {
		if lower == p {
			return true
		}
	}
	return false
}
