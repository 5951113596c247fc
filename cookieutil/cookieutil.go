// Package cookieutil reads values out of an http.CookieJar.
package cookieutil

import (
	"net/http"
	"net/url"
)

// CookieValue returns the value of the cookie called name that jar would
// send to rawURL. ok is false for a nil jar, empty arguments, an unparsable
// or relative URL, or when no such cookie exists.
func CookieValue(jar http.CookieJar, rawURL, name string) (value string, ok bool) {
	if jar == nil || rawURL == "" || name == "" {
		return "", false
	}

	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return "", false
	}

	for _, cookie := range jar.Cookies(u) {
		if cookie.Name == name {
			return cookie.Value, true
		}
	}
	return "", false
}
