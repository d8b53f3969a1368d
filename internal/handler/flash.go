package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Flash messages are one-shot notices.  Messages added while handling a
// request are shown on the page that request renders; before a redirect
// or a JSON reply they are parked in a cookie and shown on the next page.

const (
	flashCookie  = "fyyur_flash"
	flashKey     = "flashes"
	flashReadKey = "flashes.read"
)

// addFlash queues msg for the next rendered page.
func addFlash(c echo.Context, msg string) {
	pending, _ := c.Get(flashKey).([]string)
	c.Set(flashKey, append(pending, msg))
}

// takeFlashes returns the messages carried over in the cookie followed by
// the ones queued during this request, and clears both.
func takeFlashes(c echo.Context) []string {
	var out []string
	if c.Get(flashReadKey) == nil {
		out = readFlashCookie(c)
		c.Set(flashReadKey, true)
	}
	if pending, _ := c.Get(flashKey).([]string); len(pending) > 0 {
		out = append(out, pending...)
		c.Set(flashKey, nil)
	}
	return out
}

// readFlashCookie decodes the carried-over messages and expires the cookie.
func readFlashCookie(c echo.Context) []string {
	ck, err := c.Cookie(flashCookie)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1, HttpOnly: true})
	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return nil
	}
	var out []string
	_ = json.Unmarshal(raw, &out)
	return out
}

// keepFlashes moves the queued messages into the cookie so they survive a
// redirect.
func keepFlashes(c echo.Context) {
	pending := takeFlashes(c)
	if len(pending) == 0 {
		return
	}
	raw, err := json.Marshal(pending)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// HasFlash reports whether the request carries parked flash messages.  The
// page cache skips such requests so a notice is never stored or replayed.
func HasFlash(c echo.Context) bool {
	ck, err := c.Cookie(flashCookie)
	return err == nil && ck.Value != ""
}
