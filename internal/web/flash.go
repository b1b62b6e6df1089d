package web

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookie = "flash"

// Flash is a one-shot notice surfaced on the next rendered page.
// Level is a presentation hint: "success" or "danger".
type Flash struct {
	Level   string
	Message string
}

// SetFlash stores the notice in a short-lived cookie read by the next page load.
func SetFlash(w http.ResponseWriter, level, message string) {
	value := base64.URLEncoding.EncodeToString([]byte(level + "\n" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	level, message, ok := strings.Cut(string(decoded), "\n")
	if !ok {
		return nil
	}
	return &Flash{Level: level, Message: message}
}
