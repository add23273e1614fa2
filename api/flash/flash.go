package flash

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Level tags a message for the renderer.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Message is a one-shot notice surfaced on the next page view.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Store queues messages across the redirect boundary. Pop drains the
// queue, so each message renders exactly once.
type Store interface {
	Push(ctx context.Context, token string, msg Message) error
	Pop(ctx context.Context, token string) ([]Message, error)
}

const cookieName = "stockroom_flash"

// Token returns the browser's flash token, minting one and setting the
// cookie when absent.
func Token(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}
