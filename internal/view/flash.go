package view

import (
	"fmt"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
)

// FlashMessage is a single banner shown at the top of the next page.
type FlashMessage struct {
	Kind string // "success" or "error"
	Text string
}

// FlashData holds the flashes consumed for one render.
type FlashData struct {
	Success  []string
	Error    []string
	Messages []FlashMessage
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		c.Logger().Errorf("flash session unavailable: %v", err)
		return
	}
	sess.AddFlash(message, key)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		c.Logger().Errorf("failed to save flash session: %v", err)
	}
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// GetFlashData retrieves and clears flash messages from the session.
// Errors come before successes in Messages.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return data
	}

	// Flashes() retrieves and then clears the flashes from the session.
	errorFlashes := sess.Flashes(flashKeyError)
	successFlashes := sess.Flashes(flashKeySuccess)
	if len(successFlashes) == 0 && len(errorFlashes) == 0 {
		return data
	}

	for _, f := range errorFlashes {
		text := fmt.Sprint(f)
		data.Error = append(data.Error, text)
		data.Messages = append(data.Messages, FlashMessage{Kind: flashKeyError, Text: text})
	}
	for _, f := range successFlashes {
		text := fmt.Sprint(f)
		data.Success = append(data.Success, text)
		data.Messages = append(data.Messages, FlashMessage{Kind: flashKeySuccess, Text: text})
	}

	// Persist the clearing of flashes.
	_ = sess.Save(c.Request(), c.Response())
	return data
}
