package actions

import (
	"context"
	"fmt"

	"github.com/entrhq/autodemo/pkg/scenario"
	"github.com/entrhq/autodemo/pkg/ui"
)

const bannerWidth = 50

// MessageHandler prints a banner on the operator console.
type MessageHandler struct {
	env *Env
}

// NewMessageHandler creates a message handler.
func NewMessageHandler(env *Env) *MessageHandler {
	return &MessageHandler{env: env}
}

// Run writes the banner. It never touches the page and always succeeds.
func (h *MessageHandler) Run(_ context.Context, _ scenario.Step, a scenario.Message) error {
	fmt.Fprintf(h.env.Console, "\n%s\n\n", ui.Banner(a.Text, bannerWidth))
	h.env.Log.Infof("Message: %s", a.Text)
	return nil
}
