// Package doctor validates quoteline configuration before startup.
package doctor

import (
	"net"
	"strings"

	"github.com/tkwang/quoteline/internal/config"
)

// Result holds the outcome of a validation run.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
}

// Issue describes a single validation error or warning.
type Issue struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
}

// Doctor validates a loaded configuration.
type Doctor struct {
	cfg *config.Config
}

// New creates a Doctor from a loaded config.
func New(cfg *config.Config) *Doctor {
	return &Doctor{cfg: cfg}
}

// Validate runs all checks and returns a result.
func (d *Doctor) Validate() *Result {
	r := &Result{Valid: true}

	d.checkCredentials(r)
	d.checkListen(r)
	d.checkCallbackPath(r)

	r.Valid = len(r.Errors) == 0
	return r
}

func (d *Doctor) addError(r *Result, category, field, msg string) {
	r.Errors = append(r.Errors, Issue{Category: category, Field: field, Message: msg})
}

func (d *Doctor) addWarning(r *Result, category, field, msg string) {
	r.Warnings = append(r.Warnings, Issue{Category: category, Field: field, Message: msg})
}

// checkCredentials checks the platform credentials look plausible.
func (d *Doctor) checkCredentials(r *Result) {
	if d.cfg.Line.ChannelSecret == "" {
		d.addError(r, "line", "line.channel_secret", "channel secret is empty; signature verification will reject every request")
	} else if len(d.cfg.Line.ChannelSecret) < 16 {
		d.addWarning(r, "line", "line.channel_secret", "channel secret looks too short; check it against the channel settings")
	}

	if d.cfg.Line.ChannelToken == "" {
		d.addError(r, "line", "line.channel_token", "channel access token is empty; reply delivery will fail")
	}
}

// checkListen checks the listen address parses.
func (d *Doctor) checkListen(r *Result) {
	if _, _, err := net.SplitHostPort(d.cfg.Server.Listen); err != nil {
		d.addError(r, "server", "server.listen", "listen address must be host:port or :port")
	}
}

// checkCallbackPath warns about unusual callback paths.
func (d *Doctor) checkCallbackPath(r *Result) {
	if d.cfg.Server.Path != "/callback" {
		d.addWarning(r, "server", "server.path",
			"callback path is not /callback; make sure the webhook URL in the channel console matches")
	}
	if strings.Contains(d.cfg.Server.Path, " ") {
		d.addError(r, "server", "server.path", "callback path contains whitespace")
	}
}
