package dispatcher

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"project-assistant/internal/classifier"
)

// Dispatcher maps a classification to a response mode.
type Dispatcher struct {
	cfg  Config
	pick func(n int) int
}

// New creates a Dispatcher. Zero thresholds fall back to DefaultThresholds.
func New(cfg Config) *Dispatcher {
	if cfg.Default == (Thresholds{}) {
		cfg.Default = DefaultThresholds
	}
	return &Dispatcher{cfg: cfg, pick: rand.IntN}
}

// ModeFor returns the mode for a confidence under the given thresholds.
func ModeFor(confidence float64, t Thresholds) Mode {
	switch {
	case confidence >= t.Auto:
		return ModeAutoExecute
	case confidence >= t.Confirm:
		return ModeConfirm
	default:
		return ModeClarify
	}
}

// ThresholdsFor returns the thresholds applied to intent.
func (d *Dispatcher) ThresholdsFor(intent classifier.Intent) Thresholds {
	if t, ok := d.cfg.PerIntent[intent]; ok {
		return t
	}
	return d.cfg.Default
}

// Dispatch decides how to respond to r.
func (d *Dispatcher) Dispatch(r classifier.Result) Decision {
	dec := Decision{
		Mode:          ModeFor(r.Confidence, d.ThresholdsFor(r.Intent)),
		Intent:        r.Intent,
		Confidence:    r.Confidence,
		ExtractedInfo: r.ExtractedInfo,
	}

	// An ambiguous intent clarifies regardless of confidence.
	if r.Intent == classifier.IntentAmbiguous || dec.Mode == ModeClarify {
		dec.Mode = ModeClarify
		dec.ClarificationNeeded = true
		dec.Message = msgClarify
		dec.Options = append([]Option(nil), clarifyOptions...)
		return dec
	}

	switch dec.Mode {
	case ModeAutoExecute:
		if r.Intent == classifier.IntentChat {
			dec.Greeting = isGreeting(r)
			if dec.Greeting {
				dec.Message = Greetings[d.pick(len(Greetings))]
			}
			return dec
		}
		dec.ReadyForAction = true
		dec.Message = autoMessage(r)

	case ModeConfirm:
		dec.ClarificationNeeded = true
		dec.Message = confirmMessage(r)
		dec.Options = []Option{
			{Label: intentLabels[r.Intent], Intent: r.Intent},
		}
		if r.Intent != classifier.IntentChat {
			dec.Options = append(dec.Options, Option{Label: intentLabels[classifier.IntentChat], Intent: classifier.IntentChat})
		}
	}

	return dec
}

func isGreeting(r classifier.Result) bool {
	s := strings.ToLower(r.ExtractedInfo.Topic + " " + r.Reasoning)
	for _, m := range greetingMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func autoMessage(r classifier.Result) string {
	label := intentLabels[r.Intent]
	if t := titleOf(r); t != "" {
		return fmt.Sprintf(msgAutoTitle, label, t)
	}
	return fmt.Sprintf(msgAutoNoTitle, label)
}

func confirmMessage(r classifier.Result) string {
	label := intentLabels[r.Intent]
	if t := titleOf(r); t != "" {
		return fmt.Sprintf(msgConfirmTitle, label, t)
	}
	return fmt.Sprintf(msgConfirmFormat, label)
}

func titleOf(r classifier.Result) string {
	info := r.ExtractedInfo
	for _, s := range []string{info.Title, info.Decision, info.Change, info.BlockedBy, info.Topic} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
