// Package integrations provides the integration-availability collaborator
// consulted by the detail-view action handlers. A check answers one
// question: is a richer integration reachable for this action kind, or
// should the caller fall back to an OS-level link.
package integrations

import (
	"context"
	"net/http"
	"time"

	"pipeline_backend/platform/config"
	"pipeline_backend/platform/logger"
)

// Kind identifies an integration family.
type Kind string

const (
	KindVoIP     Kind = "voip"
	KindWhatsApp Kind = "whatsapp"
	KindEmail    Kind = "email"
	KindCalendar Kind = "calendar"
)

// Checker reports whether a richer integration is available for a kind.
// Implementations must treat failures as unavailability: callers always
// have a fallback path and never propagate a checker error to the user.
type Checker interface {
	Check(ctx context.Context, kind Kind) (bool, error)
}

// ProbeChecker probes configured endpoints over HTTP. An unconfigured
// kind is simply unavailable, not an error.
type ProbeChecker struct {
	cfg    config.IntegrationConfig
	client *http.Client
	log    *logger.Logger
}

// NewProbeChecker creates a probe-based availability checker.
func NewProbeChecker(cfg config.IntegrationConfig, log *logger.Logger) *ProbeChecker {
	return &ProbeChecker{
		cfg:    cfg,
		client: &http.Client{Timeout: 3 * time.Second},
		log:    log,
	}
}

// Check probes the endpoint configured for the kind.
func (p *ProbeChecker) Check(ctx context.Context, kind Kind) (bool, error) {
	// Email availability is a pure config question: an SMTP host either
	// is configured or is not.
	if kind == KindEmail {
		return p.cfg.IsEmailIntegrationEnabled(), nil
	}

	probeURL := p.probeURL(kind)
	if probeURL == "" {
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, probeURL, nil)
	if err != nil {
		return false, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Debug("integration probe failed", "kind", string(kind), "error", err)
		return false, err
	}
	defer resp.Body.Close()

	return resp.StatusCode < http.StatusInternalServerError, nil
}

func (p *ProbeChecker) probeURL(kind Kind) string {
	switch kind {
	case KindVoIP:
		return p.cfg.GetVoIPProbeURL()
	case KindWhatsApp:
		return p.cfg.GetWhatsAppProbeURL()
	case KindCalendar:
		return p.cfg.GetCalendarProbeURL()
	default:
		return ""
	}
}
