// Package risk scores inbound auth actions with reCAPTCHA Enterprise.
// Scoring is advisory: the auth flows work unchanged when no assessor
// is configured.
package risk

import (
	"context"
	"fmt"
	"log"

	recaptchaenterprise "google.golang.org/api/recaptchaenterprise/v1"
)

type Assessor interface {
	// Score returns the risk score for a captcha token, in [0, 1]
	// where lower means riskier. ok is false when no usable score was
	// produced (invalid token, action mismatch, upstream error).
	Score(ctx context.Context, token, action string) (score float64, ok bool)
}

type RecaptchaAssessor struct {
	svc       *recaptchaenterprise.Service
	projectID string
	siteKey   string
}

func NewRecaptchaAssessor(ctx context.Context, projectID, siteKey string) (*RecaptchaAssessor, error) {
	svc, err := recaptchaenterprise.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("recaptcha service: %w", err)
	}
	return &RecaptchaAssessor{svc: svc, projectID: projectID, siteKey: siteKey}, nil
}

func (a *RecaptchaAssessor) Score(ctx context.Context, token, action string) (float64, bool) {
	assessment := &recaptchaenterprise.GoogleCloudRecaptchaenterpriseV1Assessment{
		Event: &recaptchaenterprise.GoogleCloudRecaptchaenterpriseV1Event{
			Token:   token,
			SiteKey: a.siteKey,
		},
	}

	parent := "projects/" + a.projectID
	resp, err := a.svc.Projects.Assessments.Create(parent, assessment).Context(ctx).Do()
	if err != nil {
		log.Printf("risk: assessment failed: %v", err)
		return 0, false
	}

	props := resp.TokenProperties
	if props == nil || !props.Valid {
		reason := "unknown"
		if props != nil {
			reason = props.InvalidReason
		}
		log.Printf("risk: captcha token rejected: %s", reason)
		return 0, false
	}
	if props.Action != action {
		log.Printf("risk: captcha action %q does not match expected %q", props.Action, action)
		return 0, false
	}
	if resp.RiskAnalysis == nil {
		return 0, false
	}
	return resp.RiskAnalysis.Score, true
}
