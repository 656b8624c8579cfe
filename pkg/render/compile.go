package render

import (
	"errors"
	"fmt"

	"github.com/stener88/joltibase/pkg/blocks"
)

// CompileEmailRequest is the one-shot validate-render-track request shape,
// suitable for an API layer to decode directly.
type CompileEmailRequest struct {
	Email            *blocks.Email          `json:"email"`
	MergeTags        blocks.MergeTagMap     `json:"mergeTags,omitempty"`
	TemplateData     map[string]interface{} `json:"templateData,omitempty"`
	TrackingSettings *TrackingSettings      `json:"trackingSettings,omitempty"`
	SkipValidation   bool                   `json:"skipValidation,omitempty"`
}

// Validate ensures the compile request has all required fields.
func (r *CompileEmailRequest) Validate() error {
	if r.Email == nil {
		return fmt.Errorf("invalid compile email request: email is required")
	}
	return nil
}

// CompileEmailResponse carries either the rendered document or the
// structured validation failure.
type CompileEmailResponse struct {
	Success bool                    `json:"success"`
	HTML    *string                 `json:"html,omitempty"`
	Error   *blocks.ValidationError `json:"error,omitempty"`
}

// CompileEmail validates, renders and optionally instruments one document.
// Schema violations come back inside the response with Success false; the
// error return is reserved for malformed requests.
func (r *Renderer) CompileEmail(req CompileEmailRequest) (*CompileEmailResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if !req.SkipValidation {
		if err := blocks.ValidateEmail(req.Email); err != nil {
			var verr *blocks.ValidationError
			if !errors.As(err, &verr) {
				return nil, err
			}
			return &CompileEmailResponse{Success: false, Error: verr}, nil
		}
	}

	renderer := r
	if req.TemplateData != nil {
		renderer = &Renderer{Logger: r.Logger, TemplateData: req.TemplateData}
	}

	html := renderer.RenderEmail(req.Email, req.MergeTags)
	if req.TrackingSettings != nil {
		html = TrackLinks(html, *req.TrackingSettings)
	}

	return &CompileEmailResponse{Success: true, HTML: &html}, nil
}
