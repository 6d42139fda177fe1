package utils

import (
	"fmt"
	"log"
	"time"

	"tms/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// RenderRequest is the payload sent to the certificate rendering
// service.
type RenderRequest struct {
	Slug       string  `json:"slug"`
	UserName   string  `json:"user_name"`
	UserNumber string  `json:"user_number"`
	CourseName string  `json:"course_name"`
	Score      float64 `json:"score"`
	Grade      string  `json:"grade"`
	Stars      int     `json:"stars"`
	IssueDate  string  `json:"issue_date"`
}

type renderResponse struct {
	URL string `json:"url"`
}

var renderClient = resty.New().
	SetTimeout(10 * time.Second).
	SetRetryCount(2)

// RenderCertificate asks the external rendering service to produce a
// shareable certificate and returns its URL. Without a configured
// service, or when the call fails, it falls back to a local slug URL
// so approval never blocks on rendering.
func RenderCertificate(req RenderRequest) string {
	if req.Slug == "" {
		req.Slug = uuid.NewString()
	}
	fallback := fmt.Sprintf("/certificates/%s", req.Slug)

	base := config.AppConfig.RenderApiURL
	if base == "" {
		return fallback
	}

	var out renderResponse
	resp, err := renderClient.R().
		SetBody(req).
		SetResult(&out).
		Post(base + "/render")
	if err != nil {
		log.Printf("Certificate render failed: %v", err)
		return fallback
	}
	if resp.IsError() || out.URL == "" {
		log.Printf("Certificate render rejected, status %d", resp.StatusCode())
		return fallback
	}
	return out.URL
}
