package utils

import (
	"net/url"
	"strings"

	"tms/models"
)

// NormalizedUserCategory resolves a trainee's category. An explicit
// value wins; otherwise the documents decide: a passport number means
// foreigner, an IC number means citizen. Citizen is the default.
func NormalizedUserCategory(user *models.User) string {
	cat := strings.ToLower(strings.TrimSpace(user.UserCategory))
	switch cat {
	case models.CategoryCitizen, models.CategoryForeigner:
		return cat
	}
	if strings.TrimSpace(user.PassportNumber) != "" {
		return models.CategoryForeigner
	}
	return models.CategoryCitizen
}

// ExtractYouTubeID pulls the video ID out of the usual YouTube URL
// shapes (watch, youtu.be, embed, shorts). Returns "" when no ID is
// found.
func ExtractYouTubeID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch host {
	case "youtu.be":
		return strings.Trim(strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)[0], "/")
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		if id := u.Query().Get("v"); id != "" {
			return id
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/v/"} {
			if strings.HasPrefix(u.Path, prefix) {
				rest := strings.TrimPrefix(u.Path, prefix)
				return strings.SplitN(rest, "/", 2)[0]
			}
		}
	}
	return ""
}

// ScoreColor maps a percentage score to the dashboard badge color.
func ScoreColor(score float64) string {
	switch {
	case score >= 80:
		return "green"
	case score >= 50:
		return "orange"
	default:
		return "red"
	}
}
