package validation

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nijaru/yt-forever/config"
	"github.com/nijaru/yt-forever/errors"
)

type Validator struct {
	config   *config.Config
	validate *validator.Validate
}

func NewValidator(cfg *config.Config) *Validator {
	return &Validator{
		config:   cfg,
		validate: validator.New(),
	}
}

// ValidateURL checks the URL is well formed and points at YouTube before
// anything touches the network.
func (v *Validator) ValidateURL(urlStr string) error {
	const op = "Validator.ValidateURL"

	if urlStr == "" {
		return errors.InvalidInput(op, nil, "URL is required")
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return errors.InvalidInput(op, err, "Invalid URL format")
	}

	// Protocol validation
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.InvalidInput(op, nil, "URL must use HTTP or HTTPS")
	}

	// Domain validation
	host := parsedURL.Hostname()
	if !isYouTubeHost(host) {
		return errors.InvalidInput(op, nil, "Only YouTube URLs are supported")
	}

	return nil
}

func isYouTubeHost(host string) bool {
	host = strings.ToLower(host)
	switch host {
	case "youtube.com", "www.youtube.com", "m.youtube.com", "youtu.be", "www.youtube-nocookie.com":
		return true
	}
	return false
}

// ValidateParams runs struct tag validation on a request parameter struct.
func (v *Validator) ValidateParams(params interface{}) error {
	const op = "Validator.ValidateParams"

	if err := v.validate.Struct(params); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			field := verrs[0]
			return errors.InvalidInput(op, err, "Invalid parameter: "+strings.ToLower(field.Field()))
		}
		return errors.InvalidInput(op, err, "Invalid request parameters")
	}

	return nil
}
