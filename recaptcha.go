package captcha

// ReCaptchaV2 describes a Google reCAPTCHA V2 challenge (checkbox or
// invisible, standard or enterprise).
type ReCaptchaV2 struct {
	// WebsiteURL is the full URL of the page with the reCAPTCHA.
	WebsiteURL string
	// WebsiteKey is the site key from the data-sitekey attribute.
	WebsiteKey string
	// Invisible marks a reCAPTCHA that runs without user interaction.
	Invisible bool
	// Enterprise marks an enterprise reCAPTCHA.
	Enterprise bool
	// PageAction is the action parameter some implementations verify.
	PageAction string
	// DataSValue is the data-s value used by specific implementations.
	DataSValue string
	// EnterprisePayload holds additional enterprise parameters. Setting it
	// only makes sense together with Enterprise.
	EnterprisePayload map[string]any
	// APIDomain overrides the captcha script domain (e.g. "recaptcha.net").
	APIDomain string
	// UserAgent is the browser user agent to solve with.
	UserAgent string
	// Cookies are passed to the solver as a single header-style string.
	Cookies string
	// Proxy routes solving through a custom proxy when set.
	Proxy *Proxy
}

func (t ReCaptchaV2) Kind() string {
	switch {
	case t.Invisible && t.Enterprise:
		return "ReCaptchaV2InvisibleEnterprise"
	case t.Invisible:
		return "ReCaptchaV2Invisible"
	case t.Enterprise:
		return "ReCaptchaV2Enterprise"
	default:
		return "ReCaptchaV2"
	}
}

func (ReCaptchaV2) isTask() {}

// ReCaptchaV3 describes a Google reCAPTCHA V3 challenge. V3 is score-based
// and never shows a widget; the action and minimum score must match what the
// page requests via grecaptcha.execute.
type ReCaptchaV3 struct {
	// WebsiteURL is the full URL of the page with the reCAPTCHA.
	WebsiteURL string
	// WebsiteKey is the reCAPTCHA site key.
	WebsiteKey string
	// Enterprise marks an enterprise reCAPTCHA.
	Enterprise bool
	// PageAction is the action passed to grecaptcha.execute ("submit",
	// "login", ...).
	PageAction string
	// MinScore is the score threshold to solve for (0.1–0.9). Providers that
	// require it fall back to 0.3 when zero.
	MinScore float32
	// EnterprisePayload holds additional enterprise parameters.
	EnterprisePayload map[string]any
	// APIDomain overrides the captcha script domain.
	APIDomain string
	// Proxy routes solving through a custom proxy when set.
	Proxy *Proxy
}

func (t ReCaptchaV3) Kind() string {
	if t.Enterprise {
		return "ReCaptchaV3Enterprise"
	}
	return "ReCaptchaV3"
}

func (ReCaptchaV3) isTask() {}
