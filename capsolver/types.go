package capsolver

import (
	"github.com/anatolykoptev/go-captcha"
)

// wireTask is the task object of a createTask request. One struct covers all
// task types; omitempty keeps each request down to the fields its type uses.
type wireTask struct {
	Type       string `json:"type"`
	WebsiteURL string `json:"websiteURL,omitempty"`
	WebsiteKey string `json:"websiteKey,omitempty"`

	// reCAPTCHA fields.
	IsInvisible       bool           `json:"isInvisible,omitempty"`
	PageAction        string         `json:"pageAction,omitempty"`
	DataSValue        string         `json:"recaptchaDataSValue,omitempty"`
	MinScore          float32        `json:"minScore,omitempty"`
	EnterprisePayload map[string]any `json:"enterprisePayload,omitempty"`
	APIDomain         string         `json:"apiDomain,omitempty"`
	UserAgent         string         `json:"userAgent,omitempty"`
	Cookies           string         `json:"cookies,omitempty"`

	// Turnstile fields.
	Metadata *turnstileMetadata `json:"metadata,omitempty"`

	// Cloudflare challenge fields.
	HTML string `json:"html,omitempty"`

	// Image recognition fields.
	Body   string `json:"body,omitempty"`
	Module string `json:"module,omitempty"`
	Case   bool   `json:"case,omitempty"`

	// Capsolver takes the whole proxy as one colon-separated string.
	Proxy string `json:"proxy,omitempty"`
}

type turnstileMetadata struct {
	Action string `json:"action,omitempty"`
	CData  string `json:"cdata,omitempty"`
}

// convertTask maps the unified task model onto Capsolver task types. The
// ProxyLess/proxied split is encoded in the type name, so the name is picked
// per task from the enterprise and proxy flags.
func convertTask(task captcha.Task) (wireTask, error) {
	switch t := task.(type) {
	case captcha.ReCaptchaV2:
		w := wireTask{
			WebsiteURL:        t.WebsiteURL,
			WebsiteKey:        t.WebsiteKey,
			IsInvisible:       t.Invisible,
			PageAction:        t.PageAction,
			DataSValue:        t.DataSValue,
			EnterprisePayload: t.EnterprisePayload,
			APIDomain:         t.APIDomain,
			UserAgent:         t.UserAgent,
			Cookies:           t.Cookies,
		}
		switch {
		case t.Enterprise && t.Proxy != nil:
			w.Type = "ReCaptchaV2EnterpriseTask"
			w.Proxy = t.Proxy.String()
		case t.Enterprise:
			w.Type = "ReCaptchaV2EnterpriseTaskProxyLess"
		default:
			// The non-enterprise V2 endpoint is proxyless only.
			w.Type = "ReCaptchaV2TaskProxyLess"
		}
		return w, nil

	case captcha.ReCaptchaV3:
		w := wireTask{
			WebsiteURL:        t.WebsiteURL,
			WebsiteKey:        t.WebsiteKey,
			PageAction:        t.PageAction,
			MinScore:          t.MinScore,
			EnterprisePayload: t.EnterprisePayload,
			APIDomain:         t.APIDomain,
		}
		switch {
		case t.Enterprise && t.Proxy != nil:
			w.Type = "ReCaptchaV3EnterpriseTask"
			w.Proxy = t.Proxy.String()
		case t.Enterprise:
			w.Type = "ReCaptchaV3EnterpriseTaskProxyLess"
		case t.Proxy != nil:
			w.Type = "ReCaptchaV3Task"
			w.Proxy = t.Proxy.String()
		default:
			w.Type = "ReCaptchaV3TaskProxyLess"
		}
		return w, nil

	case captcha.Turnstile:
		w := wireTask{
			Type:       "AntiTurnstileTaskProxyLess",
			WebsiteURL: t.WebsiteURL,
			WebsiteKey: t.WebsiteKey,
		}
		if t.Action != "" || t.CData != "" {
			w.Metadata = &turnstileMetadata{Action: t.Action, CData: t.CData}
		}
		return w, nil

	case captcha.CloudflareChallenge:
		if t.Proxy == nil {
			return wireTask{}, errProxyRequired
		}
		return wireTask{
			Type:       "AntiCloudflareTask",
			WebsiteURL: t.WebsiteURL,
			Proxy:      t.Proxy.String(),
			UserAgent:  t.UserAgent,
			HTML:       t.HTML,
		}, nil

	case captcha.ImageToText:
		return wireTask{
			Type:       "ImageToTextTask",
			WebsiteURL: t.WebsiteURL,
			Body:       t.Body,
			Module:     t.Module,
			Case:       t.CaseSensitive,
		}, nil

	default:
		return wireTask{}, &captcha.UnsupportedTaskError{Provider: "capsolver", Kind: task.Kind()}
	}
}

// Solution is the Capsolver solution payload. Which fields are set depends on
// the task type: reCAPTCHA fills gRecaptchaResponse, Turnstile and Cloudflare
// fill token (plus cookies for the challenge bypass), image recognition fills
// text.
type Solution struct {
	GRecaptchaResponse string `json:"gRecaptchaResponse,omitempty"`
	Token              string `json:"token,omitempty"`
	Text               string `json:"text,omitempty"`

	UserAgent string `json:"userAgent,omitempty"`
	SecChUa   string `json:"secChUa,omitempty"`

	// CreateTime is the server-side creation timestamp, unix milliseconds.
	CreateTime int64 `json:"createTime,omitempty"`

	// Cookies is set for Cloudflare challenge solutions.
	Cookies map[string]string `json:"cookies,omitempty"`

	// Session tokens returned alongside some enterprise reCAPTCHA solutions.
	SessionTokenT string `json:"recaptcha-ca-t,omitempty"`
	SessionTokenE string `json:"recaptcha-ca-e,omitempty"`
}

// Value returns the usable answer regardless of task type: the reCAPTCHA
// response, the Turnstile token, or the recognized text, whichever is set.
func (s *Solution) Value() string {
	switch {
	case s.GRecaptchaResponse != "":
		return s.GRecaptchaResponse
	case s.Token != "":
		return s.Token
	default:
		return s.Text
	}
}

// CfClearance returns the cf_clearance cookie from a Cloudflare challenge
// solution, or "" when absent.
func (s *Solution) CfClearance() string {
	return s.Cookies["cf_clearance"]
}
