package rucaptcha

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/anatolykoptev/go-captcha"
)

// defaultMinScore is used for reCAPTCHA V3 when the task leaves MinScore
// zero. RuCaptcha rejects V3 tasks without a score.
const defaultMinScore = 0.3

// wireTask is the task object of a createTask request. RuCaptcha takes proxy
// parameters as separate fields rather than one string.
type wireTask struct {
	Type       string `json:"type"`
	WebsiteURL string `json:"websiteURL,omitempty"`
	WebsiteKey string `json:"websiteKey,omitempty"`

	// reCAPTCHA fields.
	IsInvisible       bool           `json:"isInvisible,omitempty"`
	IsEnterprise      bool           `json:"isEnterprise,omitempty"`
	PageAction        string         `json:"pageAction,omitempty"`
	DataSValue        string         `json:"recaptchaDataSValue,omitempty"`
	MinScore          float32        `json:"minScore,omitempty"`
	EnterprisePayload map[string]any `json:"enterprisePayload,omitempty"`
	APIDomain         string         `json:"apiDomain,omitempty"`
	UserAgent         string         `json:"userAgent,omitempty"`
	Cookies           string         `json:"cookies,omitempty"`

	// Turnstile fields.
	Action   string `json:"action,omitempty"`
	Data     string `json:"data,omitempty"`
	PageData string `json:"pagedata,omitempty"`

	// Image recognition fields.
	Body          string `json:"body,omitempty"`
	Phrase        bool   `json:"phrase,omitempty"`
	CaseSensitive bool   `json:"case,omitempty"`
	Numeric       int    `json:"numeric,omitempty"`
	Math          bool   `json:"math,omitempty"`
	MinLength     int    `json:"minLength,omitempty"`
	MaxLength     int    `json:"maxLength,omitempty"`
	Comment       string `json:"comment,omitempty"`
	Instructions  string `json:"imgInstructions,omitempty"`

	// Proxy fields, set only for the proxied task variants.
	ProxyType     string `json:"proxyType,omitempty"`
	ProxyAddress  string `json:"proxyAddress,omitempty"`
	ProxyPort     int    `json:"proxyPort,omitempty"`
	ProxyLogin    string `json:"proxyLogin,omitempty"`
	ProxyPassword string `json:"proxyPassword,omitempty"`
}

func (w *wireTask) setProxy(p *captcha.Proxy) {
	w.ProxyType = p.RuCaptchaType()
	w.ProxyAddress = p.Address
	w.ProxyPort = p.Port
	w.ProxyLogin = p.Login
	w.ProxyPassword = p.Password
}

// convertTask maps the unified task model onto RuCaptcha task types.
// CloudflareChallenge has no RuCaptcha equivalent and is rejected up front.
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
			w.Type = "RecaptchaV2EnterpriseTask"
			w.setProxy(t.Proxy)
		case t.Enterprise:
			w.Type = "RecaptchaV2EnterpriseTaskProxyless"
		case t.Proxy != nil:
			w.Type = "RecaptchaV2Task"
			w.setProxy(t.Proxy)
		default:
			w.Type = "RecaptchaV2TaskProxyless"
		}
		return w, nil

	case captcha.ReCaptchaV3:
		// V3 runs proxyless only; enterprise is a flag, not a type.
		w := wireTask{
			Type:         "RecaptchaV3TaskProxyless",
			WebsiteURL:   t.WebsiteURL,
			WebsiteKey:   t.WebsiteKey,
			PageAction:   t.PageAction,
			MinScore:     t.MinScore,
			IsEnterprise: t.Enterprise,
			APIDomain:    t.APIDomain,
		}
		if w.MinScore == 0 {
			w.MinScore = defaultMinScore
		}
		return w, nil

	case captcha.Turnstile:
		w := wireTask{
			WebsiteURL: t.WebsiteURL,
			WebsiteKey: t.WebsiteKey,
			Action:     t.Action,
			Data:       t.CData,
			PageData:   t.PageData,
		}
		if t.Proxy != nil {
			w.Type = "TurnstileTask"
			w.setProxy(t.Proxy)
		} else {
			w.Type = "TurnstileTaskProxyless"
		}
		return w, nil

	case captcha.ImageToText:
		return wireTask{
			Type:          "ImageToTextTask",
			Body:          t.Body,
			Phrase:        t.Phrase,
			CaseSensitive: t.CaseSensitive,
			Numeric:       t.Numeric,
			Math:          t.Math,
			MinLength:     t.MinLength,
			MaxLength:     t.MaxLength,
			Comment:       t.Comment,
			Instructions:  t.Instructions,
		}, nil

	default:
		return wireTask{}, &captcha.UnsupportedTaskError{Provider: "rucaptcha", Kind: task.Kind()}
	}
}

// flexID accepts a task id that arrives either as a JSON number or a JSON
// string. RuCaptcha has been observed sending both.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty task id")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// numericIfPossible renders a task id for a getTaskResult request: as a JSON
// number when it parses as one, as a string otherwise.
func numericIfPossible(id captcha.TaskID) any {
	if n, err := strconv.ParseInt(id.String(), 10, 64); err == nil {
		return n
	}
	return id.String()
}

// Solution is the RuCaptcha solution payload.
type Solution struct {
	GRecaptchaResponse string `json:"gRecaptchaResponse,omitempty"`
	Token              string `json:"token,omitempty"`
	Text               string `json:"text,omitempty"`
	UserAgent          string `json:"userAgent,omitempty"`
}

// Value returns the usable answer regardless of task type.
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
