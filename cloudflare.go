package captcha

// Turnstile describes a Cloudflare Turnstile widget challenge.
type Turnstile struct {
	// WebsiteURL is the full URL of the page with the Turnstile widget.
	WebsiteURL string
	// WebsiteKey is the Turnstile site key (starts with "0x4").
	WebsiteKey string
	// Action is the value of the data-action attribute, if the page sets one.
	Action string
	// CData is the value of the data-cdata attribute.
	CData string
	// PageData is the chlPageData value passed to turnstile.render.
	PageData string
	// Proxy routes solving through a custom proxy when set. Turnstile can
	// usually be solved without one.
	Proxy *Proxy
}

func (Turnstile) Kind() string { return "Turnstile" }

func (Turnstile) isTask() {}

// CloudflareChallenge describes a full-page Cloudflare challenge bypass (the
// "Just a moment..." interstitial). A static or sticky proxy is mandatory:
// the solver must keep the same exit IP for the whole challenge, and the
// resulting cf_clearance cookie is only valid from that IP with the same
// user agent.
type CloudflareChallenge struct {
	// WebsiteURL is the full URL of the protected page.
	WebsiteURL string
	// Proxy is required. Rotating proxies will fail.
	Proxy *Proxy
	// UserAgent should match the user agent of subsequent requests made with
	// the solved cookies.
	UserAgent string
	// HTML is the challenge page body, when already fetched. Providing it
	// can speed up solving.
	HTML string
}

func (CloudflareChallenge) Kind() string { return "CloudflareChallenge" }

func (CloudflareChallenge) isTask() {}
