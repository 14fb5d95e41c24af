package captcha

import "encoding/base64"

// ImageToText describes a classic image-recognition captcha. Backends solve
// these quickly; Capsolver returns the answer directly in the create-task
// response, so solving one usually involves no polling at all.
type ImageToText struct {
	// Body is the base64-encoded image, without a data-URI prefix. Use
	// ImageFromBytes for raw image data.
	Body string
	// WebsiteURL is the source page, which can improve accuracy.
	WebsiteURL string
	// Module selects a provider recognition module ("common", "number", ...).
	Module string
	// Phrase requires an answer of multiple space-separated words.
	Phrase bool
	// CaseSensitive requires a case-sensitive answer.
	CaseSensitive bool
	// Numeric constrains the answer alphabet: 0 none, 1 digits only,
	// 2 letters only, 3 digits or letters, 4 digits and letters.
	Numeric int
	// Math marks captchas that require evaluating an arithmetic expression.
	Math bool
	// MinLength and MaxLength bound the answer length; zero means no bound.
	MinLength int
	MaxLength int
	// Comment is an extra instruction shown to human workers.
	Comment string
	// Instructions is a base64-encoded image with instructions for the
	// workers, shown alongside the captcha itself.
	Instructions string
}

func (ImageToText) Kind() string { return "ImageToText" }

func (ImageToText) isTask() {}

// ImageFromBytes builds an ImageToText task from raw image bytes (PNG, JPEG,
// GIF, ...), base64-encoding them.
func ImageFromBytes(data []byte) ImageToText {
	return ImageToText{Body: base64.StdEncoding.EncodeToString(data)}
}
