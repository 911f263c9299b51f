package schema

// Attachement carries media alongside a message. The photo post-processor
// hangs extracted destination images off the assistant turn through it.
type Attachement struct {
	// ImageURLs attached image urls
	ImageURLs []string `json:"image_url,omitempty"`
}
