// internal/domain/notification/payload.go
package notification

// Identity holds the payload fields that stay the same on every send.
type Identity struct {
	Channel  string
	Username string
	IconURL  string
}

// Payload is the JSON document posted to the chat webhook.
type Payload struct {
	Channel  string `json:"channel"`
	Username string `json:"username"`
	IconURL  string `json:"icon_url"`
	Text     string `json:"text"`
}

// NewPayload builds a fresh payload for text under the given identity.
func NewPayload(id Identity, text string) Payload {
	return Payload{
		Channel:  id.Channel,
		Username: id.Username,
		IconURL:  id.IconURL,
		Text:     text,
	}
}
