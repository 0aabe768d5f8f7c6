// internal/domain/notification/config.go
package notification

import "strings"

// Config holds the sender credentials and recipient list used for reminder emails.
// At most one Config exists; its absence disables notifications.
type Config struct {
	ID            string   `json:"id"`
	SenderAddress string   `json:"gmail_address"`
	AppPassword   string   `json:"app_password"`
	Recipients    []string `json:"recipient_emails"`
}

// HasCredentials reports whether both the sender address and the secret are set.
func (c *Config) HasCredentials() bool {
	return c != nil && strings.TrimSpace(c.SenderAddress) != "" && c.AppPassword != ""
}

// ResolveRecipients returns the configured recipients, or the sender address
// alone when the list is empty.
func (c *Config) ResolveRecipients() []string {
	out := make([]string, 0, len(c.Recipients))
	for _, r := range c.Recipients {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return []string{c.SenderAddress}
	}
	return out
}

// PublicConfig is the view of Config that is safe to return to clients.
type PublicConfig struct {
	ID            string   `json:"id,omitempty"`
	IsConfigured  bool     `json:"is_configured"`
	SenderAddress string   `json:"gmail_address"`
	Recipients    []string `json:"recipient_emails"`
}

// Public strips the secret. A nil Config yields an unconfigured view.
func (c *Config) Public() PublicConfig {
	if c == nil {
		return PublicConfig{Recipients: []string{}}
	}
	recipients := c.Recipients
	if recipients == nil {
		recipients = []string{}
	}
	return PublicConfig{
		ID:            c.ID,
		IsConfigured:  true,
		SenderAddress: c.SenderAddress,
		Recipients:    recipients,
	}
}

// ConfigUpdate is a partial update; nil fields are left unchanged.
type ConfigUpdate struct {
	SenderAddress *string   `json:"gmail_address"`
	AppPassword   *string   `json:"app_password"`
	Recipients    *[]string `json:"recipient_emails"`
}

// IsEmpty reports whether no recognized field is set.
func (u ConfigUpdate) IsEmpty() bool {
	return u.SenderAddress == nil && u.AppPassword == nil && u.Recipients == nil
}
