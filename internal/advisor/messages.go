package advisor

import (
	"fmt"

	"github.com/sant0-9/advisor/internal/config"
)

// EmptyInputWarning is shown when the user submits nothing.
const EmptyInputWarning = "The input is empty. Type a question first."

// MissingCredentialHelp explains where the API key for cfg's provider can be set.
func MissingCredentialHelp(cfg *config.Config) string {
	secrets := "~/.config/advisor/secrets.yaml"
	if p, err := config.SecretsPath(); err == nil {
		secrets = p
	}
	env := cfg.APIKeyEnv()
	return fmt.Sprintf(`%s. Set it in one of these places:
  1. the %s environment variable (a .env file in the working directory works too)
  2. %s, as a line: %s: "your-api-key-here"
  3. the settings screen, which saves it to config.yaml`, ErrMissingCredential.Error(), env, secrets, env)
}
