package sensitivedata

import (
	"fmt"
	"strings"

	"github.com/reglet-dev/connmask/internal/application/ports"
)

// SafeError wraps an error, redacting any sensitive values in the message.
// A redacted error does not unwrap: every error in the original chain still
// carries the secret in its message.
func SafeError(err error, provider ports.SensitiveValueProvider) error {
	if err == nil {
		return nil
	}
	if provider == nil {
		return err
	}

	msg := err.Error()
	for _, secret := range provider.AllValues() {
		if secret != "" && strings.Contains(msg, secret) {
			msg = strings.ReplaceAll(msg, secret, RedactionToken)
		}
	}

	if msg == err.Error() {
		return err // nothing to hide, keep the original type
	}

	return fmt.Errorf("%s", msg)
}
