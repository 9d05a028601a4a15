package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ConfigurationError reports a required configuration key that is absent.
type ConfigurationError struct {
	Key  string // e.g. "ftp.password" or "ftp.paths.inventory"
	Hint string
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("configuration: %s is not set", e.Key)
	if e.Hint != "" {
		msg += "; " + e.Hint
	}
	return msg
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCredentials checks host, user and password. A config with none
// of them reports the whole ftp section as missing.
func (c FTPConfig) ValidateCredentials() error {
	if c.Host == "" && c.User == "" && c.Password == "" {
		return &ConfigurationError{
			Key:  "ftp",
			Hint: "add an ftp section with host, user and password to holista.yaml",
		}
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating ftp config: %w", err)
	}
	field := verrs[0].Field()
	return &ConfigurationError{
		Key:  "ftp." + field,
		Hint: fmt.Sprintf("set ftp.%s in holista.yaml or %s_FTP_%s", field, EnvPrefix, strings.ToUpper(field)),
	}
}

// MissingPath builds the error for an unset dataset path.
func MissingPath(key string) *ConfigurationError {
	return &ConfigurationError{
		Key:  "ftp.paths." + key,
		Hint: "set the remote path of this report under ftp.paths in holista.yaml",
	}
}
