package config

import "time"

type Jwt struct {
	Secret string `json:"secret" yaml:"secret"`
	// Expire of zero issues tokens without an exp claim.
	Expire time.Duration `json:"expire" yaml:"expire"`
}
