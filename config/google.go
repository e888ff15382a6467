package config

import "time"

const (
	GoogleVerifyTokenInfo = "tokeninfo"
	GoogleVerifyIDToken   = "idtoken"
)

type Google struct {
	ClientID     string        `json:"client_id" yaml:"client_id"`
	VerifyMode   string        `json:"verify_mode" yaml:"verify_mode"`
	TokenInfoURL string        `json:"tokeninfo_url" yaml:"tokeninfo_url"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
}
