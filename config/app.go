package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
	// HashSalt seeds the public order numbers shown to customers.
	HashSalt string `json:"hash_salt" yaml:"hash_salt"`
	NodeID   int64  `json:"node_id" yaml:"node_id"`
	// LogFile 为空时只输出到标准输出
	LogFile string `json:"log_file" yaml:"log_file"`
}
