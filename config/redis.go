package config

import "time"

// Redis Redis配置信息
type Redis struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`
	// CatalogTTL bounds how long reference lists stay cached. Zero means 10 minutes.
	CatalogTTL time.Duration `json:"catalog_ttl" yaml:"catalog_ttl"`
}
