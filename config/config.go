package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App    *App    `json:"app" yaml:"app"`
	Server *Server `json:"server" yaml:"server"`
	MySQL  *MySQL  `json:"mysql" yaml:"mysql"`
	Redis  *Redis  `json:"redis" yaml:"redis"`
	Jwt    *Jwt    `json:"jwt" yaml:"jwt"`
	Google *Google `json:"google" yaml:"google"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		panic(fmt.Sprintf("parse %s: %v", filename, err))
	}
	conf.applyEnv()

	return &conf
}

// applyEnv lets secrets live outside the yaml file.
func (c *Config) applyEnv() {
	if c.MySQL != nil {
		if v := os.Getenv("MYSQL_PASSWORD"); v != "" {
			c.MySQL.Password = v
		}
	}
	if c.Jwt != nil {
		if v := os.Getenv("JWT_SECRET"); v != "" {
			c.Jwt.Secret = v
		}
	}
	if c.Google != nil {
		if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
			c.Google.ClientID = v
		}
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App != nil && c.App.Debug
}
