package config

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQL_Dsn(t *testing.T) {
	m := &MySQL{Host: "127.0.0.1", Port: 3306, Username: "brandi", Password: "secret", Database: "brandi"}

	cfg, err := mysql.ParseDSN(m.Dsn())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3306", cfg.Addr)
	assert.Equal(t, "brandi", cfg.DBName)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, time.UTC, cfg.Loc)
	// 同值更新也要返回 1 行，否则写入检查会误报
	assert.True(t, cfg.ClientFoundRows)
}
