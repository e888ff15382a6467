package snowflake

import (
	"strconv"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// Init 按配置的节点号重建生成器，多实例部署时各节点号需不同
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	node = n
	return nil
}

func GenID() int64 {
	return node.Generate().Int64()
}

// GenRequestID 用作 X-Request-Id
func GenRequestID() string {
	return strconv.FormatInt(GenID(), 36)
}
