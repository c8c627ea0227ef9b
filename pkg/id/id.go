// Package id issues snowflake ids used to correlate the log lines of one
// clipboard transaction.
package id

import (
	"fmt"
	"net"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/cespare/xxhash"
)

type Unique = int64

var generator = new(idGenerator)

type idGenerator struct {
	node *snowflake.Node
	once sync.Once
}

func (g *idGenerator) nextID() Unique {
	g.once.Do(func() {
		node, err := snowflake.NewNode(machineID())
		if err != nil {
			panic(fmt.Sprintf("failed to initialize snowflake node: %s", err))
		}
		g.node = node
	})
	return g.node.Generate().Int64()
}

func New() Unique {
	return generator.nextID()
}

// machine extracts the machine part of an id.
func machine(id Unique) int64 {
	return (id >> 12) & 0x3FF
}

func machineID() int64 {
	interfaces, err := net.Interfaces()
	if err != nil {
		return 1
	}

	for _, i := range interfaces {
		if (i.Flags&net.FlagUp) != 0 && len(i.HardwareAddr) > 0 {
			return int64(xxhash.Sum64(i.HardwareAddr) % 1024)
		}
	}

	return 1
}
