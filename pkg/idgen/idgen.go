// Package idgen issues fallback identifiers for payments that arrive without
// a transaction id, payment id or billing code.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out time-ordered ids that stay unique within one node,
// including under concurrent callbacks in the same millisecond.
type Generator struct {
	node *snowflake.Node
}

// New returns a generator for node, which must be in [0, 1023] and differ
// between processes writing to the same store.
func New(node int64) (*Generator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &Generator{node: n}, nil
}

// Next returns prefix followed by a new snowflake id.
func (g *Generator) Next(prefix string) string {
	return prefix + g.node.Generate().String()
}
