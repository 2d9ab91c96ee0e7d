package idgen

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

const paymentPrefix = "RF"

// MaxPaymentIDLength is the transaction id limit of the payment-code renderer.
const MaxPaymentIDLength = 25

// PaymentIDs mints time-ordered payment ids such as "RF3F8XK2M0QZ4".
type PaymentIDs struct {
	node *snowflake.Node
}

func NewPaymentIDs(nodeID int64) (*PaymentIDs, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("init payment id node: %w", err)
	}

	return &PaymentIDs{node: node}, nil
}

func (p *PaymentIDs) Mint() string {
	return paymentPrefix + strings.ToUpper(p.node.Generate().Base36())
}
