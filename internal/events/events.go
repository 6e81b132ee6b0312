// Package events publishes domain events (logins, vanity mint transitions,
// launches) to a watermill publisher.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	AuthLogin      = "auth.login"
	AuthLogout     = "auth.logout"
	VanityReserved = "vanity.reserved"
	VanityReleased = "vanity.released"
	VanityUsed     = "vanity.used"
	LaunchCreated  = "launch.created"
)

// Publisher is what services depend on.
type Publisher interface {
	Publish(ctx context.Context, event string, payload any) error
}

type Envelope struct {
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

type LoginEvent struct {
	UserID        int64  `json:"userId"`
	WalletAddress string `json:"walletAddress"`
}

type VanityEvent struct {
	PublicKey     string `json:"publicKey"`
	WalletAddress string `json:"walletAddress,omitempty"`
}

type LaunchEvent struct {
	Mint          string `json:"mint"`
	CreatorWallet string `json:"creatorWallet"`
	Symbol        string `json:"symbol"`
}

// WatermillPublisher implements Publisher on top of any watermill publisher.
// Topics are "<prefix>.<event>".
type WatermillPublisher struct {
	publisher message.Publisher
	prefix    string
	now       func() time.Time
}

func NewWatermillPublisher(publisher message.Publisher, prefix string) *WatermillPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		prefix:    prefix,
		now:       time.Now,
	}
}

func (p *WatermillPublisher) Topic(event string) string {
	if p.prefix == "" {
		return event
	}
	return p.prefix + "." + event
}

func (p *WatermillPublisher) Publish(ctx context.Context, event string, payload any) error {
	body, err := json.Marshal(Envelope{Event: event, OccurredAt: p.now().UTC(), Data: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.Topic(event), msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
