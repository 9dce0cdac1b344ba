package gesture

// Topic keys the subscription categories the coordinator publishes.
type Topic string

const (
	TopicCreateState     Topic = "createStateChanged"
	TopicMoveState       Topic = "moveStateChanged"
	TopicHoveredResource Topic = "hoveredResourceIndexChanged"
	TopicError           Topic = "errorMessage"
)

// Token identifies one subscription for later removal.
type Token struct {
	topic Topic
	id    int
}

// Bus is a typed-topic observer registry. Publishing calls handlers
// synchronously, in line with the single-threaded cooperative model:
// no goroutines, no buffering, handlers run before the triggering
// input callback returns. Payloads are full state snapshots, never
// diffs.
type Bus struct {
	next int
	subs map[Topic]map[int]func(any)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic]map[int]func(any))}
}

// Subscribe registers a handler and returns its unsubscribe token.
func (b *Bus) Subscribe(topic Topic, fn func(any)) Token {
	b.next++
	handlers := b.subs[topic]
	if handlers == nil {
		handlers = make(map[int]func(any))
		b.subs[topic] = handlers
	}
	handlers[b.next] = fn
	return Token{topic: topic, id: b.next}
}

// Unsubscribe removes a subscription. Unknown or already-removed
// tokens are a no-op.
func (b *Bus) Unsubscribe(tok Token) {
	if handlers := b.subs[tok.topic]; handlers != nil {
		delete(handlers, tok.id)
	}
}

// Publish delivers payload to every subscriber of topic.
func (b *Bus) Publish(topic Topic, payload any) {
	for _, fn := range b.subs[topic] {
		fn(payload)
	}
}
