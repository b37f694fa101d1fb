package event

import (
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/event/topic"
	"github.com/dshills/inkwell/internal/input/key"
)

// Topics published by the editor.
const (
	TopicKeyPressed       topic.Topic = "input.key"
	TopicBufferCommitted  topic.Topic = "buffer.committed"
	TopicBufferDeclined   topic.Topic = "buffer.declined"
	TopicSessionMounted   topic.Topic = "session.mounted"
	TopicSessionUnmounted topic.Topic = "session.unmounted"
	TopicConfigReloaded   topic.Topic = "config.reloaded"
)

// KeyPressed is published by a host key listener. The mounted session for
// SessionID dispatches it and calls Reply with the handled flag, which
// tells the host whether to suppress its own default handling.
type KeyPressed struct {
	SessionID string
	Key       key.Event
	Reply     func(handled bool)
}

// Committed is published after a handled result reaches the surface.
type Committed struct {
	SessionID string
	Action    string
	Revision  uint64
	Text      string
	Selection buffer.Selection
}

// Declined is published when a key is left to the host's default handling.
type Declined struct {
	SessionID string
	Key       key.Event
	Action    string
	Reason    string
}

// SessionLifecycle is published on mount and unmount.
type SessionLifecycle struct {
	SessionID string
}

// ConfigReloaded is published when the config file changes on disk.
type ConfigReloaded struct {
	Path string
	Err  error
}
