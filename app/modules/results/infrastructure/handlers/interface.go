package resulthandlers

import (
	"github.com/ThreeDotsLabs/watermill/message"
)

// Handlers is the message handler contract of the results module.
type Handlers interface {
	HandleImportRequested(msg *message.Message) ([]*message.Message, error)
}
