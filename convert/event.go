package convert

import (
	"fmt"
	"log"
)

const (
	EventMetadata = iota
	EventNamespace
	EventClass
	EventClassProperty
	EventLinkProperty
	EventUnlinkedClass
)

// Event reports progress of a conversion: the term or row it concerns and a human-readable message.
type Event struct {
	Target    string
	EventType int
	Message   string
}

type EventHandler func(Event)

// A handler implementation which does nothing with its argument
var NoopEventHandler = func(e Event) {}

// A handler implementation which uses the log package to output a string representation of its argument
var LogEventHandler = func(e Event) { log.Printf("%s: %s", eventName(e.EventType), e.Message) }

func eventName(eventType int) string {
	switch eventType {
	case EventMetadata:
		return "metadata"
	case EventNamespace:
		return "namespace"
	case EventClass:
		return "class"
	case EventClassProperty:
		return "class property"
	case EventLinkProperty:
		return "link property"
	case EventUnlinkedClass:
		return "unlinked class"
	default:
		return fmt.Sprintf("event %d", eventType)
	}
}
