//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package events provides a typed publish/subscribe bus for document
// notifications. Delivery is synchronous on the publishing goroutine, which
// in gott is always the main event loop.
package events

import "sync"

// Event names a kind of notification.
type Event string

const (
	EventCurrentDocumentChanged Event = "document.current-changed"
	EventDocumentSaved          Event = "document.saved"
)

// CurrentDocumentChangedPayload is emitted when a different document becomes
// current, including when a file is first read into the editor.
type CurrentDocumentChangedPayload struct {
	Path string
}

// DocumentSavedPayload is emitted after a document is written to disk.
type DocumentSavedPayload struct {
	Path string
}

// A Disposer removes the subscription that returned it. Calling it more
// than once is harmless.
type Disposer func()

type subscription struct {
	id      int
	handler func(any)
}

// Bus routes events to subscribers.
type Bus struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[Event][]subscription
	onPublish   []func(Event, any)
	onSubscribe []func(Event)
}

func New() *Bus {
	return &Bus{subscribers: make(map[Event][]subscription)}
}

// OnPublish registers a hook that fires before an event is delivered.
func (bus *Bus) OnPublish(fn func(Event, any)) {
	bus.mu.Lock()
	bus.onPublish = append(bus.onPublish, fn)
	bus.mu.Unlock()
}

// OnSubscribe registers a hook that fires after a subscriber is registered.
func (bus *Bus) OnSubscribe(fn func(Event)) {
	bus.mu.Lock()
	bus.onSubscribe = append(bus.onSubscribe, fn)
	bus.mu.Unlock()
}

// Subscribers returns the number of live subscriptions for an event.
func (bus *Bus) Subscribers(event Event) int {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	return len(bus.subscribers[event])
}

func (bus *Bus) SubscribeCurrentDocumentChanged(fn func(CurrentDocumentChangedPayload)) Disposer {
	return bus.subscribe(EventCurrentDocumentChanged, func(p any) {
		fn(p.(CurrentDocumentChangedPayload))
	})
}

func (bus *Bus) PublishCurrentDocumentChanged(p CurrentDocumentChangedPayload) {
	bus.publish(EventCurrentDocumentChanged, p)
}

func (bus *Bus) SubscribeDocumentSaved(fn func(DocumentSavedPayload)) Disposer {
	return bus.subscribe(EventDocumentSaved, func(p any) {
		fn(p.(DocumentSavedPayload))
	})
}

func (bus *Bus) PublishDocumentSaved(p DocumentSavedPayload) {
	bus.publish(EventDocumentSaved, p)
}

func (bus *Bus) subscribe(event Event, handler func(any)) Disposer {
	bus.mu.Lock()
	bus.nextID++
	id := bus.nextID
	bus.subscribers[event] = append(bus.subscribers[event], subscription{id: id, handler: handler})
	hooks := make([]func(Event), len(bus.onSubscribe))
	copy(hooks, bus.onSubscribe)
	bus.mu.Unlock()

	for _, fn := range hooks {
		fn(event)
	}

	var once sync.Once
	return func() {
		once.Do(func() { bus.unsubscribe(event, id) })
	}
}

func (bus *Bus) unsubscribe(event Event, id int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	subs := bus.subscribers[event]
	for i, s := range subs {
		if s.id == id {
			bus.subscribers[event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

func (bus *Bus) publish(event Event, payload any) {
	// handlers may subscribe or dispose while we deliver, so work on copies
	bus.mu.Lock()
	hooks := make([]func(Event, any), len(bus.onPublish))
	copy(hooks, bus.onPublish)
	subs := make([]subscription, len(bus.subscribers[event]))
	copy(subs, bus.subscribers[event])
	bus.mu.Unlock()

	for _, fn := range hooks {
		fn(event, payload)
	}
	for _, s := range subs {
		s.handler(payload)
	}
}
