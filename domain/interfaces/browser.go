package interfaces

import "context"

// Element is a handle to a single located element in a document.
// Implementations exist for Selenium, Playwright and the goquery
// fixture; every handle is acquired fresh per lookup and never cached.
type Element interface {
	// TagName returns the lowercase tag name of the element
	TagName() (string, error)

	// Text returns the rendered text content of the element and its subtree
	Text() (string, error)

	// Attribute returns the named attribute, or "" when absent
	Attribute(name string) (string, error)

	// Value returns the current value of an input-like element
	Value() (string, error)

	// Selected reports whether a radio/option-like element is currently selected
	Selected() (bool, error)

	// Find returns the first descendant matching the CSS selector
	Find(selector string) (Element, error)

	// FindAll returns all descendants matching the CSS selector, in document order
	FindAll(selector string) ([]Element, error)

	// FollowingSiblings returns the element siblings after this one, nearest first
	FollowingSiblings() ([]Element, error)

	// PrecedingSiblings returns the element siblings before this one, nearest first
	PrecedingSiblings() ([]Element, error)

	// Click clicks the element
	Click() error

	// Clear clears the value of an input-like element
	Clear() error

	// Fill types the given value into an input-like element
	Fill(value string) error

	// ScrollIntoView scrolls the element into the viewport
	ScrollIntoView() error
}

// Document is the read entry point the resolver works against.
type Document interface {
	// Find returns the first element matching the CSS selector, in document order
	Find(selector string) (Element, error)

	// FindAll returns all elements matching the CSS selector, in document order
	FindAll(selector string) ([]Element, error)

	// FindByID returns the element whose id attribute equals id exactly
	FindByID(id string) (Element, error)
}

// Session owns a live browser and exposes the document rendered in it.
// Construction and teardown happen outside the resolver, once per run.
type Session interface {
	// Navigate loads the given URL in the session's page
	Navigate(ctx context.Context, url string) error

	// WaitReady blocks until the document ready state is "complete",
	// failing with a TimeoutError after the readiness deadline
	WaitReady(ctx context.Context) error

	// Document returns the handle for the currently loaded document
	Document() Document

	// Close disposes of the browser session
	Close() error
}
