/*
Package types defines the data shared by the store, the session controller,
the executor and the front ends.

# Request

Request is the persisted record: an opaque time-ordered id, a Method, a URL
(not validated on write) and a user-editable title. A new request defaults to

	{"type": "GET", "url": "", "title": "New Request"}

# RequestState

RequestState holds per-entry UI state that is never written to the store.
Currently it only tracks whether the title is being edited inline.

# Response

Response is the single transient result slot. A zero Code means no send has
completed yet; a nil Time means no network call was attempted (for example
a body-bearing send whose body text is not valid JSON).

# Methods

Only GET, POST, PUT and DELETE are supported. POST and PUT carry a JSON
body; see Method.HasBody.
*/
package types
