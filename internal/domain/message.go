package domain

import "encoding/json"

// Response statuses.
const (
	StatusSuccess = "Success"
	StatusError   = "Error"
)

// Response texts.
const (
	MsgAdded      = "Message added successfully."
	MsgEdited     = "Message edited successfully."
	MsgDeleted    = "Message deleted successfully."
	MsgNotFound   = "Message not found."
	MsgStorage    = "Storage unavailable."
	MsgDenyAdd    = "You do not have permissions to add messages"
	MsgDenyEdit   = "You do not have permissions to edit messages"
	MsgDenyDelete = "You do not have permissions to delete messages"
)

// Message is a single news entry.
type Message struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Text renders the message the way Read reports it.
func (m Message) Text() string {
	return m.Title + ": " + m.Content
}

// Response is the outcome of a store or proxy operation.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	// ID is the identifier assigned by a successful create.
	ID int `json:"id,omitempty"`
}

// Success builds a successful response.
func Success(msg string) Response {
	return Response{Status: StatusSuccess, Message: msg}
}

// Failure builds an error response.
func Failure(msg string) Response {
	return Response{Status: StatusError, Message: msg}
}

// OK reports whether the response is a success.
func (r Response) OK() bool {
	return r.Status == StatusSuccess
}

func (r Response) String() string {
	return r.Status + ": " + r.Message
}

// Encode serializes a value to JSON bytes.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}
