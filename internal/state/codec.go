package state

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrUnknownAction = errors.New("unknown action type")

type envelope struct {
	Type    string              `json:"type"`
	Payload jsoniter.RawMessage `json:"payload,omitempty"`
}

var decoders = map[string]func(jsoniter.RawMessage) (Action, error){
	TypeLoadReadingList:                decodeAs[LoadReadingList],
	TypeLoadReadingListSuccess:         decodeAs[LoadReadingListSuccess],
	TypeLoadReadingListError:           decodeAs[LoadReadingListError],
	TypeAddToReadingList:               decodeAs[AddToReadingList],
	TypeConfirmedAddToReadingList:      decodeAs[ConfirmedAddToReadingList],
	TypeFailedAddToReadingList:         decodeAs[FailedAddToReadingList],
	TypeRemoveFromReadingList:          decodeAs[RemoveFromReadingList],
	TypeConfirmedRemoveFromReadingList: decodeAs[ConfirmedRemoveFromReadingList],
	TypeFailedRemoveFromReadingList:    decodeAs[FailedRemoveFromReadingList],
	TypeMarkAsRead:                     decodeAs[MarkAsRead],
	TypeConfirmedMarkAsRead:            decodeAs[ConfirmedMarkAsRead],
	TypeFailedMarkAsRead:               decodeAs[FailedMarkAsRead],
	TypeSearchBooks:                    decodeAs[SearchBooks],
	TypeSearchBooksSuccess:             decodeAs[SearchBooksSuccess],
	TypeSearchBooksFailure:             decodeAs[SearchBooksFailure],
	TypeClearSearch:                    decodeAs[ClearSearch],
}

func decodeAs[T Action](raw jsoniter.RawMessage) (Action, error) {
	var a T
	if len(raw) == 0 {
		return a, nil
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return a, nil
}

// MarshalAction encodes a as {"type": ..., "payload": ...}.
func MarshalAction(a Action) ([]byte, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", a.Type(), err)
	}
	return json.Marshal(envelope{Type: a.Type(), Payload: payload})
}

// UnmarshalAction decodes an envelope produced by MarshalAction.
func UnmarshalAction(data []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal action: %w", err)
	}
	decode, ok := decoders[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
	}
	a, err := decode(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", env.Type, err)
	}
	return a, nil
}
