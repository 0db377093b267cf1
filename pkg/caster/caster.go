// Package caster converts websocket frames to and from Go values.
package caster

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// JSONFrames decodes inbound frames as In and encodes outbound values of type Out.
type JSONFrames[In, Out any] struct{}

func (JSONFrames[In, Out]) Decode(frame []byte) (In, error) {
	var v In
	if err := json.Unmarshal(frame, &v); err != nil {
		return v, errors.Wrap(err, "decoding frame")
	}
	return v, nil
}

func (JSONFrames[In, Out]) Encode(v Out) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encoding frame")
	}
	return data, nil
}
