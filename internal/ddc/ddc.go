// Package ddc is the device layer: enumerating monitors and reading or
// writing raw VCP features over DDC/CI. Backends only move numbers; naming
// is the job of the code registry.
package ddc

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownMonitor is returned when a monitor id is not connected.
	ErrUnknownMonitor = errors.New("ddc: unknown monitor")
	// ErrUnsupportedCode is returned when a monitor does not implement a code.
	ErrUnsupportedCode = errors.New("ddc: unsupported vcp code")
	// ErrOutOfRange is returned when a value exceeds the code's maximum.
	ErrOutOfRange = errors.New("ddc: value out of range")
)

// ReplyType is the type byte of a Get VCP Feature reply.
type ReplyType int

const (
	// SetParameter codes change some aspect of the monitor's operation.
	SetParameter ReplyType = iota
	// Momentary codes start a self-timed operation and then revert.
	Momentary
)

func (t ReplyType) String() string {
	switch t {
	case Momentary:
		return "momentary"
	default:
		return "set-parameter"
	}
}

// Reply is the answer to a Get VCP Feature request.
type Reply struct {
	Code    uint8
	Type    ReplyType
	Current uint16
	Maximum uint16
}

// Info identifies a connected monitor as reported by the OS.
type Info struct {
	// ID is stable across sessions and keys persisted state.
	ID             string `json:"id"`
	Adapter        string `json:"adapter,omitempty"`
	Name           string `json:"name,omitempty"`
	Model          string `json:"model,omitempty"`
	Serial         string `json:"serial,omitempty"`
	ManufacturerID string `json:"manufacturer_id,omitempty"`
	ProductID      string `json:"product_id,omitempty"`
	Primary        bool   `json:"primary,omitempty"`
}

// Field is a named Info attribute.
type Field struct {
	Name  string
	Value string
}

// Fields lists the non-empty attributes in a fixed order.
func (i Info) Fields() []Field {
	all := []Field{
		{"id", i.ID},
		{"adapter", i.Adapter},
		{"name", i.Name},
		{"model", i.Model},
		{"serial", i.Serial},
		{"manufacturer_id", i.ManufacturerID},
		{"product_id", i.ProductID},
	}
	out := all[:0]
	for _, f := range all {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

// DisplayName joins adapter, name and serial, substituting model and id
// for missing parts.
func (i Info) DisplayName() string {
	parts := []string{
		firstNonEmpty(i.Adapter, "?"),
		firstNonEmpty(i.Name, i.Model, "?"),
		firstNonEmpty(i.Serial, i.ID),
	}
	return strings.Join(parts, "/")
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}

// Backend talks to monitors.
type Backend interface {
	Enumerate(ctx context.Context) ([]Info, error)
	Capabilities(ctx context.Context, id string) (string, error)
	Read(ctx context.Context, id string, code uint8) (Reply, error)
	Write(ctx context.Context, id string, code uint8, value uint16) error
}

// CodeError attaches a monitor and code to a backend error.
type CodeError struct {
	Monitor string
	Code    uint8
	Err     error
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("monitor %s code 0x%02X: %v", e.Monitor, e.Code, e.Err)
}

func (e *CodeError) Unwrap() error { return e.Err }
