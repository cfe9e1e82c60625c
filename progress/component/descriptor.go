package component

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownKind = errors.New("unknown component kind")
	ErrZeroWidth   = errors.New("component width must be greater than 0")
)

// Kind identifies a renderer.
type Kind string

const (
	KindBar       Kind = "bar"
	KindSpinner   Kind = "spinner"
	KindPulse     Kind = "pulse"
	KindHeartbeat Kind = "heartbeat"
)

const (
	DefaultWidth  uint = 40
	DefaultSymbol rune = '#'
)

// ParseKind resolves a renderer name, case insensitive.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindBar, KindSpinner, KindPulse, KindHeartbeat:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Descriptor describes how to build a Component. A descriptor can be
// shared, every Build call returns a new, independent component.
type Descriptor struct {
	Kind           Kind
	Width          uint
	Symbol         rune
	DisplayPercent bool
}

func DefaultBar() Descriptor {
	return Descriptor{Kind: KindBar, Width: DefaultWidth, Symbol: DefaultSymbol, DisplayPercent: true}
}

func DefaultSpinner() Descriptor {
	return Descriptor{Kind: KindSpinner, DisplayPercent: true}
}

func DefaultPulse() Descriptor {
	return Descriptor{Kind: KindPulse, Width: DefaultWidth, Symbol: DefaultSymbol, DisplayPercent: true}
}

func DefaultHeartbeat() Descriptor {
	return Descriptor{Kind: KindHeartbeat, Width: DefaultWidth, Symbol: DefaultSymbol, DisplayPercent: true}
}

// Build creates the component described by d.
func (d Descriptor) Build() (Component, error) {
	symbol := d.Symbol
	if symbol == 0 {
		symbol = DefaultSymbol
	}
	kind, err := ParseKind(string(d.Kind))
	if err != nil {
		return nil, err
	}
	if kind != KindSpinner && d.Width == 0 {
		return nil, fmt.Errorf("%w: %s", ErrZeroWidth, kind)
	}

	switch kind {
	case KindBar:
		return NewBar(d.Width, symbol, d.DisplayPercent), nil
	case KindSpinner:
		return NewSpinner(d.DisplayPercent), nil
	case KindPulse:
		return NewPulse(d.Width, symbol, d.DisplayPercent), nil
	case KindHeartbeat:
		return NewHeartbeat(d.Width, symbol, d.DisplayPercent), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
