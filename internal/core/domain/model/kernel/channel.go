package kernel

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Channel identifies the sales channel an order was placed through. Each
// channel owns a fixed 2-digit prefix used in externally visible order
// numbers; the mapping is part of the public contract and must not change.
type Channel int

const (
	// ChannelUnknown represents an invalid or undefined channel.
	ChannelUnknown Channel = iota

	// ChannelWeb is the web storefront (prefix 10).
	ChannelWeb

	// ChannelMobile is the mobile application (prefix 20).
	ChannelMobile

	// ChannelAPI is the partner API (prefix 30).
	ChannelAPI

	// ChannelPOS is the in-store point of sale (prefix 40).
	ChannelPOS

	// ChannelCallCenter is the phone call center (prefix 50).
	ChannelCallCenter
)

type channelInfo struct {
	name   string
	prefix string
}

func getChannelInfos() map[Channel]channelInfo {
	return map[Channel]channelInfo{
		ChannelWeb:        {name: "WEB", prefix: "10"},
		ChannelMobile:     {name: "MOBILE", prefix: "20"},
		ChannelAPI:        {name: "API", prefix: "30"},
		ChannelPOS:        {name: "POS", prefix: "40"},
		ChannelCallCenter: {name: "CALL_CENTER", prefix: "50"},
	}
}

// ChannelFromString parses the upstream wire name of a channel
// (WEB, MOBILE, API, POS, CALL_CENTER).
func ChannelFromString(s string) (Channel, error) {
	for ch, info := range getChannelInfos() {
		if info.name == s {
			return ch, nil
		}
	}
	return ChannelUnknown, errs.NewValueIsInvalidErrorWithCause("channel",
		fmt.Errorf("%q is not a known sales channel", s))
}

// ChannelFromPrefix resolves a channel from its 2-digit order-number prefix.
func ChannelFromPrefix(prefix string) (Channel, error) {
	for ch, info := range getChannelInfos() {
		if info.prefix == prefix {
			return ch, nil
		}
	}
	return ChannelUnknown, errs.NewValueIsInvalidErrorWithCause("channel",
		fmt.Errorf("%q is not a known channel prefix", prefix))
}

// Validate checks that the channel is one of the defined values.
func (c Channel) Validate() error {
	if _, ok := getChannelInfos()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("channel",
			fmt.Errorf("%d is not a valid channel", c))
	}
	return nil
}

// String returns the upstream wire name of the channel.
func (c Channel) String() string {
	if info, ok := getChannelInfos()[c]; ok {
		return info.name
	}
	return "UNKNOWN"
}

// Prefix returns the channel's fixed 2-digit order-number prefix.
func (c Channel) Prefix() string {
	if info, ok := getChannelInfos()[c]; ok {
		return info.prefix
	}
	return "00"
}
