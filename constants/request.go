package constants

import "strings"

// RequestType is the kind of SIM order being captured.
type RequestType string

const (
	RequestNew         RequestType = "NEW"
	RequestMNP         RequestType = "MNP"
	RequestReplacement RequestType = "REPLACEMENT"
)

var allRequestTypes = []RequestType{RequestNew, RequestMNP, RequestReplacement}

// Network is the mobile operator the SIM belongs to.
type Network string

const (
	NetworkAirtel Network = "AIRTEL"
	NetworkJio    Network = "JIO"
	NetworkVi     Network = "VI"
)

var allNetworks = []Network{NetworkAirtel, NetworkJio, NetworkVi}

// RequestTypes returns the request types in declaration order.
func RequestTypes() []RequestType {
	return append([]RequestType(nil), allRequestTypes...)
}

// Networks returns the networks in declaration order.
func Networks() []Network {
	return append([]Network(nil), allNetworks...)
}

// Label is the human readable name used in outbound messages.
func (r RequestType) Label() string {
	switch r {
	case RequestNew:
		return "New SIM"
	case RequestMNP:
		return "Port (MNP)"
	case RequestReplacement:
		return "SIM Replacement"
	}
	return string(r)
}

func (r RequestType) Valid() bool {
	for _, v := range allRequestTypes {
		if v == r {
			return true
		}
	}
	return false
}

func (n Network) Label() string {
	switch n {
	case NetworkAirtel:
		return "Airtel"
	case NetworkJio:
		return "Jio"
	case NetworkVi:
		return "Vi"
	}
	return string(n)
}

func (n Network) Valid() bool {
	for _, v := range allNetworks {
		if v == n {
			return true
		}
	}
	return false
}

// CanonicalizeRequestType maps free-form input onto a known request type.
// The bool is false when the input is outside the vocabulary.
func CanonicalizeRequestType(input string) (RequestType, bool) {
	normalized := normalize(input)
	if normalized == "" {
		return "", false
	}

	synonyms := map[string]RequestType{
		"new connection":  RequestNew,
		"new sim":         RequestNew,
		"fresh":           RequestNew,
		"port":            RequestMNP,
		"porting":         RequestMNP,
		"port in":         RequestMNP,
		"number porting":  RequestMNP,
		"sim replacement": RequestReplacement,
		"replace":         RequestReplacement,
		"duplicate sim":   RequestReplacement,
	}
	if rt, ok := synonyms[normalized]; ok {
		return rt, true
	}

	for _, rt := range allRequestTypes {
		if normalized == strings.ToLower(string(rt)) {
			return rt, true
		}
	}
	return "", false
}

// CanonicalizeNetwork maps free-form operator names onto a known network.
func CanonicalizeNetwork(input string) (Network, bool) {
	normalized := normalize(input)
	if normalized == "" {
		return "", false
	}

	synonyms := map[string]Network{
		"bharti airtel": NetworkAirtel,
		"reliance jio":  NetworkJio,
		"jio true 5g":   NetworkJio,
		"vodafone":      NetworkVi,
		"idea":          NetworkVi,
		"vodafone idea": NetworkVi,
		"vodafone-idea": NetworkVi,
	}
	if nw, ok := synonyms[normalized]; ok {
		return nw, true
	}

	for _, nw := range allNetworks {
		if normalized == strings.ToLower(string(nw)) {
			return nw, true
		}
	}
	return "", false
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}
