package services

import "context"

// Address is the resolved postal detail for an eircode.
type Address struct {
	Street string
	City   string
	County string
}

// AddressResolver looks up postal details for an eircode so generated
// units can be pre-filled during review. Lookup misses are not errors;
// a miss returns (nil, nil) and the caller leaves the fields blank.
type AddressResolver interface {
	Resolve(ctx context.Context, eircode string) (*Address, error)
}

// StaticAddressResolver maps eircode routing keys to their principal
// post town. It covers the first three characters only, which is enough
// to pre-fill city and county for review.
type StaticAddressResolver struct{}

func NewStaticAddressResolver() *StaticAddressResolver {
	return &StaticAddressResolver{}
}

var routingKeys = map[string]Address{
	"D01": {City: "Dublin", County: "Dublin"},
	"D02": {City: "Dublin", County: "Dublin"},
	"D04": {City: "Dublin", County: "Dublin"},
	"D06": {City: "Dublin", County: "Dublin"},
	"D08": {City: "Dublin", County: "Dublin"},
	"D15": {City: "Dublin", County: "Dublin"},
	"D24": {City: "Dublin", County: "Dublin"},
	"T12": {City: "Cork", County: "Cork"},
	"T23": {City: "Cork", County: "Cork"},
	"H91": {City: "Galway", County: "Galway"},
	"V94": {City: "Limerick", County: "Limerick"},
	"X91": {City: "Waterford", County: "Waterford"},
	"A94": {City: "Blackrock", County: "Dublin"},
	"K67": {City: "Swords", County: "Dublin"},
	"W23": {City: "Celbridge", County: "Kildare"},
}

func (s *StaticAddressResolver) Resolve(_ context.Context, eircode string) (*Address, error) {
	if len(eircode) < 3 {
		return nil, nil
	}
	key := eircode[:3]
	if addr, ok := routingKeys[key]; ok {
		out := addr
		return &out, nil
	}
	return nil, nil
}
