package testing

// ListingPayload is a listing body that passes validation, as a client would
// send it
func ListingPayload() map[string]any {
	return map[string]any{
		"title":        "Sunny two bedroom near Green Bazaar",
		"description":  "Renovated, furnished, ten minutes from the metro",
		"address":      "12 Abay Ave., #4",
		"city":         "Almaty",
		"propertyType": "apartment",
		"rent":         350000.0,
		"bedrooms":     2,
		"bathrooms":    1,
		"area":         64.5,
		"amenities":    []string{"Wifi", "parking", "wifi"},
		"floorHeating": true,
	}
}

func ListingPayloadWith(overrides map[string]any) map[string]any {
	payload := ListingPayload()
	for k, v := range overrides {
		payload[k] = v
	}

	return payload
}
