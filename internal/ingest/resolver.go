package ingest

import (
	"fmt"
	"net/url"

	"github.com/camkit/camfeed/pkg/onvif"
)

// ControlPlane is the device negotiation surface the resolver needs.
type ControlPlane interface {
	GetProfiles() ([]onvif.Profile, error)
	GetStreamURI(token string) (string, error)
}

// ResolveStream selects the profile with the given index and returns
// the device's stream URI for it. The URI is untrusted device input,
// so it is re-parsed here instead of being passed along as a string.
func ResolveStream(client ControlPlane, index int) (*url.URL, error) {
	profiles, err := client.GetProfiles()
	if err != nil {
		return nil, fmt.Errorf("ingest: list profiles: %w", err)
	}

	if len(profiles) == 0 {
		return nil, ErrNoProfiles
	}
	if index < 0 || index >= len(profiles) {
		return nil, &ProfileNotFoundError{Index: index, Count: len(profiles)}
	}

	uri, err := client.GetStreamURI(profiles[index].Token)
	if err != nil {
		return nil, fmt.Errorf("ingest: get stream uri: %w", err)
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("ingest: bad stream uri %q: %w", uri, err)
	}

	return u, nil
}
