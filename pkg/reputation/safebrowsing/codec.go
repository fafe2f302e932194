package safebrowsing

import (
	"webguard/pkg/domain"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// ThreatTypes are the Safe Browsing lists every lookup is checked against.
var ThreatTypes = []string{
	"MALWARE",
	"SOCIAL_ENGINEERING",
	"UNWANTED_SOFTWARE",
	"POTENTIALLY_HARMFUL_APPLICATION",
}

// encodeFindRequest writes a threatMatches:find request body for a single URL.
// https://developers.google.com/safe-browsing/v4/reference/rest/v4/threatMatches/find
func encodeFindRequest(e *jx.Encoder, clientID, clientVersion, target string) {
	strArr := func(values ...string) func(e *jx.Encoder) {
		return func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, v := range values {
					e.Str(v)
				}
			})
		}
	}

	e.Obj(func(e *jx.Encoder) {
		e.Field("client", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("clientId", func(e *jx.Encoder) { e.Str(clientID) })
				e.Field("clientVersion", func(e *jx.Encoder) { e.Str(clientVersion) })
			})
		})
		e.Field("threatInfo", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("threatTypes", strArr(ThreatTypes...))
				e.Field("platformTypes", strArr("ANY_PLATFORM"))
				e.Field("threatEntryTypes", strArr("URL"))
				e.Field("threatEntries", func(e *jx.Encoder) {
					e.Arr(func(e *jx.Encoder) {
						e.Obj(func(e *jx.Encoder) {
							e.Field("url", func(e *jx.Encoder) { e.Str(target) })
						})
					})
				})
			})
		})
	})
}

// decodeFindResponse reads the matches of a threatMatches:find response. An
// empty object means no match.
func decodeFindResponse(data []byte) ([]domain.ThreatMatch, error) {
	var matches []domain.ThreatMatch

	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "matches" {
			return d.Skip()
		}
		if d.Next() == jx.Null {
			return d.Null()
		}

		return d.Arr(func(d *jx.Decoder) error {
			m, err := decodeMatch(d)
			if err != nil {
				return err
			}
			matches = append(matches, m)

			return nil
		})
	}); err != nil {
		return nil, errors.Wrap(err, "decode threatMatches response")
	}

	return matches, nil
}

func decodeMatch(d *jx.Decoder) (domain.ThreatMatch, error) {
	var m domain.ThreatMatch
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "threatType":
			m.ThreatType, err = d.Str()
		case "platformType":
			m.PlatformType, err = d.Str()
		case "threatEntryType":
			m.ThreatEntryType, err = d.Str()
		case "threat":
			err = d.Obj(func(d *jx.Decoder, key string) error {
				if key != "url" {
					return d.Skip()
				}
				var err error
				m.URL, err = d.Str()

				return err
			})
		default:
			err = d.Skip()
		}

		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}

		return nil
	})
	if err != nil {
		return domain.ThreatMatch{}, errors.Wrap(err, "match")
	}
	if m.ThreatType == "" {
		return domain.ThreatMatch{}, errors.New("match without threatType")
	}

	return m, nil
}
