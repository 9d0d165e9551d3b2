package models

import "encoding/json"

// LocalizedString is a multi-language value as returned by the Nobel Prize API.
type LocalizedString struct {
	En string `json:"en,omitempty"`
	Se string `json:"se,omitempty"`
	No string `json:"no,omitempty"`
}

type Affiliation struct {
	Name    *LocalizedString `json:"name,omitempty"`
	City    *LocalizedString `json:"city,omitempty"`
	Country *LocalizedString `json:"country,omitempty"`
}

type Prize struct {
	AwardYear        string           `json:"awardYear"`
	Category         *LocalizedString `json:"category,omitempty"`
	CategoryFullName *LocalizedString `json:"categoryFullName,omitempty"`
	Motivation       *LocalizedString `json:"motivation,omitempty"`
	PrizeStatus      string           `json:"prizeStatus,omitempty"`
	Affiliations     []Affiliation    `json:"affiliations,omitempty"`
}

type Laureate struct {
	ID          string           `json:"id"`
	KnownName   *LocalizedString `json:"knownName,omitempty"`
	FullName    *LocalizedString `json:"fullName,omitempty"`
	Gender      string           `json:"gender,omitempty"`
	NobelPrizes []Prize          `json:"nobelPrizes,omitempty"`

	// Raw holds the undecoded laureate object.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON keeps a copy of the raw payload next to the decoded fields.
func (l *Laureate) UnmarshalJSON(data []byte) error {
	type alias Laureate
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*l = Laureate(a)
	l.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Summary is the printable view of a laureate.
type Summary struct {
	FullName    string
	AwardYear   string
	Affiliation string
}
