package models

import "fmt"

// ContactMethod is how the client wants to be reached.
type ContactMethod string

const (
	ContactEmail ContactMethod = "Email"
	ContactText  ContactMethod = "Text"
	ContactPhone ContactMethod = "Phone"
)

// ContactMethods lists the accepted contact methods in display order.
var ContactMethods = []ContactMethod{ContactEmail, ContactText, ContactPhone}

// ParseContactMethod returns the ContactMethod named by s.
func ParseContactMethod(s string) (ContactMethod, error) {
	for _, m := range ContactMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown contact method %q", s)
}

// SensoryPrefs is the accessibility / comfort checklist attached to a booking.
type SensoryPrefs struct {
	Quiet          bool `json:"quiet"`
	ClipperWarning bool `json:"clipperWarning"`
	NoMusic        bool `json:"noMusic"`
	NoWash         bool `json:"noWash"`
	LightTouch     bool `json:"lightTouch"`
	Breaks         bool `json:"breaks"`
	StyleMenu      bool `json:"styleMenu"`
	MirrorOptional bool `json:"mirrorOptional"`
	LowScent       bool `json:"lowScent"`
	DigitalOnly    bool `json:"digitalOnly"`
	StepByStep     bool `json:"stepByStep"`
	Companion      bool `json:"companion"`
}

// SensoryKeys lists every sensory flag key in declaration order.
var SensoryKeys = []string{
	"quiet",
	"clipperWarning",
	"noMusic",
	"noWash",
	"lightTouch",
	"breaks",
	"styleMenu",
	"mirrorOptional",
	"lowScent",
	"digitalOnly",
	"stepByStep",
	"companion",
}

func (p *SensoryPrefs) flag(key string) *bool {
	switch key {
	case "quiet":
		return &p.Quiet
	case "clipperWarning":
		return &p.ClipperWarning
	case "noMusic":
		return &p.NoMusic
	case "noWash":
		return &p.NoWash
	case "lightTouch":
		return &p.LightTouch
	case "breaks":
		return &p.Breaks
	case "styleMenu":
		return &p.StyleMenu
	case "mirrorOptional":
		return &p.MirrorOptional
	case "lowScent":
		return &p.LowScent
	case "digitalOnly":
		return &p.DigitalOnly
	case "stepByStep":
		return &p.StepByStep
	case "companion":
		return &p.Companion
	}
	return nil
}

// Set toggles one flag. It reports false when key is not a known flag.
func (p *SensoryPrefs) Set(key string, value bool) bool {
	f := p.flag(key)
	if f == nil {
		return false
	}
	*f = value
	return true
}

// Get returns the value of one flag and whether the key exists.
func (p SensoryPrefs) Get(key string) (bool, bool) {
	f := p.flag(key)
	if f == nil {
		return false, false
	}
	return *f, true
}

// Selected returns the keys of all enabled flags in declaration order.
func (p SensoryPrefs) Selected() []string {
	var keys []string
	for _, k := range SensoryKeys {
		if v, _ := p.Get(k); v {
			keys = append(keys, k)
		}
	}
	return keys
}

// FormData holds every answer collected across the wizard steps.
type FormData struct {
	Name             string        `json:"name"`
	ContactMethod    ContactMethod `json:"contactMethod"`
	ContactDetail    string        `json:"contactDetail"`
	Address          string        `json:"address"`
	Service          string        `json:"service"`
	PreferredTime    string        `json:"preferredTime"`
	Notes            string        `json:"notes"`
	OtherPreferences string        `json:"otherPreferences"`
	Sensory          SensoryPrefs  `json:"sensory"`
}

// NewFormData returns the blank form a new wizard session starts with.
func NewFormData() FormData {
	return FormData{ContactMethod: ContactEmail}
}
