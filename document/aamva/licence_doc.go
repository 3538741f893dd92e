package aamva

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Gender is the AAMVA sex element (DBC) encoded as its numeric code
type Gender uint8

const (
	Male        Gender = 1
	Female      Gender = 2
	Unspecified Gender = 9
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "MALE"
	case Female:
		return "FEMALE"
	default:
		return "UNSPECIFIED"
	}
}

// Code returns the on-wire AAMVA code. Values outside the known set report 9.
func (g Gender) Code() int {
	switch g {
	case Male, Female:
		return int(g)
	default:
		return int(Unspecified)
	}
}

func genderFromCode(code int) Gender {
	switch code {
	case int(Male):
		return Male
	case int(Female):
		return Female
	default:
		return Unspecified
	}
}

func (g Gender) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(g.Code())), nil
}

func (g *Gender) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("invalid gender code %s: %w", data, err)
	}
	*g = genderFromCode(code)
	return nil
}

func (g Gender) MarshalYAML() (interface{}, error) {
	return g.Code(), nil
}

func (g *Gender) UnmarshalYAML(node *yaml.Node) error {
	var code int
	if err := node.Decode(&code); err != nil {
		return fmt.Errorf("invalid gender code %q: %w", node.Value, err)
	}
	*g = genderFromCode(code)
	return nil
}

// Record is the flat view of an AAMVA DL/ID subfile. Field order is the
// serialization order.
type Record struct {
	VehicleClass         string `json:"vehicle_class" yaml:"vehicle_class"`
	DrivingPrivileges    string `json:"driving_privileges" yaml:"driving_privileges"`
	AdditionalPrivileges string `json:"additional_privileges" yaml:"additional_privileges"`
	ExpirationDate       string `json:"expiration_date" yaml:"expiration_date"`
	LastName             string `json:"last_name" yaml:"last_name"`
	FirstName            string `json:"first_name" yaml:"first_name"`
	MiddleName           string `json:"middle_name" yaml:"middle_name"`
	IssueDate            string `json:"issue_date" yaml:"issue_date"`
	DateOfBirth          string `json:"date_of_birth" yaml:"date_of_birth"`
	Gender               Gender `json:"gender" yaml:"gender"`
	EyeColor             string `json:"eye_color" yaml:"eye_color"`
	Height               string `json:"height" yaml:"height"`
	Street               string `json:"street" yaml:"street"`
	City                 string `json:"city" yaml:"city"`
	State                string `json:"state" yaml:"state"`
	PostalCode           string `json:"postal_code" yaml:"postal_code"`
}

// NewRecord returns a record with every string empty and gender unspecified
func NewRecord() Record {
	return Record{Gender: Unspecified}
}

// InvalidFields lists, in schema order, the serialized names of normalized
// fields whose value failed normalization. Verbatim fields are never listed,
// even when their text happens to match a sentinel.
func (r Record) InvalidFields() []string {
	invalid := []string{}
	for _, el := range elements {
		if el.sentinel == "" {
			continue
		}
		if el.get(&r) == el.sentinel {
			invalid = append(invalid, el.field)
		}
	}
	return invalid
}
