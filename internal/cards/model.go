package cards

import (
	"encoding/json"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Card is one row of card data.
type Card struct {
	Name     string `json:"Name" yaml:"Name"`
	Faction  string `json:"Faction" yaml:"Faction"`
	Count    Scalar `json:"Count" yaml:"Count"`
	Score    Scalar `json:"Score" yaml:"Score"`
	Type     string `json:"Type" yaml:"Type"`
	Effect   string `json:"Effect" yaml:"Effect"`
	Location string `json:"Location" yaml:"Location"`
	Legend   string `json:"Legend,omitempty" yaml:"Legend,omitempty"`

	// Index is the position of the card in its source file, used to pick art variants.
	Index int `json:"-" yaml:"-"`
}

// Positions splits Location on spaces.
func (c Card) Positions() []string {
	return strings.Fields(c.Location)
}

// Scalar is a card value that may be written as a number or a string.
type Scalar string

func (s *Scalar) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = Scalar(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = Scalar(n.String())
	return nil
}

func (s *Scalar) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return &yaml.TypeError{Errors: []string{"line " + strconv.Itoa(n.Line) + ": card value must be a scalar"}}
	}
	if n.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = Scalar(n.Value)
	return nil
}

func (s Scalar) String() string { return string(s) }

// Int returns the numeric value, or 0 when the scalar is not a number.
func (s Scalar) Int() int {
	v, err := strconv.Atoi(strings.TrimSpace(string(s)))
	if err != nil {
		return 0
	}
	return v
}
