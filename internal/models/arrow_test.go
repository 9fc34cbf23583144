package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ArrowValueTestSuite struct {
	suite.Suite
}

func TestArrowValueTestSuite(t *testing.T) {
	suite.Run(t, new(ArrowValueTestSuite))
}

func (s *ArrowValueTestSuite) TestMarshalNumeric() {
	data, err := json.Marshal(Arrow(9))
	s.Require().NoError(err)
	s.Equal("9", string(data))
}

func (s *ArrowValueTestSuite) TestMarshalSymbolic() {
	data, err := json.Marshal(ArrowSymbol("M"))
	s.Require().NoError(err)
	s.Equal(`"M"`, string(data))
}

func (s *ArrowValueTestSuite) TestUnmarshalMixedSequence() {
	var scores []ArrowValue
	err := json.Unmarshal([]byte(`[10, "X", 7, "M", 0]`), &scores)
	s.Require().NoError(err)

	s.Equal([]ArrowValue{
		Arrow(10),
		ArrowSymbol("X"),
		Arrow(7),
		ArrowSymbol("M"),
		Arrow(0),
	}, scores)
}

func (s *ArrowValueTestSuite) TestRoundTripKeepsWireForm() {
	original := []ArrowValue{Arrow(10), ArrowSymbol("X"), ArrowSymbol("M"), Arrow(5)}

	data, err := json.Marshal(original)
	s.Require().NoError(err)
	s.Equal(`[10,"X","M",5]`, string(data))

	var decoded []ArrowValue
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.Equal(original, decoded)
}

func (s *ArrowValueTestSuite) TestUnmarshalRejectsGarbage() {
	var value ArrowValue
	s.Error(json.Unmarshal([]byte(`{"bad": true}`), &value))
}
