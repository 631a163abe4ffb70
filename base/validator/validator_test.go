package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

type priced struct {
	Price   decimal.Decimal  `validate:"dpositive,dscale=2"`
	Reserve *decimal.Decimal `validate:"omitempty,dpositive"`
	Name    string           `validate:"required"`
}

func (s *ValidatorTestSuite) TestDecimalTags() {
	neg := decimal.NewFromInt(-1)
	tests := []struct {
		desc     string
		in       priced
		expValid bool
	}{
		{"valid", priced{Price: decimal.RequireFromString("10.50"), Name: "x"}, true},
		{"zero price", priced{Price: decimal.Zero, Name: "x"}, false},
		{"too many digits", priced{Price: decimal.RequireFromString("10.505"), Name: "x"}, false},
		{"trailing zeros", priced{Price: decimal.RequireFromString("10.500"), Name: "x"}, true},
		{"negative reserve", priced{Price: decimal.NewFromInt(1), Reserve: &neg, Name: "x"}, false},
		{"missing name", priced{Price: decimal.NewFromInt(1)}, false},
	}
	v := NewCustomValidator(New())
	for _, t := range tests {
		err := v.Validate(t.in)
		s.Equal(t.expValid, err == nil, t.desc)
	}
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
