package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/domain"
)

// validTransaction returns a transaction that passes every check.
func validTransaction() *domain.Transaction {
	return &domain.Transaction{
		Description: "Monthly Rent Payment",
		Month:       3,
		Year:        2024,
		Value:       decimal.NewFromFloat(1200.50),
		Type:        domain.TransactionTypeExpense,
		UserID:      1,
	}
}

func TestValidateAcceptsValidTransaction(t *testing.T) {
	assert.Nil(t, Validate(validTransaction()))
}

func TestValidateDescription(t *testing.T) {
	for _, desc := range []string{"", "   ", "\t\n"} {
		tx := validTransaction()
		tx.Description = desc
		verr := Validate(tx)
		require.NotNil(t, verr, "description %q should fail", desc)
		assert.Equal(t, ReasonInvalidDescription, verr.Reason)
	}
}

func TestValidateMonth(t *testing.T) {
	cases := []struct {
		month int
		valid bool
	}{
		{0, false},
		{13, false},
		{-1, false},
		{1, true},
		{12, true},
		{6, true},
	}
	for _, tc := range cases {
		tx := validTransaction()
		tx.Month = tc.month
		verr := Validate(tx)
		if tc.valid {
			assert.Nil(t, verr, "month %d should pass", tc.month)
		} else {
			require.NotNil(t, verr, "month %d should fail", tc.month)
			assert.Equal(t, ReasonInvalidMonth, verr.Reason)
		}
	}
}

func TestValidateYear(t *testing.T) {
	cases := []struct {
		year  int
		valid bool
	}{
		{999, false},
		{10000, false},
		{0, false},
		{1000, true},
		{9999, true},
		{2024, true},
	}
	for _, tc := range cases {
		tx := validTransaction()
		tx.Year = tc.year
		verr := Validate(tx)
		if tc.valid {
			assert.Nil(t, verr, "year %d should pass", tc.year)
		} else {
			require.NotNil(t, verr, "year %d should fail", tc.year)
			assert.Equal(t, ReasonInvalidYear, verr.Reason)
		}
	}
}

func TestValidateUser(t *testing.T) {
	tx := validTransaction()
	tx.UserID = 0
	verr := Validate(tx)
	require.NotNil(t, verr)
	assert.Equal(t, ReasonMissingUser, verr.Reason)
}

func TestValidateValue(t *testing.T) {
	cases := []struct {
		value decimal.Decimal
		valid bool
	}{
		{decimal.Zero, false},
		{decimal.NewFromFloat(-5.00), false},
		{decimal.NewFromFloat(0.01), true},
	}
	for _, tc := range cases {
		tx := validTransaction()
		tx.Value = tc.value
		verr := Validate(tx)
		if tc.valid {
			assert.Nil(t, verr, "value %s should pass", tc.value)
		} else {
			require.NotNil(t, verr, "value %s should fail", tc.value)
			assert.Equal(t, ReasonInvalidValue, verr.Reason)
		}
	}
}

func TestValidateType(t *testing.T) {
	tx := validTransaction()
	tx.Type = ""
	verr := Validate(tx)
	require.NotNil(t, verr)
	assert.Equal(t, ReasonMissingType, verr.Reason)

	tx.Type = domain.TransactionType("TRANSFER")
	verr = Validate(tx)
	require.NotNil(t, verr)
	assert.Equal(t, ReasonMissingType, verr.Reason)
}

// Checks run in a fixed order; the first failing field wins.
func TestValidateOrderShortCircuits(t *testing.T) {
	tx := &domain.Transaction{} // everything invalid
	verr := Validate(tx)
	require.NotNil(t, verr)
	assert.Equal(t, ReasonInvalidDescription, verr.Reason)

	tx.Description = "salary"
	verr = Validate(tx)
	require.NotNil(t, verr)
	assert.Equal(t, ReasonInvalidMonth, verr.Reason)

	tx.Month = 5
	verr = Validate(tx)
	require.NotNil(t, verr)
	assert.Equal(t, ReasonInvalidYear, verr.Reason)

	tx.Year = 2024
	verr = Validate(tx)
	require.NotNil(t, verr)
	assert.Equal(t, ReasonMissingUser, verr.Reason)

	tx.UserID = 7
	verr = Validate(tx)
	require.NotNil(t, verr)
	assert.Equal(t, ReasonInvalidValue, verr.Reason)

	tx.Value = decimal.NewFromInt(10)
	verr = Validate(tx)
	require.NotNil(t, verr)
	assert.Equal(t, ReasonMissingType, verr.Reason)
}
