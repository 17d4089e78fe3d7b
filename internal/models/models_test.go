package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-06-01"`), &d))
	assert.Equal(t, "2024-06-01", d.String())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-06-01"`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`"2024-06-01T15:30:00Z"`), &d))
	assert.Equal(t, "2024-06-01", d.String())

	assert.Error(t, json.Unmarshal([]byte(`"01/06/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240601`), &d))
}

func TestDateScan(t *testing.T) {
	cases := []any{
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		"2024-06-01",
		[]byte("2024-06-01 00:00:00+00:00"),
		"2024-06-01T00:00:00Z",
	}
	for _, c := range cases {
		var d Date
		require.NoError(t, d.Scan(c), "%v", c)
		assert.Equal(t, "2024-06-01", d.String())
	}

	var d Date
	assert.Error(t, d.Scan(42))

	v, err := NewDate(time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", v)
}

func TestOptional(t *testing.T) {
	var body struct {
		Stage   Optional[string] `json:"stage"`
		WonOn   Optional[Date]   `json:"won_on"`
		Missing Optional[int]    `json:"missing"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"stage":"Proposal","won_on":null}`), &body))

	assert.True(t, body.Stage.HasValue())
	assert.Equal(t, "Proposal", body.Stage.Value)

	assert.True(t, body.WonOn.Set)
	assert.True(t, body.WonOn.Null)
	assert.Nil(t, body.WonOn.Ptr())

	assert.False(t, body.Missing.Set)
	assert.Equal(t, Some(3).Value, 3)
}

func TestRoleValid(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("Manager").Valid())
	assert.False(t, Role("owner").Valid())
}

func TestApplyPaidOnRule(t *testing.T) {
	today := NewDate(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	supplied := NewDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	p := PaymentSchedule{Status: PaymentPaid}
	p.ApplyPaidOnRule(today)
	require.NotNil(t, p.PaidOn)
	assert.Equal(t, "2024-06-10", p.PaidOn.String())

	p = PaymentSchedule{Status: PaymentPaid, PaidOn: DatePtr(supplied)}
	p.ApplyPaidOnRule(today)
	assert.Equal(t, "2024-06-01", p.PaidOn.String())

	p = PaymentSchedule{Status: PaymentPending, PaidOn: DatePtr(supplied)}
	p.ApplyPaidOnRule(today)
	assert.Nil(t, p.PaidOn)

	assert.True(t, PaymentPaid.Valid())
	assert.False(t, PaymentStatus("overdue").Valid())
}
