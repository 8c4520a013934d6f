package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Amount
		expectErr bool
	}{
		{name: "целое число", input: "120", expected: 12000},
		{name: "два знака после точки", input: "351.50", expected: 35150},
		{name: "один знак после точки", input: "50.5", expected: 5050},
		{name: "ноль", input: "0", expected: 0},
		{name: "отрицательная сумма", input: "-10.25", expected: -1025},
		{name: "три знака после точки", input: "10.255", expectErr: true},
		{name: "не число", input: "десять", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "351.50", Amount(35150).String())
	assert.Equal(t, "0.05", Amount(5).String())
	assert.Equal(t, "0.00", Amount(0).String())
	assert.Equal(t, "-10.25", Amount(-1025).String())
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, Amount(12050), FromFloat(120.50))
	// округление до копейки
	assert.Equal(t, Amount(10), FromFloat(0.1+0.2-0.2))
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(Amount(35150))
	require.NoError(t, err)
	assert.Equal(t, "351.50", string(data))

	var a Amount
	require.NoError(t, json.Unmarshal([]byte("150.00"), &a))
	assert.Equal(t, Amount(15000), a)

	require.NoError(t, json.Unmarshal([]byte(`"120.50"`), &a))
	assert.Equal(t, Amount(12050), a)
}

func TestScanValue(t *testing.T) {
	var a Amount
	require.NoError(t, a.Scan([]byte("351.50")))
	assert.Equal(t, Amount(35150), a)

	require.NoError(t, a.Scan("150.00"))
	assert.Equal(t, Amount(15000), a)

	v, err := Amount(5000).Value()
	require.NoError(t, err)
	assert.Equal(t, "50.00", v)
}
