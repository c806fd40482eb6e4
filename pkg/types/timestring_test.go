package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeString
		wantErr bool
	}{
		{in: "09:00", want: "09:00"},
		{in: "9:05", want: "09:05"},
		{in: " 23:59 ", want: "23:59"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "1200", wantErr: true},
		{in: "+9:00", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	a := MustTimeString("09:00")
	b := MustTimeString("09:45")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.Equal(t, 585, b.Minutes())
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := MustTimeString("09:50").AddMinutes(15)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:05"), got)

	_, err = MustTimeString("23:50").AddMinutes(15)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)

	date := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	got, err := MustTimeString("09:15").On(date, loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.October, 1, 7, 15, 0, 0, time.UTC), got.UTC())
}

func TestTimeString_ScanValue(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("8:30")))
	assert.Equal(t, TimeString("08:30"), ts)

	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "08:30", v)

	assert.Error(t, ts.Scan(42))
}
