package birthday

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBirthDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    BirthDate
		wantErr bool
	}{
		{name: "full date", input: "1990-06-01", want: BirthDate{Year: 1990, Month: time.June, Day: 1}},
		{name: "surrounding whitespace", input: " 1985-12-31 ", want: BirthDate{Year: 1985, Month: time.December, Day: 31}},
		{name: "year-less", input: "07-01", want: BirthDate{Month: time.July, Day: 1}},
		{name: "year-less leap day", input: "02-29", want: BirthDate{Month: time.February, Day: 29}},
		{name: "leap day in leap year", input: "2000-02-29", want: BirthDate{Year: 2000, Month: time.February, Day: 29}},
		{name: "leap day in non-leap year", input: "2001-02-29", wantErr: true},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong order", input: "01-06-1990", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBirthDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidBirthDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBirthDate_OccurrenceIn(t *testing.T) {
	t.Run("regular date", func(t *testing.T) {
		bd := BirthDate{Year: 1990, Month: time.June, Day: 1}
		assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), bd.OccurrenceIn(2024, time.UTC))
	})

	t.Run("leap day observed on Feb 28 in non-leap year", func(t *testing.T) {
		bd := BirthDate{Year: 2000, Month: time.February, Day: 29}
		assert.Equal(t, time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC), bd.OccurrenceIn(2023, time.UTC))
		assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), bd.OccurrenceIn(2024, time.UTC))
		assert.Equal(t, time.Date(2100, time.February, 28, 0, 0, 0, 0, time.UTC), bd.OccurrenceIn(2100, time.UTC))
	})
}

func TestBirthDate_ObservedOn(t *testing.T) {
	leap := BirthDate{Year: 2000, Month: time.February, Day: 29}

	assert.True(t, leap.ObservedOn(time.Date(2023, time.February, 28, 10, 0, 0, 0, time.UTC)))
	assert.False(t, leap.ObservedOn(time.Date(2023, time.March, 1, 10, 0, 0, 0, time.UTC)))
	assert.True(t, leap.ObservedOn(time.Date(2024, time.February, 29, 10, 0, 0, 0, time.UTC)))
	assert.False(t, leap.ObservedOn(time.Date(2024, time.February, 28, 10, 0, 0, 0, time.UTC)))

	june := BirthDate{Month: time.June, Day: 1}
	assert.True(t, june.ObservedOn(time.Date(2024, time.June, 1, 23, 59, 0, 0, time.UTC)))
	assert.False(t, june.ObservedOn(time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)))
}

func TestBirthDate_AgeIn(t *testing.T) {
	age, ok := BirthDate{Year: 1990, Month: time.June, Day: 1}.AgeIn(2024)
	assert.True(t, ok)
	assert.Equal(t, 34, age)

	_, ok = BirthDate{Month: time.June, Day: 1}.AgeIn(2024)
	assert.False(t, ok)
}

func TestNullYear(t *testing.T) {
	t.Run("equal", func(t *testing.T) {
		assert.True(t, YearOf(2024).Equal(2024))
		assert.False(t, YearOf(2023).Equal(2024))
		assert.False(t, NullYear{}.Equal(0))
	})

	t.Run("json round trip keeps the string wire format", func(t *testing.T) {
		data, err := json.Marshal(YearOf(2024))
		require.NoError(t, err)
		assert.JSONEq(t, `"2024"`, string(data))

		data, err = json.Marshal(NullYear{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))

		var n NullYear
		require.NoError(t, json.Unmarshal([]byte(`2023`), &n))
		assert.Equal(t, YearOf(2023), n)
		require.NoError(t, json.Unmarshal([]byte(`null`), &n))
		assert.False(t, n.Valid)
	})

	t.Run("scan", func(t *testing.T) {
		var n NullYear
		require.NoError(t, n.Scan(int64(2022)))
		assert.Equal(t, YearOf(2022), n)

		require.NoError(t, n.Scan([]byte("2021")))
		assert.Equal(t, YearOf(2021), n)

		require.NoError(t, n.Scan(nil))
		assert.False(t, n.Valid)

		assert.Error(t, n.Scan("twenty"))
		assert.Error(t, n.Scan(3.5))
	})

	t.Run("value", func(t *testing.T) {
		v, err := YearOf(2024).Value()
		require.NoError(t, err)
		assert.Equal(t, int64(2024), v)

		v, err = NullYear{}.Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}
