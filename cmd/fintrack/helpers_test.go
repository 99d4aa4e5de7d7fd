package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/fintrack/internal/common"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		input   string
		want    float64
	}{
		{name: "whole number", input: "50", want: 50},
		{name: "decimal", input: "19.99", want: 19.99},
		{name: "not a number", input: "abc", wantErr: common.ErrInvalidInput},
		{name: "empty", input: "", wantErr: common.ErrInvalidInput},
		{name: "zero", input: "0", wantErr: common.ErrInvalidAmount},
		{name: "negative", input: "-5", wantErr: common.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-06-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 5, 0, 0, 0, 0, time.Local), got)

	// Empty means now.
	before := time.Now()
	got, err = parseDate("")
	require.NoError(t, err)
	assert.False(t, got.Before(before))
	assert.False(t, got.After(time.Now()))

	_, err = parseDate("05/06/2024")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = parseDate("2024-13-01")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestResolveMonthYear(t *testing.T) {
	month, year, err := resolveMonthYear(6, 2024)
	require.NoError(t, err)
	assert.Equal(t, 5, month)
	assert.Equal(t, 2024, year)

	// Flag months are 1-12; January maps to internal month 0.
	month, _, err = resolveMonthYear(1, 2024)
	require.NoError(t, err)
	assert.Equal(t, 0, month)

	month, _, err = resolveMonthYear(12, 2024)
	require.NoError(t, err)
	assert.Equal(t, 11, month)

	// Unset flags default to the current month and year.
	now := time.Now()
	month, year, err = resolveMonthYear(0, 0)
	require.NoError(t, err)
	assert.Equal(t, int(now.Month())-1, month)
	assert.Equal(t, now.Year(), year)

	// Year alone can be overridden.
	month, year, err = resolveMonthYear(0, 2030)
	require.NoError(t, err)
	assert.Equal(t, int(now.Month())-1, month)
	assert.Equal(t, 2030, year)

	for _, bad := range []int{-1, 13, 99} {
		_, _, err = resolveMonthYear(bad, 0)
		assert.ErrorIs(t, err, common.ErrInvalidInput, "month flag %d", bad)
	}
}
