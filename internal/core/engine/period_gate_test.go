package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/core/engine"
)

func fiscalYear2025() []domain.FiscalPeriod {
	return []domain.FiscalPeriod{
		{PeriodID: "Q1", FiscalYearID: "FY25", StartDate: day(2025, 1, 1), EndDate: day(2025, 3, 31), Status: domain.PeriodOpen},
		{
			PeriodID: "Q2", FiscalYearID: "FY25", StartDate: day(2025, 4, 1), EndDate: day(2025, 6, 30), Status: domain.PeriodClosed,
			Exceptions: []domain.PeriodException{
				{UserID: "alice", AllowedStatuses: []domain.PeriodStatus{domain.PeriodClosed}},
				{UserID: "carol", AllowedStatuses: []domain.PeriodStatus{domain.PeriodNotOpen}},
			},
		},
		{PeriodID: "Q3", FiscalYearID: "FY25", StartDate: day(2025, 7, 1), EndDate: day(2025, 9, 30), Status: domain.PeriodNotOpen},
	}
}

func TestEvaluatePeriodGate(t *testing.T) {
	tests := []struct {
		name       string
		periods    []domain.FiscalPeriod
		date       time.Time
		user       string
		wantReason apperrors.PeriodRejectReason
	}{
		{name: "no periods", periods: nil, date: day(2025, 2, 1), user: "alice", wantReason: apperrors.NoPeriodsDefined},
		{name: "outside every period", periods: fiscalYear2025(), date: day(2025, 12, 1), user: "alice", wantReason: apperrors.DateOutsideAnyPeriod},
		{name: "open period", periods: fiscalYear2025(), date: day(2025, 2, 14), user: "bob"},
		{name: "period boundaries inclusive", periods: fiscalYear2025(), date: time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC), user: "bob"},
		{name: "closed with exception", periods: fiscalYear2025(), date: day(2025, 5, 5), user: "alice"},
		{name: "closed without exception", periods: fiscalYear2025(), date: day(2025, 5, 5), user: "bob", wantReason: apperrors.PeriodClosed},
		{name: "exception for another status", periods: fiscalYear2025(), date: day(2025, 5, 5), user: "carol", wantReason: apperrors.PeriodClosed},
		{name: "not open without exception", periods: fiscalYear2025(), date: day(2025, 8, 1), user: "alice", wantReason: apperrors.PeriodClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.EvaluatePeriodGate(tt.periods, tt.date, tt.user)
			if tt.wantReason == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrPeriodRejected)
			var rejected *apperrors.PeriodRejectedError
			require.True(t, errors.As(err, &rejected))
			assert.Equal(t, tt.wantReason, rejected.Reason)
		})
	}
}

func TestEvaluatePeriodGate_ScenarioD(t *testing.T) {
	periods := []domain.FiscalPeriod{{
		PeriodID:   "P",
		StartDate:  day(2025, 1, 1),
		EndDate:    day(2025, 1, 31),
		Status:     domain.PeriodClosed,
		Exceptions: []domain.PeriodException{{UserID: "u-1", AllowedStatuses: []domain.PeriodStatus{domain.PeriodClosed}}},
	}}

	assert.NoError(t, engine.EvaluatePeriodGate(periods, day(2025, 1, 15), "u-1"))
	assert.ErrorIs(t, engine.EvaluatePeriodGate(periods, day(2025, 1, 15), "u-2"), apperrors.ErrPeriodRejected)
}
