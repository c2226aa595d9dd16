package forms

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/babycare/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

func TestGrowthDraft_Parse_OK(t *testing.T) {
	m, err := GrowthDraft{Height: "72.5", Weight: "9.1", HeadSize: "45", Notes: "  after bath "}.Parse(fixedNow)
	require.NoError(t, err)

	want := Measurement{Height: 72.5, Weight: 9.1, HeadSize: 45, MeasuredAt: fixedNow, Notes: "after bath"}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("measurement mismatch (-want +got):\n%s", diff)
	}
}

func TestGrowthDraft_Parse_DecimalCommaAndDate(t *testing.T) {
	m, err := GrowthDraft{Height: "72,5", Weight: "9", HeadSize: "45.0", MeasuredAt: "2026-04-01"}.Parse(fixedNow)
	require.NoError(t, err)
	require.Equal(t, 72.5, m.Height)
	require.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), m.MeasuredAt)
}

func TestGrowthDraft_Parse_ReportsAllFieldsTogether(t *testing.T) {
	_, err := GrowthDraft{Height: "", Weight: "heavy", HeadSize: " ", MeasuredAt: "yesterday"}.Parse(fixedNow)
	require.Error(t, err)
	require.ErrorIs(t, err, common.ErrValidation)

	fe, ok := AsFieldErrors(err)
	require.True(t, ok)
	require.Equal(t, FieldErrors{
		FieldHeight:     "required",
		FieldWeight:     "must be a number",
		FieldHeadSize:   "required",
		FieldMeasuredAt: "expected a date like 2006-01-02",
	}, fe)
}

func TestGrowthDraft_RejectsNonFiniteNumbers(t *testing.T) {
	err := GrowthDraft{Height: "NaN", Weight: "Inf", HeadSize: "-inf"}.Validate()
	require.ErrorIs(t, err, common.ErrValidation)

	fe, ok := AsFieldErrors(err)
	require.True(t, ok)
	require.Equal(t, FieldErrors{
		FieldHeight:   "must be a number",
		FieldWeight:   "must be a number",
		FieldHeadSize: "must be a number",
	}, fe)
}

func TestGrowthDraft_NoRangeChecks(t *testing.T) {
	require.NoError(t, GrowthDraft{Height: "-1", Weight: "0", HeadSize: "1e3"}.Validate())
}

func TestFieldErrors_ErrorIsSorted(t *testing.T) {
	fe := FieldErrors{"weight": "required", "height": "must be a number"}
	require.Equal(t, "height: must be a number; weight: required", fe.Error())
}

func TestAsFieldErrors_NotFieldErrors(t *testing.T) {
	_, ok := AsFieldErrors(errors.New("boom"))
	require.False(t, ok)
}

func TestLoginForm_Validate(t *testing.T) {
	require.NoError(t, LoginForm{Email: "a@example.org", Password: "x"}.Validate())

	fe, ok := AsFieldErrors(LoginForm{}.Validate())
	require.True(t, ok)
	require.Equal(t, "required", fe[FieldEmail])
	require.Equal(t, "required", fe[FieldPassword])

	fe, _ = AsFieldErrors(LoginForm{Email: "not-an-email", Password: "x"}.Validate())
	require.Equal(t, "not a valid email address", fe[FieldEmail])
}

func TestRegistrationForm_Validate(t *testing.T) {
	tests := []struct {
		name  string
		form  RegistrationForm
		field string
		msg   string
	}{
		{"ok", RegistrationForm{Email: "a@example.org", Password: "Secret123", ConfirmPassword: "Secret123"}, "", ""},
		{"short", RegistrationForm{Email: "a@example.org", Password: "Se1", ConfirmPassword: "Se1"}, FieldPassword, "must be at least 8 characters"},
		{"no digit", RegistrationForm{Email: "a@example.org", Password: "SecretPass", ConfirmPassword: "SecretPass"}, FieldPassword, "must contain upper case, lower case and a digit"},
		{"no upper", RegistrationForm{Email: "a@example.org", Password: "secret123", ConfirmPassword: "secret123"}, FieldPassword, "must contain upper case, lower case and a digit"},
		{"mismatch", RegistrationForm{Email: "a@example.org", Password: "Secret123", ConfirmPassword: "Secret124"}, FieldConfirmPassword, "passwords do not match"},
		{"no email", RegistrationForm{Password: "Secret123", ConfirmPassword: "Secret123"}, FieldEmail, "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			fe, ok := AsFieldErrors(err)
			require.True(t, ok)
			require.Equal(t, tt.msg, fe[tt.field])
		})
	}
}
