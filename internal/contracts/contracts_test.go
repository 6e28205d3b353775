package contracts

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf_CompletedIffKeywordPresent(t *testing.T) {
	cases := []struct {
		desc string
		want Status
	}{
		{"", StatusActive},
		{"работы ведутся", StatusActive},
		{"работы завершены", StatusCompleted},
		{"этап заверш", StatusCompleted},
		{"Завершено", StatusActive}, // keyword match is case sensitive
	}
	for _, tc := range cases {
		got := StatusOf(Contract{ReadinessDescription: tc.desc}, "")
		assert.Equal(t, tc.want, got, "description %q", tc.desc)
		assert.Equal(t, strings.Contains(tc.desc, DefaultCompletionKeyword), got == StatusCompleted)
	}
}

func TestStatusOf_CustomKeyword(t *testing.T) {
	c := Contract{ReadinessDescription: "work is done"}
	assert.Equal(t, StatusCompleted, StatusOf(c, "done"))
	assert.Equal(t, StatusActive, StatusOf(c, "closed"))
	assert.Equal(t, "Completed", StatusCompleted.Label())
	assert.Equal(t, "Active", StatusActive.Label())
}

func TestAmount_UnmarshalAcceptsNumbersStringsAndNull(t *testing.T) {
	var got struct {
		A *Amount `json:"a"`
		B *Amount `json:"b"`
		C *Amount `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":12.5,"b":"1000.00","c":null}`), &got))
	require.NotNil(t, got.A)
	require.NotNil(t, got.B)
	assert.Equal(t, 12.5, got.A.Float())
	assert.Equal(t, 1000.0, got.B.Float())
	assert.Nil(t, got.C)

	var bad Amount
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
}

func TestFormatter_DateAndAmount(t *testing.T) {
	f := NewFormatter("en-US", "$")
	assert.Equal(t, "05.03.2024", f.Date("2024-03-05"))
	assert.Equal(t, "Date not set", f.Date(""))
	assert.Equal(t, "garbage", f.Date("garbage"))

	assert.Equal(t, "Amount not set", f.Amount(nil))
	assert.Equal(t, "1,234,567.5 $", f.Amount(NewAmount(1234567.5)))
	assert.Equal(t, "100 $", f.Amount(NewAmount(100)))
	assert.Equal(t, "1.125 $", f.Amount(NewAmount(1.125)))

	var zero Formatter
	assert.True(t, strings.HasSuffix(zero.Amount(NewAmount(10)), " "+DefaultCurrency))
}

func TestFormatter_CreatedAt(t *testing.T) {
	f := NewFormatter("ru-RU", "")
	assert.Equal(t, "Not set", f.CreatedAt(Contract{}))

	naive := Contract{CreatedAt: "2024-01-02T03:04:05.123456"}
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local).Format(createdAtLayout)
	assert.Equal(t, want, f.CreatedAt(naive))
}

func TestAnalyze(t *testing.T) {
	f := NewFormatter("ru-RU", "")

	findings := Analyze(Contract{
		PlannedAmount:        NewAmount(200),
		ActualAmount:         NewAmount(150),
		ExecutionDeadline:    "2025-12-31",
		ReadinessDescription: "в работе",
	}, f)
	require.Len(t, findings, 3)
	assert.Equal(t, "Actual amount is 75% of planned.", findings[0].Text)
	assert.Equal(t, "Execution deadline set to 31.12.2025.", findings[1].Text)
	assert.Contains(t, findings[2].Text, "current state")

	empty := Analyze(Contract{PlannedAmount: NewAmount(100), ActualAmount: NewAmount(0)}, f)
	assert.Equal(t, "No data for financial analysis.", empty[0].Text)
	assert.Equal(t, "Execution deadline not set.", empty[1].Text)
	assert.Equal(t, "No readiness information.", empty[2].Text)
}

func TestMarkdown_IncludesSectionsAndVersions(t *testing.T) {
	md := Markdown(Contract{
		ID:                   4,
		Number:               "K_42",
		Name:                 "Bridge",
		ReadinessDescription: "работы завершены",
		Versions:             []Version{{VersionNumber: 1, ChangesDescription: "initial"}},
	}, NewFormatter("ru-RU", ""), "")

	for _, want := range []string{"# Bridge", "**Status:** Completed", `K\_42`, "## Analysis", "**v1** initial", "**ID:** 4"} {
		assert.Contains(t, md, want)
	}
}

func TestDraft_ValidateRequiredFields(t *testing.T) {
	missingName := Draft{Number: "1", ContractDate: "2024-01-01"}
	assert.ErrorIs(t, missingName.Validate(), ErrMissingRequired)

	_, err := missingName.Payload()
	assert.ErrorIs(t, err, ErrMissingRequired)

	blanks := Draft{Number: "  ", Name: "x", ContractDate: "2024-01-01"}
	assert.ErrorIs(t, blanks.Validate(), ErrMissingRequired)
}

func TestDraft_ValidateFormats(t *testing.T) {
	base := Draft{Number: "1", Name: "n", ContractDate: "2024-01-01"}
	require.NoError(t, base.Validate())

	bad := base
	bad.ContractDate = "01.01.2024"
	assert.Error(t, bad.Validate())

	bad = base
	bad.ExecutionDeadline = "tomorrow"
	assert.Error(t, bad.Validate())

	bad = base
	bad.PlannedAmount = "-5"
	assert.ErrorContains(t, bad.Validate(), "non-negative")

	bad = base
	bad.ActualAmount = "NaN"
	assert.ErrorContains(t, bad.Validate(), "not a number")
}

func TestDraft_PayloadIsSparse(t *testing.T) {
	d := Draft{
		Number:        " 12 ",
		Name:          "Road",
		ContractDate:  "2024-01-01",
		PlannedAmount: "1500,25",
	}
	p, err := d.Payload()
	require.NoError(t, err)

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	want := map[string]any{
		"number":         "12",
		"name":           "Road",
		"contract_date":  "2024-01-01",
		"planned_amount": 1500.25,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestDraftFrom_RoundTripsContract(t *testing.T) {
	c := Contract{
		ID:            5,
		Number:        "7",
		Name:          "Plant",
		ContractDate:  "2023-05-06",
		PlannedAmount: NewAmount(10.5),
	}
	d := DraftFrom(c)
	assert.Equal(t, "10.5", d.PlannedAmount)
	assert.Equal(t, "", d.ActualAmount)

	p, err := d.Payload()
	require.NoError(t, err)
	require.NotNil(t, p.PlannedAmount)
	assert.Equal(t, 10.5, *p.PlannedAmount)
	assert.Nil(t, p.ActualAmount)
	assert.Nil(t, p.Parties)
}

func TestDraft_SparseAllowsPartialEdits(t *testing.T) {
	p, err := Draft{ActualAmount: "42"}.Sparse()
	require.NoError(t, err)
	require.NotNil(t, p.ActualAmount)
	assert.Equal(t, 42.0, *p.ActualAmount)
	assert.Nil(t, p.Number)
	assert.Nil(t, p.ContractDate)

	_, err = Draft{}.Sparse()
	assert.ErrorIs(t, err, ErrEmptyPatch)

	_, err = Draft{ExecutionDeadline: "soon"}.Sparse()
	assert.ErrorContains(t, err, "execution deadline")

	_, err = Draft{PlannedAmount: "-1"}.Sparse()
	assert.ErrorContains(t, err, "non-negative")
}

func TestDraft_SparseReportsContractDateFirst(t *testing.T) {
	d := Draft{ContractDate: "bad", ExecutionDeadline: "worse"}
	for i := 0; i < 20; i++ {
		_, err := d.Sparse()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contract date")
	}
}
