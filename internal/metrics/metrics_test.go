package metrics

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/coursebook/pkg/types"
)

func TestOutcome(t *testing.T) {
	dup := types.NewValidationError(types.KindCourse)
	dup.Duplicate = "This course already exists"
	invalid := types.NewValidationError(types.KindCourse)
	invalid.Add("name", "Course name is required")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, OutcomeOK},
		{"duplicate", dup, OutcomeDuplicate},
		{"invalid", invalid, OutcomeInvalid},
		{"in use", fmt.Errorf("x: %w", types.ErrInUse), OutcomeInUse},
		{"not found", fmt.Errorf("x: %w", types.ErrNotFound), OutcomeNotFound},
		{"invalid id", types.ErrInvalidID, OutcomeNotFound},
		{"other", errors.New("disk full"), OutcomeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestObserve(t *testing.T) {
	m := New()
	m.Observe(types.KindCourse, OpCreate, nil)
	m.Observe(types.KindCourse, OpCreate, nil)
	m.Observe(types.KindCourse, OpDelete, types.ErrInUse)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations(types.KindCourse, OpCreate, OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations(types.KindCourse, OpDelete, OutcomeInUse)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Operations(types.KindOffering, OpCreate, OutcomeOK)))
}

func TestSetRecordsAndWriteText(t *testing.T) {
	m := New()
	m.SetRecords(types.KindRegistration, 3)
	m.Observe(types.KindRegistration, OpCreate, nil)

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, `coursebook_records{kind="registrations"} 3`)
	assert.Contains(t, out, `coursebook_operations_total{kind="registrations",op="create",outcome="ok"} 1`)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe(types.KindCourse, OpCreate, nil)
		m.SetRecords(types.KindCourse, 1)
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteText(&bytes.Buffer{}))
}
