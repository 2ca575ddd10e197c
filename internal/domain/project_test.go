package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectInput_Validate_Valid(t *testing.T) {
	in := ProjectInput{Name: "Payroll", Code: "P1", Active: true}
	assert.NoError(t, in.Validate())
}

func TestProjectInput_Validate_Required(t *testing.T) {
	err := ProjectInput{Name: "  ", Code: "P1"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")

	err = ProjectInput{Name: "Payroll", Code: ""}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code is required")
}

func TestProjectInput_Validate_Lengths(t *testing.T) {
	assert.NoError(t, ProjectInput{Name: strings.Repeat("n", MaxProjectNameLen), Code: "P1"}.Validate())
	assert.Error(t, ProjectInput{Name: strings.Repeat("n", MaxProjectNameLen+1), Code: "P1"}.Validate())

	assert.NoError(t, ProjectInput{Name: "x", Code: strings.Repeat("C", MaxProjectCodeLen)}.Validate())
	assert.Error(t, ProjectInput{Name: "x", Code: strings.Repeat("C", MaxProjectCodeLen+1)}.Validate())
}

func TestProjectInput_Apply(t *testing.T) {
	p := &Project{ID: 7, Name: "old", Code: "OLD", Active: true}
	ProjectInput{Name: "new", Code: "NEW", Active: false}.Apply(p)

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "new", p.Name)
	assert.Equal(t, "NEW", p.Code)
	assert.False(t, p.Active)
}

func TestProject_DisplayLabel(t *testing.T) {
	assert.Equal(t, "P1 — Payroll", (&Project{Name: "Payroll", Code: "P1"}).DisplayLabel())
	assert.Equal(t, "Payroll", (&Project{Name: "Payroll"}).DisplayLabel())
}

func TestTaskInput_Validate(t *testing.T) {
	assert.NoError(t, TaskInput{Name: "T1", ProjectID: 1}.Validate())
	assert.Error(t, TaskInput{Name: "", ProjectID: 1}.Validate())
	assert.Error(t, TaskInput{Name: "T1", ProjectID: 0}.Validate())
	assert.Error(t, TaskInput{Name: strings.Repeat("t", MaxTaskNameLen+1), ProjectID: 1}.Validate())
}

func TestRuleError_Helpers(t *testing.T) {
	err := NewRuleError(ErrDuplicateCode, "project code %q already exists", "P1")
	assert.Equal(t, `DUPLICATE_CODE: project code "P1" already exists`, err.Error())

	wrapped := wrapForTest(err)
	re, ok := AsRuleError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrDuplicateCode, re.Kind)
	assert.True(t, IsKind(wrapped, ErrDuplicateCode))
	assert.False(t, IsKind(wrapped, ErrNotFound))
	assert.False(t, IsKind(nil, ErrNotFound))
}

func TestValueOr(t *testing.T) {
	v := int64(3)
	assert.Equal(t, int64(3), ValueOr(9, nil, &v))
	assert.Equal(t, int64(9), ValueOr[int64](9))
	f := false
	assert.False(t, ValueOr(true, &f))
	assert.True(t, ValueOr[bool](true, nil))
	s := ""
	assert.Equal(t, "", ValueOr("kept", &s), "an explicit empty value wins over the fallback")
}
