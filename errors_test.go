package formschema_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fs "github.com/reoring/formschema"
)

func TestIssues_Error(t *testing.T) {
	var iss fs.Issues
	assert.Equal(t, "", iss.Error())

	iss = fs.AppendIssues(iss,
		fs.Issue{Code: fs.CodeRequired, Path: "data:a"},
		fs.Issue{Code: fs.CodeRequired, Path: "data:b"},
	)
	assert.Equal(t, "required at data:a; required at data:b", iss.Error())

	iss = fs.AppendIssues(iss,
		fs.Issue{Code: fs.CodeTooLong, Path: "data:c"},
		fs.Issue{Code: fs.CodeSchemaTypeMissing},
	)
	assert.Equal(t, "required at data:a; required at data:b; too_long at data:c; ... (total 4)", iss.Error())
}

func TestIssues_Helpers(t *testing.T) {
	iss := fs.Issues{
		{Code: fs.CodeInvalidType, Path: "data:a", Message: "m1"},
		{Code: fs.CodeInvalidType, Path: "data:a", Message: "m2"},
		{Code: fs.CodeUnknownKey, Path: "data:z", Message: "m3"},
	}
	assert.Equal(t, []string{fs.CodeInvalidType, fs.CodeUnknownKey}, iss.Codes())
	assert.Equal(t, []string{"data:a", "data:a"}, iss.Paths(fs.CodeInvalidType))
	assert.Equal(t, []string{"m1", "m2"}, iss.Messages(fs.CodeInvalidType))
	assert.Equal(t, map[string][]string{"data:a": {"m1", "m2"}, "data:z": {"m3"}}, iss.ByPath())
	assert.True(t, iss.Has("data:z"))
	assert.False(t, iss.Has("data:b"))
	assert.Nil(t, iss.Paths(fs.CodeRequired))
}

func TestIssue_Kind(t *testing.T) {
	tests := map[string]fs.Kind{
		fs.CodeSchemaTypeMissing: fs.KindConfiguration,
		fs.CodeUnsupportedType:   fs.KindConfiguration,
		fs.CodeInvalidType:       fs.KindType,
		fs.CodeTypeUnion:         fs.KindUnion,
		fs.CodeRequired:          fs.KindConstraint,
		fs.CodePattern:           fs.KindConstraint,
		fs.CodeDuplicateKey:      fs.KindInput,
	}
	for code, want := range tests {
		assert.Equal(t, want, fs.Issue{Code: code}.Kind(), code)
	}
	assert.Equal(t, "union", fs.KindUnion.String())
}

func TestAsIssues(t *testing.T) {
	_, ok := fs.AsIssues(nil)
	assert.False(t, ok)
	_, ok = fs.AsIssues(errors.New("plain"))
	assert.False(t, ok)

	wrapped := fmt.Errorf("submit: %w", fs.Issues{{Code: fs.CodeRequired, Path: "data:a"}})
	iss, ok := fs.AsIssues(wrapped)
	require.True(t, ok)
	assert.Equal(t, "data:a", iss[0].Path)
	assert.False(t, errors.Is(wrapped, fs.ErrMissingType))
}
